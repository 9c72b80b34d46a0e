package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/models"
)

type loginResponse struct {
	User      models.PublicUser `json:"user"`
	Token     string            `json:"token,omitempty"`
	ExpiresAt *time.Time        `json:"expires_at,omitempty"`
}

// Register creates an account.
func (h *Handlers) Register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		failure(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// Passwords are taken verbatim; surrounding spaces are part of them.
	user, err := h.accounts.Register(c.Request.Context(), form.Username.String(), form.Email.String(), string(form.Password))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.Registered()
	h.log.Info("user registered", zap.Int64("user_id", user.ID), zap.String("request_id", requestID(c)))
	success(c, http.StatusCreated, "user registered successfully", nil)
}

// Login checks credentials and returns the public user, plus a bearer token
// when tokens are enabled.
func (h *Handlers) Login(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		failure(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if form.Username.String() == "" {
		h.fail(c, models.Invalid("username", "is required"))
		return
	}
	if string(form.Password) == "" {
		h.fail(c, models.Invalid("password", "is required"))
		return
	}

	user, err := h.accounts.Login(c.Request.Context(), form.Username.String(), string(form.Password))
	h.metrics.LoginAttempt(err == nil)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := loginResponse{User: user.Public()}
	if h.tokens != nil {
		token, expiresAt, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.fail(c, err)
			return
		}
		resp.Token = token
		resp.ExpiresAt = &expiresAt
	}
	success(c, http.StatusOK, "login successful", resp)
}

// Logout is advisory: no server-side session exists to end.
func (h *Handlers) Logout(c *gin.Context) {
	success(c, http.StatusOK, "logged out", nil)
}
