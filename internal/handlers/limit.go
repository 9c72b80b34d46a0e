package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLimit returns the user's spending limit, 0 when never set.
func (h *Handlers) GetLimit(c *gin.Context) {
	userID, err := h.owner(c, field(c.Query("userid")))
	if err != nil {
		h.fail(c, err)
		return
	}

	limit, err := h.store.GetLimit(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", gin.H{"limit": limit})
}

// SetLimit stores the user's spending limit. Negative values are rejected,
// never clamped.
func (h *Handlers) SetLimit(c *gin.Context) {
	var form limitForm
	if err := c.ShouldBind(&form); err != nil {
		failure(c, http.StatusBadRequest, "invalid request body")
		return
	}
	userID, err := h.owner(c, form.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	limit, err := form.value()
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.store.SetLimit(c.Request.Context(), userID, limit.Round(2)); err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "limit updated successfully", gin.H{"limit": limit.Round(2)})
}
