package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListExpenses returns every expense of the user, newest first.
func (h *Handlers) ListExpenses(c *gin.Context) {
	userID, err := h.owner(c, field(c.Query("userid")))
	if err != nil {
		h.fail(c, err)
		return
	}

	expenses, err := h.store.ListExpenses(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", expenses)
}

// CreateExpense records a new expense.
func (h *Handlers) CreateExpense(c *gin.Context) {
	var form expenseForm
	if err := c.ShouldBind(&form); err != nil {
		failure(c, http.StatusBadRequest, "invalid request body")
		return
	}
	userID, err := h.owner(c, form.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	in, err := form.input()
	if err != nil {
		h.fail(c, err)
		return
	}

	id, err := h.store.CreateExpense(c.Request.Context(), userID, in)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.ExpenseWritten("create")
	h.log.Debug("expense created", zap.Int64("id", id), zap.Int64("user_id", userID))
	success(c, http.StatusCreated, "expense added successfully", gin.H{"id": id})
}

// GetExpense returns one expense owned by the user.
func (h *Handlers) GetExpense(c *gin.Context) {
	id, err := parseID("id", field(c.Param("id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	userID, err := h.owner(c, field(c.Query("userid")))
	if err != nil {
		h.fail(c, err)
		return
	}

	expense, err := h.store.GetExpense(c.Request.Context(), id, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", expense)
}

// UpdateExpense replaces every field of an expense owned by the user.
func (h *Handlers) UpdateExpense(c *gin.Context) {
	id, err := parseID("id", field(c.Param("id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	var form expenseForm
	if err := c.ShouldBind(&form); err != nil {
		failure(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if form.UserID == "" {
		form.UserID = field(c.Query("userid"))
	}
	userID, err := h.owner(c, form.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}
	in, err := form.input()
	if err != nil {
		h.fail(c, err)
		return
	}

	n, err := h.store.UpdateExpense(c.Request.Context(), id, userID, in)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.ExpenseWritten("update")
	success(c, http.StatusOK, "expense updated successfully", gin.H{"updated": n})
}

// DeleteExpense removes an expense owned by the user.
func (h *Handlers) DeleteExpense(c *gin.Context) {
	id, err := parseID("id", field(c.Param("id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	userID, err := h.owner(c, field(c.Query("userid")))
	if err != nil {
		h.fail(c, err)
		return
	}

	n, err := h.store.DeleteExpense(c.Request.Context(), id, userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.ExpenseWritten("delete")
	success(c, http.StatusOK, "expense deleted successfully", gin.H{"deleted": n})
}
