package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/report"
)

// Report builds the spending summary of the user for the window in the path.
func (h *Handlers) Report(c *gin.Context) {
	window, err := report.ParseWindow(c.Param("window"))
	if err != nil {
		failure(c, http.StatusNotFound, "unknown report window, use today, month or year")
		return
	}
	userID, err := h.owner(c, field(c.Query("userid")))
	if err != nil {
		h.fail(c, err)
		return
	}

	r, err := h.reports.Build(c.Request.Context(), userID, window)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.metrics.ReportBuilt(string(window))
	success(c, http.StatusOK, "", r)
}
