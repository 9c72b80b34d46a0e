package handlers

import (
	"github.com/gin-gonic/gin"
)

// Mount registers every API route on r.
func (h *Handlers) Mount(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoRoute(h.NotFound)
	r.NoMethod(h.MethodNotAllowed)

	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	r.GET("/db_check", h.DBCheck)
	r.GET("/categories", h.Categories)

	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	user := r.Group("/", h.Authenticate())
	{
		user.GET("/expenses", h.ListExpenses)
		user.POST("/addexpense", h.CreateExpense)
		user.GET("/expense/:id", h.GetExpense)
		user.PUT("/update_expense/:id", h.UpdateExpense)
		user.DELETE("/delete_expense/:id", h.DeleteExpense)

		user.GET("/limit", h.GetLimit)
		user.POST("/limit", h.SetLimit)

		user.GET("/report/:window", h.Report)
	}
}
