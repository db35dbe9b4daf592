package http

import "github.com/gin-gonic/gin"

// Register mounts the budget routes on the given group, normally
// /project.
func Register(g gin.IRouter, h *Handler) {
	g.GET("/budget/:id", h.getByID)
	g.POST("/budget/currency", h.getWithCurrency)
	g.POST("/budget", h.create)
	g.PUT("/budget/:id", h.update)
	g.DELETE("/budget/:id", h.delete)
}
