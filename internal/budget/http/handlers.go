package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/project-budget/go-budget-backend/internal/budget/domain"
	"github.com/project-budget/go-budget-backend/internal/budget/service"
)

type Handler struct {
	svc *service.BudgetService
}

func NewHandler(svc *service.BudgetService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	respond(c, h.svc.GetByID(c.Request.Context(), id))
}

func (h *Handler) getWithCurrency(c *gin.Context) {
	var req currencyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	if req.Year == 0 || req.ProjectName == "" || req.Currency == "" {
		badRequest(c, "Missing required fields: year, projectName, currency")
		return
	}
	if req.Year <= 0 {
		badRequest(c, "Invalid year")
		return
	}

	respond(c, h.svc.GetByNameYearWithCurrency(c.Request.Context(), req.ProjectName, req.Year, req.Currency))
}

func (h *Handler) create(c *gin.Context) {
	var payload domain.ProjectPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "invalid body")
		return
	}

	respond(c, h.svc.Create(c.Request.Context(), &payload))
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var payload domain.ProjectPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "invalid body")
		return
	}

	respond(c, h.svc.Update(c.Request.Context(), id, &payload))
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	respond(c, h.svc.Delete(c.Request.Context(), id))
}

func parseProjectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid project ID")
		return 0, false
	}
	return id, true
}

func respond(c *gin.Context, res service.Result) {
	c.JSON(res.StatusCode, res)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, service.Result{Message: message})
}
