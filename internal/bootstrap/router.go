package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apihttp "github.com/project-budget/go-budget-backend/internal/api/http"
	budgethttp "github.com/project-budget/go-budget-backend/internal/budget/http"
	"github.com/project-budget/go-budget-backend/internal/budget/service"
	"github.com/project-budget/go-budget-backend/internal/middleware"
	"github.com/project-budget/go-budget-backend/internal/storage"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Engine      storage.Engine
	Service     *service.BudgetService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.Default())
	r.Use(middleware.RequestID())

	healthHandler := apihttp.NewHealthHandler(dep.ServiceName, dep.Version, dep.Engine)
	healthHandler.RegisterRoutes(r)

	budgetHandler := budgethttp.NewHandler(dep.Service)
	budgethttp.Register(r.Group("/project"), budgetHandler)

	return r
}
