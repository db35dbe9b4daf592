package bootstrap

import (
	"github.com/gin-gonic/gin"

	"github.com/project-budget/go-budget-backend/config"
)

// SetGinMode selects the gin mode from the configured environment:
// release in production, test mode when running against the seeded
// in-memory store, debug otherwise.
func SetGinMode(cfg *config.Config) {
	switch cfg.App.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
}
