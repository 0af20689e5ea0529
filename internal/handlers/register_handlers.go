package handlers

import (
	"fmt"
	"net/http"

	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/middleware"
	"github.com/SscSPs/postal_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("failed to configure login rate limit: %w", err)
	}
	registerAuthRoutes(r, services.Auth, middleware.RateLimit(loginLimiter))

	setupAPIV1Routes(r, cfg, services)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")
	// Without auth every request runs as the anonymous operator and no authorizer is wired.
	if cfg.AuthEnabled {
		v1.Use(middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	}

	registerPostingRoutes(v1, services.Posting)
	registerPendingRoutes(v1, services.Pending)
	registerSummaryRoutes(v1, services.Reporting)
	registerClosingRoutes(v1, services.Closing)
}

// userIDFrom returns the authenticated user, or "" when auth is disabled.
func userIDFrom(c *gin.Context) string {
	userID, _ := middleware.GetUserIDFromContext(c)
	return userID
}

// roleFrom returns the role claimed by the access token, or "" when auth is disabled.
func roleFrom(c *gin.Context) string {
	role, _ := middleware.GetRoleFromContext(c)
	return role
}
