package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kasirkita/pos_backend/internal/core/domain"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/middleware"
	"github.com/kasirkita/pos_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerHomeRoutes(r)

	// Public authentication routes
	registerAuthRoutes(r, services.Auth)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	cashierOnly := middleware.RequireRole(domain.RoleCashier)

	registerUserRoutes(v1, services.User, adminOnly)
	registerCategoryRoutes(v1, services.Category, adminOnly)
	registerProductRoutes(v1, services.Product, adminOnly)
	registerShiftRoutes(v1, services.Shift, adminOnly, cashierOnly)
	registerTransactionRoutes(v1, services.Transaction, adminOnly, cashierOnly)
	registerReportingRoutes(v1, services.Reporting, adminOnly)
}
