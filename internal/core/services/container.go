package services

import (
	"github.com/redis/go-redis/v9"

	portsrepo "github.com/kasirkita/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/kasirkita/pos_backend/internal/core/ports/services"
	"github.com/kasirkita/pos_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories and
// configuration. redisClient may be nil to disable the reporting cache.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config, redisClient *redis.Client) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Auth:        NewAuthService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
		User:        NewUserService(repos.UserRepo),
		Category:    NewCategoryService(repos.CategoryRepo),
		Product:     NewProductService(repos.ProductRepo, repos.CategoryRepo),
		Shift:       NewShiftService(repos.ShiftRepo, repos.TransactionRepo, cfg.TxnTimeout),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.ShiftRepo, repos.ProductRepo, cfg.TxnTimeout),
		Reporting:   NewReportingService(repos.ReportingRepo, redisClient, cfg.LowStockThreshold),
	}
}
