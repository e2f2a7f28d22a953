package migration

import (
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"habita/internal/infrastructure/persistence/models"
	"habita/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks a strategy by server mode: debug uses GORM AutoMigrate,
// everything else runs the versioned goose scripts.
func NewManager(mode, driver string) *Manager {
	var strategy Strategy

	switch strings.ToLower(mode) {
	case "debug", "development", "":
		strategy = NewGormAutoMigrateStrategy()
	default:
		scriptsPath, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
		strategy = NewGooseStrategy(scriptsPath, driver)
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// AllModels lists every persistence model for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.EntitlementModel{},
		&models.ProcessedPaymentModel{},
		&models.CheckoutSessionModel{},
		&models.ListingModel{},
		&models.ListingImageModel{},
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db, AllModels()...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return err
	}

	m.logger.Infow("database migration completed",
		"strategy", m.strategy.GetName())
	return nil
}
