package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"habita/internal/domain/entitlement"
	"habita/internal/domain/plan"
	"habita/internal/domain/user"
	"habita/internal/infrastructure/auth"
	"habita/internal/infrastructure/email"
	"habita/internal/infrastructure/migration"
	"habita/internal/infrastructure/repository"
	"habita/internal/shared/db"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

type registerFixture struct {
	uc              *RegisterUseCase
	userRepo        user.Repository
	entitlementRepo entitlement.Repository
}

func newRegisterFixture(t *testing.T) *registerFixture {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(migration.AllModels()...))

	log := logger.NewLogger()
	userRepo := repository.NewUserRepository(gormDB, log)
	entitlementRepo := repository.NewEntitlementRepository(gormDB, log)

	uc := NewRegisterUseCase(
		userRepo,
		entitlementRepo,
		auth.NewBcryptPasswordHasher(4),
		db.NewTransactionManager(gormDB),
		email.NoopNotifier{},
		log,
	)

	return &registerFixture{
		uc:              uc,
		userRepo:        userRepo,
		entitlementRepo: entitlementRepo,
	}
}

func TestRegister_CreatesAccountWithBasicEntitlement(t *testing.T) {
	f := newRegisterFixture(t)

	account, err := f.uc.Execute(context.Background(), RegisterCommand{
		Email:    "Maria@Example.com",
		Name:     "Maria",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotZero(t, account.ID())
	assert.Equal(t, "maria@example.com", account.Email())
	assert.NotEqual(t, "supersecret", account.PasswordHash())

	active, err := f.entitlementRepo.GetActiveByUserID(context.Background(), account.ID())
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, plan.TypeBasic, active.PlanType())
	assert.Equal(t, plan.Basic().MaxListings, active.MaxListings())
	assert.Nil(t, active.ExternalPaymentRef())
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	f := newRegisterFixture(t)

	cmd := RegisterCommand{Email: "dup@example.com", Name: "First", Password: "supersecret"}
	_, err := f.uc.Execute(context.Background(), cmd)
	require.NoError(t, err)

	cmd.Name = "Second"
	_, err = f.uc.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	f := newRegisterFixture(t)

	_, err := f.uc.Execute(context.Background(), RegisterCommand{
		Email:    "short@example.com",
		Name:     "Shorty",
		Password: "tiny",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
