package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"habita/internal/application/billing/gateway"
	"habita/internal/domain/billing"
	"habita/internal/domain/entitlement"
	"habita/internal/domain/plan"
	"habita/internal/domain/user"
	"habita/internal/infrastructure/email"
	"habita/internal/infrastructure/migration"
	"habita/internal/infrastructure/repository"
	"habita/internal/shared/biztime"
	"habita/internal/shared/db"
	"habita/internal/shared/logger"
)

type stubGateway struct {
	payment         *gateway.Payment
	getErr          error
	getPaymentCalls int
}

func (s *stubGateway) CreatePreference(_ context.Context, _ gateway.PreferenceRequest) (*gateway.Preference, error) {
	return &gateway.Preference{ID: "pref-1", CheckoutURL: "https://pay.example.com/pref-1"}, nil
}

func (s *stubGateway) GetPayment(_ context.Context, _ string) (*gateway.Payment, error) {
	s.getPaymentCalls++
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.payment, nil
}

type webhookFixture struct {
	uc              *HandlePaymentWebhookUseCase
	gateway         *stubGateway
	userRepo        user.Repository
	entitlementRepo entitlement.Repository
	processedRepo   billing.ProcessedPaymentRepository
	checkoutRepo    billing.CheckoutSessionRepository
	buyer           *user.User
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(migration.AllModels()...))

	log := testLogger()

	userRepo := repository.NewUserRepository(gormDB, log)
	entitlementRepo := repository.NewEntitlementRepository(gormDB, log)
	processedRepo := repository.NewProcessedPaymentRepository(gormDB, log)
	checkoutRepo := repository.NewCheckoutSessionRepository(gormDB, log)

	buyer, err := user.NewUser("buyer@example.com", "Buyer", "", "hash")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), buyer))

	gw := &stubGateway{}

	uc := NewHandlePaymentWebhookUseCase(
		gw,
		userRepo,
		entitlementRepo,
		processedRepo,
		checkoutRepo,
		db.NewTransactionManager(gormDB),
		email.NoopNotifier{},
		30,
		"USD",
		log,
	)

	return &webhookFixture{
		uc:              uc,
		gateway:         gw,
		userRepo:        userRepo,
		entitlementRepo: entitlementRepo,
		processedRepo:   processedRepo,
		checkoutRepo:    checkoutRepo,
		buyer:           buyer,
	}
}

func (f *webhookFixture) approvedPayment(paymentID string, planType plan.Type) {
	ref := billing.BuildExternalReference(f.buyer.SID(), planType, biztime.NowUTC())
	f.gateway.payment = &gateway.Payment{
		ID:                paymentID,
		Status:            "approved",
		ExternalReference: ref,
	}
}

func TestHandlePaymentWebhook_IgnoresNonPaymentEvents(t *testing.T) {
	f := newWebhookFixture(t)

	err := f.uc.Execute(context.Background(), HandlePaymentWebhookCommand{EventType: "merchant_order", PaymentID: "p123"})

	assert.NoError(t, err)
	assert.Zero(t, f.gateway.getPaymentCalls)
}

func TestHandlePaymentWebhook_IgnoresMissingPaymentID(t *testing.T) {
	f := newWebhookFixture(t)

	err := f.uc.Execute(context.Background(), HandlePaymentWebhookCommand{EventType: "payment"})

	assert.NoError(t, err)
	assert.Zero(t, f.gateway.getPaymentCalls)
}

func TestHandlePaymentWebhook_ProviderFetchFailureSurfaces(t *testing.T) {
	f := newWebhookFixture(t)
	f.gateway.getErr = errors.New("provider unreachable")

	err := f.uc.Execute(context.Background(), HandlePaymentWebhookCommand{EventType: "payment", PaymentID: "p123"})

	assert.Error(t, err)
}

func TestHandlePaymentWebhook_IgnoresNonApprovedPayment(t *testing.T) {
	f := newWebhookFixture(t)
	f.gateway.payment = &gateway.Payment{ID: "p123", Status: "pending"}

	err := f.uc.Execute(context.Background(), HandlePaymentWebhookCommand{EventType: "payment", PaymentID: "p123"})

	assert.NoError(t, err)

	active, err := f.entitlementRepo.GetActiveByUserID(context.Background(), f.buyer.ID())
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestHandlePaymentWebhook_GrantsEntitlementOnApprovedPayment(t *testing.T) {
	f := newWebhookFixture(t)
	f.approvedPayment("p123", plan.TypeTier1000)

	err := f.uc.Execute(context.Background(), HandlePaymentWebhookCommand{EventType: "payment", PaymentID: "p123"})
	require.NoError(t, err)

	active, err := f.entitlementRepo.GetActiveByUserID(context.Background(), f.buyer.ID())
	require.NoError(t, err)
	require.NotNil(t, active)

	premium, _ := plan.ByType(plan.TypeTier1000)
	assert.Equal(t, plan.TypeTier1000, active.PlanType())
	assert.Equal(t, premium.MaxListings, active.MaxListings())
	assert.Equal(t, premium.MaxPhotos, active.MaxPhotos())
	assert.Equal(t, premium.FeaturedQuota, active.FeaturedQuota())
	require.NotNil(t, active.ExternalPaymentRef())
	assert.Equal(t, "p123", *active.ExternalPaymentRef())
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), active.EndsAt(), time.Minute)

	processed, err := f.processedRepo.Exists(context.Background(), "p123")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestHandlePaymentWebhook_ReplacesPreviousEntitlement(t *testing.T) {
	f := newWebhookFixture(t)

	f.approvedPayment("p100", plan.TypeTier100)
	require.NoError(t, f.uc.Execute(context.Background(), HandlePaymentWebhookCommand{EventType: "payment", PaymentID: "p100"}))

	f.approvedPayment("p500", plan.TypeTier500)
	require.NoError(t, f.uc.Execute(context.Background(), HandlePaymentWebhookCommand{EventType: "payment", PaymentID: "p500"}))

	active, err := f.entitlementRepo.GetActiveByUserID(context.Background(), f.buyer.ID())
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, plan.TypeTier500, active.PlanType())

	history, err := f.entitlementRepo.ListByUserID(context.Background(), f.buyer.ID())
	require.NoError(t, err)
	require.Len(t, history, 2)

	var actives int
	for _, e := range history {
		if e.Status() == entitlement.StatusActive {
			actives++
		}
	}
	assert.Equal(t, 1, actives)
}

func TestHandlePaymentWebhook_RedeliveryIsIdempotent(t *testing.T) {
	f := newWebhookFixture(t)
	f.approvedPayment("p123", plan.TypeTier300)

	cmd := HandlePaymentWebhookCommand{EventType: "payment", PaymentID: "p123"}
	require.NoError(t, f.uc.Execute(context.Background(), cmd))
	require.NoError(t, f.uc.Execute(context.Background(), cmd))
	require.NoError(t, f.uc.Execute(context.Background(), cmd))

	history, err := f.entitlementRepo.ListByUserID(context.Background(), f.buyer.ID())
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestHandlePaymentWebhook_MalformedReferenceIsAcknowledged(t *testing.T) {
	f := newWebhookFixture(t)
	f.gateway.payment = &gateway.Payment{ID: "p123", Status: "approved", ExternalReference: "garbage"}

	err := f.uc.Execute(context.Background(), HandlePaymentWebhookCommand{EventType: "payment", PaymentID: "p123"})
	assert.NoError(t, err)

	active, err := f.entitlementRepo.GetActiveByUserID(context.Background(), f.buyer.ID())
	require.NoError(t, err)
	assert.Nil(t, active)

	processed, err := f.processedRepo.Exists(context.Background(), "p123")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestHandlePaymentWebhook_UnknownPlanIsAcknowledged(t *testing.T) {
	f := newWebhookFixture(t)
	f.gateway.payment = &gateway.Payment{
		ID:                "p123",
		Status:            "approved",
		ExternalReference: fmt.Sprintf("%s-tier_777-%d", f.buyer.SID(), time.Now().UnixMilli()),
	}

	err := f.uc.Execute(context.Background(), HandlePaymentWebhookCommand{EventType: "payment", PaymentID: "p123"})
	assert.NoError(t, err)

	active, err := f.entitlementRepo.GetActiveByUserID(context.Background(), f.buyer.ID())
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestHandlePaymentWebhook_UnknownUserIsAcknowledged(t *testing.T) {
	f := newWebhookFixture(t)
	f.gateway.payment = &gateway.Payment{
		ID:                "p123",
		Status:            "approved",
		ExternalReference: fmt.Sprintf("usr_doesnotexist-%s-%d", plan.TypeTier100, time.Now().UnixMilli()),
	}

	err := f.uc.Execute(context.Background(), HandlePaymentWebhookCommand{EventType: "payment", PaymentID: "p123"})
	assert.NoError(t, err)

	processed, err := f.processedRepo.Exists(context.Background(), "p123")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestHandlePaymentWebhook_CompletesCheckoutSession(t *testing.T) {
	f := newWebhookFixture(t)

	premium, _ := plan.ByType(plan.TypeTier1000)
	ref := billing.BuildExternalReference(f.buyer.SID(), plan.TypeTier1000, biztime.NowUTC())
	session, err := billing.NewCheckoutSession("ord_test1", f.buyer.ID(), premium, "USD", ref, time.Hour)
	require.NoError(t, err)
	require.NoError(t, f.checkoutRepo.Create(context.Background(), session))

	f.gateway.payment = &gateway.Payment{ID: "p123", Status: "approved", ExternalReference: ref}

	require.NoError(t, f.uc.Execute(context.Background(), HandlePaymentWebhookCommand{EventType: "payment", PaymentID: "p123"}))

	stored, err := f.checkoutRepo.GetByOrderNo(context.Background(), "ord_test1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, billing.CheckoutStatusCompleted, stored.Status())
	assert.NotNil(t, stored.CompletedAt())
}
