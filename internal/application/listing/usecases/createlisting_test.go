package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	billingusecases "habita/internal/application/billing/usecases"
	"habita/internal/domain/entitlement"
	domainlisting "habita/internal/domain/listing"
	"habita/internal/domain/plan"
	"habita/internal/domain/user"
	"habita/internal/infrastructure/migration"
	"habita/internal/infrastructure/repository"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
	"habita/internal/shared/services/markdown"
)

type listingFixture struct {
	createUC        *CreateListingUseCase
	setFeaturedUC   *SetFeaturedUseCase
	addImageUC      *AddListingImageUseCase
	publishUC       *PublishListingUseCase
	listingRepo     domainlisting.Repository
	entitlementRepo entitlement.Repository
	owner           *user.User
}

func newListingFixture(t *testing.T) *listingFixture {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(migration.AllModels()...))

	log := logger.NewLogger()
	userRepo := repository.NewUserRepository(gormDB, log)
	entitlementRepo := repository.NewEntitlementRepository(gormDB, log)
	listingRepo := repository.NewListingRepository(gormDB, log)

	owner, err := user.NewUser("owner@example.com", "Owner", "", "hash")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), owner))

	resolve := billingusecases.NewResolveEntitlementUseCase(entitlementRepo, log)
	markdownSvc := markdown.NewService()

	return &listingFixture{
		createUC:        NewCreateListingUseCase(listingRepo, resolve, markdownSvc, log),
		setFeaturedUC:   NewSetFeaturedUseCase(listingRepo, resolve, log),
		addImageUC:      NewAddListingImageUseCase(listingRepo, resolve, log),
		publishUC:       NewPublishListingUseCase(listingRepo, log),
		listingRepo:     listingRepo,
		entitlementRepo: entitlementRepo,
		owner:           owner,
	}
}

func (f *listingFixture) grantPlan(t *testing.T, planType plan.Type) {
	t.Helper()
	p, ok := plan.ByType(planType)
	require.True(t, ok)
	grant, err := entitlement.NewFromPlan(f.owner.ID(), p, 30*24*time.Hour, nil)
	require.NoError(t, err)
	require.NoError(t, f.entitlementRepo.Create(context.Background(), grant))
}

func (f *listingFixture) createCommand(title string) CreateListingCommand {
	return CreateListingCommand{
		OwnerID:      f.owner.ID(),
		Title:        title,
		Description:  "A **lovely** place",
		PropertyType: "apartment",
		OfferType:    "rent",
		PriceCents:   250_000,
		City:         "Montevideo",
		Bedrooms:     2,
		Bathrooms:    1,
		AreaM2:       72,
	}
}

func TestCreateListing_RendersMarkdownDescription(t *testing.T) {
	f := newListingFixture(t)

	l, err := f.createUC.Execute(context.Background(), f.createCommand("Bright apartment"))
	require.NoError(t, err)

	assert.Equal(t, domainlisting.StatusDraft, l.Status())
	assert.Contains(t, l.DescriptionHTML(), "<strong>lovely</strong>")
	assert.NotEmpty(t, l.SID())
}

func TestCreateListing_EnforcesBasicPlanQuota(t *testing.T) {
	f := newListingFixture(t)

	// The implicit basic plan allows a single listing.
	_, err := f.createUC.Execute(context.Background(), f.createCommand("First"))
	require.NoError(t, err)

	_, err = f.createUC.Execute(context.Background(), f.createCommand("Second"))
	require.Error(t, err)
	assert.True(t, apperrors.IsQuotaExceededError(err))
}

func TestCreateListing_PaidPlanLiftsQuota(t *testing.T) {
	f := newListingFixture(t)
	f.grantPlan(t, plan.TypeTier100)

	for i := 0; i < 3; i++ {
		_, err := f.createUC.Execute(context.Background(), f.createCommand(fmt.Sprintf("Listing %d", i)))
		require.NoError(t, err)
	}

	_, err := f.createUC.Execute(context.Background(), f.createCommand("One too many"))
	require.Error(t, err)
	assert.True(t, apperrors.IsQuotaExceededError(err))
}

func TestSetFeatured_RequiresFeaturedQuota(t *testing.T) {
	f := newListingFixture(t)
	f.grantPlan(t, plan.TypeTier100)

	l, err := f.createUC.Execute(context.Background(), f.createCommand("Nice house"))
	require.NoError(t, err)

	_, err = f.publishUC.Execute(context.Background(), PublishListingCommand{
		ListingSID: l.SID(),
		ActorID:    f.owner.ID(),
		ActorRole:  f.owner.Role(),
	})
	require.NoError(t, err)

	// Starter has no featured slots.
	_, err = f.setFeaturedUC.Execute(context.Background(), SetFeaturedCommand{
		ListingSID: l.SID(),
		ActorID:    f.owner.ID(),
		ActorRole:  f.owner.Role(),
		Featured:   true,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsQuotaExceededError(err))
}

func TestSetFeatured_WithinQuota(t *testing.T) {
	f := newListingFixture(t)
	f.grantPlan(t, plan.TypeTier500)

	l, err := f.createUC.Execute(context.Background(), f.createCommand("Penthouse"))
	require.NoError(t, err)

	_, err = f.publishUC.Execute(context.Background(), PublishListingCommand{
		ListingSID: l.SID(),
		ActorID:    f.owner.ID(),
		ActorRole:  f.owner.Role(),
	})
	require.NoError(t, err)

	updated, err := f.setFeaturedUC.Execute(context.Background(), SetFeaturedCommand{
		ListingSID: l.SID(),
		ActorID:    f.owner.ID(),
		ActorRole:  f.owner.Role(),
		Featured:   true,
	})
	require.NoError(t, err)
	assert.True(t, updated.Featured())
}

func TestAddListingImage_EnforcesPhotoQuota(t *testing.T) {
	f := newListingFixture(t)

	l, err := f.createUC.Execute(context.Background(), f.createCommand("Studio"))
	require.NoError(t, err)

	// Basic allows five photos.
	for i := 0; i < plan.Basic().MaxPhotos; i++ {
		_, err := f.addImageUC.Execute(context.Background(), AddListingImageCommand{
			ListingSID: l.SID(),
			ActorID:    f.owner.ID(),
			ActorRole:  f.owner.Role(),
			URL:        fmt.Sprintf("https://cdn.example.com/photos/%d.jpg", i),
			Position:   i,
		})
		require.NoError(t, err)
	}

	_, err = f.addImageUC.Execute(context.Background(), AddListingImageCommand{
		ListingSID: l.SID(),
		ActorID:    f.owner.ID(),
		ActorRole:  f.owner.Role(),
		URL:        "https://cdn.example.com/photos/extra.jpg",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsQuotaExceededError(err))
}

func TestCreateListing_OtherUserCannotUpdate(t *testing.T) {
	f := newListingFixture(t)

	l, err := f.createUC.Execute(context.Background(), f.createCommand("Mine"))
	require.NoError(t, err)

	_, err = f.publishUC.Execute(context.Background(), PublishListingCommand{
		ListingSID: l.SID(),
		ActorID:    f.owner.ID() + 99,
		ActorRole:  "user",
	})
	require.Error(t, err)
}
