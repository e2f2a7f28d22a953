package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"habita/internal/domain/listing"
	"habita/internal/infrastructure/persistence/mappers"
	"habita/internal/infrastructure/persistence/models"
	"habita/internal/shared/db"
	"habita/internal/shared/id"
	"habita/internal/shared/logger"
)

// allowedListingSortByFields is the whitelist of ORDER BY fields.
var allowedListingSortByFields = map[string]bool{
	"id":          true,
	"price_cents": true,
	"city":        true,
	"created_at":  true,
	"updated_at":  true,
}

type ListingRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ListingMapper
	logger logger.Interface
}

func NewListingRepository(
	db *gorm.DB,
	logger logger.Interface,
) listing.Repository {
	return &ListingRepositoryImpl{
		db:     db,
		mapper: mappers.NewListingMapper(),
		logger: logger,
	}
}

func (r *ListingRepositoryImpl) Create(ctx context.Context, entity *listing.Listing) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map listing entity: %w", err)
	}

	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixListing, id.DefaultLength)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create listing", "error", err)
		return fmt.Errorf("failed to create listing: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set listing ID: %w", err)
	}
	entity.SetSID(model.SID)

	r.logger.Infow("listing created", "id", model.ID, "owner_id", model.OwnerID)
	return nil
}

func (r *ListingRepositoryImpl) Update(ctx context.Context, entity *listing.Listing) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map listing entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ListingModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":            model.Title,
			"description":      model.Description,
			"description_html": model.DescriptionHTML,
			"price_cents":      model.PriceCents,
			"city":             model.City,
			"state":            model.State,
			"address":          model.Address,
			"bedrooms":         model.Bedrooms,
			"bathrooms":        model.Bathrooms,
			"area_m2":          model.AreaM2,
			"status":           model.Status,
			"featured":         model.Featured,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("listing %d not found", model.ID)
	}

	return nil
}

func (r *ListingRepositoryImpl) Delete(ctx context.Context, listingID uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.ListingModel{}, listingID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("listing %d not found", listingID)
	}
	return nil
}

func (r *ListingRepositoryImpl) GetByID(ctx context.Context, listingID uint) (*listing.Listing, error) {
	var model models.ListingModel

	err := db.GetTxFromContext(ctx, r.db).
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		First(&model, listingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ListingRepositoryImpl) GetBySID(ctx context.Context, sid string) (*listing.Listing, error) {
	var model models.ListingModel

	err := db.GetTxFromContext(ctx, r.db).
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Where("sid = ?", sid).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing by SID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ListingRepositoryImpl) List(ctx context.Context, filter listing.Filter) ([]*listing.Listing, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ListingModel{})

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.PropertyType != nil {
		query = query.Where("property_type = ?", string(*filter.PropertyType))
	}
	if filter.OfferType != nil {
		query = query.Where("offer_type = ?", string(*filter.OfferType))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.MinPrice != nil {
		query = query.Where("price_cents >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price_cents <= ?", *filter.MaxPrice)
	}
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	sortBy := "created_at"
	if filter.SortBy != "" && allowedListingSortByFields[filter.SortBy] {
		sortBy = filter.SortBy
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	// Featured listings always surface first in public searches.
	query = query.Order("featured DESC").Order(fmt.Sprintf("%s %s", sortBy, direction))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var modelList []*models.ListingModel
	if err := query.Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

func (r *ListingRepositoryImpl) CountActiveByOwnerID(ctx context.Context, ownerID uint) (int64, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ListingModel{}).
		Where("owner_id = ? AND status <> ?", ownerID, listing.StatusArchived).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}

	return count, nil
}

func (r *ListingRepositoryImpl) CountFeaturedByOwnerID(ctx context.Context, ownerID uint) (int64, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ListingModel{}).
		Where("owner_id = ? AND featured = ?", ownerID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count featured listings: %w", err)
	}

	return count, nil
}

func (r *ListingRepositoryImpl) AddImage(ctx context.Context, listingID uint, img *listing.Image) error {
	model := r.mapper.ImageToModel(img)
	model.ListingID = listingID

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add listing image: %w", err)
	}

	if err := img.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set image ID: %w", err)
	}
	img.SetListingID(listingID)

	return nil
}

func (r *ListingRepositoryImpl) RemoveImage(ctx context.Context, listingID, imageID uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Where("id = ? AND listing_id = ?", imageID, listingID).
		Delete(&models.ListingImageModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove listing image: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("image %d not found on listing %d", imageID, listingID)
	}

	return nil
}

func (r *ListingRepositoryImpl) CountImages(ctx context.Context, listingID uint) (int64, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ListingImageModel{}).
		Where("listing_id = ?", listingID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count listing images: %w", err)
	}

	return count, nil
}
