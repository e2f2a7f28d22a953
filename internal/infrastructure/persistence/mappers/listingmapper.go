package mappers

import (
	"fmt"

	"habita/internal/domain/listing"
	"habita/internal/infrastructure/persistence/models"
	"habita/internal/shared/mapper"
)

type ListingMapper interface {
	ToEntity(model *models.ListingModel) (*listing.Listing, error)
	ToModel(entity *listing.Listing) (*models.ListingModel, error)
	ToEntities(models []*models.ListingModel) ([]*listing.Listing, error)
	ImageToEntity(model *models.ListingImageModel) (*listing.Image, error)
	ImageToModel(entity *listing.Image) *models.ListingImageModel
}

type ListingMapperImpl struct{}

func NewListingMapper() ListingMapper {
	return &ListingMapperImpl{}
}

func (m *ListingMapperImpl) ToEntity(model *models.ListingModel) (*listing.Listing, error) {
	if model == nil {
		return nil, nil
	}

	status := listing.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid listing status: %s", model.Status)
	}

	images := make([]*listing.Image, 0, len(model.Images))
	for i := range model.Images {
		img, err := m.ImageToEntity(&model.Images[i])
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	entity, err := listing.Reconstruct(
		model.ID,
		model.SID,
		model.OwnerID,
		model.Title,
		model.Description,
		model.DescriptionHTML,
		listing.PropertyType(model.PropertyType),
		listing.OfferType(model.OfferType),
		model.PriceCents,
		model.Currency,
		model.City,
		model.State,
		model.Address,
		model.Bedrooms,
		model.Bathrooms,
		model.AreaM2,
		status,
		model.Featured,
		images,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct listing entity: %w", err)
	}

	return entity, nil
}

func (m *ListingMapperImpl) ToModel(entity *listing.Listing) (*models.ListingModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ListingModel{
		ID:              entity.ID(),
		SID:             entity.SID(),
		OwnerID:         entity.OwnerID(),
		Title:           entity.Title(),
		Description:     entity.Description(),
		DescriptionHTML: entity.DescriptionHTML(),
		PropertyType:    string(entity.PropertyType()),
		OfferType:       string(entity.OfferType()),
		PriceCents:      entity.PriceCents(),
		Currency:        entity.Currency(),
		City:            entity.City(),
		State:           entity.State(),
		Address:         entity.Address(),
		Bedrooms:        entity.Bedrooms(),
		Bathrooms:       entity.Bathrooms(),
		AreaM2:          entity.AreaM2(),
		Status:          string(entity.Status()),
		Featured:        entity.Featured(),
		Version:         entity.Version(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

func (m *ListingMapperImpl) ToEntities(modelList []*models.ListingModel) ([]*listing.Listing, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.ListingModel) uint { return model.ID })
}

func (m *ListingMapperImpl) ImageToEntity(model *models.ListingImageModel) (*listing.Image, error) {
	if model == nil {
		return nil, nil
	}

	img, err := listing.ReconstructImage(model.ID, model.ListingID, model.URL, model.Position, model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct listing image: %w", err)
	}
	return img, nil
}

func (m *ListingMapperImpl) ImageToModel(entity *listing.Image) *models.ListingImageModel {
	if entity == nil {
		return nil
	}

	return &models.ListingImageModel{
		ID:        entity.ID(),
		ListingID: entity.ListingID(),
		URL:       entity.URL(),
		Position:  entity.Position(),
		CreatedAt: entity.CreatedAt(),
	}
}
