package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"habita/internal/domain/entitlement"
	"habita/internal/domain/plan"
	"habita/internal/infrastructure/persistence/models"
	"habita/internal/shared/mapper"
)

type EntitlementMapper interface {
	ToEntity(model *models.EntitlementModel) (*entitlement.Entitlement, error)
	ToModel(entity *entitlement.Entitlement) (*models.EntitlementModel, error)
	ToEntities(models []*models.EntitlementModel) ([]*entitlement.Entitlement, error)
}

type EntitlementMapperImpl struct{}

func NewEntitlementMapper() EntitlementMapper {
	return &EntitlementMapperImpl{}
}

func (m *EntitlementMapperImpl) ToEntity(model *models.EntitlementModel) (*entitlement.Entitlement, error) {
	if model == nil {
		return nil, nil
	}

	status := entitlement.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid entitlement status: %s", model.Status)
	}

	var metadata map[string]interface{}
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	entity, err := entitlement.Reconstruct(
		model.ID,
		model.SID,
		model.UserID,
		plan.Type(model.PlanType),
		status,
		model.MaxListings,
		model.MaxPhotos,
		model.FeaturedQuota,
		model.StartsAt,
		model.EndsAt,
		model.ExternalPaymentRef,
		metadata,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct entitlement entity: %w", err)
	}

	return entity, nil
}

func (m *EntitlementMapperImpl) ToModel(entity *entitlement.Entitlement) (*models.EntitlementModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadataJSON datatypes.JSON
	if metadata := entity.Metadata(); len(metadata) > 0 {
		data, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataJSON = data
	}

	return &models.EntitlementModel{
		ID:                 entity.ID(),
		SID:                entity.SID(),
		UserID:             entity.UserID(),
		PlanType:           entity.PlanType().String(),
		Status:             entity.Status().String(),
		MaxListings:        entity.MaxListings(),
		MaxPhotos:          entity.MaxPhotos(),
		FeaturedQuota:      entity.FeaturedQuota(),
		StartsAt:           entity.StartsAt(),
		EndsAt:             entity.EndsAt(),
		ExternalPaymentRef: entity.ExternalPaymentRef(),
		Metadata:           metadataJSON,
		Version:            entity.Version(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}, nil
}

func (m *EntitlementMapperImpl) ToEntities(modelList []*models.EntitlementModel) ([]*entitlement.Entitlement, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.EntitlementModel) uint { return model.ID })
}
