package mappers

import (
	"fmt"

	"habita/internal/domain/billing"
	"habita/internal/domain/plan"
	"habita/internal/infrastructure/persistence/models"
	"habita/internal/shared/mapper"
)

type CheckoutSessionMapper interface {
	ToEntity(model *models.CheckoutSessionModel) (*billing.CheckoutSession, error)
	ToModel(entity *billing.CheckoutSession) (*models.CheckoutSessionModel, error)
	ToEntities(models []*models.CheckoutSessionModel) ([]*billing.CheckoutSession, error)
}

type CheckoutSessionMapperImpl struct{}

func NewCheckoutSessionMapper() CheckoutSessionMapper {
	return &CheckoutSessionMapperImpl{}
}

func (m *CheckoutSessionMapperImpl) ToEntity(model *models.CheckoutSessionModel) (*billing.CheckoutSession, error) {
	if model == nil {
		return nil, nil
	}

	status := billing.CheckoutStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid checkout status: %s", model.Status)
	}

	entity, err := billing.ReconstructCheckoutSession(
		model.ID,
		model.OrderNo,
		model.UserID,
		plan.Type(model.PlanType),
		model.AmountCents,
		model.Currency,
		status,
		model.ExternalReference,
		model.PreferenceID,
		model.CheckoutURL,
		model.CompletedAt,
		model.ExpiresAt,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct checkout session entity: %w", err)
	}

	return entity, nil
}

func (m *CheckoutSessionMapperImpl) ToModel(entity *billing.CheckoutSession) (*models.CheckoutSessionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.CheckoutSessionModel{
		ID:                entity.ID(),
		OrderNo:           entity.OrderNo(),
		UserID:            entity.UserID(),
		PlanType:          entity.PlanType().String(),
		AmountCents:       entity.AmountCents(),
		Currency:          entity.Currency(),
		Status:            entity.Status().String(),
		ExternalReference: entity.ExternalReference(),
		PreferenceID:      entity.PreferenceID(),
		CheckoutURL:       entity.CheckoutURL(),
		CompletedAt:       entity.CompletedAt(),
		ExpiresAt:         entity.ExpiresAt(),
		Version:           entity.Version(),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}, nil
}

func (m *CheckoutSessionMapperImpl) ToEntities(modelList []*models.CheckoutSessionModel) ([]*billing.CheckoutSession, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.CheckoutSessionModel) uint { return model.ID })
}

type ProcessedPaymentMapper interface {
	ToEntity(model *models.ProcessedPaymentModel) (*billing.ProcessedPayment, error)
	ToModel(entity *billing.ProcessedPayment) (*models.ProcessedPaymentModel, error)
}

type ProcessedPaymentMapperImpl struct{}

func NewProcessedPaymentMapper() ProcessedPaymentMapper {
	return &ProcessedPaymentMapperImpl{}
}

func (m *ProcessedPaymentMapperImpl) ToEntity(model *models.ProcessedPaymentModel) (*billing.ProcessedPayment, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := billing.ReconstructProcessedPayment(
		model.ID,
		model.PaymentID,
		model.UserID,
		plan.Type(model.PlanType),
		model.ProcessedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct processed payment entity: %w", err)
	}

	return entity, nil
}

func (m *ProcessedPaymentMapperImpl) ToModel(entity *billing.ProcessedPayment) (*models.ProcessedPaymentModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ProcessedPaymentModel{
		ID:          entity.ID(),
		PaymentID:   entity.PaymentID(),
		UserID:      entity.UserID(),
		PlanType:    entity.PlanType().String(),
		ProcessedAt: entity.ProcessedAt(),
	}, nil
}
