package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habita/internal/application/billing/usecases"
	"habita/internal/domain/entitlement"
	"habita/internal/interfaces/dto"
	"habita/internal/shared/logger"
	"habita/internal/shared/utils"
)

type BillingHandler struct {
	initiateCheckoutUC   *usecases.InitiateCheckoutUseCase
	resolveEntitlementUC *usecases.ResolveEntitlementUseCase
	entitlementRepo      entitlement.Repository
	logger               logger.Interface
}

func NewBillingHandler(
	initiateCheckoutUC *usecases.InitiateCheckoutUseCase,
	resolveEntitlementUC *usecases.ResolveEntitlementUseCase,
	entitlementRepo entitlement.Repository,
) *BillingHandler {
	return &BillingHandler{
		initiateCheckoutUC:   initiateCheckoutUC,
		resolveEntitlementUC: resolveEntitlementUC,
		entitlementRepo:      entitlementRepo,
		logger:               logger.NewLogger(),
	}
}

type CheckoutRequest struct {
	PlanType string `json:"plan_type" binding:"required,plantype"`
}

func (h *BillingHandler) InitiateCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	result, err := h.initiateCheckoutUC.Execute(c.Request.Context(), usecases.InitiateCheckoutCommand{
		UserID:   currentUserID(c),
		PlanType: req.PlanType,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.FromCheckoutResult(result), "checkout created")
}

// GetEntitlement returns the caller's effective entitlement, falling back to
// the free plan when no paid grant is active.
func (h *BillingHandler) GetEntitlement(c *gin.Context) {
	view, err := h.resolveEntitlementUC.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.FromEntitlementView(view))
}

// ListEntitlements returns the caller's full grant history, newest first.
func (h *BillingHandler) ListEntitlements(c *gin.Context) {
	records, err := h.entitlementRepo.ListByUserID(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]dto.EntitlementRecordDTO, 0, len(records))
	for _, e := range records {
		items = append(items, dto.FromEntitlement(e))
	}

	utils.SuccessResponse(c, http.StatusOK, "", items)
}
