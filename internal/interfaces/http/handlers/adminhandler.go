package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habita/internal/application/billing/usecases"
	"habita/internal/domain/entitlement"
	"habita/internal/domain/user"
	"habita/internal/interfaces/dto"
	"habita/internal/shared/logger"
	"habita/internal/shared/utils"
)

// AdminHandler exposes the support operations: manual grants, targeted
// entitlement overrides and the expiry sweep.
type AdminHandler struct {
	grantUC         *usecases.GrantEntitlementUseCase
	adjustUC        *usecases.AdjustEntitlementUseCase
	sweepUC         *usecases.ExpireSweepUseCase
	userRepo        user.Repository
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

func NewAdminHandler(
	grantUC *usecases.GrantEntitlementUseCase,
	adjustUC *usecases.AdjustEntitlementUseCase,
	sweepUC *usecases.ExpireSweepUseCase,
	userRepo user.Repository,
	entitlementRepo entitlement.Repository,
) *AdminHandler {
	return &AdminHandler{
		grantUC:         grantUC,
		adjustUC:        adjustUC,
		sweepUC:         sweepUC,
		userRepo:        userRepo,
		entitlementRepo: entitlementRepo,
		logger:          logger.NewLogger(),
	}
}

type GrantEntitlementRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	PlanType  string `json:"plan_type" binding:"required,plantype"`
	ValidDays int    `json:"valid_days"`
}

func (h *AdminHandler) GrantEntitlement(c *gin.Context) {
	var req GrantEntitlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	grant, err := h.grantUC.Execute(c.Request.Context(), usecases.GrantEntitlementCommand{
		UserID:    req.UserID,
		PlanType:  req.PlanType,
		ValidDays: req.ValidDays,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.FromEntitlement(grant), "entitlement granted")
}

type AdjustEntitlementRequest struct {
	MaxListings   *int    `json:"max_listings"`
	MaxPhotos     *int    `json:"max_photos"`
	FeaturedQuota *int    `json:"featured_quota"`
	Status        *string `json:"status"`
	ExtendDays    *int    `json:"extend_days"`
}

func (h *AdminHandler) AdjustEntitlement(c *gin.Context) {
	var req AdjustEntitlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	ent, err := h.adjustUC.Execute(c.Request.Context(), usecases.AdjustEntitlementCommand{
		EntitlementSID: c.Param("sid"),
		MaxListings:    req.MaxListings,
		MaxPhotos:      req.MaxPhotos,
		FeaturedQuota:  req.FeaturedQuota,
		Status:         req.Status,
		ExtendDays:     req.ExtendDays,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "entitlement adjusted", dto.FromEntitlement(ent))
}

// ListUserEntitlements returns a user's full grant history for support review.
func (h *AdminHandler) ListUserEntitlements(c *gin.Context) {
	account, err := h.userRepo.GetBySID(c.Request.Context(), c.Param("sid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if account == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "user not found")
		return
	}

	records, err := h.entitlementRepo.ListByUserID(c.Request.Context(), account.ID())
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

func (h *AdminHandler) RunExpireSweep(c *gin.Context) {
	result, err := h.sweepUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "sweep completed", gin.H{
		"expired_entitlements": result.ExpiredEntitlements,
		"expired_checkouts":    result.ExpiredCheckouts,
	})
}
