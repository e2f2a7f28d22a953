package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habita/internal/application/billing/usecases"
	"habita/internal/interfaces/dto"
	"habita/internal/shared/utils"
)

type PlanHandler struct {
	listPlansUC *usecases.ListPlansUseCase
}

func NewPlanHandler(listPlansUC *usecases.ListPlansUseCase) *PlanHandler {
	return &PlanHandler{listPlansUC: listPlansUC}
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	views := h.listPlansUC.Execute(c.Request.Context())

	plans := make([]dto.PlanDTO, 0, len(views))
	for _, v := range views {
		plans = append(plans, dto.FromPlanView(v))
	}

	utils.SuccessResponse(c, http.StatusOK, "", plans)
}
