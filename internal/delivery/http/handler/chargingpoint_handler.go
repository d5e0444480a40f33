package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gse-tracker/internal/middleware"
	pointUsecase "gse-tracker/internal/usecase/chargingpoint"
	"gse-tracker/pkg/utils"
)

type ChargingPointHandler struct {
	service *pointUsecase.Service
}

func NewChargingPointHandler(service *pointUsecase.Service) *ChargingPointHandler {
	return &ChargingPointHandler{service: service}
}

// CreateChargingPoint handles POST /api/v1/charging-points
func (h *ChargingPointHandler) CreateChargingPoint(c *gin.Context) {
	var req pointUsecase.CreateChargingPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.CreateChargingPoint(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Charging point created", resp)
}

// ListByLocation handles GET /api/v1/locations/:id/charging-points
func (h *ChargingPointHandler) ListByLocation(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid location id")
		return
	}

	resp, err := h.service.ListByLocation(c.Request.Context(), middleware.GetUserID(c), locationID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Charging points", resp)
}

// UpdateChargingPoint handles PUT /api/v1/charging-points/:id
func (h *ChargingPointHandler) UpdateChargingPoint(c *gin.Context) {
	pointID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid charging point id")
		return
	}

	var req pointUsecase.UpdateChargingPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.UpdateChargingPoint(c.Request.Context(), middleware.GetUserID(c), pointID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Charging point updated", resp)
}

// DeleteChargingPoint handles DELETE /api/v1/charging-points/:id
func (h *ChargingPointHandler) DeleteChargingPoint(c *gin.Context) {
	pointID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid charging point id")
		return
	}

	if err := h.service.DeleteChargingPoint(c.Request.Context(), middleware.GetUserID(c), pointID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Charging point deleted", nil)
}
