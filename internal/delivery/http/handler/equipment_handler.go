package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gse-tracker/internal/middleware"
	equipmentUsecase "gse-tracker/internal/usecase/equipment"
	"gse-tracker/pkg/utils"
)

type EquipmentHandler struct {
	service *equipmentUsecase.Service
}

func NewEquipmentHandler(service *equipmentUsecase.Service) *EquipmentHandler {
	return &EquipmentHandler{service: service}
}

// CreateEquipment handles POST /api/v1/equipment
func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	var req equipmentUsecase.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.CreateEquipment(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Equipment created", resp)
}

// GetEquipment handles GET /api/v1/equipment/:id
func (h *EquipmentHandler) GetEquipment(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid equipment id")
		return
	}

	resp, err := h.service.GetEquipment(c.Request.Context(), middleware.GetUserID(c), equipmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment", resp)
}

// ListByLocation handles GET /api/v1/locations/:id/equipment
func (h *EquipmentHandler) ListByLocation(c *gin.Context) {
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

	utils.SuccessResponse(c, http.StatusOK, "Equipment list", resp)
}

// ResolveByCode handles GET /api/v1/locations/:id/equipment/resolve?code=GPU-17
func (h *EquipmentHandler) ResolveByCode(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid location id")
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "code query parameter required")
		return
	}

	resp, err := h.service.ResolveByCode(c.Request.Context(), middleware.GetUserID(c), locationID, code)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment resolved", resp)
}

// UpdateEquipment handles PUT /api/v1/equipment/:id
func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid equipment id")
		return
	}

	var req equipmentUsecase.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.UpdateEquipment(c.Request.Context(), middleware.GetUserID(c), equipmentID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment updated", resp)
}

// DeleteEquipment handles DELETE /api/v1/equipment/:id
func (h *EquipmentHandler) DeleteEquipment(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid equipment id")
		return
	}

	if err := h.service.DeleteEquipment(c.Request.Context(), middleware.GetUserID(c), equipmentID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Equipment deleted", nil)
}
