package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gse-tracker/internal/middleware"
	swapUsecase "gse-tracker/internal/usecase/swap"
	"gse-tracker/pkg/utils"
)

type SwapHandler struct {
	service *swapUsecase.Service
}

func NewSwapHandler(service *swapUsecase.Service) *SwapHandler {
	return &SwapHandler{service: service}
}

// RecordSwap handles POST /api/v1/swaps
func (h *SwapHandler) RecordSwap(c *gin.Context) {
	var req swapUsecase.RecordSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.RecordSwap(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Battery swap recorded", resp)
}

// TotalSwaps handles GET /api/v1/equipment/:id/swaps/total
func (h *SwapHandler) TotalSwaps(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid equipment id")
		return
	}

	resp, err := h.service.TotalSwaps(c.Request.Context(), middleware.GetUserID(c), equipmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Total swaps", resp)
}

// ListRecent handles GET /api/v1/equipment/:id/swaps
func (h *SwapHandler) ListRecent(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid equipment id")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	resp, err := h.service.ListRecent(c.Request.Context(), middleware.GetUserID(c), equipmentID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Recent swaps", resp)
}
