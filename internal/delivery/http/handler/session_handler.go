package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gse-tracker/internal/middleware"
	sessionUsecase "gse-tracker/internal/usecase/session"
	"gse-tracker/pkg/utils"
)

type SessionHandler struct {
	service *sessionUsecase.Service
}

func NewSessionHandler(service *sessionUsecase.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// StartCharging handles POST /api/v1/sessions
func (h *SessionHandler) StartCharging(c *gin.Context) {
	var req sessionUsecase.StartChargingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.StartCharging(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Charging session started", resp)
}

// StopCharging handles POST /api/v1/sessions/:id/stop
func (h *SessionHandler) StopCharging(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid session id")
		return
	}

	resp, err := h.service.StopCharging(c.Request.Context(), middleware.GetUserID(c), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Charging session stopped", resp)
}

// GetOpenSession handles GET /api/v1/equipment/:id/session
// Responds with data=null when the unit is idle.
func (h *SessionHandler) GetOpenSession(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid equipment id")
		return
	}

	resp, err := h.service.GetOpenSession(c.Request.Context(), middleware.GetUserID(c), equipmentID)
	if err != nil {
		respondError(c, err)
		return
	}

	if resp == nil {
		utils.SuccessResponse(c, http.StatusOK, "No open session", nil)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Open session", resp)
}

// ListRecent handles GET /api/v1/equipment/:id/sessions
func (h *SessionHandler) ListRecent(c *gin.Context) {
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

	utils.SuccessResponse(c, http.StatusOK, "Recent sessions", resp)
}
