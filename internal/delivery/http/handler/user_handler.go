package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gse-tracker/internal/middleware"
	userUsecase "gse-tracker/internal/usecase/user"
	"gse-tracker/pkg/utils"
)

type UserHandler struct {
	service *userUsecase.Service
}

func NewUserHandler(service *userUsecase.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Login handles POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req userUsecase.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req userUsecase.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed", resp)
}

// Me handles GET /api/v1/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	resp, err := h.service.GetProfile(c.Request.Context(), actorID, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile", resp)
}

// ChangePassword handles POST /api/v1/auth/change-password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req userUsecase.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), middleware.GetUserID(c), &req); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed", nil)
}

// CreateProfile handles POST /api/v1/users
func (h *UserHandler) CreateProfile(c *gin.Context) {
	var req userUsecase.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.CreateProfile(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Profile created", resp)
}

// GetProfile handles GET /api/v1/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	resp, err := h.service.GetProfile(c.Request.Context(), middleware.GetUserID(c), targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile", resp)
}

// ListProfiles handles GET /api/v1/users
func (h *UserHandler) ListProfiles(c *gin.Context) {
	resp, err := h.service.ListProfiles(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profiles", resp)
}

// UpdateProfile handles PUT /api/v1/users/:id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req userUsecase.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), targetID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated", resp)
}
