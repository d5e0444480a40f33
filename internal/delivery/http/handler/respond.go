package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gse-tracker/internal/logger"
	appErrors "gse-tracker/pkg/errors"
	"gse-tracker/pkg/utils"
)

// respondError translates a use-case error into an HTTP response. The
// upstream cause is logged and never surfaced to clients.
func respondError(c *gin.Context, err error) {
	var appErr *appErrors.AppError
	if !errors.As(err, &appErr) {
		logger.Error("Unclassified error", zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case appErrors.KindPermissionDenied:
		status = http.StatusForbidden
	case appErrors.KindValidation:
		status = http.StatusBadRequest
	case appErrors.KindConflict:
		status = http.StatusConflict
	case appErrors.KindNotFound:
		status = http.StatusNotFound
	case appErrors.KindUpstream:
		status = http.StatusBadGateway
		logger.Error("Upstream failure", zap.String("code", appErr.Code), zap.Error(appErr.Err))
	}

	utils.ErrorResponseWithCode(c, status, appErr.Code, appErr.Message)
}
