package controller

import (
	"edutrack_backend/internal/service"
	"edutrack_backend/internal/util"
	"edutrack_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	var verr *util.ValidationError
	var aiErr *service.AIError

	switch {
	case errors.As(err, &verr):
		util.ValidationFailed(ctx, verr.Fields)
	case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrAttemptNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrAttemptSubmitted):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrFileTooLarge):
		util.Error(ctx, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, util.ErrInvalidInput),
		errors.Is(err, util.ErrNoQuestions),
		errors.Is(err, util.ErrPointsNotDivisible),
		errors.Is(err, util.ErrEmptyFile),
		errors.Is(err, util.ErrUnknownAITool),
		errors.Is(err, util.ErrEmptyPrompt):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrAIKeyMissing):
		util.Error(ctx, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &aiErr):
		logger.Log.Warn("AI upstream error",
			zap.Int("status", aiErr.StatusCode),
			zap.String("body", aiErr.Body),
		)
		util.Error(ctx, http.StatusBadGateway, aiErr.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
