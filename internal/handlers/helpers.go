package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/logger"
	"folio/internal/quote"
)

// ErrorResponse documents the JSON error envelope for Swagger.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// providerAppError maps a classified quote provider failure onto the
// AppError taxonomy, preserving the request-specific message.
func providerAppError(err error) *apperrors.AppError {
	var provErr *quote.ProviderError
	if !errors.As(err, &provErr) {
		return apperrors.Wrap(apperrors.ErrProviderNetwork, err)
	}

	var sentinel *apperrors.AppError
	switch provErr.Kind {
	case quote.KindNotFound:
		sentinel = apperrors.ErrSymbolNotFound
	case quote.KindAuthFailure:
		sentinel = apperrors.ErrProviderAuth
	case quote.KindRateLimited:
		sentinel = apperrors.ErrProviderRateLimited
	case quote.KindTimeout:
		sentinel = apperrors.ErrProviderTimeout
	case quote.KindNoData:
		sentinel = apperrors.ErrNoHistoryData
	default:
		sentinel = apperrors.ErrProviderNetwork
	}
	return apperrors.Wrap(sentinel, provErr)
}
