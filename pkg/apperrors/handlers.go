package apperrors

import (
	"errors"

	"restaurant_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr := Normalize(err)
	ctx := c.Request.Context()

	if appErr.HTTPCode >= 500 {
		logger.CtxError(ctx, "Server error", "error", err, "path", c.Request.URL.Path)
		if !h.Debug {
			appErr = InternalError(appErr.Err)
		}
	} else {
		logger.CtxWarn(ctx, "Request failed", "code", appErr.Code, "message", appErr.Message)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, appErr)
}

// HandleError - единая точка ответа об ошибке для хендлеров и middleware
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}

// Normalize - приводит любую ошибку к AppError.
// gorm.ErrDuplicatedKey -> 400, gorm.ErrRecordNotFound -> 404, остальное -> 500
func Normalize(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey(err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound(err)
	}
	return InternalError(err)
}

// AsAppError - пытается привести ошибку к *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
