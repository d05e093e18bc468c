package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dreamscribe/internal/model"
)

// APIError представляет стандартизированный ответ об ошибке.
type APIError struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError описывает одну ошибку валидации.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const validationFailed = "validation failed"

func respondValidation(c *gin.Context, details ...FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, APIError{Error: validationFailed, Details: details})
}

// handleServiceError переводит ошибки сервисного слоя в HTTP-ответы.
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		respondValidation(c, FieldError{Field: "request", Message: err.Error()})
	case errors.Is(err, model.ErrWorldNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, APIError{Error: "World not found"})
	case errors.Is(err, model.ErrCharacterNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, APIError{Error: "Character not found"})
	case errors.Is(err, model.ErrSceneNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, APIError{Error: "Scene not found"})
	case errors.Is(err, model.ErrUserNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, APIError{Error: "User not found"})
	case errors.Is(err, model.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, APIError{Error: "Resource not found"})
	case errors.Is(err, model.ErrUserAlreadyExists):
		c.AbortWithStatusJSON(http.StatusConflict, APIError{Error: "Username already exists"})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{Error: "Invalid username or password"})
	default:
		h.logger.Error("Unhandled internal error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{Error: "Internal server error"})
	}
}
