package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ключи контекста
type contextKey string

const userIDKey contextKey = "user_id"

// ginUserIDKey - ключ в gin.Context.
const ginUserIDKey = "userID"

// ActingUser кладет ID пользователя, от имени которого выполняется запрос, в контекст запроса.
// API не аутентифицирует запросы: все они идут от заранее созданного демо-пользователя.
func ActingUser(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ginUserIDKey, userID)
		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// WithUserID возвращает контекст с ID пользователя.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext извлекает ID пользователя из контекста.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// UserID извлекает ID пользователя из gin.Context. Отвечает 500, если middleware не подключен.
func UserID(c *gin.Context) (int64, bool) {
	if v, ok := c.Get(ginUserIDKey); ok {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	return 0, false
}
