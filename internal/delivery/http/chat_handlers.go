package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dreamscribe/internal/delivery/http/middleware"
)

func (h *Handler) listCharacterMessages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	messages, err := h.services.Chat.ListMessages(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) createChatMessage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return
	}
	var req createChatMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.services.Chat.PostMessage(c.Request.Context(), req.toInsert(userID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// generateCharacterResponse генерирует ответ персонажа на текущую историю диалога.
// Сбой генерации не является ошибкой: персонаж отвечает запасной репликой.
func (h *Handler) generateCharacterResponse(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return
	}
	var req generateResponseRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := h.services.Chat.GenerateReply(c.Request.Context(), userID, req.CharacterID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}
