package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dreamscribe/internal/delivery/http/middleware"
	"dreamscribe/internal/service"
)

func (h *Handler) listCharacters(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return
	}
	characters, err := h.services.Characters.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *Handler) getCharacter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	character, err := h.services.Characters.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) createCharacter(c *gin.Context) {
	var req createCharacterRequest
	if !bindJSON(c, &req) {
		return
	}
	memory, details := decodeMemoryPatch(req.Memory)
	if len(details) > 0 {
		respondValidation(c, details...)
		return
	}
	character, err := h.services.Characters.Create(c.Request.Context(), service.CreateCharacterInput{
		WorldID:     req.WorldID,
		Name:        req.Name,
		Role:        req.Role,
		Appearance:  req.Appearance,
		Personality: req.Personality,
		Backstory:   req.Backstory,
		Memory:      memory,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *Handler) updateCharacter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateCharacterRequest
	if !bindJSON(c, &req) {
		return
	}
	character, err := h.services.Characters.Update(c.Request.Context(), id, req.toPatch())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

// updateCharacterMemory сливает частичный патч с текущей памятью персонажа.
// Неизвестные ключи отклоняются с 400.
func (h *Handler) updateCharacterMemory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	raw, err := c.GetRawData()
	if err != nil {
		respondValidation(c, FieldError{Field: "body", Message: "could not read request body"})
		return
	}
	patch, details := decodeMemoryPatch(raw)
	if len(details) > 0 {
		respondValidation(c, details...)
		return
	}
	character, err := h.services.Characters.UpdateMemory(c.Request.Context(), id, patch)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) addCharacterFact(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req addFactRequest
	if !bindJSON(c, &req) {
		return
	}
	character, err := h.services.Characters.AddFact(c.Request.Context(), id, req.Fact)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *Handler) deleteCharacter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Characters.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) getCharacterMood(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	mood, err := h.services.Characters.GetMood(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mood)
}

func (h *Handler) analyzeCharacterMood(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req analyzeMoodRequest
	if !bindJSON(c, &req) {
		return
	}
	character, mood, err := h.services.Characters.AnalyzeMood(c.Request.Context(), id, req.Text)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"character": character, "mood": mood})
}
