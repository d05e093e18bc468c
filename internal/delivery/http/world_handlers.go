package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dreamscribe/internal/delivery/http/middleware"
)

func (h *Handler) listWorlds(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return
	}
	worlds, err := h.services.Worlds.List(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, worlds)
}

func (h *Handler) getWorld(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	world, err := h.services.Worlds.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, world)
}

func (h *Handler) createWorld(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return
	}
	var req createWorldRequest
	if !bindJSON(c, &req) {
		return
	}
	world, err := h.services.Worlds.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, world)
}

func (h *Handler) updateWorld(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateWorldRequest
	if !bindJSON(c, &req) {
		return
	}
	world, err := h.services.Worlds.Update(c.Request.Context(), id, req.toPatch())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, world)
}

func (h *Handler) deleteWorld(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Worlds.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listWorldCharacters(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	characters, err := h.services.Characters.ListByWorld(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *Handler) listWorldScenes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scenes, err := h.services.Scenes.ListByWorld(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scenes)
}

func (h *Handler) listWorldActivity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	logs, err := h.services.Worlds.ListActivity(c.Request.Context(), id, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *Handler) getDashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return
	}
	dashboard, err := h.services.Worlds.Dashboard(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
