package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getScene(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scene, err := h.services.Scenes.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scene)
}

func (h *Handler) createScene(c *gin.Context) {
	var req createSceneRequest
	if !bindJSON(c, &req) {
		return
	}
	scene, err := h.services.Scenes.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, scene)
}

func (h *Handler) generateScene(c *gin.Context) {
	var req generateSceneRequest
	if !bindJSON(c, &req) {
		return
	}
	scene, err := h.services.Scenes.Generate(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, scene)
}

func (h *Handler) updateScene(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateSceneRequest
	if !bindJSON(c, &req) {
		return
	}
	scene, err := h.services.Scenes.Update(c.Request.Context(), id, req.toPatch())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scene)
}

func (h *Handler) deleteScene(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Scenes.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
