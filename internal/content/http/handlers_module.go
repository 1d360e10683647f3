package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alertwise/alertwise-backend/internal/api/http/response"
	"github.com/alertwise/alertwise-backend/internal/content/domain"
)

func (h *Handler) ListModules(c *gin.Context) {
	modules, err := h.modules.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, modules)
}

func (h *Handler) GetModule(c *gin.Context) {
	m, err := h.modules.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) CreateModule(c *gin.Context) {
	var body moduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	m, err := h.modules.Create(c.Request.Context(), body.toModule())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) UpdateModule(c *gin.Context) {
	var patch domain.ModulePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	m, err := h.modules.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteModule(c *gin.Context) {
	if err := h.modules.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "module deleted")
}
