package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alertwise/alertwise-backend/internal/admin/service"
	"github.com/alertwise/alertwise-backend/internal/api/http/response"
)

type Handler struct {
	admin *service.AdminService
}

func New(admin *service.AdminService) *Handler {
	return &Handler{admin: admin}
}

func (h *Handler) Register(rg *gin.RouterGroup, authn, elevated gin.HandlerFunc) {
	rg.GET("/stats", authn, elevated, h.Stats)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
