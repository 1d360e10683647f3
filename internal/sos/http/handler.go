package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alertwise/alertwise-backend/internal/api/http/response"
	"github.com/alertwise/alertwise-backend/internal/auth"
	"github.com/alertwise/alertwise-backend/internal/sos/domain"
	"github.com/alertwise/alertwise-backend/internal/sos/service"
)

type Handler struct {
	sos *service.SOSService
}

func New(sos *service.SOSService) *Handler {
	return &Handler{sos: sos}
}

// Register mounts /sos. limit throttles creation per subject.
func (h *Handler) Register(rg *gin.RouterGroup, authn, elevated, limit gin.HandlerFunc) {
	rg.POST("/", authn, limit, h.Create)
	rg.GET("/my-history", authn, h.MyHistory)
	rg.GET("/all", authn, elevated, h.ListAll)
	rg.PUT("/:id/status", authn, elevated, h.UpdateStatus)
}

func (h *Handler) Create(c *gin.Context) {
	var body domain.CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	req, err := h.sos.Create(c.Request.Context(), auth.SubjectID(c), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *Handler) MyHistory(c *gin.Context) {
	requests, err := h.sos.ListOwn(c.Request.Context(), auth.SubjectID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) ListAll(c *gin.Context) {
	requests, err := h.sos.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var body domain.TransitionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	req, err := h.sos.Transition(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
