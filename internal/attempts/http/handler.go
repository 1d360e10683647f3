package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alertwise/alertwise-backend/internal/api/http/response"
	"github.com/alertwise/alertwise-backend/internal/attempts/domain"
	"github.com/alertwise/alertwise-backend/internal/attempts/service"
	"github.com/alertwise/alertwise-backend/internal/auth"
)

type Handler struct {
	attempts *service.AttemptService
}

func New(attempts *service.AttemptService) *Handler {
	return &Handler{attempts: attempts}
}

// Register mounts the attempt routes on the /quizzes group. limit throttles
// submissions per subject.
func (h *Handler) Register(rg *gin.RouterGroup, authn, elevated, limit gin.HandlerFunc) {
	rg.GET("/results/all", authn, elevated, h.ListAll)
	rg.GET("/:id/attempts", authn, h.ListOwn)
	rg.POST("/:id/submit", authn, limit, h.Submit)
}

func (h *Handler) Submit(c *gin.Context) {
	var body domain.SubmitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	a, err := h.attempts.Submit(c.Request.Context(), auth.SubjectID(c), c.Param("id"), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListOwn(c *gin.Context) {
	attempts, err := h.attempts.ListOwn(c.Request.Context(), auth.SubjectID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

func (h *Handler) ListAll(c *gin.Context) {
	views, err := h.attempts.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
