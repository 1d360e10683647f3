package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alertwise/alertwise-backend/internal/api/http/response"
	"github.com/alertwise/alertwise-backend/internal/auth"
	"github.com/alertwise/alertwise-backend/internal/content/domain"
)

// ListQuizzes omits correct_index unless the caller is elevated.
func (h *Handler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizzes.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	full, err := h.callerSeesAnswers(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if full {
		c.JSON(http.StatusOK, quizzes)
		return
	}

	out := make([]domain.PublicQuiz, len(quizzes))
	for i, q := range quizzes {
		out[i] = q.Public()
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetQuiz(c *gin.Context) {
	q, err := h.quizzes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	full, err := h.callerSeesAnswers(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if full {
		c.JSON(http.StatusOK, q)
		return
	}
	c.JSON(http.StatusOK, q.Public())
}

func (h *Handler) callerSeesAnswers(c *gin.Context) (bool, error) {
	subject := auth.SubjectID(c)
	if subject == "" || h.elevation == nil {
		return false, nil
	}
	return h.elevation.IsElevated(c.Request.Context(), subject)
}

func (h *Handler) CreateQuiz(c *gin.Context) {
	var body quizRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	q, err := h.quizzes.Create(c.Request.Context(), body.toQuiz())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *Handler) UpdateQuiz(c *gin.Context) {
	var patch domain.QuizPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	q, err := h.quizzes.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *Handler) DeleteQuiz(c *gin.Context) {
	if err := h.quizzes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "quiz deleted")
}
