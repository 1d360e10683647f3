package http

import "github.com/gin-gonic/gin"

// RegisterModules mounts /disasters. Reads are public.
func (h *Handler) RegisterModules(rg *gin.RouterGroup, authn, elevated gin.HandlerFunc) {
	rg.GET("/", h.ListModules)
	rg.GET("/:slug", h.GetModule)
	rg.POST("/", authn, elevated, h.CreateModule)
	rg.PUT("/:id", authn, elevated, h.UpdateModule)
	rg.DELETE("/:id", authn, elevated, h.DeleteModule)
}

// RegisterQuizzes mounts the quiz definition routes on /quizzes. identify
// is the optional-credential middleware used by the public reads.
func (h *Handler) RegisterQuizzes(rg *gin.RouterGroup, identify, authn, elevated gin.HandlerFunc) {
	rg.GET("/", identify, h.ListQuizzes)
	rg.GET("/:id", identify, h.GetQuiz)
	rg.POST("/", authn, elevated, h.CreateQuiz)
	rg.PUT("/:id", authn, elevated, h.UpdateQuiz)
	rg.DELETE("/:id", authn, elevated, h.DeleteQuiz)
}
