package http

import "github.com/gin-gonic/gin"

// Register mounts the /users routes. authn verifies the bearer and elevated
// enforces the elevated role.
func (h *Handler) Register(rg *gin.RouterGroup, authn, elevated gin.HandlerFunc) {
	rg.POST("/sync", authn, h.SyncUser)
	rg.GET("/", authn, elevated, h.ListUsers)
}
