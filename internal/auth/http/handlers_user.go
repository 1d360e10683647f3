package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alertwise/alertwise-backend/internal/api/http/response"
	"github.com/alertwise/alertwise-backend/internal/auth"
	"github.com/alertwise/alertwise-backend/internal/auth/domain"
)

// SyncUser mirrors the authenticated principal into the local Citizen
// collection. Called by the frontend after every sign-in.
func (h *Handler) SyncUser(c *gin.Context) {
	var body syncUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	citizen, err := h.authService.SyncCitizen(c.Request.Context(), auth.SubjectID(c), domain.SyncRequest{
		SubjectID:  body.SubjectID,
		Email:      body.Email,
		GivenName:  body.GivenName,
		FamilyName: body.FamilyName,
		AvatarURL:  body.AvatarURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, citizen)
}

// ListUsers returns every Citizen, newest first.
func (h *Handler) ListUsers(c *gin.Context) {
	citizens, err := h.authService.ListCitizens(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, citizens)
}
