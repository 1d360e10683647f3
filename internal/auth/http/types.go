package http

import "github.com/alertwise/alertwise-backend/internal/auth/service"

type Handler struct {
	authService *service.AuthService
}

func New(authService *service.AuthService) *Handler {
	return &Handler{
		authService: authService,
	}
}

type syncUserRequest struct {
	SubjectID  string `json:"subject_id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	AvatarURL  string `json:"avatar_url"`
}
