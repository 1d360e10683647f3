package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/alertwise/alertwise-backend/internal/api/http/response"
	"github.com/alertwise/alertwise-backend/internal/auth"
	"github.com/alertwise/alertwise-backend/internal/auth/domain"
	"github.com/alertwise/alertwise-backend/internal/auth/identity"
)

// Authenticate verifies the bearer credential and stores the subject in
// the context. Requests without a valid credential get 401.
func Authenticate(id identity.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := id.Verify(c.Request)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(auth.CtxSubjectID, subject)
		c.Next()
	}
}

// Identify is the optional form of Authenticate: a valid credential sets
// the subject, anything else leaves the request anonymous.
func Identify(id identity.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if subject, err := id.Verify(c.Request); err == nil {
			c.Set(auth.CtxSubjectID, subject)
		}
		c.Next()
	}
}

// Gate decides whether a subject holds the elevated role.
type Gate interface {
	RequireElevated(ctx context.Context, subjectID string) error
}

// RequireElevated must run after Authenticate. It returns 401 when no
// subject is present and 403 when the Citizen is missing or not elevated.
func RequireElevated(gate Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := auth.SubjectID(c)
		if subject == "" {
			response.Abort(c, domain.ErrUnauthenticated)
			return
		}

		if err := gate.RequireElevated(c.Request.Context(), subject); err != nil {
			response.Abort(c, err)
			return
		}

		c.Next()
	}
}
