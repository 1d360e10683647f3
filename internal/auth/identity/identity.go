// Package identity resolves the subject asserted by an inbound request's
// bearer credential. The core never inspects token formats directly; it
// only sees an Identity.
package identity

import (
	"net/http"
	"strings"

	"github.com/alertwise/alertwise-backend/internal/auth/domain"
)

// Identity verifies a request and returns the provider's stable subject,
// or domain.ErrUnauthenticated.
type Identity interface {
	Verify(r *http.Request) (string, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func unauthenticated(message string) error {
	if message == "" {
		return domain.ErrUnauthenticated
	}
	e := *domain.ErrUnauthenticated
	e.Message = message
	return &e
}
