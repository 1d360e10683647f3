package identity

import (
	"net/http"
	"strings"
)

// HeaderSubject is the header read by Header.
const HeaderSubject = "X-User-Id"

// Header trusts the X-User-Id header. Use this ONLY for local development
// and tests; config refuses it in production.
type Header struct{}

func (Header) Verify(r *http.Request) (string, error) {
	uid := strings.TrimSpace(r.Header.Get(HeaderSubject))
	if uid == "" {
		return "", unauthenticated("missing " + HeaderSubject + " header")
	}
	return uid, nil
}
