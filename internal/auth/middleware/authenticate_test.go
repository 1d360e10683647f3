package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alertwise/alertwise-backend/internal/auth"
	"github.com/alertwise/alertwise-backend/internal/auth/domain"
	"github.com/alertwise/alertwise-backend/internal/auth/identity"
)

type gateFunc func(ctx context.Context, subjectID string) error

func (f gateFunc) RequireElevated(ctx context.Context, subjectID string) error {
	return f(ctx, subjectID)
}

func setupRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": auth.SubjectID(c)})
	})
	r.GET("/", handlers...)
	return r
}

func do(r *gin.Engine, subject string) (*httptest.ResponseRecorder, map[string]string) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if subject != "" {
		req.Header.Set(identity.HeaderSubject, subject)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := map[string]string{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestAuthenticate(t *testing.T) {
	r := setupRouter(Authenticate(identity.Header{}))

	w, body := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, body["message"])

	w, body = do(r, "u_1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u_1", body["subject"])
}

func TestIdentify(t *testing.T) {
	r := setupRouter(Identify(identity.Header{}))

	w, body := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", body["subject"])

	w, body = do(r, "u_1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u_1", body["subject"])
}

func TestRequireElevated(t *testing.T) {
	gate := gateFunc(func(_ context.Context, subjectID string) error {
		if subjectID == "admin" {
			return nil
		}
		return domain.ErrNotElevated
	})

	t.Run("no subject", func(t *testing.T) {
		r := setupRouter(RequireElevated(gate))
		w, _ := do(r, "admin")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "subject is only read from context")
	})

	r := setupRouter(Authenticate(identity.Header{}), RequireElevated(gate))

	t.Run("member", func(t *testing.T) {
		w, body := do(r, "member")
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, domain.ErrNotElevated.Message, body["message"])
	})

	t.Run("elevated", func(t *testing.T) {
		w, body := do(r, "admin")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin", body["subject"])
	})
}
