package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alertwise/alertwise-backend/internal/activity"
	"github.com/alertwise/alertwise-backend/internal/auth"
	authdomain "github.com/alertwise/alertwise-backend/internal/auth/domain"
	"github.com/alertwise/alertwise-backend/internal/auth/identity"
	"github.com/alertwise/alertwise-backend/internal/auth/middleware"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
	"github.com/alertwise/alertwise-backend/internal/platform/ratelimit"
	"github.com/alertwise/alertwise-backend/internal/sos/domain"
	"github.com/alertwise/alertwise-backend/internal/sos/service"
	"github.com/alertwise/alertwise-backend/internal/storage/memory"
)

type allowAll struct{}

func (allowAll) RequireElevated(context.Context, string) error { return nil }

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	_, _, err := store.Citizens().Upsert(context.Background(), authdomain.SyncRequest{
		SubjectID: "u_2", Email: "bo@x", GivenName: "Bo", FamilyName: "Lee",
	})
	require.NoError(t, err)

	svc := service.NewSOSService(store.SOS(), store.Citizens(), activity.NopFeed{}, nil, logger.NewNop())

	r := gin.New()
	New(svc).Register(r.Group("/api/sos"),
		middleware.Authenticate(identity.Header{}),
		middleware.RequireElevated(allowAll{}),
		ratelimit.Middleware(nil, auth.SubjectID),
	)
	return r
}

func perform(r *gin.Engine, method, path, subject, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if subject != "" {
		req.Header.Set(identity.HeaderSubject, subject)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndHistory(t *testing.T) {
	r := setupRouter(t)

	w := perform(r, http.MethodPost, "/api/sos/", "u_2", `{"location":"40.0,-74.0","message":"trapped"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Request
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, "bo@x", created.UserEmail)
	assert.Equal(t, "Bo Lee", created.UserDisplayName)
	assert.Empty(t, created.OperatorResponse)

	w = perform(r, http.MethodGet, "/api/sos/my-history", "u_2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var history []domain.Request
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, created.ID, history[0].ID)

	w = perform(r, http.MethodGet, "/api/sos/my-history", "someone-else", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateValidation(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name    string
		subject string
		body    string
		want    int
	}{
		{"missing subject", "", `{"location":"x","message":"y"}`, http.StatusUnauthorized},
		{"malformed body", "u_2", `{"location":`, http.StatusBadRequest},
		{"blank location", "u_2", `{"location":"  ","message":"y"}`, http.StatusBadRequest},
		{"blank message", "u_2", `{"location":"x","message":""}`, http.StatusBadRequest},
		{"not synced", "ghost", `{"location":"x","message":"y"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodPost, "/api/sos/", tt.subject, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"message"`)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	r := setupRouter(t)

	w := perform(r, http.MethodPost, "/api/sos/", "u_2", `{"location":"x","message":"y"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Request
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := "/api/sos/" + created.ID + "/status"

	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPut, path, "admin", `{"status":"escalated"}`).Code)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPut, path, "admin", `{"status":"pending"}`).Code)

	w = perform(r, http.MethodPut, path, "admin", `{"status":"rejected","operator_response":"duplicate"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated domain.Request
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, domain.StatusRejected, updated.Status)
	assert.Equal(t, "duplicate", updated.OperatorResponse)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	assert.Equal(t, http.StatusConflict, perform(r, http.MethodPut, path, "admin", `{"status":"approved"}`).Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodPut, "/api/sos/nope/status", "admin", `{"status":"approved"}`).Code)

	w = perform(r, http.MethodGet, "/api/sos/all", "admin", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []domain.Request
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, domain.StatusRejected, all[0].Status)
}
