package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alertwise/alertwise-backend/internal/activity"
	authdomain "github.com/alertwise/alertwise-backend/internal/auth/domain"
	"github.com/alertwise/alertwise-backend/internal/auth/identity"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
	"github.com/alertwise/alertwise-backend/internal/platform/metrics"
	"github.com/alertwise/alertwise-backend/internal/storage/memory"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	log := logger.NewNop()
	store := memory.New()

	r := BuildRouter(RouterDeps{
		ServiceName: "alertwise-api",
		Version:     "test",
		Redis:       rdb,
		Identity:    identity.Header{},
		Services:    NewServices(MemoryStores(store), activity.NewRedisFeed(rdb), m, log),
		Metrics:     m,
		Gatherer:    reg,
		Log:         log,
	})
	return &testServer{t: t, router: r, store: store}
}

func (s *testServer) do(method, path, subject string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if subject != "" {
		req.Header.Set(identity.HeaderSubject, subject)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) sync(subject, given, family string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/users/sync", subject, map[string]any{
		"subject_id": subject, "email": subject + "@x", "given_name": given, "family_name": family,
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
}

func (s *testServer) elevate(subject string) {
	s.t.Helper()
	s.sync(subject, "Admin", "")
	require.NoError(s.t, s.store.Citizens().SetRole(context.Background(), subject, authdomain.RoleElevated))
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) createQuiz(admin string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/quizzes/", admin, map[string]any{
		"title": "Flood readiness", "summary": "s", "image_url": "i",
		"questions": []map[string]any{
			{"prompt": "Move to?", "options": []string{"basement", "high ground"}, "correct_index": 1},
		},
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](s.t, w)["id"].(string)
}

func TestScenario_SyncThenStatsForbidden(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/users/sync", "u_1",
		`{"subject_id":"u_1","email":"a@x","given_name":"A","family_name":"B","avatar_url":null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	citizen := decode[map[string]any](t, w)
	assert.Equal(t, "member", citizen["role"])
	assert.Equal(t, "u_1", citizen["subject_id"])

	w = s.do(http.MethodGet, "/api/admin/stats", "u_1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotEmpty(t, decode[map[string]any](t, w)["message"])
}

func TestScenario_ModuleSlugUniqueness(t *testing.T) {
	s := newTestServer(t)
	s.elevate("admin")

	body := `{"slug":"quake","title":"Q","summary":"s","body":"b","image_url":"i","category":"natural","tips":{"before":[],"during":[],"after":[]}}`
	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/disasters/", "admin", body).Code)

	w := s.do(http.MethodPost, "/api/disasters/", "admin", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slug already exists", decode[map[string]any](t, w)["message"])
}

func TestScenario_SOSHappyPathAndInvalidTransition(t *testing.T) {
	s := newTestServer(t)
	s.elevate("admin")
	s.sync("u_2", "Bo", "Lee")

	w := s.do(http.MethodPost, "/api/sos/", "u_2", `{"location":"40.0,-74.0","message":"trapped"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "Bo Lee", created["user_display_name"])
	id := created["id"].(string)

	w = s.do(http.MethodGet, "/api/sos/all", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]map[string]any](t, w)
	require.Len(t, all, 1)
	assert.Equal(t, id, all[0]["id"])

	w = s.do(http.MethodPut, "/api/sos/"+id+"/status", "admin", `{"status":"pending","operator_response":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/sos/"+id+"/status", "admin", `{"status":"approved","operator_response":"units dispatched"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "approved", decode[map[string]any](t, w)["status"])

	w = s.do(http.MethodGet, "/api/sos/my-history", "u_2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]map[string]any](t, w)
	require.Len(t, history, 1)
	assert.Equal(t, "units dispatched", history[0]["operator_response"])

	w = s.do(http.MethodPut, "/api/sos/"+id+"/status", "admin", `{"status":"rejected","operator_response":"changed my mind"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPut, "/api/sos/"+id+"/status", "admin", `{"status":"pending","operator_response":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/sos/missing/status", "admin", `{"status":"approved"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScenario_SOSRequiresSyncedCitizen(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/sos/", "stranger", `{"location":"x","message":"help"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/sos/", "", `{"location":"x","message":"help"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestScenario_AttemptLedger(t *testing.T) {
	s := newTestServer(t)
	s.elevate("admin")
	s.sync("u_1", "A", "B")
	quizID := s.createQuiz("admin")

	submit := "/api/quizzes/" + quizID + "/submit"
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, submit, "u_1", `{"score":3,"total":5}`).Code)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, submit, "u_1", `{"score":5,"total":5}`).Code)

	w := s.do(http.MethodGet, "/api/quizzes/"+quizID+"/attempts", "u_1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	own := decode[[]map[string]any](t, w)
	require.Len(t, own, 2)
	assert.EqualValues(t, 5, own[0]["score"])
	assert.EqualValues(t, 3, own[1]["score"])

	w = s.do(http.MethodGet, "/api/quizzes/results/all", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]map[string]any](t, w)
	require.Len(t, all, 2)
	for _, a := range all {
		assert.Equal(t, "Flood readiness", a["quiz_title"])
		assert.Equal(t, "u_1@x", a["user_email"])
	}

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/quizzes/"+quizID, "admin", nil).Code)
	w = s.do(http.MethodGet, "/api/quizzes/results/all", "admin", nil)
	all = decode[[]map[string]any](t, w)
	require.Len(t, all, 2)
	assert.Nil(t, all[0]["quiz_title"])
	assert.Equal(t, "Deleted Quiz", all[0]["display_title"])
}

func TestScenario_AttemptValidation(t *testing.T) {
	s := newTestServer(t)
	s.elevate("admin")
	quizID := s.createQuiz("admin")

	submit := "/api/quizzes/" + quizID + "/submit"
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, submit, "u_1", `{"score":6,"total":5}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, submit, "u_1", `{"score":-1,"total":5}`).Code)

	w := s.do(http.MethodPost, submit, "u_1", `{"answers":[1]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	a := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, a["score"])
	assert.EqualValues(t, 1, a["total"])
}

func TestSyncIsIdempotentAndNeverDemotes(t *testing.T) {
	s := newTestServer(t)
	s.elevate("admin")

	body := map[string]any{"subject_id": "admin", "email": "admin@x", "given_name": "Admin"}
	first := decode[map[string]any](t, s.do(http.MethodPost, "/api/users/sync", "admin", body))
	second := decode[map[string]any](t, s.do(http.MethodPost, "/api/users/sync", "admin", body))

	assert.Equal(t, "elevated", second["role"])
	for _, k := range []string{"subject_id", "email", "given_name", "family_name", "avatar_url", "role", "created_at"} {
		assert.Equal(t, first[k], second[k], k)
	}

	w := s.do(http.MethodPost, "/api/users/sync", "admin", map[string]any{"subject_id": "someone-else", "email": "x@x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/users/", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)
}

func TestElevatedEndpointsRejectMembersAndAnonymous(t *testing.T) {
	s := newTestServer(t)
	s.sync("member", "M", "")

	endpoints := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/users/", ""},
		{http.MethodPost, "/api/disasters/", `{"slug":"x","title":"t","summary":"s","body":"b","image_url":"i"}`},
		{http.MethodPut, "/api/disasters/some-id", `{"title":"t"}`},
		{http.MethodDelete, "/api/disasters/some-id", ""},
		{http.MethodPost, "/api/quizzes/", `{"title":"t","summary":"s","image_url":"i"}`},
		{http.MethodPut, "/api/quizzes/some-id", `{"title":"t"}`},
		{http.MethodDelete, "/api/quizzes/some-id", ""},
		{http.MethodGet, "/api/quizzes/results/all", ""},
		{http.MethodGet, "/api/sos/all", ""},
		{http.MethodPut, "/api/sos/some-id/status", `{"status":"approved"}`},
		{http.MethodGet, "/api/admin/stats", ""},
	}

	for _, e := range endpoints {
		t.Run(e.method+" "+e.path, func(t *testing.T) {
			var body any
			if e.body != "" {
				body = e.body
			}
			assert.Equal(t, http.StatusUnauthorized, s.do(e.method, e.path, "", body).Code)
			assert.Equal(t, http.StatusForbidden, s.do(e.method, e.path, "member", body).Code)
			assert.Equal(t, http.StatusForbidden, s.do(e.method, e.path, "never-synced", body).Code)
		})
	}
}

func TestAdminStats(t *testing.T) {
	s := newTestServer(t)
	s.elevate("admin")
	s.sync("u_2", "Bo", "Lee")
	s.createQuiz("admin")

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/sos/", "u_2", `{"location":"x","message":"help"}`).Code)

	w := s.do(http.MethodGet, "/api/admin/stats", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stats := decode[map[string]any](t, w)
	assert.EqualValues(t, 2, stats["total_citizens"])
	assert.EqualValues(t, 1, stats["active_sos"])
	assert.EqualValues(t, 0, stats["total_modules"])
	assert.EqualValues(t, 1, stats["total_quizzes"])

	recent := stats["recent_activity"].([]any)
	require.NotEmpty(t, recent)
	latest := recent[0].(map[string]any)
	assert.Equal(t, "sos", latest["kind"])
	assert.Equal(t, "just now", latest["relative_time"])
}

func TestPublicRoutesAndOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/disasters/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/quizzes/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alertwise_http_request_duration_seconds")
}
