package bootstrap

import (
	"github.com/alertwise/alertwise-backend/internal/activity"
	adminservice "github.com/alertwise/alertwise-backend/internal/admin/service"
	attemptservice "github.com/alertwise/alertwise-backend/internal/attempts/service"
	authservice "github.com/alertwise/alertwise-backend/internal/auth/service"
	contentservice "github.com/alertwise/alertwise-backend/internal/content/service"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
	"github.com/alertwise/alertwise-backend/internal/platform/metrics"
	sosservice "github.com/alertwise/alertwise-backend/internal/sos/service"
)

type Services struct {
	Auth     *authservice.AuthService
	Modules  *contentservice.ModuleService
	Quizzes  *contentservice.QuizService
	Attempts *attemptservice.AttemptService
	SOS      *sosservice.SOSService
	Admin    *adminservice.AdminService
}

func NewServices(st Stores, feed activity.Feed, m *metrics.Metrics, log *logger.Logger) *Services {
	if feed == nil {
		feed = activity.NopFeed{}
	}
	return &Services{
		Auth:     authservice.NewAuthService(st.Citizens, feed, m, log),
		Modules:  contentservice.NewModuleService(st.Modules, feed, log),
		Quizzes:  contentservice.NewQuizService(st.Quizzes, feed, log),
		Attempts: attemptservice.NewAttemptService(st.Attempts, st.Quizzes, m, log),
		SOS:      sosservice.NewSOSService(st.SOS, st.Citizens, feed, m, log),
		Admin:    adminservice.NewAdminService(st.Counter, feed, log),
	}
}
