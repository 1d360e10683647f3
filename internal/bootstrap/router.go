package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	adminhttp "github.com/alertwise/alertwise-backend/internal/admin/http"
	httpapi "github.com/alertwise/alertwise-backend/internal/api/http"
	"github.com/alertwise/alertwise-backend/internal/api/http/middleware"
	attemptshttp "github.com/alertwise/alertwise-backend/internal/attempts/http"
	"github.com/alertwise/alertwise-backend/internal/auth"
	authhttp "github.com/alertwise/alertwise-backend/internal/auth/http"
	"github.com/alertwise/alertwise-backend/internal/auth/identity"
	authmw "github.com/alertwise/alertwise-backend/internal/auth/middleware"
	contenthttp "github.com/alertwise/alertwise-backend/internal/content/http"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
	"github.com/alertwise/alertwise-backend/internal/platform/metrics"
	"github.com/alertwise/alertwise-backend/internal/platform/ratelimit"
	soshttp "github.com/alertwise/alertwise-backend/internal/sos/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Identity    identity.Identity
	Services    *Services
	Limiter     *ratelimit.KeyedLimiter
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	Log         *logger.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(dep.Log, dep.Metrics))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", identity.HeaderSubject, middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	if dep.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(dep.Gatherer, promhttp.HandlerOpts{})))
	}

	svc := dep.Services
	authn := authmw.Authenticate(dep.Identity)
	identify := authmw.Identify(dep.Identity)
	elevated := authmw.RequireElevated(svc.Auth)
	limit := ratelimit.Middleware(dep.Limiter, auth.SubjectID)

	api := r.Group("/api")

	authhttp.New(svc.Auth).Register(api.Group("/users"), authn, elevated)

	content := contenthttp.New(svc.Modules, svc.Quizzes, svc.Auth)
	content.RegisterModules(api.Group("/disasters"), authn, elevated)

	quizzes := api.Group("/quizzes")
	content.RegisterQuizzes(quizzes, identify, authn, elevated)
	attemptshttp.New(svc.Attempts).Register(quizzes, authn, elevated, limit)

	soshttp.New(svc.SOS).Register(api.Group("/sos"), authn, elevated, limit)
	adminhttp.New(svc.Admin).Register(api.Group("/admin"), authn, elevated)

	return r
}
