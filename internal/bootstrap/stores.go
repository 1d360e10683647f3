package bootstrap

import (
	"database/sql"

	adminrepo "github.com/alertwise/alertwise-backend/internal/admin/repository"
	adminservice "github.com/alertwise/alertwise-backend/internal/admin/service"
	attemptrepo "github.com/alertwise/alertwise-backend/internal/attempts/repository"
	attemptservice "github.com/alertwise/alertwise-backend/internal/attempts/service"
	authrepo "github.com/alertwise/alertwise-backend/internal/auth/repository"
	authservice "github.com/alertwise/alertwise-backend/internal/auth/service"
	contentrepo "github.com/alertwise/alertwise-backend/internal/content/repository"
	contentservice "github.com/alertwise/alertwise-backend/internal/content/service"
	cronjob "github.com/alertwise/alertwise-backend/internal/sos/cron"
	sosrepo "github.com/alertwise/alertwise-backend/internal/sos/repository"
	sosservice "github.com/alertwise/alertwise-backend/internal/sos/service"
	"github.com/alertwise/alertwise-backend/internal/storage/memory"
)

// SOSStore is the SOS repository as used by both the workflow service and
// the backlog monitor.
type SOSStore interface {
	sosservice.RequestRepository
	cronjob.PendingCounter
}

// Stores groups one repository per collection.
type Stores struct {
	Citizens authservice.CitizenRepository
	Modules  contentservice.ModuleRepository
	Quizzes  contentservice.QuizRepository
	Attempts attemptservice.AttemptRepository
	SOS      SOSStore
	Counter  adminservice.Counter
}

// PostgresStores builds the repositories over a database/sql handle.
func PostgresStores(db *sql.DB) Stores {
	return Stores{
		Citizens: authrepo.NewCitizenRepository(db),
		Modules:  contentrepo.NewModuleRepository(db),
		Quizzes:  contentrepo.NewQuizRepository(db),
		Attempts: attemptrepo.NewAttemptRepository(db),
		SOS:      sosrepo.NewRequestRepository(db),
		Counter:  adminrepo.NewStatsRepository(db),
	}
}

// MemoryStores builds the repositories over a process-local store.
func MemoryStores(store *memory.Store) Stores {
	return Stores{
		Citizens: store.Citizens(),
		Modules:  store.Modules(),
		Quizzes:  store.Quizzes(),
		Attempts: store.Attempts(),
		SOS:      store.SOS(),
		Counter:  store,
	}
}
