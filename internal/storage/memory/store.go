// Package memory is a process-local implementation of every repository
// contract. It backs STORE_DRIVER=memory and the router tests; data is
// lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	admindomain "github.com/alertwise/alertwise-backend/internal/admin/domain"
	attemptdomain "github.com/alertwise/alertwise-backend/internal/attempts/domain"
	authdomain "github.com/alertwise/alertwise-backend/internal/auth/domain"
	contentdomain "github.com/alertwise/alertwise-backend/internal/content/domain"
	sosdomain "github.com/alertwise/alertwise-backend/internal/sos/domain"
)

// Store holds all collections behind one lock so cross-collection reads
// (attempt views, counts) see a consistent snapshot.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	citizens     map[string]authdomain.Citizen
	citizenOrder []string
	modules      []contentdomain.Module
	quizzes      []contentdomain.Quiz
	attempts     []attemptdomain.Attempt
	sos          []sosdomain.Request
}

func New() *Store {
	return &Store{
		now:      func() time.Time { return time.Now().UTC() },
		citizens: make(map[string]authdomain.Citizen),
	}
}

func (s *Store) Citizens() *CitizenRepo { return &CitizenRepo{s: s} }
func (s *Store) Modules() *ModuleRepo   { return &ModuleRepo{s: s} }
func (s *Store) Quizzes() *QuizRepo     { return &QuizRepo{s: s} }
func (s *Store) Attempts() *AttemptRepo { return &AttemptRepo{s: s} }
func (s *Store) SOS() *SOSRepo          { return &SOSRepo{s: s} }

// Counts implements the dashboard counter.
func (s *Store) Counts(ctx context.Context) (admindomain.Counts, error) {
	if err := ctx.Err(); err != nil {
		return admindomain.Counts{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := admindomain.Counts{
		TotalCitizens: len(s.citizens),
		TotalModules:  len(s.modules),
		TotalQuizzes:  len(s.quizzes),
	}
	for _, r := range s.sos {
		if r.Status == sosdomain.StatusPending {
			c.ActiveSOS++
		}
	}
	return c, nil
}
