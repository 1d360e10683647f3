package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alertwise/alertwise-backend/internal/activity"
	"github.com/alertwise/alertwise-backend/internal/apperr"
	"github.com/alertwise/alertwise-backend/internal/content/domain"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
)

type ModuleRepository interface {
	List(ctx context.Context) ([]domain.Module, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Module, error)
	GetByID(ctx context.Context, id string) (*domain.Module, error)
	Create(ctx context.Context, m *domain.Module) error
	Update(ctx context.Context, m *domain.Module) error
	Delete(ctx context.Context, id string) error
}

type ModuleService struct {
	modules ModuleRepository
	feed    activity.Recorder
	log     *logger.Logger
}

func NewModuleService(modules ModuleRepository, feed activity.Recorder, log *logger.Logger) *ModuleService {
	return &ModuleService{
		modules: modules,
		feed:    feed,
		log:     log.With("service", "ModuleService"),
	}
}

func (s *ModuleService) List(ctx context.Context) ([]domain.Module, error) {
	return s.modules.List(ctx)
}

func (s *ModuleService) GetBySlug(ctx context.Context, slug string) (*domain.Module, error) {
	return s.modules.GetBySlug(ctx, slug)
}

func (s *ModuleService) Create(ctx context.Context, m domain.Module) (*domain.Module, error) {
	if err := m.Prepare(); err != nil {
		return nil, err
	}
	m.ID = uuid.NewString()

	if err := s.modules.Create(ctx, &m); err != nil {
		return nil, err
	}

	s.log.Info("module created", "module_id", m.ID, "slug", m.Slug)
	activity.RecordQuietly(ctx, s.feed, s.log, activity.KindContent,
		fmt.Sprintf("New module published: %s", m.Title))
	return &m, nil
}

// Update applies patch on top of the stored module and writes the result.
func (s *ModuleService) Update(ctx context.Context, id string, patch domain.ModulePatch) (*domain.Module, error) {
	m, err := s.modules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(m)
	if err := m.Prepare(); err != nil {
		return nil, err
	}

	if err := s.modules.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *ModuleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Invalid("id is required")
	}
	if err := s.modules.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("module deleted", "module_id", id)
	return nil
}
