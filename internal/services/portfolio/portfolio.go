// Package portfolio содержит бизнес-логику каталога: проекты портфолио и услуги студии.
// Списки кешируются целиком, любое изменение проектов сбрасывает кеш проектов.
package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
	"github.com/magabrotheeeer/studio-portfolio/internal/models"
)

const (
	ProjectsCacheKey = "projects:all"
	ServicesCacheKey = "services:all"
)

// Repository определяет методы хранилища, которые нужны каталогу.
type Repository interface {
	GetProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, p models.Project) (models.Project, error)
	UpdateProject(ctx context.Context, id int, patch models.ProjectPatch) (models.Project, bool, error)
	DeleteProject(ctx context.Context, id int) (bool, error)
	GetServices(ctx context.Context) ([]models.Service, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

func New(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// ListProjects возвращает все проекты в порядке добавления.
func (s *Service) ListProjects(ctx context.Context) ([]models.Project, error) {
	const op = "portfolio.ListProjects"

	var cached []models.Project
	if s.fromCache(ctx, ProjectsCacheKey, &cached) {
		return cached, nil
	}

	projects, err := s.repo.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.toCache(ctx, ProjectsCacheKey, projects)
	return projects, nil
}

// CreateProject сохраняет новый проект. Идентификатор назначает хранилище.
func (s *Service) CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error) {
	const op = "portfolio.CreateProject"

	p, err := s.repo.CreateProject(ctx, in.ToProject())
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("project created", slog.Int("id", p.ID))
	s.invalidate(ctx, ProjectsCacheKey)
	return p, nil
}

// UpdateProject применяет патч к проекту. found=false, если проекта с таким id нет.
func (s *Service) UpdateProject(ctx context.Context, id int, patch models.ProjectPatch) (models.Project, bool, error) {
	const op = "portfolio.UpdateProject"

	p, found, err := s.repo.UpdateProject(ctx, id, patch)
	if err != nil {
		return models.Project{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return models.Project{}, false, nil
	}
	s.log.Info("project updated", slog.Int("id", id))
	s.invalidate(ctx, ProjectsCacheKey)
	return p, true, nil
}

// DeleteProject удаляет проект и сообщает, существовал ли он.
func (s *Service) DeleteProject(ctx context.Context, id int) (bool, error) {
	const op = "portfolio.DeleteProject"

	deleted, err := s.repo.DeleteProject(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if deleted {
		s.log.Info("project deleted", slog.Int("id", id))
		s.invalidate(ctx, ProjectsCacheKey)
	}
	return deleted, nil
}

// ListServices возвращает каталог услуг.
func (s *Service) ListServices(ctx context.Context) ([]models.Service, error) {
	const op = "portfolio.ListServices"

	var cached []models.Service
	if s.fromCache(ctx, ServicesCacheKey, &cached) {
		return cached, nil
	}

	services, err := s.repo.GetServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.toCache(ctx, ServicesCacheKey, services)
	return services, nil
}

// ResetCache сбрасывает закешированные списки. Вызывается при старте с хранилищем в памяти:
// записи прошлого процесса в redis к новому хранилищу не относятся.
func (s *Service) ResetCache(ctx context.Context) {
	s.invalidate(ctx, ProjectsCacheKey)
	s.invalidate(ctx, ServicesCacheKey)
}

// Ошибки кеша не прерывают запрос, а только логируются.
func (s *Service) fromCache(ctx context.Context, key string, result any) bool {
	found, err := s.cache.Get(ctx, key, result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
		return false
	}
	return found
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
}

func (s *Service) invalidate(ctx context.Context, key string) {
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
}
