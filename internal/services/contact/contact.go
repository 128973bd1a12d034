// Package contact принимает заявки с контактной формы.
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
	"github.com/magabrotheeeer/studio-portfolio/internal/models"
)

type Repository interface {
	CreateContact(ctx context.Context, in models.ContactInput, createdAt string) (models.Contact, error)
}

// Publisher отправляет уведомление о заявке во внешнюю очередь.
type Publisher interface {
	Publish(ctx context.Context, message any) error
}

type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

// New создает сервис заявок. publisher может быть nil, тогда уведомления не отправляются.
func New(repo Repository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Submit сохраняет заявку с серверным временем создания и публикует уведомление.
// Ошибка публикации не отменяет уже сохранённую заявку.
func (s *Service) Submit(ctx context.Context, in models.ContactInput) (models.Contact, error) {
	const op = "contact.Submit"

	createdAt := s.now().UTC().Format(time.RFC3339)
	c, err := s.repo.CreateContact(ctx, in, createdAt)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}
	log := s.log.With(slog.String("op", op), slog.Int("contact_id", c.ID))
	log.Info("contact received")

	if s.publisher == nil {
		return c, nil
	}
	msg := models.ContactNotification{
		MessageID: uuid.NewString(),
		ContactID: c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		log.Error("failed to publish contact notification", sl.Err(err))
	}
	return c, nil
}
