// Package notifier запускает воркер, который читает заявки из очереди и отправляет письма студии.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/studio-portfolio/internal/config"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/studio-portfolio/internal/services/sender"
)

var ErrNoBroker = errors.New("rabbitmq url is not configured")

type App struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	sender *senderservice.Service
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.notifier.New"
	if cfg.RabbitMQURL == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoBroker)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetContactQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &App{
		conn:   conn,
		ch:     ch,
		sender: senderservice.New(logger, smtp.NewTransport(cfg.SMTP, logger)),
		logger: logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	wait, err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, rabbitmq.NewContactQueue, a.handle)
	if err != nil {
		a.logger.Error("failed to start consumer", slog.String("queue", rabbitmq.NewContactQueue), sl.Err(err))
		a.close()
		return err
	}
	a.logger.Info("contact notifier started", slog.String("queue", rabbitmq.NewContactQueue))

	<-ctx.Done()
	a.logger.Info("contact notifier shutting down gracefully")
	wait()
	a.close()
	return nil
}

// handle отправляет письмо. Битое сообщение помечается как неповторяемое.
func (a *App) handle(body []byte) error {
	return permanentIfMalformed(a.sender.SendContactNotification(body))
}

func permanentIfMalformed(err error) error {
	if errors.Is(err, senderservice.ErrMalformedMessage) {
		return fmt.Errorf("%w: %w", rabbitmq.ErrPermanent, err)
	}
	return err
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
}
