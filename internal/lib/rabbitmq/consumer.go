package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
)

const consumerConcurrency = 10

// ErrPermanent помечает ошибку обработчика, после которой повторная доставка бессмысленна.
// Такое сообщение отбрасывается без возврата в очередь.
var ErrPermanent = errors.New("permanent message failure")

// requeueDelay - пауза перед возвратом сообщения в очередь после временной ошибки.
var requeueDelay = 2 * time.Second

// ConsumerMessage создает потребителя сообщений из очереди RabbitMQ.
//
// Каждое сообщение обрабатывается в отдельной горутине, одновременно не более
// consumerConcurrency штук. Временная ошибка handler возвращает сообщение в очередь
// после паузы, ошибка с ErrPermanent отбрасывает его.
//
// Возвращаемая функция wait блокируется, пока после отмены ctx не завершатся
// все начатые обработчики. Канал можно закрывать только после нее.
func ConsumerMessage(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string, handler func([]byte) error) (wait func(), err error) {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(slog.String("op", op), slog.String("queue", queueName))
	return dispatch(ctx, log, delivery, handler), nil
}

func dispatch(ctx context.Context, log *slog.Logger, delivery <-chan amqp.Delivery, handler func([]byte) error) func() {
	var wg sync.WaitGroup
	done := make(chan struct{})
	sem := make(chan struct{}, consumerConcurrency)

	go func() {
		defer close(done)
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				select {
				case sem <- struct{}{}:
				case <-ctx.Done():
					// не начатое сообщение брокер доставит заново после закрытия канала
					return
				}
				wg.Add(1)
				go func(d amqp.Delivery) {
					defer wg.Done()
					defer func() { <-sem }()
					settle(ctx, log, d, handler(d.Body))
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		<-done
		wg.Wait()
	}
}

// settle подтверждает или отклоняет доставку по результату обработчика.
func settle(ctx context.Context, log *slog.Logger, d amqp.Delivery, err error) {
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("failed to ack message", sl.Err(ackErr))
		}
		return
	}

	if errors.Is(err, ErrPermanent) {
		log.Error("dropping message", sl.Err(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
		return
	}

	log.Warn("failed to handle message, requeueing", sl.Err(err), slog.Duration("delay", requeueDelay))
	timer := time.NewTimer(requeueDelay)
	select {
	case <-timer.C:
	case <-ctx.Done():
		timer.Stop()
	}
	if nackErr := d.Nack(false, true); nackErr != nil {
		log.Error("failed to nack message", sl.Err(nackErr))
	}
}
