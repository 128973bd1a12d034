package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumerMessage_HandleMessages(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	amqpURI, cleanup := brokerURI(ctx, t)
	defer cleanup()

	conn, err := Connect(amqpURI, 3, time.Second)
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Errorf("failed to close connection: %v", err)
		}
	}()

	ch, err := conn.Channel()
	require.NoError(t, err)

	queueName := "consumer-test"
	_, err = ch.QueueDeclare(queueName, false, false, false, false, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)

	received := make([]string, 0)
	var mu sync.Mutex

	handler := func(body []byte) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, string(body))
		wg.Done()
		return nil
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err = ConsumerMessage(ctx, log, ch, queueName, handler)
	require.NoError(t, err)

	for _, msg := range []string{"hello", "world"} {
		err := ch.Publish("", queueName, false, false, amqp.Publishing{
			ContentType: "text/plain",
			Body:        []byte(msg),
		})
		require.NoError(t, err)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Timeout waiting for messages to be processed")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"hello", "world"}, received)
}

func TestConsumerMessage_HandlerErrorTriggersRedelivery(t *testing.T) {
	shortRequeueDelay(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	amqpURI, cleanup := brokerURI(ctx, t)
	defer cleanup()

	conn, err := Connect(amqpURI, 3, time.Second)
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Errorf("failed to close connection: %v", err)
		}
	}()

	ch, err := conn.Channel()
	require.NoError(t, err)

	queueName := "nack-test"
	_, err = ch.QueueDeclare(queueName, false, false, false, false, nil)
	require.NoError(t, err)

	// первая попытка падает, повторная доставка должна пройти
	var mu sync.Mutex
	attempts := 0
	done := make(chan struct{})
	handler := func(_ []byte) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 1 {
			return fmt.Errorf("fail")
		}
		if attempts == 2 {
			close(done)
		}
		return nil
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err = ConsumerMessage(ctx, log, ch, queueName, handler)
	require.NoError(t, err)

	err = ch.Publish("", queueName, false, false, amqp.Publishing{
		ContentType: "text/plain",
		Body:        []byte("bad"),
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Did not receive requeued message after Nack")
	}
}

func TestConsumerMessage_PermanentErrorIsNotRedelivered(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	amqpURI, cleanup := brokerURI(ctx, t)
	defer cleanup()

	conn, err := Connect(amqpURI, 3, time.Second)
	require.NoError(t, err)
	defer conn.Close()

	ch, err := conn.Channel()
	require.NoError(t, err)

	queueName := "drop-test"
	_, err = ch.QueueDeclare(queueName, false, false, false, false, nil)
	require.NoError(t, err)

	var mu sync.Mutex
	calls := map[string]int{}
	goodDone := make(chan struct{})
	handler := func(body []byte) error {
		mu.Lock()
		defer mu.Unlock()
		calls[string(body)]++
		if string(body) == "{" {
			return fmt.Errorf("decode: %w", ErrPermanent)
		}
		close(goodDone)
		return nil
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err = ConsumerMessage(ctx, log, ch, queueName, handler)
	require.NoError(t, err)

	for _, body := range []string{"{", "ok"} {
		require.NoError(t, ch.Publish("", queueName, false, false, amqp.Publishing{Body: []byte(body)}))
	}

	select {
	case <-goodDone:
	case <-time.After(10 * time.Second):
		t.Fatal("valid message was not processed")
	}
	time.Sleep(500 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls["{"])

	queue, err := ch.QueueInspect(queueName)
	require.NoError(t, err)
	assert.Equal(t, 0, queue.Messages)
}

type settleCall struct {
	tag     uint64
	ack     bool
	requeue bool
}

type ackRecorder struct {
	mu    sync.Mutex
	calls []settleCall
}

func (a *ackRecorder) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, settleCall{tag: tag, ack: true})
	return nil
}

func (a *ackRecorder) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, settleCall{tag: tag, requeue: requeue})
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *ackRecorder) snapshot() []settleCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]settleCall(nil), a.calls...)
}

func shortRequeueDelay(t *testing.T) {
	t.Helper()
	prev := requeueDelay
	requeueDelay = 50 * time.Millisecond
	t.Cleanup(func() { requeueDelay = prev })
}

func TestSettle(t *testing.T) {
	shortRequeueDelay(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		err  error
		want settleCall
	}{
		{name: "success acks", err: nil, want: settleCall{tag: 1, ack: true}},
		{name: "permanent error drops", err: fmt.Errorf("bad json: %w", ErrPermanent), want: settleCall{tag: 1}},
		{name: "transient error requeues", err: errors.New("smtp down"), want: settleCall{tag: 1, requeue: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &ackRecorder{}
			settle(context.Background(), log, amqp.Delivery{Acknowledger: rec, DeliveryTag: 1}, tt.err)
			assert.Equal(t, []settleCall{tt.want}, rec.snapshot())
		})
	}
}

func TestSettle_TransientErrorWaitsBeforeRequeue(t *testing.T) {
	shortRequeueDelay(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := &ackRecorder{}

	start := time.Now()
	settle(context.Background(), log, amqp.Delivery{Acknowledger: rec, DeliveryTag: 3}, errors.New("smtp down"))

	assert.GreaterOrEqual(t, time.Since(start), requeueDelay)
	assert.Equal(t, []settleCall{{tag: 3, requeue: true}}, rec.snapshot())
}

func TestDispatch_WaitDrainsInFlightHandlers(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := &ackRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deliveries := make(chan amqp.Delivery, 1)
	started := make(chan struct{})
	release := make(chan struct{})
	handler := func([]byte) error {
		close(started)
		<-release
		return nil
	}

	wait := dispatch(ctx, log, deliveries, handler)
	deliveries <- amqp.Delivery{Acknowledger: rec, DeliveryTag: 7, Body: []byte("mail")}
	<-started
	cancel()

	waited := make(chan struct{})
	go func() {
		wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("wait returned while handler was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-waited:
	case <-time.After(5 * time.Second):
		t.Fatal("wait did not return after handler finished")
	}
	assert.Equal(t, []settleCall{{tag: 7, ack: true}}, rec.snapshot())
}
