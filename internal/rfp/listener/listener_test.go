package listener

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeConsumer struct {
	msgs chan kafka.Message

	mu        sync.Mutex
	committed []int64
}

func newFakeConsumer(msgs ...kafka.Message) *fakeConsumer {
	c := &fakeConsumer{msgs: make(chan kafka.Message, len(msgs))}
	for _, m := range msgs {
		c.msgs <- m
	}
	return c
}

func (c *fakeConsumer) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case m := <-c.msgs:
		return m, nil
	}
}

func (c *fakeConsumer) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range msgs {
		c.committed = append(c.committed, m.Offset)
	}
	return nil
}

func (c *fakeConsumer) commits() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.committed...)
}

// fakeUseCase only implements what the listener calls.
type fakeUseCase struct {
	rfp.UseCase

	mu       sync.Mutex
	failures int
	calls    []string
}

func (f *fakeUseCase) MarkInReview(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	if f.failures > 0 {
		f.failures--
		return errors.New("db unavailable")
	}
	return nil
}

func (f *fakeUseCase) marked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func event(t *testing.T, offset int64, typ, id string) kafka.Message {
	t.Helper()
	b, err := json.Marshal(model.RFPEvent{Type: typ, RFPID: id, Reference: "RFP-20260314-AAAAAA"})
	require.NoError(t, err)
	return kafka.Message{Offset: offset, Value: b}
}

func run(l *RFPListener) (context.CancelFunc, <-chan error) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Start(ctx) }()
	return cancel, done
}

func stop(t *testing.T, cancel context.CancelFunc, done <-chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestListenerMarksSubmittedRequests(t *testing.T) {
	defer goleak.VerifyNone(t)

	consumer := newFakeConsumer(
		event(t, 1, model.RFPEventSubmitted, "r1"),
		event(t, 2, "rfp.other", "r2"),
		kafka.Message{Offset: 3, Value: []byte("{not json")},
		event(t, 4, model.RFPEventSubmitted, "r4"),
	)
	uc := &fakeUseCase{}
	l := NewRFPListener(consumer, uc, logger.NewNop())

	cancel, done := run(l)
	assert.Eventually(t, func() bool { return len(consumer.commits()) == 4 }, time.Second, 5*time.Millisecond)
	stop(t, cancel, done)

	assert.Equal(t, []string{"r1", "r4"}, uc.marked())
	assert.Equal(t, []int64{1, 2, 3, 4}, consumer.commits())
}

func TestListenerRetriesFailedUpdates(t *testing.T) {
	defer goleak.VerifyNone(t)

	consumer := newFakeConsumer(event(t, 7, model.RFPEventSubmitted, "r7"))
	uc := &fakeUseCase{failures: 2}
	l := NewRFPListener(consumer, uc, logger.NewNop())
	l.backoff = time.Millisecond

	cancel, done := run(l)
	assert.Eventually(t, func() bool { return len(consumer.commits()) == 1 }, time.Second, 5*time.Millisecond)
	stop(t, cancel, done)

	assert.Equal(t, []string{"r7", "r7", "r7"}, uc.marked())
}

func TestListenerStopsWhileWaiting(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewRFPListener(newFakeConsumer(), &fakeUseCase{}, logger.NewNop())
	cancel, done := run(l)
	stop(t, cancel, done)
}
