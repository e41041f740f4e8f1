package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/kitmed-catalog-service/internal/model"
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/logger"
	"github.com/fekuna/kitmed-catalog-service/internal/rfp"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Consumer is the subset of broker.KafkaConsumer the listener needs.
type Consumer interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type RFPListener struct {
	consumer Consumer
	uc       rfp.UseCase
	logger   logger.ZapLogger

	retries int
	backoff time.Duration
}

func NewRFPListener(consumer Consumer, uc rfp.UseCase, log logger.ZapLogger) *RFPListener {
	return &RFPListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
		retries:  3,
		backoff:  time.Second,
	}
}

// Start consumes until ctx is cancelled. Offsets are committed after a
// message has been handled.
func (l *RFPListener) Start(ctx context.Context) error {
	l.logger.Info("Starting RFP Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping RFP Kafka Listener")
			return nil
		default:
			msg, err := l.consumer.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				if !l.sleep(ctx, l.backoff) {
					return nil
				}
				continue
			}

			l.processMessage(ctx, msg.Value)

			if err := l.consumer.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
				l.logger.Error("Failed to commit kafka message",
					zap.Int("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
			}
		}
	}
}

func (l *RFPListener) processMessage(ctx context.Context, value []byte) {
	var event model.RFPEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.Type != model.RFPEventSubmitted || event.RFPID == "" {
		return
	}

	l.logger.Info("Processing rfp.submitted event",
		zap.String("rfp_id", event.RFPID),
		zap.String("reference", event.Reference),
	)

	for attempt := 1; attempt <= l.retries; attempt++ {
		err := l.uc.MarkInReview(ctx, event.RFPID)
		if err == nil {
			return
		}
		l.logger.Error("Failed to move rfp to review",
			zap.String("rfp_id", event.RFPID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if !l.sleep(ctx, l.backoff) {
			return
		}
	}
	// Given up; the request stays new and is handled from the back office.
}

func (l *RFPListener) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
