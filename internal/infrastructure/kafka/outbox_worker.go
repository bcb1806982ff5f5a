package kafka

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// OutboxWorker периодически забирает pending-события из outbox и публикует их в брокер.
// Неопубликованные события возвращаются в очередь и повторяются на следующем проходе.
type OutboxWorker struct {
	repo         usecase.OutboxRepository
	logger       logger.Logger
	producer     usecase.MessageProducer
	pollInterval time.Duration
	batchSize    int
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	pollInterval time.Duration,
	batchSize int,
) *OutboxWorker {
	return &OutboxWorker{
		repo:         repo,
		logger:       logger,
		producer:     producer,
		pollInterval: pollInterval,
		batchSize:    batchSize,
	}
}

// Run блокируется до отмены ctx.
func (w *OutboxWorker) Run(ctx context.Context) error {
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	for {
		if err := jitter.Sleep(ctx, jitter.Duration(w.pollInterval, jitter.DefaultJitter)); err != nil {
			w.logger.Infof("Outbox worker stopped by context cancellation")
			return nil
		}
		w.drain(ctx)
	}
}

// drain обрабатывает пачки, пока они заполняются целиком.
func (w *OutboxWorker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		processed, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Outbox batch failed: %v", err)
			return
		}
		if processed < w.batchSize {
			return
		}
	}
}

func (w *OutboxWorker) processBatch(ctx context.Context) (int, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			w.logger.Warnf("Failed to publish event, event_id: %s, aggregate_id: %s: %v", event.EventID, event.AggregateID, err)
			if err := w.repo.ResetToPending(context.WithoutCancel(ctx), event.ID); err != nil {
				w.logger.Warnf("reset to pending failed: %v", err)
			}
			continue
		}

		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
		published++
	}

	// Если в пачке есть неудачи, откладываем следующий проход до таймера
	if published < len(events) {
		return 0, nil
	}

	return len(events), nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	if err := w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.AggregateID, event.Payload)); err != nil {
		if isRetryableError(err) {
			return e.Wrap("Temporary Kafka failure, will retry", err)
		}
		return e.Wrap("Kafka failure", err)
	}

	return nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
