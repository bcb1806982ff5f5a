package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/usecase"
)

type OutboxRepo struct {
	mu     sync.Mutex
	seq    int64
	events []*usecase.OutboxEvent
}

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{}
}

func (o *OutboxRepo) Create(ctx context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, ev := range o.events {
		if ev.EventID == event.EventID {
			return nil, fmt.Errorf("event with id %s already exists", event.EventID)
		}
	}

	o.seq++
	stored := *event
	stored.ID = o.seq
	o.events = append(o.events, &stored)

	onRollback(ctx, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, ev := range o.events {
			if ev.ID == stored.ID {
				o.events = append(o.events[:i], o.events[i+1:]...)
				break
			}
		}
	})

	res := stored
	return &res, nil
}

// GetAndMarkAsProcessing забирает до limit событий в статусе pending в порядке создания.
func (o *OutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var out []*usecase.OutboxEvent
	for _, ev := range o.events {
		if len(out) >= limit {
			break
		}
		if ev.Status != usecase.Pending {
			continue
		}

		ev.Status = usecase.Processing
		cp := *ev
		out = append(out, &cp)
	}

	return out, nil
}

func (o *OutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, ev := range o.events {
		if ev.ID == id && ev.Status == usecase.Processing {
			now := time.Now()
			ev.Status = usecase.Processed
			ev.ProcessedAt = &now
			return nil
		}
	}

	// Событие уже обработано или не существует
	return nil
}

func (o *OutboxRepo) ResetToPending(_ context.Context, id int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, ev := range o.events {
		if ev.ID == id && ev.Status == usecase.Processing {
			ev.Status = usecase.Pending
			return nil
		}
	}

	return nil
}
