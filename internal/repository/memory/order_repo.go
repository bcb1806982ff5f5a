package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
)

type OrderRepo struct {
	mu     sync.RWMutex
	orders []domain.Order
	ids    map[string]struct{}
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{ids: make(map[string]struct{})}
}

func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.ids[order.ID]; ok {
		return fmt.Errorf("order %s already exists", order.ID)
	}

	stored := *order
	stored.Items = append([]domain.CartLineItem(nil), order.Items...)
	o.orders = append(o.orders, stored)
	o.ids[order.ID] = struct{}{}

	onRollback(ctx, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i := len(o.orders) - 1; i >= 0; i-- {
			if o.orders[i].ID == order.ID {
				o.orders = append(o.orders[:i], o.orders[i+1:]...)
				break
			}
		}
		delete(o.ids, order.ID)
	})

	return nil
}

// ListByCustomer возвращает заказы покупателя, новые первыми.
func (o *OrderRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]domain.Order, 0)
	for i := len(o.orders) - 1; i >= 0; i-- {
		if o.orders[i].CustomerID == customerID {
			out = append(out, o.orders[i])
		}
	}

	return out, nil
}
