package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
)

// CheckoutUseCase оформляет заказ из корзины сессии.
type CheckoutUseCase struct {
	orderRepo  OrderRepository
	outboxRepo OutboxRepository
	txManager  Transactor
	encoder    EventEncoder
	delay      time.Duration
	logger     logger.Logger
	now        func() time.Time
	sleep      func(time.Duration)
}

func NewCheckoutUC(
	orderRepo OrderRepository,
	outboxRepo OutboxRepository,
	txManager Transactor,
	encoder EventEncoder,
	delay time.Duration,
	logger logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orderRepo:  orderRepo,
		outboxRepo: outboxRepo,
		txManager:  txManager,
		encoder:    encoder,
		delay:      delay,
		logger:     logger,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

// Checkout оформляет заказ. После имитации обработки заказ и событие order.placed
// записываются в одной транзакции. После успешной записи из корзины вычитаются только
// оформленные позиции: товары, добавленные во время оформления, остаются в корзине.
// Оформления одной сессии выполняются по очереди.
// Начавшееся оформление не прерывается отменой контекста запроса.
func (c *CheckoutUseCase) Checkout(ctx context.Context, session *Session) (*domain.Order, error) {
	const op = "CheckoutUseCase.Checkout"

	customer := session.Customer()
	if customer == nil {
		return nil, e.ErrUnauthorized
	}

	session.checkoutMu.Lock()
	defer session.checkoutMu.Unlock()

	cart := session.Cart()
	items := cart.Items()
	if len(items) == 0 {
		return nil, e.ErrEmptyCart
	}

	ctx = context.WithoutCancel(ctx)
	if c.delay > 0 {
		c.sleep(c.delay)
	}

	order := domain.NewOrder(customer.ID, items, domain.NewCart(items).Total(), c.now())

	payload, err := c.encoder.EncodeOrderPlaced(order)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	event := NewOutboxEvent(uuid.NewString(), OrderPlaced, order.ID, payload, order.CreatedAt)

	err = c.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := c.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		_, err := c.outboxRepo.Create(ctx, event)
		return err
	})
	if err != nil {
		c.logger.Errorf(err, "Failed to place order, order_id: %s, customer_id: %s", order.ID, customer.ID)
		return nil, e.Wrap(op, fmt.Errorf("%w: %v", e.ErrOrderNotPlaced, err))
	}

	cart.RemoveOrdered(ctx, order.Items)
	c.logger.Infof("Order placed, order_id: %s, customer_id: %s, total: %s", order.ID, customer.ID, order.Total.StringFixed(2))

	return order, nil
}

// ListOrders возвращает заказы покупателя сессии, новые первыми.
func (c *CheckoutUseCase) ListOrders(ctx context.Context, session *Session) ([]domain.Order, error) {
	const op = "CheckoutUseCase.ListOrders"

	customer := session.Customer()
	if customer == nil {
		return nil, e.ErrUnauthorized
	}

	orders, err := c.orderRepo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return orders, nil
}
