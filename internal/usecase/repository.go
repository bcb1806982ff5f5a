package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// ProductRepository — каталог товаров (Catalog Service).
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}

// CustomerRepository — справочник покупателей. Возвращает e.ErrCustomerNotFound, если покупателя нет.
type CustomerRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

// OrderRepository — приёмник оформленных заказов.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

// OutboxRepository хранит события для публикации. Create выполняется в транзакции вызывающего.
type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	// ResetToPending возвращает неопубликованное событие в очередь.
	ResetToPending(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	DeleteProducts(ctx context.Context, ids []string) error
}

// CartPersister сохраняет снимок корзины сессии.
type CartPersister interface {
	SaveCart(ctx context.Context, sessionID string, items []domain.CartLineItem) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// SessionRepository — хранилище состояния сессии: покупатель и снимок корзины.
// Load-методы возвращают nil без ошибки, если ключа нет.
type SessionRepository interface {
	CartPersister
	LoadCart(ctx context.Context, sessionID string) ([]domain.CartLineItem, error)
	SaveCustomer(ctx context.Context, sessionID string, customer *domain.Customer) error
	LoadCustomer(ctx context.Context, sessionID string) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, sessionID string) error
}

// ImageRepository выдаёт временные ссылки на объекты хранилища изображений.
type ImageRepository interface {
	PresignGet(ctx context.Context, key string) (string, error)
}
