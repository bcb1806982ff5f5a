package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// Transactor выполняет fn в одной транзакции хранилища заказов.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// EventEncoder сериализует доменные события для outbox.
type EventEncoder interface {
	EncodeOrderPlaced(order *domain.Order) ([]byte, error)
}

// ImageLinker превращает ключ объекта хранилища в ссылку для клиента.
type ImageLinker interface {
	ImageURL(ctx context.Context, key string) (string, error)
}
