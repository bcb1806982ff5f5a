package usecase

import (
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// AUTH

// LoginReq — учётные данные для входа.
type LoginReq struct {
	Email    string
	Password string
}

// CATALOG

// StockFilter — фильтр по наличию.
type StockFilter string

const (
	StockAll        StockFilter = "all"
	StockInStock    StockFilter = "in-stock"
	StockShipsToday StockFilter = "ships-today"
)

// ParseStockFilter разбирает фильтр наличия. Пустое значение означает "all".
func ParseStockFilter(s string) (StockFilter, bool) {
	switch StockFilter(s) {
	case "", StockAll:
		return StockAll, true
	case StockInStock:
		return StockInStock, true
	case StockShipsToday:
		return StockShipsToday, true
	default:
		return "", false
	}
}

// ListProductsReq — параметры выборки каталога.
type ListProductsReq struct {
	Search   string
	Category string // пустая строка или "all": все категории
	Stock    StockFilter
}

// ProductView — товар с ценой для конкретного покупателя.
type ProductView struct {
	Product        domain.Product
	ImageLink      string // ссылка для клиента; равна Product.ImageURL, если ключ не требует подписи
	EffectivePrice decimal.Decimal
	Tier           domain.PriceTier
	Availability   domain.Availability
}

// ListProductsRes — результат выборки каталога.
type ListProductsRes struct {
	Products []ProductView
	// HiddenRestricted — сколько товаров с ограниченным доступом скрыто от покупателя.
	HiddenRestricted int
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OrderPlaced OutboxEventType = "order.placed"
)

// OutboxEvent — событие, ожидающее публикации в брокер.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	AggregateID string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// MAPPERS

func NewLoginReq(email, password string) *LoginReq {
	return &LoginReq{Email: email, Password: password}
}

func NewListProductsReq(search, category string, stock StockFilter) *ListProductsReq {
	return &ListProductsReq{
		Search:   search,
		Category: category,
		Stock:    stock,
	}
}

func NewProductView(p domain.Product, tier domain.PriceTier) ProductView {
	return ProductView{
		Product:        p,
		ImageLink:      p.ImageURL,
		EffectivePrice: domain.CalculatePrice(p.PriceBase, tier),
		Tier:           tier,
		Availability:   p.Availability(),
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, aggregateID string, payload []byte, now time.Time) *OutboxEvent {
	return &OutboxEvent{
		EventID:     eventID,
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   now,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}
