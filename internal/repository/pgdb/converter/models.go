package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL. Цена читается как text.
type ProductModel struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	ImageURL     string `db:"image_url"`
	PriceBase    string `db:"price_base"`
	IsRestricted bool   `db:"is_restricted"`
	StockWHA     int    `db:"stock_wha"`
	StockWHB     int    `db:"stock_whb"`
	Category     string `db:"category"`
	SKU          string `db:"sku"`
}

// CustomerModel представляет запись таблицы customers в PostgreSQL.
type CustomerModel struct {
	ID            string `db:"id"`
	Email         string `db:"email"`
	CompanyName   string `db:"company_name"`
	LicenseStatus string `db:"license_status"`
	PriceTier     string `db:"price_tier"`
}

// OrderModel представляет запись таблицы orders; позиции хранятся в jsonb.
type OrderModel struct {
	ID         string    `db:"id"`
	CustomerID string    `db:"customer_id"`
	Total      string    `db:"total"`
	Status     string    `db:"status"`
	Items      []byte    `db:"items"`
	CreatedAt  time.Time `db:"created_at"`
}

// OrderItemModel — позиция заказа внутри orders.items.
type OrderItemModel struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	SKU             string `json:"sku"`
	Category        string `json:"category"`
	ImageURL        string `json:"image_url"`
	PriceBase       string `json:"price_base"`
	IsRestricted    bool   `json:"is_restricted"`
	Quantity        int    `json:"quantity"`
	CalculatedPrice string `json:"calculated_price"`
}

// OutboxEventModel представляет запись таблицы outbox_events.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID string     `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
