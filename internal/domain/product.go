package domain

import "github.com/shopspring/decimal"

// Product описывает товар каталога. Для ядра корзины товар неизменяем.
type Product struct {
	ID           string
	Name         string
	Description  string
	ImageURL     string
	PriceBase    decimal.Decimal
	IsRestricted bool
	StockWHA     int // склад A, отгрузка в день заказа
	StockWHB     int // склад B, отгрузка на следующий день
	Category     string
	SKU          string
}

// Availability — доступность товара с учётом двух складов.
type Availability string

const (
	ShipsToday    Availability = "ships_today"
	ShipsTomorrow Availability = "ships_tomorrow"
	Backorder     Availability = "backorder"
)

// Availability вычисляет доступность: остатки носят информационный характер и не резервируются.
func (p *Product) Availability() Availability {
	switch {
	case p.StockWHA > 0:
		return ShipsToday
	case p.StockWHB > 0:
		return ShipsTomorrow
	default:
		return Backorder
	}
}

// InStock сообщает, есть ли товар хотя бы на одном складе.
func (p *Product) InStock() bool {
	return p.StockWHA > 0 || p.StockWHB > 0
}

// VisibleTo сообщает, может ли покупатель видеть товар.
// Товары с ограниченным доступом видны только покупателям с одобренной лицензией.
func (p *Product) VisibleTo(c *Customer) bool {
	if !p.IsRestricted {
		return true
	}

	return c != nil && c.LicenseStatus == LicenseApproved
}
