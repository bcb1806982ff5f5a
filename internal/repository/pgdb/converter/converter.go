package converter

import (
	"encoding/json"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует товары между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToEntity(model *ProductModel) (*domain.Product, error)
	ToArrEntity(models []ProductModel) ([]domain.Product, error)
}

// CustomerConverter преобразует покупателей между domain и моделью PostgreSQL.
type CustomerConverter interface {
	ToEntity(model *CustomerModel) *domain.Customer
}

// OrderConverter преобразует заказы между domain и моделью PostgreSQL.
type OrderConverter interface {
	ToModel(entity *domain.Order) (*OrderModel, error)
	ToEntity(model *OrderModel) (*domain.Order, error)
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type (
	productConverter     struct{}
	customerConverter    struct{}
	orderConverter       struct{}
	outboxEventConverter struct{}
)

func NewProductConverter() ProductConverter         { return productConverter{} }
func NewCustomerConverter() CustomerConverter       { return customerConverter{} }
func NewOrderConverter() OrderConverter             { return orderConverter{} }
func NewOutboxEventConverter() OutboxEventConverter { return outboxEventConverter{} }

func (productConverter) ToEntity(model *ProductModel) (*domain.Product, error) {
	price, err := decimal.NewFromString(model.PriceBase)
	if err != nil {
		return nil, err
	}

	return &domain.Product{
		ID:           model.ID,
		Name:         model.Name,
		Description:  model.Description,
		ImageURL:     model.ImageURL,
		PriceBase:    price,
		IsRestricted: model.IsRestricted,
		StockWHA:     model.StockWHA,
		StockWHB:     model.StockWHB,
		Category:     model.Category,
		SKU:          model.SKU,
	}, nil
}

func (c productConverter) ToArrEntity(models []ProductModel) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(models))
	for i := range models {
		p, err := c.ToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	return out, nil
}

func (customerConverter) ToEntity(model *CustomerModel) *domain.Customer {
	return &domain.Customer{
		ID:            model.ID,
		Email:         model.Email,
		CompanyName:   model.CompanyName,
		LicenseStatus: domain.LicenseStatus(model.LicenseStatus),
		PriceTier:     domain.ParsePriceTier(model.PriceTier),
	}
}

func (orderConverter) ToModel(entity *domain.Order) (*OrderModel, error) {
	items := make([]OrderItemModel, 0, len(entity.Items))
	for _, it := range entity.Items {
		items = append(items, OrderItemModel{
			ProductID:       it.Product.ID,
			Name:            it.Product.Name,
			SKU:             it.Product.SKU,
			Category:        it.Product.Category,
			ImageURL:        it.Product.ImageURL,
			PriceBase:       it.Product.PriceBase.String(),
			IsRestricted:    it.Product.IsRestricted,
			Quantity:        it.Quantity,
			CalculatedPrice: it.CalculatedPrice.String(),
		})
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	return &OrderModel{
		ID:         entity.ID,
		CustomerID: entity.CustomerID,
		Total:      entity.Total.String(),
		Status:     string(entity.Status),
		Items:      data,
		CreatedAt:  entity.CreatedAt,
	}, nil
}

func (orderConverter) ToEntity(model *OrderModel) (*domain.Order, error) {
	total, err := decimal.NewFromString(model.Total)
	if err != nil {
		return nil, err
	}

	var items []OrderItemModel
	if err := json.Unmarshal(model.Items, &items); err != nil {
		return nil, err
	}

	lines := make([]domain.CartLineItem, 0, len(items))
	for _, it := range items {
		base, err := decimal.NewFromString(it.PriceBase)
		if err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(it.CalculatedPrice)
		if err != nil {
			return nil, err
		}

		lines = append(lines, domain.CartLineItem{
			Product: domain.Product{
				ID:           it.ProductID,
				Name:         it.Name,
				SKU:          it.SKU,
				Category:     it.Category,
				ImageURL:     it.ImageURL,
				PriceBase:    base,
				IsRestricted: it.IsRestricted,
			},
			Quantity:        it.Quantity,
			CalculatedPrice: price,
		})
	}

	return &domain.Order{
		ID:         model.ID,
		CustomerID: model.CustomerID,
		Items:      lines,
		Total:      total,
		Status:     domain.OrderStatus(model.Status),
		CreatedAt:  model.CreatedAt,
	}, nil
}

func (outboxEventConverter) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		AggregateID: entity.AggregateID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (outboxEventConverter) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		AggregateID: model.AggregateID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c outboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	out := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		out = append(out, c.ToEntity(m))
	}

	return out
}
