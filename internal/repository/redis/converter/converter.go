package converter

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует товары между domain и моделью кэша.
type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) (*domain.Product, error)
	ToArrRedisModel(entities []domain.Product) []ProductRedisModel
}

// SessionConverter преобразует состояние сессии между domain и моделями Redis.
type SessionConverter interface {
	CustomerToRedisModel(entity *domain.Customer) *CustomerRedisModel
	CustomerToEntity(model *CustomerRedisModel) *domain.Customer
	CartToRedisModel(items []domain.CartLineItem) []CartLineItemRedisModel
	CartToEntity(models []CartLineItemRedisModel) ([]domain.CartLineItem, error)
}

type Converter struct{}

func New() *Converter {
	return &Converter{}
}

func (Converter) ToRedisModel(entity *domain.Product) *ProductRedisModel {
	return &ProductRedisModel{
		ID:           entity.ID,
		Name:         entity.Name,
		Description:  entity.Description,
		ImageURL:     entity.ImageURL,
		PriceBase:    entity.PriceBase.String(),
		IsRestricted: entity.IsRestricted,
		StockWHA:     entity.StockWHA,
		StockWHB:     entity.StockWHB,
		Category:     entity.Category,
		SKU:          entity.SKU,
	}
}

func (Converter) ToEntity(model *ProductRedisModel) (*domain.Product, error) {
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

func (c Converter) ToArrRedisModel(entities []domain.Product) []ProductRedisModel {
	out := make([]ProductRedisModel, 0, len(entities))
	for i := range entities {
		out = append(out, *c.ToRedisModel(&entities[i]))
	}

	return out
}

func (Converter) CustomerToRedisModel(entity *domain.Customer) *CustomerRedisModel {
	return &CustomerRedisModel{
		ID:            entity.ID,
		Email:         entity.Email,
		CompanyName:   entity.CompanyName,
		LicenseStatus: string(entity.LicenseStatus),
		PriceTier:     string(entity.PriceTier),
	}
}

func (Converter) CustomerToEntity(model *CustomerRedisModel) *domain.Customer {
	return &domain.Customer{
		ID:            model.ID,
		Email:         model.Email,
		CompanyName:   model.CompanyName,
		LicenseStatus: domain.LicenseStatus(model.LicenseStatus),
		PriceTier:     domain.ParsePriceTier(model.PriceTier),
	}
}

func (c Converter) CartToRedisModel(items []domain.CartLineItem) []CartLineItemRedisModel {
	out := make([]CartLineItemRedisModel, 0, len(items))
	for i := range items {
		out = append(out, CartLineItemRedisModel{
			Product:         *c.ToRedisModel(&items[i].Product),
			Quantity:        items[i].Quantity,
			CalculatedPrice: items[i].CalculatedPrice.String(),
		})
	}

	return out
}

func (c Converter) CartToEntity(models []CartLineItemRedisModel) ([]domain.CartLineItem, error) {
	out := make([]domain.CartLineItem, 0, len(models))
	for i := range models {
		product, err := c.ToEntity(&models[i].Product)
		if err != nil {
			return nil, err
		}

		price, err := decimal.NewFromString(models[i].CalculatedPrice)
		if err != nil {
			return nil, err
		}

		out = append(out, domain.CartLineItem{
			Product:         *product,
			Quantity:        models[i].Quantity,
			CalculatedPrice: price,
		})
	}

	return out, nil
}
