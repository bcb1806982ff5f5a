package memory

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// ProductRepo — неизменяемый in-memory каталог.
type ProductRepo struct {
	products []domain.Product
	byID     map[string]int
}

func NewProductRepo(products []domain.Product) *ProductRepo {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	return &ProductRepo{products: products, byID: byID}
}

func (p *ProductRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(p.products))
	copy(out, p.products)
	return out, nil
}

// GetByIDs возвращает найденные товары в порядке ids, пропуская неизвестные.
func (p *ProductRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if i, ok := p.byID[id]; ok {
			out = append(out, p.products[i])
		}
	}

	return out, nil
}
