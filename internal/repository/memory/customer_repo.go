package memory

import (
	"context"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
)

type CustomerRepo struct {
	byEmail map[string]domain.Customer
}

func NewCustomerRepo(customers []domain.Customer) *CustomerRepo {
	byEmail := make(map[string]domain.Customer, len(customers))
	for _, c := range customers {
		byEmail[strings.ToLower(c.Email)] = c
	}

	return &CustomerRepo{byEmail: byEmail}
}

// GetByEmail ищет покупателя без учёта регистра email.
func (c *CustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	customer, ok := c.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, e.ErrCustomerNotFound
	}

	return &customer, nil
}
