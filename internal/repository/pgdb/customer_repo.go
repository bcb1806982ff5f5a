package pgdb

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CustomerRepo реализует справочник покупателей поверх PostgreSQL.
type CustomerRepo struct {
	pool *pgxpool.Pool
	conv converter.CustomerConverter
}

func NewCustomerRepo(pool *pgxpool.Pool, conv converter.CustomerConverter) *CustomerRepo {
	return &CustomerRepo{pool: pool, conv: conv}
}

// GetByEmail ищет покупателя по email без учёта регистра.
func (c *CustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `
		SELECT id, email, company_name, license_status, price_tier
		FROM customers
		WHERE LOWER(email) = $1
	`

	var model converter.CustomerModel
	err := c.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&model.ID, &model.Email, &model.CompanyName, &model.LicenseStatus, &model.PriceTier,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, e.ErrCustomerNotFound
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}
