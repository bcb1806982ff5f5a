//go:build integration

package pgdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *postgres.PgDatabase {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := postgres.Connect(&cfg.PGDBCfg{
		Host:     host,
		Port:     port.Port(),
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.RunMigrations(logger.Nop{}, "../../../db/migrations"))

	return db
}

func TestPostgres_Repositories(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	products := NewProductRepo(db.Pool, converter.NewProductConverter())
	customers := NewCustomerRepo(db.Pool, converter.NewCustomerConverter())
	orders := NewOrderRepo(db.Pool, converter.NewOrderConverter())
	outbox := NewOutboxEventRepo(db.Pool, converter.NewOutboxEventConverter())
	txm := NewTransactor(db.Pool)

	t.Run("catalog", func(t *testing.T) {
		all, err := products.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 8)
		assert.Equal(t, "prod-001", all[0].ID)
		assert.Equal(t, "249.99", all[0].PriceBase.StringFixed(2))

		got, err := products.GetByIDs(ctx, []string{"prod-003", "missing"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].IsRestricted)
	})

	t.Run("customers", func(t *testing.T) {
		c, err := customers.GetByEmail(ctx, "BUYER@retailco.com")
		require.NoError(t, err)
		assert.Equal(t, domain.TierSilver, c.PriceTier)

		_, err = customers.GetByEmail(ctx, "ghost@acme.com")
		assert.ErrorIs(t, err, e.ErrCustomerNotFound)
	})

	t.Run("order and outbox commit together", func(t *testing.T) {
		p, err := products.GetByIDs(ctx, []string{"prod-001"})
		require.NoError(t, err)
		items := []domain.CartLineItem{{Product: p[0], Quantity: 2, CalculatedPrice: domain.CalculatePrice(p[0].PriceBase, domain.TierPlatinum)}}
		order := domain.NewOrder("cust-001", items, domain.NewCart(items).Total(), time.Now().UTC().Truncate(time.Millisecond))

		err = txm.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := orders.Create(ctx, order); err != nil {
				return err
			}
			_, err := outbox.Create(ctx, usecase.NewOutboxEvent(uuid.NewString(), usecase.OrderPlaced, order.ID, []byte("payload"), order.CreatedAt))
			return err
		})
		require.NoError(t, err)

		list, err := orders.ListByCustomer(ctx, "cust-001")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, order.ID, list[0].ID)
		assert.True(t, order.Total.Equal(list[0].Total))
		assert.Equal(t, 2, list[0].Items[0].Quantity)

		events, err := outbox.GetAndMarkAsProcessing(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, order.ID, events[0].AggregateID)
		assert.Equal(t, usecase.Processing, events[0].Status)

		require.NoError(t, outbox.ResetToPending(ctx, events[0].ID))
		again, err := outbox.GetAndMarkAsProcessing(ctx, 10)
		require.NoError(t, err)
		require.Len(t, again, 1)
		require.NoError(t, outbox.MarkAsProcessed(ctx, again[0].ID))

		none, err := outbox.GetAndMarkAsProcessing(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("rollback", func(t *testing.T) {
		items := []domain.CartLineItem{{Product: domain.Product{ID: "prod-007"}, Quantity: 1, CalculatedPrice: decimal.NewFromInt(1)}}
		order := domain.NewOrder("cust-003", items, decimal.NewFromInt(1), time.Now())

		err := txm.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := orders.Create(ctx, order); err != nil {
				return err
			}
			return errors.New("sink failed")
		})
		require.Error(t, err)

		list, err := orders.ListByCustomer(ctx, "cust-003")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("writes require transaction", func(t *testing.T) {
		err := orders.Create(ctx, domain.NewOrder("cust-003", nil, decimal.Zero, time.Now()))
		assert.ErrorIs(t, err, e.ErrTransactionNotFound)
	})
}
