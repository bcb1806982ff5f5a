package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionID = "session-1"

func setupCartStore(t *testing.T, tier domain.PriceTier) (*CartStore, *fixedTier, *mockSessionRepo) {
	t.Helper()
	tiers := &fixedTier{tier: tier}
	repo := newMockSessionRepo()
	return NewCartStore(testSessionID, nil, tiers, repo, logger.Nop{}), tiers, repo
}

func TestAddToCart_GoldScenario(t *testing.T) {
	store, _, repo := setupCartStore(t, domain.TierGold)
	ctx := context.Background()
	p := testProduct("p1", "100.00")

	store.AddToCart(ctx, p, 2)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "90.00", items[0].CalculatedPrice.StringFixed(2))
	assert.Equal(t, "180.00", store.Total().StringFixed(2))
	assert.Equal(t, 2, store.ItemCount())

	store.AddToCart(ctx, p, 1)

	items = store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "90.00", items[0].CalculatedPrice.StringFixed(2))
	assert.Equal(t, "270.00", store.Total().StringFixed(2))

	persisted, ok := repo.cart(testSessionID)
	require.True(t, ok)
	assert.Equal(t, 3, persisted[0].Quantity)
}

func TestAddToCart_MergesAndUsesCurrentTier(t *testing.T) {
	store, tiers, _ := setupCartStore(t, domain.TierStandard)
	ctx := context.Background()
	p := testProduct("p1", "40")

	store.AddToCart(ctx, p, 2)
	tiers.set(domain.TierPlatinum)
	store.AddToCart(ctx, p, 3)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.True(t, domain.CalculatePrice(p.PriceBase, domain.TierPlatinum).Equal(items[0].CalculatedPrice))
}

func TestAddToCart_ClampsNonPositiveQuantity(t *testing.T) {
	store, _, _ := setupCartStore(t, domain.TierStandard)
	ctx := context.Background()

	store.AddToCart(ctx, testProduct("a", "1"), 0)
	store.AddToCart(ctx, testProduct("b", "1"), -4)

	assert.Equal(t, 2, store.ItemCount())
	for _, item := range store.Items() {
		assert.Equal(t, 1, item.Quantity)
	}
}

func TestTierChange_DoesNotRepriceExistingItems(t *testing.T) {
	store, tiers, _ := setupCartStore(t, domain.TierStandard)
	ctx := context.Background()

	store.AddToCart(ctx, testProduct("a", "100"), 1)
	store.AddToCart(ctx, testProduct("b", "50"), 2)
	tiers.set(domain.TierGold)

	assert.Equal(t, "200", store.Total().String())

	// Изменение количества фиксирует цену по новому уровню только для этой позиции
	store.UpdateQuantity(ctx, "b", 2)
	assert.Equal(t, "190", store.Total().String())
}

func TestUpdateQuantity(t *testing.T) {
	store, _, _ := setupCartStore(t, domain.TierSilver)
	ctx := context.Background()
	store.AddToCart(ctx, testProduct("a", "10"), 1)

	store.UpdateQuantity(ctx, "a", 4)
	assert.Equal(t, 4, store.ItemCount())
	assert.Equal(t, "38.00", store.Total().StringFixed(2))

	store.UpdateQuantity(ctx, "missing", 3)
	assert.Equal(t, 4, store.ItemCount())
	require.Len(t, store.Items(), 1)
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	store, _, repo := setupCartStore(t, domain.TierStandard)
	ctx := context.Background()
	store.AddToCart(ctx, testProduct("a", "10"), 2)
	store.AddToCart(ctx, testProduct("b", "5"), 1)

	store.UpdateQuantity(ctx, "a", 0)

	assert.Equal(t, 1, store.ItemCount())
	assert.Equal(t, "5", store.Total().String())
	_, found := findItem(store.Items(), "a")
	assert.False(t, found)

	store.UpdateQuantity(ctx, "b", -1)
	assert.Zero(t, store.ItemCount())
	_, persisted := repo.cart(testSessionID)
	assert.False(t, persisted)
}

func TestRemoveFromCart_Idempotent(t *testing.T) {
	store, _, _ := setupCartStore(t, domain.TierStandard)
	ctx := context.Background()
	store.AddToCart(ctx, testProduct("a", "10"), 2)
	store.AddToCart(ctx, testProduct("b", "5"), 1)

	store.RemoveFromCart(ctx, "a")
	once := store.Items()
	store.RemoveFromCart(ctx, "a")
	twice := store.Items()

	assert.Equal(t, once, twice)
	assert.Equal(t, 1, store.ItemCount())
}

func TestTotals(t *testing.T) {
	store, _, _ := setupCartStore(t, domain.TierStandard)
	ctx := context.Background()
	store.AddToCart(ctx, testProduct("a", "12.50"), 3)
	store.AddToCart(ctx, testProduct("b", "7.25"), 2)

	want := decimal.RequireFromString("12.50").Mul(decimal.NewFromInt(3)).
		Add(decimal.RequireFromString("7.25").Mul(decimal.NewFromInt(2)))
	assert.True(t, want.Equal(store.Total()))
	assert.Equal(t, 5, store.ItemCount())
}

func TestClearCart_WipesStateAndSnapshot(t *testing.T) {
	store, _, repo := setupCartStore(t, domain.TierGold)
	ctx := context.Background()
	store.AddToCart(ctx, testProduct("a", "10"), 2)

	_, persisted := repo.cart(testSessionID)
	require.True(t, persisted)

	store.ClearCart(ctx)

	assert.True(t, store.Total().IsZero())
	assert.Zero(t, store.ItemCount())
	assert.Empty(t, store.Items())
	_, persisted = repo.cart(testSessionID)
	assert.False(t, persisted)
}

func TestCartStore_PersistenceErrorsAreAbsorbed(t *testing.T) {
	store, _, repo := setupCartStore(t, domain.TierStandard)
	repo.err = errors.New("redis down")
	ctx := context.Background()

	store.AddToCart(ctx, testProduct("a", "10"), 1)
	store.UpdateQuantity(ctx, "a", 2)
	store.ClearCart(ctx)

	assert.Zero(t, store.ItemCount())
	assert.Equal(t, 2, repo.saves)
	assert.Equal(t, 1, repo.deletes)
}

func TestNewCartStore_Rehydrates(t *testing.T) {
	items := []domain.CartLineItem{
		{Product: testProduct("a", "10"), Quantity: 2, CalculatedPrice: decimal.RequireFromString("8.5")},
	}
	store := NewCartStore(testSessionID, items, &fixedTier{tier: domain.TierStandard}, newMockSessionRepo(), logger.Nop{})

	assert.Equal(t, "17", store.Total().String())
	assert.Equal(t, 2, store.ItemCount())
}

func findItem(items []domain.CartLineItem, id string) (domain.CartLineItem, bool) {
	for _, item := range items {
		if item.Product.ID == id {
			return item, true
		}
	}
	return domain.CartLineItem{}, false
}

func TestAddToCart_QuantityIsCapped(t *testing.T) {
	store, _, repo := setupCartStore(t, domain.TierStandard)
	ctx := context.Background()
	p := testProduct("p1", "9.00")

	store.AddToCart(ctx, p, math.MaxInt)
	store.AddToCart(ctx, p, 1)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.MaxLineQuantity, items[0].Quantity)
	assert.Equal(t, domain.MaxLineQuantity, store.ItemCount())
	assert.Equal(t, "89991.00", store.Total().StringFixed(2))

	persisted, ok := repo.cart(testSessionID)
	require.True(t, ok)
	assert.Equal(t, domain.MaxLineQuantity, persisted[0].Quantity)
}

func TestUpdateQuantity_IsCapped(t *testing.T) {
	store, _, _ := setupCartStore(t, domain.TierStandard)
	ctx := context.Background()

	store.AddToCart(ctx, testProduct("p1", "1"), 1)
	store.UpdateQuantity(ctx, "p1", math.MaxInt)

	assert.Equal(t, domain.MaxLineQuantity, store.ItemCount())
}

func TestRemoveOrdered_KeepsNewerUnits(t *testing.T) {
	store, _, repo := setupCartStore(t, domain.TierStandard)
	ctx := context.Background()

	store.AddToCart(ctx, testProduct("p1", "10"), 2)
	ordered := store.Items()
	store.AddToCart(ctx, testProduct("p1", "10"), 3)
	store.AddToCart(ctx, testProduct("p2", "1"), 1)

	store.RemoveOrdered(ctx, ordered)

	items := store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "p2", items[1].Product.ID)

	persisted, ok := repo.cart(testSessionID)
	require.True(t, ok)
	assert.Len(t, persisted, 2)

	store.RemoveOrdered(ctx, store.Items())
	assert.Zero(t, store.ItemCount())
	_, ok = repo.cart(testSessionID)
	assert.False(t, ok)
}
