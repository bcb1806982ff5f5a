package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
)

type mockSessionRepo struct {
	m         sync.RWMutex
	carts     map[string][]domain.CartLineItem
	customers map[string]*domain.Customer
	saves     int
	deletes   int
	err       error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{
		carts:     make(map[string][]domain.CartLineItem),
		customers: make(map[string]*domain.Customer),
	}
}

func (m *mockSessionRepo) SaveCart(_ context.Context, id string, items []domain.CartLineItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.saves++
	if m.err != nil {
		return m.err
	}
	m.carts[id] = items
	return nil
}

func (m *mockSessionRepo) DeleteCart(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.deletes++
	if m.err != nil {
		return m.err
	}
	delete(m.carts, id)
	return nil
}

func (m *mockSessionRepo) LoadCart(_ context.Context, id string) ([]domain.CartLineItem, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.carts[id], nil
}

func (m *mockSessionRepo) SaveCustomer(_ context.Context, id string, c *domain.Customer) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.customers[id] = c
	return nil
}

func (m *mockSessionRepo) LoadCustomer(_ context.Context, id string) (*domain.Customer, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.customers[id], nil
}

func (m *mockSessionRepo) DeleteCustomer(_ context.Context, id string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.customers, id)
	return nil
}

func (m *mockSessionRepo) cart(id string) ([]domain.CartLineItem, bool) {
	m.m.RLock()
	defer m.m.RUnlock()
	items, ok := m.carts[id]
	return items, ok
}

type fixedTier struct {
	m    sync.RWMutex
	tier domain.PriceTier
}

func (f *fixedTier) PriceTier() domain.PriceTier {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.tier
}

func (f *fixedTier) set(t domain.PriceTier) {
	f.m.Lock()
	defer f.m.Unlock()
	f.tier = t
}

type mockProductRepo struct {
	products []domain.Product
	calls    int
	m        sync.Mutex
	err      error
}

func (m *mockProductRepo) List(context.Context) ([]domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	m.m.Lock()
	m.calls++
	m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Product
	for _, id := range ids {
		for _, p := range m.products {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type mockCache struct {
	m        sync.RWMutex
	products map[string]domain.Product
	err      error
}

func newMockCache() *mockCache {
	return &mockCache{products: make(map[string]domain.Product)}
}

func (m *mockCache) GetProducts(_ context.Context, ids []string) (map[string]domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]domain.Product)
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *mockCache) SetProducts(_ context.Context, products []domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	for _, p := range products {
		m.products[p.ID] = p
	}
	return nil
}

func (m *mockCache) DeleteProducts(_ context.Context, ids []string) error {
	m.m.Lock()
	defer m.m.Unlock()
	for _, id := range ids {
		delete(m.products, id)
	}
	return nil
}

type mockCustomerRepo struct {
	customers []domain.Customer
	err       error
}

func (m *mockCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.customers {
		if strings.EqualFold(c.Email, email) {
			c := c
			return &c, nil
		}
	}
	return nil, e.ErrCustomerNotFound
}

type mockOrderRepo struct {
	m      sync.Mutex
	orders []domain.Order
	err    error
}

func (m *mockOrderRepo) Create(_ context.Context, o *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, *o)
	return nil
}

func (m *mockOrderRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []domain.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].CustomerID == customerID {
			out = append(out, m.orders[i])
		}
	}
	return out, nil
}

type mockOutboxRepo struct {
	m      sync.Mutex
	events []*OutboxEvent
	err    error
}

func (m *mockOutboxRepo) Create(_ context.Context, ev *OutboxEvent) (*OutboxEvent, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	ev.ID = int64(len(m.events) + 1)
	m.events = append(m.events, ev)
	return ev, nil
}

func (m *mockOutboxRepo) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *mockOutboxRepo) MarkAsProcessed(context.Context, int64) error {
	return nil
}

func (m *mockOutboxRepo) ResetToPending(context.Context, int64) error {
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockEncoder struct {
	err error
}

func (m mockEncoder) EncodeOrderPlaced(o *domain.Order) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []byte(o.ID), nil
}

type mockImageLinker struct{}

func (mockImageLinker) ImageURL(_ context.Context, key string) (string, error) {
	return "https://cdn.test/" + key, nil
}

func testProduct(id, price string) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      "Product " + id,
		PriceBase: decimal.RequireFromString(price),
		StockWHA:  1,
		Category:  "Tools",
		SKU:       "SKU-" + id,
	}
}
