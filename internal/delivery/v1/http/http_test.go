package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/infrastructure/kafka"
	"github.com/DRSN-tech/storefront/internal/repository/memory"
	redisrepo "github.com/DRSN-tech/storefront/internal/repository/redis"
	"github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler  http.Handler
	sessions *usecase.SessionManager
	orders   *memory.OrderRepo
	outbox   *memory.OutboxRepo
}

func newRedis(t *testing.T) (*clients.RedisClient, *cfg.RedisCfg) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &clients.RedisClient{Client: client}, &cfg.RedisCfg{
		ProductTTL: time.Minute,
		SessionTTL: time.Hour,
	}
}

func newTestEnv(t *testing.T, rc *clients.RedisClient, redisCfg *cfg.RedisCfg) *testEnv {
	t.Helper()
	log := logger.Nop{}
	conv := converter.New()

	sessions := usecase.NewSessionManager(redisrepo.NewSessionRepo(rc, conv, redisCfg), log)
	orders := memory.NewOrderRepo()
	outbox := memory.NewOutboxRepo()

	authUC := usecase.NewAuthUC(memory.NewCustomerRepo(memory.SeedCustomers()), sessions, 0, log)
	catalogUC := usecase.NewCatalogUC(
		memory.NewProductRepo(memory.SeedProducts()),
		redisrepo.NewCacheRepo(rc, conv, redisCfg, log),
		nil,
		log,
	)
	checkoutUC := usecase.NewCheckoutUC(orders, outbox, memory.NewTransactor(), kafka.NewOrderEventEncoder(), 0, log)

	mux := chi.NewRouter()
	NewRouter(mux, log).Init(sessions, authUC, catalogUC, checkoutUC)

	return &testEnv{handler: mux, sessions: sessions, orders: orders, outbox: outbox}
}

func setup(t *testing.T) *testEnv {
	rc, redisCfg := newRedis(t)
	return newTestEnv(t, rc, redisCfg)
}

func (env *testEnv) do(t *testing.T, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// login входит под демо-покупателем и возвращает идентификатор сессии.
func (env *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: email, Password: "secret"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	sid := rec.Header().Get(SessionHeader)
	require.NotEmpty(t, sid)
	return sid
}

func TestSessionMiddleware_OpensSession(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sid := rec.Header().Get(SessionHeader)
	assert.NotEmpty(t, sid)

	rec = env.do(t, http.MethodGet, "/api/v1/cart", sid, nil)
	assert.Equal(t, sid, rec.Header().Get(SessionHeader))

	rec = env.do(t, http.MethodGet, "/api/v1/cart", "not-a-session", nil)
	assert.NotEqual(t, "not-a-session", rec.Header().Get(SessionHeader))
	assert.NotEmpty(t, rec.Header().Get(SessionHeader))
}

func TestAuth_LoginMeLogout(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "ADMIN@acme.com", Password: "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	customer := decode[CustomerResponse](t, rec)
	assert.Equal(t, "cust-001", customer.ID)
	assert.Equal(t, "platinum", customer.PriceTier)
	assert.Equal(t, "Platinum", customer.TierLabel)
	sid := rec.Header().Get(SessionHeader)

	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@acme.com", decode[CustomerResponse](t, rec).Email)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/logout", sid, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", sid, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidCredentials(t *testing.T) {
	env := setup(t)

	cases := []LoginRequest{
		{Email: "nobody@acme.com", Password: "secret"},
		{Email: "admin@acme.com", Password: "abc"},
		{Email: "", Password: "secret"},
	}
	for _, c := range cases {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", c)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid email or password", decode[ErrorResponse](t, rec).Message)
	}

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", "{broken")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalog_RestrictedProductsHiddenFromAnonymous(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[ProductListResponse](t, rec)
	assert.Equal(t, 2, list.HiddenRestricted)
	assert.Len(t, list.Products, 6)
	for _, p := range list.Products {
		assert.False(t, p.IsRestricted)
		assert.Equal(t, p.PriceBase, p.EffectivePrice)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/products/prod-003", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalog_ApprovedCustomerSeesRestricted(t *testing.T) {
	env := setup(t)
	sid := env.login(t, "admin@acme.com")

	rec := env.do(t, http.MethodGet, "/api/v1/products", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[ProductListResponse](t, rec)
	assert.Equal(t, 0, list.HiddenRestricted)
	assert.Len(t, list.Products, 8)

	rec = env.do(t, http.MethodGet, "/api/v1/products/prod-001", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[ProductResponse](t, rec)
	assert.Equal(t, "249.99", p.PriceBase)
	assert.Equal(t, "212.49", p.EffectivePrice)
	assert.Equal(t, "ships_today", p.Availability)
}

func TestCatalog_Filters(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodGet, "/api/v1/products?search=DRILL", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[ProductListResponse](t, rec)
	require.NotEmpty(t, list.Products)
	for _, p := range list.Products {
		assert.Contains(t, strings.ToLower(p.Name+p.SKU+p.Category), "drill")
	}

	rec = env.do(t, http.MethodGet, "/api/v1/products?stock=ships-today", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, p := range decode[ProductListResponse](t, rec).Products {
		assert.Positive(t, p.StockWHA)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/products?stock=tomorrow", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[CategoriesResponse](t, rec).Categories, "Power Tools")
}

func TestCart_AddUpdateRemove(t *testing.T) {
	env := setup(t)
	sid := env.login(t, "admin@acme.com")

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", sid, map[string]interface{}{"product_id": "prod-001", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := decode[CartResponse](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "212.49", cart.Items[0].CalculatedPrice)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "424.98", cart.Total)
	assert.Equal(t, "15", cart.DiscountPercent)
	assert.Equal(t, "Platinum", cart.TierLabel)

	// Без количества добавляется одна единица
	rec = env.do(t, http.MethodPost, "/api/v1/cart/items", sid, map[string]interface{}{"product_id": "prod-001"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[CartResponse](t, rec).ItemCount)

	rec = env.do(t, http.MethodPut, "/api/v1/cart/items/prod-001", sid, map[string]interface{}{"quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decode[CartResponse](t, rec).ItemCount)

	rec = env.do(t, http.MethodPut, "/api/v1/cart/items/prod-001", sid, map[string]interface{}{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[CartResponse](t, rec)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0.00", cart.Total)

	rec = env.do(t, http.MethodDelete, "/api/v1/cart/items/prod-001", sid, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCart_InvalidInput(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", "", map[string]interface{}{"product_id": "prod-001", "quantity": "two"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "quantity must be an integer", decode[ErrorResponse](t, rec).Message)

	rec = env.do(t, http.MethodPost, "/api/v1/cart/items", "", map[string]interface{}{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/cart/items", "", map[string]interface{}{"product_id": "prod-999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/cart/items/prod-001", "", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCart_ClearAndRestoreAfterRestart(t *testing.T) {
	rc, redisCfg := newRedis(t)
	env := newTestEnv(t, rc, redisCfg)
	sid := env.login(t, "demo@standard.com")

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", sid, map[string]interface{}{"product_id": "prod-002", "quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	// Новый экземпляр сервиса восстанавливает сессию из Redis
	restarted := newTestEnv(t, rc, redisCfg)
	rec = restarted.do(t, http.MethodGet, "/api/v1/cart", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sid, rec.Header().Get(SessionHeader))
	cart := decode[CartResponse](t, rec)
	assert.Equal(t, 3, cart.ItemCount)
	assert.Equal(t, "177.00", cart.Total)

	rec = restarted.do(t, http.MethodDelete, "/api/v1/cart", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[CartResponse](t, rec).ItemCount)
}

func TestCheckout(t *testing.T) {
	env := setup(t)

	rec := env.do(t, http.MethodPost, "/api/v1/checkout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sid := env.login(t, "buyer@retailco.com")

	rec = env.do(t, http.MethodPost, "/api/v1/checkout", sid, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/cart/items", sid, map[string]interface{}{"product_id": "prod-002", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/checkout", sid, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[OrderResponse](t, rec)
	assert.True(t, strings.HasPrefix(order.ID, "ORD-"))
	assert.Equal(t, "Pending", order.Status)
	assert.Equal(t, "112.10", order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "56.05", order.Items[0].CalculatedPrice)

	rec = env.do(t, http.MethodGet, "/api/v1/cart", sid, nil)
	assert.Equal(t, 0, decode[CartResponse](t, rec).ItemCount)

	rec = env.do(t, http.MethodGet, "/api/v1/orders", sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[OrdersResponse](t, rec)
	require.Len(t, orders.Orders, 1)
	assert.Equal(t, order.ID, orders.Orders[0].ID)
}
