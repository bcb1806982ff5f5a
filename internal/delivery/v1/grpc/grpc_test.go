package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/memory"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// sessionStore держит состояние сессий в памяти.
type sessionStore struct {
	customers map[string]*domain.Customer
}

func (s *sessionStore) SaveCart(context.Context, string, []domain.CartLineItem) error { return nil }
func (s *sessionStore) DeleteCart(context.Context, string) error                      { return nil }
func (s *sessionStore) LoadCart(context.Context, string) ([]domain.CartLineItem, error) {
	return nil, nil
}
func (s *sessionStore) SaveCustomer(_ context.Context, id string, c *domain.Customer) error {
	s.customers[id] = c
	return nil
}
func (s *sessionStore) LoadCustomer(_ context.Context, id string) (*domain.Customer, error) {
	return s.customers[id], nil
}
func (s *sessionStore) DeleteCustomer(_ context.Context, id string) error {
	delete(s.customers, id)
	return nil
}

type nopCache struct{}

func (nopCache) GetProducts(context.Context, []string) (map[string]domain.Product, error) {
	return nil, e.ErrCacheMiss
}
func (nopCache) SetProducts(context.Context, []domain.Product) error { return nil }
func (nopCache) DeleteProducts(context.Context, []string) error      { return nil }

func setupGRPC(t *testing.T) (*grpc.ClientConn, *usecase.SessionManager) {
	t.Helper()
	log := logger.Nop{}

	sessions := usecase.NewSessionManager(&sessionStore{customers: map[string]*domain.Customer{}}, log)
	catalogUC := usecase.NewCatalogUC(memory.NewProductRepo(memory.SeedProducts()), nopCache{}, nil, log)

	srv := NewGRPCServer(&cfg.GRPCConfig{}, log)
	srv.RegisterServices(sessions, catalogUC)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.serve(lis) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn, sessions
}

func getProducts(t *testing.T, conn *grpc.ClientConn, req map[string]interface{}) (*structpb.Struct, error) {
	t.Helper()
	in, err := structpb.NewStruct(req)
	require.NoError(t, err)

	out := new(structpb.Struct)
	err = conn.Invoke(context.Background(), "/"+catalogServiceName+"/GetProducts", in, out)
	return out, err
}

func TestCatalogService_AnonymousPrices(t *testing.T) {
	conn, _ := setupGRPC(t)

	res, err := getProducts(t, conn, map[string]interface{}{
		"ids": []interface{}{"prod-001", "prod-003", "prod-999"},
	})
	require.NoError(t, err)

	products := res.GetFields()["products"].GetListValue().GetValues()
	require.Len(t, products, 1)
	p := products[0].GetStructValue().GetFields()
	assert.Equal(t, "prod-001", p["id"].GetStringValue())
	assert.Equal(t, "249.99", p["effective_price"].GetStringValue())

	notFound := res.GetFields()["not_found"].AsInterface()
	assert.ElementsMatch(t, []interface{}{"prod-003", "prod-999"}, notFound)
}

func TestCatalogService_SessionTierPrices(t *testing.T) {
	conn, sessions := setupGRPC(t)

	session := sessions.Open(context.Background())
	session.SetCustomer(context.Background(), &memory.SeedCustomers()[0])

	res, err := getProducts(t, conn, map[string]interface{}{
		"ids":        []interface{}{"prod-001", "prod-003"},
		"session_id": session.ID,
	})
	require.NoError(t, err)

	products := res.GetFields()["products"].GetListValue().GetValues()
	require.Len(t, products, 2)
	p := products[0].GetStructValue().GetFields()
	assert.Equal(t, "212.49", p["effective_price"].GetStringValue())
	assert.Equal(t, "platinum", p["price_tier"].GetStringValue())
}

func TestCatalogService_MissingIDs(t *testing.T) {
	conn, _ := setupGRPC(t)

	_, err := getProducts(t, conn, map[string]interface{}{})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHealth(t *testing.T) {
	conn, _ := setupGRPC(t)

	res, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: catalogServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, res.GetStatus())
}

func TestGRPCErrorResponse(t *testing.T) {
	assert.Equal(t, codes.NotFound, status.Code(GRPCErrorResponse(e.Wrap("op", e.ErrProductNotFound))))
	assert.Equal(t, codes.Unauthenticated, status.Code(GRPCErrorResponse(e.ErrUnauthorized)))
	assert.Equal(t, codes.Internal, status.Code(GRPCErrorResponse(context.Canceled)))
}
