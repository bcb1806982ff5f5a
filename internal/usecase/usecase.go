package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

type SessionProvider interface {
	Open(ctx context.Context) *Session
	Get(ctx context.Context, id string) (*Session, error)
	Release(s *Session)
}

type AuthUC interface {
	Login(ctx context.Context, session *Session, req *LoginReq) (*domain.Customer, error)
	Logout(ctx context.Context, session *Session) error
}

type CatalogUC interface {
	ListProducts(ctx context.Context, customer *domain.Customer, req *ListProductsReq) (*ListProductsRes, error)
	GetProduct(ctx context.Context, customer *domain.Customer, id string) (*ProductView, error)
	Categories(ctx context.Context) ([]string, error)
}

type CheckoutUC interface {
	Checkout(ctx context.Context, session *Session) (*domain.Order, error)
	ListOrders(ctx context.Context, session *Session) ([]domain.Order, error)
}
