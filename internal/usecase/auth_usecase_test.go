package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuth(t *testing.T) (*AuthUseCase, *SessionManager, *mockSessionRepo) {
	t.Helper()
	repo := newMockSessionRepo()
	sessions := NewSessionManager(repo, logger.Nop{})
	customers := &mockCustomerRepo{customers: []domain.Customer{
		{ID: "c1", Email: "admin@acme.com", CompanyName: "Acme", LicenseStatus: domain.LicenseApproved, PriceTier: domain.TierPlatinum},
	}}
	return NewAuthUC(customers, sessions, 0, logger.Nop{}), sessions, repo
}

func TestLogin_Success(t *testing.T) {
	auth, sessions, repo := setupAuth(t)
	ctx := context.Background()
	s := sessions.Open(ctx)

	c, err := auth.Login(ctx, s, NewLoginReq("ADMIN@acme.com", "pass"))
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, domain.TierPlatinum, s.PriceTier())
	assert.Equal(t, "c1", repo.customers[s.ID].ID)
}

func TestLogin_GenericFailure(t *testing.T) {
	auth, sessions, _ := setupAuth(t)
	ctx := context.Background()
	s := sessions.Open(ctx)

	cases := []*LoginReq{
		NewLoginReq("nobody@acme.com", "password"),
		NewLoginReq("admin@acme.com", "abc"),
		NewLoginReq("admin@acme.com", ""),
		NewLoginReq("   ", "password"),
	}
	for _, req := range cases {
		_, err := auth.Login(ctx, s, req)
		assert.ErrorIs(t, err, e.ErrInvalidCredentials, req.Email)
		assert.Equal(t, "invalid email or password", err.Error())
	}
	assert.False(t, s.IsAuthenticated())
}

func TestLogin_DirectoryError(t *testing.T) {
	sessions := NewSessionManager(newMockSessionRepo(), logger.Nop{})
	auth := NewAuthUC(&mockCustomerRepo{err: errors.New("db down")}, sessions, 0, logger.Nop{})
	ctx := context.Background()

	_, err := auth.Login(ctx, sessions.Open(ctx), NewLoginReq("admin@acme.com", "password"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, e.ErrInvalidCredentials)
}

func TestLogin_DelayRespectsContext(t *testing.T) {
	sessions := NewSessionManager(newMockSessionRepo(), logger.Nop{})
	auth := NewAuthUC(&mockCustomerRepo{}, sessions, time.Hour, logger.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := auth.Login(ctx, sessions.Open(context.Background()), NewLoginReq("a@b.c", "pass"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogout_ClearsCustomerAndCart(t *testing.T) {
	auth, sessions, repo := setupAuth(t)
	ctx := context.Background()
	s := sessions.Open(ctx)

	_, err := auth.Login(ctx, s, NewLoginReq("admin@acme.com", "password"))
	require.NoError(t, err)
	s.Cart().AddToCart(ctx, testProduct("a", "10"), 3)

	require.NoError(t, auth.Logout(ctx, s))

	assert.False(t, s.IsAuthenticated())
	assert.Zero(t, s.Cart().ItemCount())
	assert.NotContains(t, repo.customers, s.ID)
	assert.NotContains(t, repo.carts, s.ID)
}
