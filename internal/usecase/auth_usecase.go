package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// minPasswordLength — демонстрационная политика паролей: проверяется только длина.
const minPasswordLength = 4

// AuthUseCase реализует вход и выход покупателя.
type AuthUseCase struct {
	customerRepo CustomerRepository
	sessions     *SessionManager
	delay        time.Duration
	logger       logger.Logger
}

func NewAuthUC(customerRepo CustomerRepository, sessions *SessionManager, delay time.Duration, logger logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		customerRepo: customerRepo,
		sessions:     sessions,
		delay:        delay,
		logger:       logger,
	}
}

// Login проверяет учётные данные и привязывает покупателя к сессии.
// Отсутствие аккаунта и слишком короткий пароль дают одну и ту же ошибку e.ErrInvalidCredentials.
func (a *AuthUseCase) Login(ctx context.Context, session *Session, req *LoginReq) (*domain.Customer, error) {
	const op = "AuthUseCase.Login"

	if err := a.wait(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || len(req.Password) < minPasswordLength {
		return nil, e.ErrInvalidCredentials
	}

	customer, err := a.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, e.ErrCustomerNotFound) {
			return nil, e.ErrInvalidCredentials
		}
		return nil, e.Wrap(op, err)
	}

	session.SetCustomer(ctx, customer)
	a.logger.Infof("Customer logged in, customer_id: %s, tier: %s", customer.ID, customer.PriceTier)

	return session.Customer(), nil
}

// Logout сбрасывает покупателя и корзину сессии.
func (a *AuthUseCase) Logout(ctx context.Context, session *Session) error {
	if c := session.Customer(); c != nil {
		a.logger.Infof("Customer logged out, customer_id: %s", c.ID)
	}

	a.sessions.Close(ctx, session)
	return nil
}

// wait имитирует задержку внешнего сервиса аутентификации.
func (a *AuthUseCase) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(a.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
