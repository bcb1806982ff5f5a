package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

// SessionRepo хранит состояние сессии в двух ключах: session:<id>:customer и session:<id>:cart.
// Каждая запись продлевает TTL своего ключа.
type SessionRepo struct {
	client *clients.RedisClient
	conv   converter.SessionConverter
	cfg    *cfg.RedisCfg
}

func NewSessionRepo(client *clients.RedisClient, conv converter.SessionConverter, cfg *cfg.RedisCfg) *SessionRepo {
	return &SessionRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
	}
}

func (s *SessionRepo) SaveCart(ctx context.Context, sessionID string, items []domain.CartLineItem) error {
	data, err := json.Marshal(s.conv.CartToRedisModel(items))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, s.client.Key("session", sessionID, "cart"), data, s.cfg.SessionTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionRepo) LoadCart(ctx context.Context, sessionID string) ([]domain.CartLineItem, error) {
	data, err := s.get(ctx, s.client.Key("session", sessionID, "cart"))
	if err != nil || data == nil {
		return nil, err
	}

	var models []converter.CartLineItemRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := s.conv.CartToEntity(models)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return items, nil
}

func (s *SessionRepo) DeleteCart(ctx context.Context, sessionID string) error {
	if err := s.client.Client.Del(ctx, s.client.Key("session", sessionID, "cart")).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionRepo) SaveCustomer(ctx context.Context, sessionID string, customer *domain.Customer) error {
	data, err := json.Marshal(s.conv.CustomerToRedisModel(customer))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, s.client.Key("session", sessionID, "customer"), data, s.cfg.SessionTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionRepo) LoadCustomer(ctx context.Context, sessionID string) (*domain.Customer, error) {
	data, err := s.get(ctx, s.client.Key("session", sessionID, "customer"))
	if err != nil || data == nil {
		return nil, err
	}

	var model converter.CustomerRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.CustomerToEntity(&model), nil
}

func (s *SessionRepo) DeleteCustomer(ctx context.Context, sessionID string) error {
	if err := s.client.Client.Del(ctx, s.client.Key("session", sessionID, "customer")).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// get возвращает nil без ошибки, если ключа нет.
func (s *SessionRepo) get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}
