package clients

import (
	"context"
	"strings"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/e"
	r "github.com/redis/go-redis/v9"
)

// KeyPrefix — пространство имён витрины в Redis: под ним лежат корзины, покупатели сессий и кэш товаров.
const KeyPrefix = "storefront"

// RedisClient хранит состояние сессий витрины и кэш каталога.
type RedisClient struct {
	Client *r.Client
}

// NewRedisClient создаёт клиент по настройкам витрины. Соединение не проверяется, для этого есть Ping.
func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	client := r.NewClient(&r.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	return &RedisClient{
		Client: client,
	}
}

// Key собирает ключ витрины: Key("session", id, "cart") даёт "storefront:session:<id>:cart".
func (c *RedisClient) Key(parts ...string) string {
	return KeyPrefix + ":" + strings.Join(parts, ":")
}

// Ping проверяет, что хранилище сессий доступно.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap("session store unreachable at "+c.Client.Options().Addr, err)
	}

	return nil
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}
