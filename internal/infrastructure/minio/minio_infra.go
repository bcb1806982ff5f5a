package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type cachedLink struct {
	url       string
	expiresAt time.Time
}

// MinioInfrastructure выдаёт ссылки на изображения товаров.
// Подписанные ссылки переиспользуются, пока не истекла половина их срока жизни.
type MinioInfrastructure struct {
	imageRepo  usecase.ImageRepository
	logger     logger.Logger
	linkTTL    time.Duration
	maxRetries int

	mu    sync.RWMutex
	links map[string]cachedLink
	now   func() time.Time
}

func NewMinioInfrastructure(imageRepo usecase.ImageRepository, presignTTL time.Duration, logger logger.Logger) *MinioInfrastructure {
	return &MinioInfrastructure{
		imageRepo:  imageRepo,
		logger:     logger,
		linkTTL:    presignTTL / 2,
		maxRetries: 3,
		links:      make(map[string]cachedLink),
		now:        time.Now,
	}
}

// ImageURL возвращает ссылку на объект. Временные ошибки хранилища повторяются с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) ImageURL(ctx context.Context, key string) (string, error) {
	const (
		op          = "MinioInfrastructure.ImageURL"
		baseBackoff = 50 * time.Millisecond
		maxBackoff  = time.Second
	)

	if link, ok := m.cached(key); ok {
		return link, nil
	}

	var lastErr error
	for attempt := 0; attempt < m.maxRetries; attempt++ {
		link, err := m.imageRepo.PresignGet(ctx, key)
		if err == nil {
			m.store(key, link)
			return link, nil
		}
		lastErr = err

		if attempt == m.maxRetries-1 {
			break
		}

		if err := jitter.Sleep(ctx, jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter)); err != nil {
			return "", e.Wrap(op, err)
		}
	}

	m.logger.Warnf("%s: presign failed after %d attempts, key=%s", op, m.maxRetries, key)
	return "", e.Wrap(op, fmt.Errorf("presign %s: %w", key, lastErr))
}

func (m *MinioInfrastructure) cached(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[key]
	if !ok || !m.now().Before(link.expiresAt) {
		return "", false
	}

	return link.url, true
}

func (m *MinioInfrastructure) store(key, url string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links[key] = cachedLink{url: url, expiresAt: m.now().Add(m.linkTTL)}
}
