package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
)

// Session — состояние одного посетителя: покупатель (если вошёл) и его корзина.
type Session struct {
	ID string

	mu         sync.RWMutex
	checkoutMu sync.Mutex // одно оформление заказа на сессию
	customer   *domain.Customer
	cart       *CartStore
	repo       SessionRepository
	logger     logger.Logger
}

func newSession(id string, customer *domain.Customer, items []domain.CartLineItem, repo SessionRepository, logger logger.Logger) *Session {
	s := &Session{
		ID:       id,
		customer: customer,
		repo:     repo,
		logger:   logger,
	}
	s.cart = NewCartStore(id, items, s, repo, logger)

	return s
}

// Customer возвращает копию покупателя сессии или nil для анонимной сессии.
func (s *Session) Customer() *domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.customer == nil {
		return nil
	}
	c := *s.customer
	return &c
}

// PriceTier возвращает текущий уровень покупателя, для анонимной сессии standard.
func (s *Session) PriceTier() domain.PriceTier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.TierOf(s.customer)
}

// IsAuthenticated сообщает, выполнен ли вход.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.customer != nil
}

// Cart возвращает корзину сессии.
func (s *Session) Cart() *CartStore {
	return s.cart
}

// SetCustomer привязывает покупателя к сессии и сохраняет его.
func (s *Session) SetCustomer(ctx context.Context, customer *domain.Customer) {
	c := *customer

	s.mu.Lock()
	s.customer = &c
	s.mu.Unlock()

	if err := s.repo.SaveCustomer(ctx, s.ID, &c); err != nil {
		s.logger.Warnf("Failed to persist session customer, session_id: %s, error: %v", s.ID, err)
	}
}

// clear сбрасывает покупателя и корзину вместе с их ключами в хранилище.
func (s *Session) clear(ctx context.Context) {
	s.mu.Lock()
	s.customer = nil
	s.mu.Unlock()

	if err := s.repo.DeleteCustomer(ctx, s.ID); err != nil {
		s.logger.Warnf("Failed to delete session customer, session_id: %s, error: %v", s.ID, err)
	}
	s.cart.ClearCart(ctx)
}

// SessionManager владеет активными сессиями. Сессию можно восстановить из хранилища после рестарта.
// Open и Get захватывают сессию, Release отпускает. Захваченная сессия не выгружается.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	lastSeen map[string]time.Time
	holds    map[string]int
	repo     SessionRepository
	logger   logger.Logger
	now      func() time.Time
}

func NewSessionManager(repo SessionRepository, logger logger.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		lastSeen: make(map[string]time.Time),
		holds:    make(map[string]int),
		repo:     repo,
		logger:   logger,
		now:      time.Now,
	}
}

// Open создаёт новую анонимную сессию с пустой корзиной.
func (m *SessionManager) Open(ctx context.Context) *Session {
	s := newSession(uuid.NewString(), nil, nil, m.repo, m.logger)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.lastSeen[s.ID] = m.now()
	m.holds[s.ID]++
	m.mu.Unlock()

	m.logger.Debugf("Session opened, session_id: %s", s.ID)
	return s
}

// Get возвращает активную сессию или восстанавливает её из хранилища.
// Если в хранилище нет ни покупателя, ни корзины, возвращается e.ErrSessionNotFound.
func (m *SessionManager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		m.lastSeen[id] = m.now()
		m.holds[id]++
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	if _, err := uuid.Parse(id); err != nil {
		return nil, e.ErrSessionNotFound
	}

	customer, err := m.repo.LoadCustomer(ctx, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := m.repo.LoadCart(ctx, id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if customer == nil && len(items) == 0 {
		return nil, e.ErrSessionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Сессию мог восстановить параллельный запрос
	if s, ok := m.sessions[id]; ok {
		m.lastSeen[id] = m.now()
		m.holds[id]++
		return s, nil
	}

	s := newSession(id, customer, items, m.repo, m.logger)
	m.sessions[id] = s
	m.lastSeen[id] = m.now()
	m.holds[id]++
	m.logger.Debugf("Session restored, session_id: %s, items: %d", id, len(items))

	return s, nil
}

// Close завершает сессию: очищает покупателя и корзину и забывает сессию.
func (m *SessionManager) Close(ctx context.Context, s *Session) {
	s.clear(ctx)

	m.mu.Lock()
	delete(m.sessions, s.ID)
	delete(m.lastSeen, s.ID)
	delete(m.holds, s.ID)
	m.mu.Unlock()
}

// Release отпускает сессию, полученную через Open или Get. Простой отсчитывается от последнего Release.
func (m *SessionManager) Release(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessions[s.ID] != s {
		return
	}

	m.lastSeen[s.ID] = m.now()
	if m.holds[s.ID] <= 1 {
		delete(m.holds, s.ID)
		return
	}
	m.holds[s.ID]--
}

// EvictIdle выгружает из памяти сессии, к которым не обращались дольше idle.
// Захваченные сессии пропускаются: иначе обработчик писал бы в копию, которую заменит восстановленная.
// Состояние остаётся в хранилище, и сессия восстановится при следующем запросе.
func (m *SessionManager) EvictIdle(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	threshold := m.now().Add(-idle)
	evicted := 0
	for id, seen := range m.lastSeen {
		if seen.Before(threshold) && m.holds[id] == 0 {
			delete(m.sessions, id)
			delete(m.lastSeen, id)
			evicted++
		}
	}

	return evicted
}

// RunEviction периодически выгружает простаивающие сессии до отмены ctx.
func (m *SessionManager) RunEviction(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.EvictIdle(idle); n > 0 {
				m.logger.Debugf("Evicted %d idle sessions", n)
			}
		}
	}
}
