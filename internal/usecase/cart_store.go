package usecase

import (
	"context"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// TierProvider сообщает текущий ценовой уровень покупателя сессии.
type TierProvider interface {
	PriceTier() domain.PriceTier
}

// CartStore — корзина активной сессии.
// Цена позиции фиксируется в момент добавления или изменения количества и не пересчитывается при чтении.
// Все изменения сразу записываются в хранилище сессии; ошибки записи логируются и не возвращаются.
type CartStore struct {
	mu        sync.RWMutex
	sessionID string
	cart      *domain.Cart
	tiers     TierProvider
	persister CartPersister
	logger    logger.Logger
}

func NewCartStore(
	sessionID string,
	items []domain.CartLineItem,
	tiers TierProvider,
	persister CartPersister,
	logger logger.Logger,
) *CartStore {
	return &CartStore{
		sessionID: sessionID,
		cart:      domain.NewCart(items),
		tiers:     tiers,
		persister: persister,
		logger:    logger,
	}
}

// AddToCart добавляет товар. Неположительное количество приводится к 1, количество позиции
// не превышает domain.MaxLineQuantity.
// Для уже добавленного товара количество увеличивается, а цена пересчитывается по текущему уровню.
func (s *CartStore) AddToCart(ctx context.Context, product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	quantity = domain.ClampQuantity(quantity)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Add(product, quantity, domain.CalculatePrice(product.PriceBase, s.tiers.PriceTier()))
	s.persist(ctx)
}

// UpdateQuantity задаёт количество позиции. Количество <= 0 удаляет позицию, неизвестный товар игнорируется.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cart.Find(productID)
	if !ok {
		return
	}

	if quantity <= 0 {
		s.cart.Remove(productID)
	} else {
		s.cart.SetQuantity(productID, domain.ClampQuantity(quantity), domain.CalculatePrice(item.Product.PriceBase, s.tiers.PriceTier()))
	}
	s.persist(ctx)
}

// RemoveOrdered вычитает из корзины оформленные позиции. Единицы, добавленные после
// снимка заказа, остаются в корзине.
func (s *CartStore) RemoveOrdered(ctx context.Context, ordered []domain.CartLineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for i := range ordered {
		if s.cart.Subtract(ordered[i].Product.ID, ordered[i].Quantity) {
			changed = true
		}
	}

	if changed {
		s.persist(ctx)
	}
}

// RemoveFromCart удаляет позицию, если она есть.
func (s *CartStore) RemoveFromCart(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cart.Remove(productID) {
		return
	}
	s.persist(ctx)
}

// ClearCart очищает корзину и удаляет её снимок из хранилища.
func (s *CartStore) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	if err := s.persister.DeleteCart(ctx, s.sessionID); err != nil {
		s.logger.Warnf("Failed to delete cart snapshot, session_id: %s, error: %v", s.sessionID, err)
	}
}

// Total возвращает сумму по сохранённым ценам позиций.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart.Total()
}

// ItemCount возвращает суммарное количество единиц товара.
func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart.ItemCount()
}

// Items возвращает копию позиций в порядке добавления.
func (s *CartStore) Items() []domain.CartLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart.Items()
}

// persist вызывается под s.mu, поэтому снимки пишутся в порядке изменений.
func (s *CartStore) persist(ctx context.Context) {
	items := s.cart.Items()

	var err error
	if len(items) == 0 {
		err = s.persister.DeleteCart(ctx, s.sessionID)
	} else {
		err = s.persister.SaveCart(ctx, s.sessionID, items)
	}

	if err != nil {
		s.logger.Warnf("Failed to persist cart snapshot, session_id: %s, error: %v", s.sessionID, err)
	}
}
