package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// CatalogUseCase отдаёт каталог с учётом лицензии и ценового уровня покупателя.
type CatalogUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	imageLinker ImageLinker
	logger      logger.Logger
	sfg         singleflight.Group
}

// NewCatalogUC создаёт use case каталога. Если imageLinker равен nil, ссылки на изображения отдаются как есть.
func NewCatalogUC(productRepo ProductRepository, cacheRepo CacheRepository, imageLinker ImageLinker, logger logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		imageLinker: imageLinker,
		logger:      logger,
	}
}

// ListProducts возвращает видимые покупателю товары, отфильтрованные по поиску, категории и наличию.
func (c *CatalogUseCase) ListProducts(ctx context.Context, customer *domain.Customer, req *ListProductsReq) (*ListProductsRes, error) {
	const op = "CatalogUseCase.ListProducts"

	products, err := c.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var (
		tier   = domain.TierOf(customer)
		search = strings.ToLower(strings.TrimSpace(req.Search))
		result = make([]ProductView, 0, len(products))
		hidden int
	)
	for i := range products {
		p := &products[i]

		// Товары с ограниченным доступом видны только при одобренной лицензии
		if !p.VisibleTo(customer) {
			hidden++
			continue
		}

		if !matchesSearch(p, search) || !matchesCategory(p, req.Category) || !matchesStock(p, req.Stock) {
			continue
		}

		result = append(result, c.toView(ctx, *p, tier))
	}

	return &ListProductsRes{
		Products:         result,
		HiddenRestricted: hidden,
	}, nil
}

// GetProduct возвращает товар по ID. Невидимый покупателю товар считается отсутствующим.
func (c *CatalogUseCase) GetProduct(ctx context.Context, customer *domain.Customer, id string) (*ProductView, error) {
	const op = "CatalogUseCase.GetProduct"

	product, err := c.getProduct(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !product.VisibleTo(customer) {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	view := c.toView(ctx, *product, domain.TierOf(customer))
	return &view, nil
}

// Categories возвращает отсортированный список категорий каталога.
func (c *CatalogUseCase) Categories(ctx context.Context) ([]string, error) {
	const op = "CatalogUseCase.Categories"

	products, err := c.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)

	return categories, nil
}

// getProduct ищет товар в кэше, затем в каталоге. Параллельные промахи по одному ID схлопываются.
func (c *CatalogUseCase) getProduct(ctx context.Context, id string) (*domain.Product, error) {
	v, err, _ := c.sfg.Do(id, func() (interface{}, error) {
		cached, err := c.cacheRepo.GetProducts(ctx, []string{id})
		if err == nil {
			if p, ok := cached[id]; ok {
				return &p, nil
			}
		}

		products, err := c.productRepo.GetByIDs(ctx, []string{id})
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			return nil, e.ErrProductNotFound
		}

		// Фоновое добавление товара в кэш
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := c.cacheRepo.SetProducts(bgCtx, products); err != nil {
				c.logger.Warnf("Failed to cache product in background: %v", err)
			}
		}()

		return &products[0], nil
	})
	if err != nil {
		return nil, err
	}

	p := *v.(*domain.Product)
	return &p, nil
}

// toView рассчитывает цену для уровня покупателя и ссылку на изображение.
// Product.ImageURL остаётся ключом хранилища: снимок товара попадает в корзину, а подписанная ссылка истекает.
func (c *CatalogUseCase) toView(ctx context.Context, p domain.Product, tier domain.PriceTier) ProductView {
	view := NewProductView(p, tier)
	if c.imageLinker == nil || p.ImageURL == "" || isAbsoluteURL(p.ImageURL) {
		return view
	}

	link, err := c.imageLinker.ImageURL(ctx, p.ImageURL)
	if err != nil {
		c.logger.Warnf("Failed to resolve image url, product_id: %s, error: %v", p.ID, err)
		return view
	}
	view.ImageLink = link

	return view
}

func matchesSearch(p *domain.Product, search string) bool {
	if search == "" {
		return true
	}

	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.SKU), search) ||
		strings.Contains(strings.ToLower(p.Category), search)
}

func matchesCategory(p *domain.Product, category string) bool {
	return category == "" || category == "all" || p.Category == category
}

func matchesStock(p *domain.Product, stock StockFilter) bool {
	switch stock {
	case StockInStock:
		return p.InStock()
	case StockShipsToday:
		return p.StockWHA > 0
	default:
		return true
	}
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
