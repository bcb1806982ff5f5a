package http

import (
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
)

// Денежные значения отдаются строками с двумя знаками после запятой; округление выполняется только здесь.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type CustomerResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	CompanyName   string `json:"company_name"`
	LicenseStatus string `json:"license_status"`
	PriceTier     string `json:"price_tier"`
	TierLabel     string `json:"tier_label"`
}

type ProductResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
	PriceBase      string `json:"price_base"`
	EffectivePrice string `json:"effective_price"`
	PriceTier      string `json:"price_tier"`
	IsRestricted   bool   `json:"is_restricted"`
	StockWHA       int    `json:"stock_WHA"`
	StockWHB       int    `json:"stock_WHB"`
	Category       string `json:"category"`
	SKU            string `json:"sku"`
	Availability   string `json:"availability"`
}

type ProductListResponse struct {
	Products         []ProductResponse `json:"products"`
	HiddenRestricted int               `json:"hidden_restricted"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type CartItemResponse struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	SKU             string `json:"sku"`
	ImageURL        string `json:"image_url"`
	PriceBase       string `json:"price_base"`
	Quantity        int    `json:"quantity"`
	CalculatedPrice string `json:"calculated_price"`
	LineTotal       string `json:"line_total"`
}

type CartResponse struct {
	Items           []CartItemResponse `json:"items"`
	ItemCount       int                `json:"item_count"`
	Total           string             `json:"total"`
	PriceTier       string             `json:"price_tier"`
	TierLabel       string             `json:"tier_label"`
	DiscountPercent string             `json:"discount_percent"`
}

type OrderResponse struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	Total     string             `json:"total"`
	Items     []CartItemResponse `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

type OrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

func toCustomerResponse(c *domain.Customer) CustomerResponse {
	tier := domain.TierOf(c)
	return CustomerResponse{
		ID:            c.ID,
		Email:         c.Email,
		CompanyName:   c.CompanyName,
		LicenseStatus: string(c.LicenseStatus),
		PriceTier:     string(tier),
		TierLabel:     tier.Label(),
	}
}

func toProductResponse(v usecase.ProductView) ProductResponse {
	return ProductResponse{
		ID:             v.Product.ID,
		Name:           v.Product.Name,
		Description:    v.Product.Description,
		ImageURL:       v.ImageLink,
		PriceBase:      v.Product.PriceBase.StringFixed(2),
		EffectivePrice: v.EffectivePrice.StringFixed(2),
		PriceTier:      string(v.Tier),
		IsRestricted:   v.Product.IsRestricted,
		StockWHA:       v.Product.StockWHA,
		StockWHB:       v.Product.StockWHB,
		Category:       v.Product.Category,
		SKU:            v.Product.SKU,
		Availability:   string(v.Availability),
	}
}

func toProductListResponse(res *usecase.ListProductsRes) ProductListResponse {
	products := make([]ProductResponse, 0, len(res.Products))
	for _, v := range res.Products {
		products = append(products, toProductResponse(v))
	}

	return ProductListResponse{
		Products:         products,
		HiddenRestricted: res.HiddenRestricted,
	}
}

func toCartItems(items []domain.CartLineItem) []CartItemResponse {
	out := make([]CartItemResponse, 0, len(items))
	for i := range items {
		it := &items[i]
		out = append(out, CartItemResponse{
			ProductID:       it.Product.ID,
			Name:            it.Product.Name,
			SKU:             it.Product.SKU,
			ImageURL:        it.Product.ImageURL,
			PriceBase:       it.Product.PriceBase.StringFixed(2),
			Quantity:        it.Quantity,
			CalculatedPrice: it.CalculatedPrice.StringFixed(2),
			LineTotal:       it.LineTotal().StringFixed(2),
		})
	}

	return out
}

func toCartResponse(s *usecase.Session) CartResponse {
	cart := s.Cart()
	tier := s.PriceTier()

	return CartResponse{
		Items:           toCartItems(cart.Items()),
		ItemCount:       cart.ItemCount(),
		Total:           cart.Total().StringFixed(2),
		PriceTier:       string(tier),
		TierLabel:       tier.Label(),
		DiscountPercent: tier.Discount().Shift(2).StringFixed(0),
	}
}

func toOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		Status:    string(o.Status),
		Total:     o.Total.StringFixed(2),
		Items:     toCartItems(o.Items),
		CreatedAt: o.CreatedAt,
	}
}

func toOrdersResponse(orders []domain.Order) OrdersResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}

	return OrdersResponse{Orders: out}
}
