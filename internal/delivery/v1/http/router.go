package http

import (
	_ "github.com/DRSN-tech/storefront/docs" // Импорт описания API
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(sessions usecase.SessionProvider, authUC usecase.AuthUC, catalogUC usecase.CatalogUC, checkoutUC usecase.CheckoutUC) {
	r.router.Use(middleware.RequestID, middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(SessionMiddleware(sessions, r.logger))

		registerAuthRoutes(v1, NewAuthHandler(authUC, r.logger))
		registerCatalogRoutes(v1, NewCatalogHandler(catalogUC, r.logger))
		registerCartRoutes(v1, NewCartHandler(catalogUC, r.logger))
		registerCheckoutRoutes(v1, NewCheckoutHandler(checkoutUC, r.logger))
	})
}

func registerAuthRoutes(router chi.Router, h *AuthHandler) {
	router.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", h.login)
		ar.Post("/logout", h.logout)
		ar.Get("/me", h.me)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Get("/products", h.listProducts)
	router.Get("/products/{id}", h.getProduct)
	router.Get("/categories", h.categories)
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(cr chi.Router) {
		cr.Get("/", h.getCart)
		cr.Delete("/", h.clearCart)
		cr.Post("/items", h.addItem)
		cr.Put("/items/{productID}", h.updateItem)
		cr.Delete("/items/{productID}", h.removeItem)
	})
}

func registerCheckoutRoutes(router chi.Router, h *CheckoutHandler) {
	router.Post("/checkout", h.checkout)
	router.Get("/orders", h.listOrders)
}
