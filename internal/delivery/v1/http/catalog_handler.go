package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Каталог товаров
//	@Description	Товары с ценой для уровня покупателя. Товары с ограниченным доступом видны только при одобренной лицензии
//	@Tags			products
//	@Produce		json
//	@Param			X-Session-ID	header		string	false	"Идентификатор сессии"
//	@Param			search			query		string	false	"Поиск по названию, SKU и категории"
//	@Param			category		query		string	false	"Категория; all — все"
//	@Param			stock			query		string	false	"all | in-stock | ships-today"
//	@Success		200				{object}	ProductListResponse
//	@Failure		400				{object}	ErrorResponse	"Неизвестный фильтр"
//	@Router			/products [get]
func (c *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	stock, ok := usecase.ParseStockFilter(q.Get("stock"))
	if !ok {
		c.logger.Warnf("%d %s: stock=%s", http.StatusBadRequest, e.ErrInvalidFilter.Error(), q.Get("stock"))
		WriteError(w, e.ErrInvalidFilter)
		return
	}

	customer := SessionFromCtx(r.Context()).Customer()
	res, err := c.catalogUsecase.ListProducts(r.Context(), customer, usecase.NewListProductsReq(q.Get("search"), q.Get("category"), stock))
	if err != nil {
		c.logger.Errorf(err, "Failed to list products")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductListResponse(res))
}

// getProduct
//
//	@Summary	Товар по идентификатору
//	@Tags		products
//	@Produce	json
//	@Param		X-Session-ID	header		string	false	"Идентификатор сессии"
//	@Param		id				path		string	true	"Идентификатор товара"
//	@Success	200				{object}	ProductResponse
//	@Failure	404				{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{id} [get]
func (c *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	customer := SessionFromCtx(r.Context()).Customer()

	view, err := c.catalogUsecase.GetProduct(r.Context(), customer, chi.URLParam(r, "id"))
	if err != nil {
		c.logger.Warnf("Failed to get product: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(*view))
}

// categories
//
//	@Summary	Категории каталога
//	@Tags		products
//	@Produce	json
//	@Success	200	{object}	CategoriesResponse
//	@Router		/categories [get]
func (c *CatalogHandler) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalogUsecase.Categories(r.Context())
	if err != nil {
		c.logger.Errorf(err, "Failed to list categories")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CategoriesResponse{Categories: categories})
}
