package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// CartHandler работает с корзиной текущей сессии. Ошибки ввода количества
// поглощаются корзиной: неположительное количество при добавлении считается единицей,
// при обновлении удаляет позицию.
type CartHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCartHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CartHandler {
	return &CartHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// getCart
//
//	@Summary	Корзина
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string	false	"Идентификатор сессии"
//	@Success	200				{object}	CartResponse
//	@Router		/cart [get]
func (c *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, toCartResponse(SessionFromCtx(r.Context())))
}

// addItem
//
//	@Summary		Добавить товар в корзину
//	@Description	Повторное добавление увеличивает количество и пересчитывает цену по текущему уровню
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string				false	"Идентификатор сессии"
//	@Param			request			body		AddToCartRequest	true	"Товар и количество (по умолчанию 1)"
//	@Success		200				{object}	CartResponse
//	@Failure		400				{object}	ErrorResponse	"Некорректный запрос"
//	@Failure		404				{object}	ErrorResponse	"Товар не найден"
//	@Router			/cart/items [post]
func (c *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		c.logger.Warnf("%d %s: %v", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err)
		WriteError(w, err)
		return
	}

	if req.ProductID == "" {
		c.logger.Warnf("%d %s: product_id", http.StatusBadRequest, e.ErrMissingFields.Error())
		WriteError(w, e.ErrMissingFields)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	session := SessionFromCtx(r.Context())
	view, err := c.catalogUsecase.GetProduct(r.Context(), session.Customer(), req.ProductID)
	if err != nil {
		c.logger.Warnf("Failed to add product %s to cart: %v", req.ProductID, err)
		WriteError(w, err)
		return
	}

	session.Cart().AddToCart(r.Context(), view.Product, quantity)
	WriteSuccess(w, http.StatusOK, toCartResponse(session))
}

// updateItem
//
//	@Summary		Изменить количество
//	@Description	Количество 0 и меньше удаляет позицию. Неизвестный товар игнорируется
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Идентификатор сессии"
//	@Param			productID		path		string					true	"Идентификатор товара"
//	@Param			request			body		UpdateQuantityRequest	true	"Новое количество"
//	@Success		200				{object}	CartResponse
//	@Failure		400				{object}	ErrorResponse	"Некорректный запрос"
//	@Router			/cart/items/{productID} [put]
func (c *CartHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		c.logger.Warnf("%d %s: %v", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err)
		WriteError(w, err)
		return
	}

	if req.Quantity == nil {
		c.logger.Warnf("%d %s: quantity", http.StatusBadRequest, e.ErrMissingFields.Error())
		WriteError(w, e.ErrMissingFields)
		return
	}

	session := SessionFromCtx(r.Context())
	session.Cart().UpdateQuantity(r.Context(), chi.URLParam(r, "productID"), *req.Quantity)
	WriteSuccess(w, http.StatusOK, toCartResponse(session))
}

// removeItem
//
//	@Summary	Удалить позицию
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string	false	"Идентификатор сессии"
//	@Param		productID		path		string	true	"Идентификатор товара"
//	@Success	200				{object}	CartResponse
//	@Router		/cart/items/{productID} [delete]
func (c *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	session := SessionFromCtx(r.Context())
	session.Cart().RemoveFromCart(r.Context(), chi.URLParam(r, "productID"))
	WriteSuccess(w, http.StatusOK, toCartResponse(session))
}

// clearCart
//
//	@Summary	Очистить корзину
//	@Tags		cart
//	@Produce	json
//	@Param		X-Session-ID	header		string	false	"Идентификатор сессии"
//	@Success	200				{object}	CartResponse
//	@Router		/cart [delete]
func (c *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	session := SessionFromCtx(r.Context())
	session.Cart().ClearCart(r.Context())
	WriteSuccess(w, http.StatusOK, toCartResponse(session))
}
