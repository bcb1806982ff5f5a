package http

import (
	"errors"
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type CheckoutHandler struct {
	checkoutUsecase usecase.CheckoutUC
	logger          logger.Logger
}

func NewCheckoutHandler(checkoutUsecase usecase.CheckoutUC, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutUsecase: checkoutUsecase, logger: logger}
}

// checkout
//
//	@Summary		Оформить заказ
//	@Description	Оформляет заказ из корзины текущего покупателя. При успехе корзина очищается, при ошибке остаётся без изменений
//	@Tags			orders
//	@Produce		json
//	@Param			X-Session-ID	header		string	true	"Идентификатор сессии"
//	@Success		201				{object}	OrderResponse
//	@Failure		401				{object}	ErrorResponse	"Требуется вход"
//	@Failure		422				{object}	ErrorResponse	"Корзина пуста"
//	@Failure		503				{object}	ErrorResponse	"Заказ не оформлен, можно повторить"
//	@Router			/checkout [post]
func (c *CheckoutHandler) checkout(w http.ResponseWriter, r *http.Request) {
	order, err := c.checkoutUsecase.Checkout(r.Context(), SessionFromCtx(r.Context()))
	if err != nil {
		if errors.Is(err, e.ErrOrderNotPlaced) {
			c.logger.Errorf(err, "Checkout failed")
		} else {
			c.logger.Warnf("Checkout rejected: %v", err)
		}
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toOrderResponse(order))
}

// listOrders
//
//	@Summary	История заказов
//	@Tags		orders
//	@Produce	json
//	@Param		X-Session-ID	header		string	true	"Идентификатор сессии"
//	@Success	200				{object}	OrdersResponse
//	@Failure	401				{object}	ErrorResponse	"Требуется вход"
//	@Router		/orders [get]
func (c *CheckoutHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.checkoutUsecase.ListOrders(r.Context(), SessionFromCtx(r.Context()))
	if err != nil {
		c.logger.Warnf("Failed to list orders: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrdersResponse(orders))
}
