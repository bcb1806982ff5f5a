package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type AuthHandler struct {
	authUsecase usecase.AuthUC
	logger      logger.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, logger: logger}
}

// login
//
//	@Summary		Вход покупателя
//	@Description	Проверяет учётные данные и привязывает покупателя к сессии
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string			false	"Идентификатор сессии"
//	@Param			request			body		LoginRequest	true	"Учётные данные"
//	@Success		200				{object}	CustomerResponse
//	@Failure		400				{object}	ErrorResponse	"Некорректный запрос"
//	@Failure		401				{object}	ErrorResponse	"Неверный email или пароль"
//	@Router			/auth/login [post]
func (a *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.logger.Warnf("%d %s: %v", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err)
		WriteError(w, err)
		return
	}

	customer, err := a.authUsecase.Login(r.Context(), SessionFromCtx(r.Context()), usecase.NewLoginReq(req.Email, req.Password))
	if err != nil {
		a.logger.Warnf("Login failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCustomerResponse(customer))
}

// logout
//
//	@Summary		Выход покупателя
//	@Description	Удаляет покупателя и корзину сессии
//	@Tags			auth
//	@Param			X-Session-ID	header	string	true	"Идентификатор сессии"
//	@Success		204
//	@Router			/auth/logout [post]
func (a *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.authUsecase.Logout(r.Context(), SessionFromCtx(r.Context())); err != nil {
		a.logger.Errorf(err, "Logout failed")
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// me
//
//	@Summary	Текущий покупатель
//	@Tags		auth
//	@Produce	json
//	@Param		X-Session-ID	header		string	true	"Идентификатор сессии"
//	@Success	200				{object}	CustomerResponse
//	@Failure	401				{object}	ErrorResponse	"Требуется вход"
//	@Router		/auth/me [get]
func (a *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	customer := SessionFromCtx(r.Context()).Customer()
	if customer == nil {
		WriteError(w, e.ErrUnauthorized)
		return
	}

	WriteSuccess(w, http.StatusOK, toCustomerResponse(customer))
}
