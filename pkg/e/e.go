package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownStorageMode   = fmt.Errorf("unknown storage mode")

	// Ошибки сессии и авторизации
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrUnauthorized       = fmt.Errorf("authentication required")
	ErrSessionNotFound    = fmt.Errorf("session not found")

	// Ошибки каталога и корзины
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrEmptyCart       = fmt.Errorf("cart is empty")
	ErrOrderNotPlaced  = fmt.Errorf("order could not be placed")

	// Ошибки кэша
	ErrCacheMiss = fmt.Errorf("cache miss")

	// Ошибки справочника покупателей
	ErrCustomerNotFound = fmt.Errorf("customer not found")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrInvalidQuantity  = fmt.Errorf("quantity must be an integer")
	ErrMissingFields    = fmt.Errorf("missing required fields")
	ErrInvalidJSON      = fmt.Errorf("invalid json body")
	ErrInvalidFilter    = fmt.Errorf("invalid stock filter")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
