package converter

// ProductRedisModel — JSON-представление товара в кэше. Цена хранится строкой без потери точности.
type ProductRedisModel struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	PriceBase    string `json:"price_base"`
	IsRestricted bool   `json:"is_restricted"`
	StockWHA     int    `json:"stock_WHA"`
	StockWHB     int    `json:"stock_WHB"`
	Category     string `json:"category"`
	SKU          string `json:"sku"`
}

type CustomerRedisModel struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	CompanyName   string `json:"company_name"`
	LicenseStatus string `json:"license_status"`
	PriceTier     string `json:"price_tier"`
}

type CartLineItemRedisModel struct {
	Product         ProductRedisModel `json:"product"`
	Quantity        int               `json:"quantity"`
	CalculatedPrice string            `json:"calculated_price"`
}
