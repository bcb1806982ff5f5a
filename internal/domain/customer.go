package domain

// LicenseStatus — статус лицензии покупателя.
type LicenseStatus string

const (
	LicenseApproved LicenseStatus = "Approved"
	LicensePending  LicenseStatus = "Pending"
	LicenseRejected LicenseStatus = "Rejected"
	LicenseNone     LicenseStatus = "None"
)

// Customer описывает покупателя. Ядро только читает эти данные.
type Customer struct {
	ID            string
	Email         string
	CompanyName   string
	LicenseStatus LicenseStatus
	PriceTier     PriceTier
}

// TierOf возвращает ценовой уровень покупателя, без покупателя standard.
func TierOf(c *Customer) PriceTier {
	if c == nil {
		return TierStandard
	}

	return ParsePriceTier(string(c.PriceTier))
}
