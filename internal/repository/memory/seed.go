package memory

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// SeedProducts возвращает демонстрационный каталог.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "prod-001",
			Name:        "Cordless Hammer Drill 18V",
			Description: "Brushless hammer drill with two 5Ah batteries and fast charger.",
			ImageURL:    "products/prod-001.jpg",
			PriceBase:   decimal.RequireFromString("249.99"),
			StockWHA:    42,
			StockWHB:    10,
			Category:    "Power Tools",
			SKU:         "PT-HD18-001",
		},
		{
			ID:          "prod-002",
			Name:        "Industrial Safety Gloves (12 pack)",
			Description: "Cut-resistant level 5 gloves for heavy material handling.",
			ImageURL:    "products/prod-002.jpg",
			PriceBase:   decimal.RequireFromString("59.00"),
			StockWHA:    0,
			StockWHB:    120,
			Category:    "Safety",
			SKU:         "SF-GLV-012",
		},
		{
			ID:           "prod-003",
			Name:         "Compressed Gas Cylinder Regulator",
			Description:  "Two-stage regulator for oxygen and acetylene cylinders. License required.",
			ImageURL:     "products/prod-003.jpg",
			PriceBase:    decimal.RequireFromString("389.50"),
			IsRestricted: true,
			StockWHA:     6,
			Category:     "Welding",
			SKU:          "WD-REG-2S",
		},
		{
			ID:          "prod-004",
			Name:        "Angle Grinder 125mm",
			Description: "1200W angle grinder with anti-kickback clutch.",
			ImageURL:    "products/prod-004.jpg",
			PriceBase:   decimal.RequireFromString("129.00"),
			Category:    "Power Tools",
			SKU:         "PT-AG125-004",
		},
		{
			ID:          "prod-005",
			Name:        "MIG Welding Wire 0.8mm",
			Description: "ER70S-6 copper coated wire, 15kg spool.",
			ImageURL:    "products/prod-005.jpg",
			PriceBase:   decimal.RequireFromString("74.25"),
			StockWHA:    15,
			Category:    "Welding",
			SKU:         "WD-WIRE-08",
		},
		{
			ID:           "prod-006",
			Name:         "Industrial Solvent Degreaser 20L",
			Description:  "Hazardous material. Sold to licensed buyers only.",
			ImageURL:     "products/prod-006.jpg",
			PriceBase:    decimal.RequireFromString("145.00"),
			IsRestricted: true,
			StockWHB:     8,
			Category:     "Chemicals",
			SKU:          "CH-DGR-20L",
		},
		{
			ID:          "prod-007",
			Name:        "Hard Hat with Visor",
			Description: "ANSI Type I hard hat with integrated face shield.",
			ImageURL:    "products/prod-007.jpg",
			PriceBase:   decimal.RequireFromString("34.90"),
			StockWHA:    200,
			Category:    "Safety",
			SKU:         "SF-HAT-VIS",
		},
		{
			ID:          "prod-008",
			Name:        "Heavy Duty Pallet Jack",
			Description: "2500kg capacity manual pallet truck.",
			ImageURL:    "products/prod-008.jpg",
			PriceBase:   decimal.RequireFromString("489.00"),
			StockWHB:    3,
			Category:    "Material Handling",
			SKU:         "MH-PJ-2500",
		},
	}
}

// SeedCustomers возвращает демонстрационных покупателей.
func SeedCustomers() []domain.Customer {
	return []domain.Customer{
		{
			ID:            "cust-001",
			Email:         "admin@acme.com",
			CompanyName:   "Acme Industrial",
			LicenseStatus: domain.LicenseApproved,
			PriceTier:     domain.TierPlatinum,
		},
		{
			ID:            "cust-002",
			Email:         "buyer@retailco.com",
			CompanyName:   "RetailCo Supplies",
			LicenseStatus: domain.LicensePending,
			PriceTier:     domain.TierSilver,
		},
		{
			ID:            "cust-003",
			Email:         "demo@standard.com",
			CompanyName:   "Standard Builders",
			LicenseStatus: domain.LicenseNone,
			PriceTier:     domain.TierStandard,
		},
	}
}
