package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceTier — ценовой уровень покупателя. Уровни упорядочены: standard < silver < gold < platinum.
type PriceTier string

const (
	TierStandard PriceTier = "standard"
	TierSilver   PriceTier = "silver"
	TierGold     PriceTier = "gold"
	TierPlatinum PriceTier = "platinum"
)

// tierDiscounts — статическая таблица скидок. Каждый уровень имеет ровно одну скидку в [0, 1).
var tierDiscounts = map[PriceTier]decimal.Decimal{
	TierStandard: decimal.Zero,
	TierSilver:   decimal.RequireFromString("0.05"),
	TierGold:     decimal.RequireFromString("0.10"),
	TierPlatinum: decimal.RequireFromString("0.15"),
}

// PriceTiers возвращает все уровни в порядке возрастания.
func PriceTiers() []PriceTier {
	return []PriceTier{TierStandard, TierSilver, TierGold, TierPlatinum}
}

// ParsePriceTier разбирает строковое значение уровня. Неизвестные значения приводятся к standard.
func ParsePriceTier(s string) PriceTier {
	tier := PriceTier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tierDiscounts[tier]; !ok {
		return TierStandard
	}

	return tier
}

// Discount возвращает долю скидки для уровня.
func (t PriceTier) Discount() decimal.Decimal {
	if d, ok := tierDiscounts[t]; ok {
		return d
	}

	return decimal.Zero
}

// Rank возвращает порядковый номер уровня (standard = 0).
func (t PriceTier) Rank() int {
	for i, tier := range PriceTiers() {
		if tier == t {
			return i
		}
	}

	return 0
}

// Label возвращает название уровня с заглавной буквы, например "Gold".
func (t PriceTier) Label() string {
	tier := ParsePriceTier(string(t))
	return strings.ToUpper(string(tier[:1])) + string(tier[1:])
}

// CalculatePrice возвращает эффективную цену для уровня: base * (1 - discount[tier]).
// Округление не выполняется, чтобы не накапливать ошибку при умножении на количество.
func CalculatePrice(base decimal.Decimal, tier PriceTier) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(1).Sub(tier.Discount()))
}
