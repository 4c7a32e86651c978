package period

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentageChange returns the change from previous to current in percent
// a zero baseline reports 100 when current grew and 0 otherwise
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// ChangeDecimal is PercentageChange on exact decimals, rounded to two places
func ChangeDecimal(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}
