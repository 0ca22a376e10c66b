package valueobject

import (
	"math"

	"github.com/shopspring/decimal"
)

// Quantity helpers for the material tracking engine.
//
// The engine sits downstream of a persistence layer that may contain legacy or
// partially migrated rows, so quantities are sanitized rather than rejected:
// negative and non-finite input coerces to zero. Callers that need strict
// validation must validate before handing data to the engine.

// SanitizeQuantity clamps a quantity to be non-negative.
func SanitizeQuantity(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}

// SanitizeQuantityFloat converts a raw float quantity into a non-negative
// decimal. The second return value reports whether the raw value was suspect
// (negative, NaN, or infinite) and had to be coerced.
func SanitizeQuantityFloat(value float64) (decimal.Decimal, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero, true
	}
	if value < 0 {
		return decimal.Zero, true
	}
	return decimal.NewFromFloat(value), false
}

// RequiredQuantity coerces a required quantity to at least one. An unknown or
// zero required quantity would make every delivery look complete, so the floor
// is a documented policy of the engine.
func RequiredQuantity(value decimal.Decimal) decimal.Decimal {
	sanitized := SanitizeQuantity(value)
	one := decimal.NewFromInt(1)
	if sanitized.LessThan(one) {
		return one
	}
	return sanitized
}

// RoundQuantity rounds a quantity to two decimal places, the precision the
// order lines are persisted with.
func RoundQuantity(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}
