package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Calculators are total: out-of-range inputs are clamped here rather than rejected.
// Boundaries (CLI, HTTP) reject with the Validate helpers before calling in.

// ClampRating bounds a disability rating to [0, 100]
func ClampRating(rating int) int {
	return min(max(rating, 0), 100)
}

// ClampYears bounds years of service at zero
func ClampYears(years decimal.Decimal) decimal.Decimal { return nonNegative(years) }

// ClampMoney bounds an amount at zero
func ClampMoney(amount decimal.Decimal) decimal.Decimal { return nonNegative(amount) }

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ValidateRatings rejects ratings outside 0-100
func ValidateRatings(ratings []int) error {
	for i, r := range ratings {
		if r < 0 || r > 100 {
			return fmt.Errorf("rating %d is %d, must be between 0 and 100", i+1, r)
		}
	}
	return nil
}

// ValidateNonNegative rejects negative values, naming the offending field
func ValidateNonNegative(fields map[string]decimal.Decimal) error {
	for name, v := range fields {
		if v.IsNegative() {
			return fmt.Errorf("%s cannot be negative, got %s", name, v)
		}
	}
	return nil
}
