package calculation

import (
	"fmt"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rates"
	"github.com/shopspring/decimal"
)

// CalculateSeparationPay estimates involuntary separation pay:
// gross = monthly base pay x 12 x rate x years. Net applies a flat 25% withholding
// assumption and is an estimate, not a tax calculation.
func CalculateSeparationPay(in domain.SeparationPayInput) domain.SeparationPayResult {
	years := ClampYears(in.YearsOfService)
	rate := rates.SeparationFullRate
	if in.Type == domain.SeparationHalf {
		rate = rates.SeparationHalfRate
	}
	res := domain.SeparationPayResult{
		Rate:                 rate,
		Gross:                decimal.Zero,
		EstimatedWithholding: decimal.Zero,
		NetEstimate:          decimal.Zero,
	}
	if years.LessThan(rates.SeparationMinYears) {
		res.Reason = fmt.Sprintf("Separation pay requires at least %s years of service", rates.SeparationMinYears)
		return res
	}
	gross := ClampMoney(in.MonthlyBasePay).Mul(twelve).Mul(rate).Mul(years)
	withholding := gross.Mul(rates.SeparationWithholding)
	res.Eligible = true
	res.Reason = fmt.Sprintf("%s years of service qualifies for %s separation pay", years, separationLabel(in.Type))
	res.Gross = gross
	res.EstimatedWithholding = withholding
	res.NetEstimate = gross.Sub(withholding)
	return res
}

func separationLabel(t domain.SeparationPayType) string {
	if t == domain.SeparationHalf {
		return "half"
	}
	return "full"
}
