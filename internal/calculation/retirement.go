package calculation

import (
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rates"
)

// CalculateRetirementPay returns longevity retired pay:
// monthly = high-3 base pay x min(years x per-year rate, 75%).
// The 75% cap applies to every system, including BRS.
func CalculateRetirementPay(in domain.RetirementInput) domain.RetirementEstimate {
	years := ClampYears(in.YearsOfService)
	perYear := rates.PerYearRate(in.System)
	multiplier := years.Mul(perYear)
	capped := false
	if multiplier.GreaterThan(rates.RetirementCap) {
		multiplier = rates.RetirementCap
		capped = true
	}
	monthly := ClampMoney(in.HighThreeBasePay).Mul(multiplier)
	system := in.System
	if !system.Valid() {
		system = domain.RetirementHigh3
	}
	return domain.RetirementEstimate{
		System:         system,
		YearsOfService: years,
		PerYearRate:    perYear,
		Multiplier:     multiplier,
		Capped:         capped,
		MonthlyPay:     monthly,
		AnnualPay:      monthly.Mul(twelve),
	}
}
