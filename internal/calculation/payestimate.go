package calculation

import (
	"fmt"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rates"
	"github.com/shopspring/decimal"
)

// EstimatePay builds monthly gross and net pay from the basic pay, BAH and BAS tables.
// BAH and BAS are non-taxable; combat pay is excluded from income tax in a combat zone.
func (te *TaxEstimator) EstimatePay(in domain.PayInput) (domain.PayEstimate, error) {
	grade := rates.NormalizeGrade(in.PayGrade)
	yos := max(in.YearsOfService, 0)
	base, ok := rates.BasePay(grade, yos)
	if !ok {
		return domain.PayEstimate{}, fmt.Errorf("no basic pay for grade %q at %d years of service", in.PayGrade, yos)
	}

	est := domain.PayEstimate{
		PayGrade:       grade,
		YearsOfService: yos,
		BasePay:        base,
		BAH:            decimal.Zero,
		BAS:            rates.BAS(grade),
		Notes:          []string{},
	}
	if in.LocalityCode != "" {
		bah, ok := rates.BAH(in.LocalityCode, grade, in.HasDependents)
		if ok {
			est.BAH, est.BAHAvailable = bah, true
		} else {
			est.Notes = append(est.Notes, fmt.Sprintf("No BAH rate on file for %s; housing allowance omitted", in.LocalityCode))
		}
	}

	special := nonNegative(in.MonthlyTaxableSpecialPay)
	combat := nonNegative(in.MonthlyCombatPay)
	est.SpecialPay = special.Add(combat)
	est.Bonus = nonNegative(in.MonthlyBonus)

	taxes, err := te.EstimateTaxes(domain.TaxInput{
		Year:                     in.Year,
		FilingStatus:             in.FilingStatus,
		State:                    in.State,
		MonthlyBasePay:           base,
		MonthlyTaxableSpecialPay: est.SpecialPay,
		MonthlyBonus:             est.Bonus,
		MonthlyCombatPay:         combat,
		InCombatZone:             in.InCombatZone,
	})
	if err != nil {
		return domain.PayEstimate{}, err
	}
	est.Taxes = taxes

	taxableWages := base.Add(est.SpecialPay).Add(est.Bonus)
	est.GrossMonthly = taxableWages.Add(est.BAH).Add(est.BAS)
	est.TaxableMonthly = taxes.Federal.TaxableIncome.Div(twelve)
	est.NonTaxableMonthly = est.GrossMonthly.Sub(est.TaxableMonthly)
	est.NetMonthly = est.GrossMonthly.Sub(taxes.Monthly.Total)
	est.NetPerPaycheck = est.NetMonthly.Div(decimal.NewFromInt(2))
	if in.InCombatZone {
		est.Notes = append(est.Notes, "Combat zone pay excluded from federal and state income tax; FICA still applies")
	}
	return est, nil
}
