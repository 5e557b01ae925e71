package calculation

import (
	"fmt"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectTransition combines retired pay, VA compensation and civilian salary after service.
// VA compensation and CRSC are non-taxable; retired pay and salary are taxed.
// FICA applies to the civilian salary only.
func (te *TaxEstimator) ProjectTransition(in domain.TransitionInput) (domain.TransitionProjection, error) {
	if err := ValidateRatings(in.Ratings); err != nil {
		return domain.TransitionProjection{}, err
	}
	if err := ValidateRatings(in.CombatRelatedRatings); err != nil {
		return domain.TransitionProjection{}, fmt.Errorf("combat-related: %w", err)
	}

	retirement := CalculateRetirementPay(in.Retirement)
	combined := CombineRatings(in.Ratings)
	va := CalculateVACompensation(combined, in.Dependents)

	combatRating := CombineRatings(in.CombatRelatedRatings)
	combatVA := CalculateVACompensation(combatRating, in.Dependents)
	concurrent := ResolveConcurrentReceipt(domain.ConcurrentReceiptInput{
		CombinedRating:              combined,
		CombatRelatedRating:         combatRating,
		RetirementPay:               retirement.MonthlyPay,
		VACompensation:              va.Monthly,
		CombatRelatedVACompensation: decimal.Min(combatVA.Monthly, va.Monthly),
	})

	p := domain.TransitionProjection{
		Retirement:        retirement,
		CombinedRating:    combined,
		VACompensation:    va,
		ConcurrentReceipt: concurrent,
		MonthlyVA:         va.Monthly,
		MonthlyCRSC:       decimal.Zero,
		MonthlyCivilian:   nonNegative(in.CivilianAnnualSalary).Div(twelve),
	}
	switch concurrent.Recommended {
	case domain.ProgramCRDP:
		p.MonthlyRetirement = retirement.MonthlyPay
	case domain.ProgramCRSC:
		p.MonthlyRetirement = decimal.Max(retirement.MonthlyPay.Sub(va.Monthly), decimal.Zero)
		p.MonthlyCRSC = concurrent.CRSC.Payable
	default:
		// VA waiver: retired pay is reduced dollar for dollar by VA compensation
		p.MonthlyRetirement = decimal.Max(retirement.MonthlyPay.Sub(va.Monthly), decimal.Zero)
	}

	p.MonthlyTotal = p.MonthlyRetirement.Add(p.MonthlyVA).Add(p.MonthlyCRSC).Add(p.MonthlyCivilian)
	p.AnnualTotal = p.MonthlyTotal.Mul(twelve)
	p.TaxableAnnual = p.MonthlyRetirement.Add(p.MonthlyCivilian).Mul(twelve)
	p.NonTaxableAnnual = p.MonthlyVA.Add(p.MonthlyCRSC).Mul(twelve)

	status := in.FilingStatus
	if status == "" {
		status = domain.FilingSingle
	}
	if !status.Valid() {
		return domain.TransitionProjection{}, fmt.Errorf("unknown filing status %q", in.FilingStatus)
	}
	year := te.Tables.ResolveYear(in.Year)
	deduction, err := te.Tables.StandardDeduction(year, status)
	if err != nil {
		return domain.TransitionProjection{}, err
	}
	adjusted := decimal.Max(p.TaxableAnnual.Sub(deduction), decimal.Zero)
	fed, _, err := te.FederalTaxCalc.CalculateFederalTax(adjusted, year, status)
	if err != nil {
		return domain.TransitionProjection{}, fmt.Errorf("federal tax: %w", err)
	}
	fica, err := te.FICATaxCalc.CalculateFICA(nonNegative(in.CivilianAnnualSalary), year, status)
	if err != nil {
		return domain.TransitionProjection{}, fmt.Errorf("fica: %w", err)
	}
	p.FederalTax = fed
	p.StateTax = te.StateTaxCalc.CalculateTax(in.State, adjusted).Tax
	p.FICATax = fica.Total
	p.NetAnnual = p.AnnualTotal.Sub(fed).Sub(p.StateTax).Sub(p.FICATax)
	p.NetMonthly = p.NetAnnual.Div(twelve)
	return p, nil
}
