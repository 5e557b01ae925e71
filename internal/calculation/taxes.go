package calculation

import (
	"fmt"
	"strings"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rates"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal: annualized monthly pay (x12), filing-status standard deduction, precomputed
//    bracket base tax. Effective rate divides by income before the standard deduction.
//
// 2. Combat Zone Tax Exclusion reduces the federal and state income base by combat pay x12.
//    FICA is always computed on unreduced wages.
//
// 3. State: flat approximation of each state's schedule, applied to the federal adjusted base.
//
// 4. Paychecks: military pay is semimonthly, 24 per year.

// FederalTaxCalculator handles federal income tax calculations
type FederalTaxCalculator struct {
	Tables *rates.Tables
}

// NewFederalTaxCalculator creates a federal calculator over the given tables
func NewFederalTaxCalculator(tables *rates.Tables) *FederalTaxCalculator {
	return &FederalTaxCalculator{Tables: tables}
}

// CalculateFederalTax returns the tax on adjusted (post-deduction) income and its marginal rate
func (ftc *FederalTaxCalculator) CalculateFederalTax(adjustedIncome decimal.Decimal, year int, status domain.FilingStatus) (decimal.Decimal, decimal.Decimal, error) {
	brackets, err := ftc.Tables.Brackets(year, status)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return TaxFromBrackets(adjustedIncome, brackets)
}

// TaxFromBrackets applies baseTax + (income - min) x rate for the bracket containing income
func TaxFromBrackets(income decimal.Decimal, brackets []domain.TaxBracket) (decimal.Decimal, decimal.Decimal, error) {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, nil
	}
	for _, b := range brackets {
		if b.Contains(income) {
			return b.BaseTax.Add(income.Sub(b.Min).Mul(b.Rate)), b.Rate, nil
		}
	}
	return decimal.Zero, decimal.Zero, fmt.Errorf("no bracket contains income %s", income)
}

// StateTaxCalculator applies flat state rates
type StateTaxCalculator struct {
	Tables *rates.Tables
}

// NewStateTaxCalculator creates a state calculator over the given tables
func NewStateTaxCalculator(tables *rates.Tables) *StateTaxCalculator {
	return &StateTaxCalculator{Tables: tables}
}

// CalculateTax returns state tax on the adjusted base. Unknown or blank states owe nothing.
func (stc *StateTaxCalculator) CalculateTax(state string, adjustedIncome decimal.Decimal) domain.StateTaxDetail {
	code := strings.ToUpper(strings.TrimSpace(state))
	detail := domain.StateTaxDetail{State: code, Rate: decimal.Zero, Tax: decimal.Zero}
	rule, ok := stc.Tables.State(code)
	if !ok {
		return detail
	}
	if rule.NoIncomeTax {
		detail.NoIncomeTax = true
		return detail
	}
	detail.Rate = rule.Rate
	detail.Tax = nonNegative(adjustedIncome).Mul(rule.Rate)
	return detail
}

// FICACalculator handles Social Security and Medicare
type FICACalculator struct {
	Tables *rates.Tables
}

// NewFICACalculator creates a payroll tax calculator over the given tables
func NewFICACalculator(tables *rates.Tables) *FICACalculator {
	return &FICACalculator{Tables: tables}
}

// CalculateFICA computes payroll taxes for one year of wages. The Social Security cap
// applies per call; nothing is tracked across calls.
func (fc *FICACalculator) CalculateFICA(wages decimal.Decimal, year int, status domain.FilingStatus) (domain.FICADetail, error) {
	r, err := fc.Tables.FICA(year)
	if err != nil {
		return domain.FICADetail{}, err
	}
	wages = nonNegative(wages)

	// Social Security tax (capped)
	ssTax := decimal.Min(wages, r.SocialSecurityWageBase).Mul(r.SocialSecurityRate)

	// Medicare tax (no cap)
	medicareTax := wages.Mul(r.MedicareRate)

	additional := decimal.Zero
	if threshold, ok := r.AdditionalMedicareThreshold[status]; ok && wages.GreaterThan(threshold) {
		additional = wages.Sub(threshold).Mul(r.AdditionalMedicareRate)
	}

	return domain.FICADetail{
		Wages:              wages,
		SocialSecurityTax:  ssTax,
		MedicareTax:        medicareTax,
		AdditionalMedicare: additional,
		Total:              ssTax.Add(medicareTax).Add(additional),
	}, nil
}

// TaxEstimator handles all tax calculations
type TaxEstimator struct {
	FederalTaxCalc *FederalTaxCalculator
	StateTaxCalc   *StateTaxCalculator
	FICATaxCalc    *FICACalculator
	Tables         *rates.Tables
}

// NewTaxEstimator creates an estimator over the embedded tables
func NewTaxEstimator() *TaxEstimator {
	return NewTaxEstimatorWithTables(rates.Default())
}

// NewTaxEstimatorWithTables creates an estimator over caller-supplied (e.g. overridden) tables
func NewTaxEstimatorWithTables(tables *rates.Tables) *TaxEstimator {
	if tables == nil {
		tables = rates.Default()
	}
	return &TaxEstimator{
		FederalTaxCalc: NewFederalTaxCalculator(tables),
		StateTaxCalc:   NewStateTaxCalculator(tables),
		FICATaxCalc:    NewFICACalculator(tables),
		Tables:         tables,
	}
}

// EstimateTaxes produces the annual, monthly and per-paycheck withholding estimate
func (te *TaxEstimator) EstimateTaxes(in domain.TaxInput) (domain.TaxEstimateResult, error) {
	status := in.FilingStatus
	if status == "" {
		status = domain.FilingSingle
	}
	if !status.Valid() {
		return domain.TaxEstimateResult{}, fmt.Errorf("unknown filing status %q", in.FilingStatus)
	}
	year := te.Tables.ResolveYear(in.Year)

	wages := nonNegative(in.MonthlyBasePay).
		Add(nonNegative(in.MonthlyTaxableSpecialPay)).
		Add(nonNegative(in.MonthlyBonus)).
		Mul(twelve)

	exclusion := decimal.Zero
	if in.InCombatZone {
		exclusion = decimal.Min(nonNegative(in.MonthlyCombatPay).Mul(twelve), wages)
	}
	taxable := wages.Sub(exclusion)

	deduction, err := te.Tables.StandardDeduction(year, status)
	if err != nil {
		return domain.TaxEstimateResult{}, err
	}
	adjusted := decimal.Max(taxable.Sub(deduction), decimal.Zero)

	fedTax, marginal, err := te.FederalTaxCalc.CalculateFederalTax(adjusted, year, status)
	if err != nil {
		return domain.TaxEstimateResult{}, fmt.Errorf("federal tax: %w", err)
	}
	effective := decimal.Zero
	if taxable.IsPositive() {
		effective = fedTax.Div(taxable)
	}

	state := te.StateTaxCalc.CalculateTax(in.State, adjusted)

	fica, err := te.FICATaxCalc.CalculateFICA(wages, year, status)
	if err != nil {
		return domain.TaxEstimateResult{}, fmt.Errorf("fica: %w", err)
	}

	annual := domain.TaxBreakdown{
		Federal: fedTax,
		State:   state.Tax,
		FICA:    fica.Total,
		Total:   fedTax.Add(state.Tax).Add(fica.Total),
	}
	return domain.TaxEstimateResult{
		Year:         year,
		FilingStatus: status,
		Federal: domain.FederalTaxDetail{
			TaxableIncome:       taxable,
			CombatZoneExclusion: exclusion,
			StandardDeduction:   deduction,
			AdjustedIncome:      adjusted,
			MarginalRate:        marginal,
			EffectiveRate:       effective,
			Tax:                 fedTax,
		},
		State:       state,
		FICA:        fica,
		Annual:      annual,
		Monthly:     divideBreakdown(annual, twelve),
		PerPaycheck: divideBreakdown(annual, decimal.NewFromInt(rates.PaychecksPerYear)),
	}, nil
}

func divideBreakdown(b domain.TaxBreakdown, n decimal.Decimal) domain.TaxBreakdown {
	return domain.TaxBreakdown{
		Federal: b.Federal.Div(n),
		State:   b.State.Div(n),
		FICA:    b.FICA.Div(n),
		Total:   b.Total.Div(n),
	}
}
