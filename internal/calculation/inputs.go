package calculation

import (
	"fmt"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// Input validators for the CLI and HTTP boundaries. The calculators themselves
// accept anything and clamp.

// ValidateRetirementInput rejects negative service or pay and unknown systems
func ValidateRetirementInput(in domain.RetirementInput) error {
	if in.System != "" && !in.System.Valid() {
		return fmt.Errorf("unknown retirement system %q", in.System)
	}
	return ValidateNonNegative(map[string]decimal.Decimal{
		"years_of_service":    in.YearsOfService,
		"high_three_base_pay": in.HighThreeBasePay,
	})
}

// ValidateDependents rejects negative child counts
func ValidateDependents(d domain.Dependents) error {
	if d.ChildrenUnder18 < 0 || d.SchoolChildren < 0 {
		return fmt.Errorf("dependent counts cannot be negative")
	}
	return nil
}

// ValidateConcurrentInput rejects out-of-range ratings and negative amounts
func ValidateConcurrentInput(in domain.ConcurrentReceiptInput) error {
	if err := ValidateRatings([]int{in.CombinedRating, in.CombatRelatedRating}); err != nil {
		return err
	}
	return ValidateNonNegative(map[string]decimal.Decimal{
		"retirement_pay":                 in.RetirementPay,
		"va_compensation":                in.VACompensation,
		"combat_related_va_compensation": in.CombatRelatedVACompensation,
	})
}

// ValidateSeparationInput rejects negative inputs and unknown types
func ValidateSeparationInput(in domain.SeparationPayInput) error {
	switch in.Type {
	case "", domain.SeparationFull, domain.SeparationHalf:
	default:
		return fmt.Errorf("unknown separation pay type %q", in.Type)
	}
	return ValidateNonNegative(map[string]decimal.Decimal{
		"years_of_service": in.YearsOfService,
		"monthly_base_pay": in.MonthlyBasePay,
	})
}

// ValidateLeaveInput rejects negative days and pay
func ValidateLeaveInput(in domain.LeaveSellbackInput) error {
	return ValidateNonNegative(map[string]decimal.Decimal{
		"requested_days":   in.RequestedDays,
		"current_balance":  in.CurrentBalance,
		"monthly_base_pay": in.MonthlyBasePay,
	})
}

func validateFilingStatus(f domain.FilingStatus) error {
	if f != "" && !f.Valid() {
		return fmt.Errorf("unknown filing status %q", f)
	}
	return nil
}

// ValidateTaxInput rejects negative pay and unknown filing statuses
func ValidateTaxInput(in domain.TaxInput) error {
	if err := validateFilingStatus(in.FilingStatus); err != nil {
		return err
	}
	return ValidateNonNegative(map[string]decimal.Decimal{
		"monthly_base_pay":            in.MonthlyBasePay,
		"monthly_taxable_special_pay": in.MonthlyTaxableSpecialPay,
		"monthly_bonus":               in.MonthlyBonus,
		"monthly_combat_pay":          in.MonthlyCombatPay,
	})
}

// ValidatePayInput rejects negative service or pay and unknown filing statuses
func ValidatePayInput(in domain.PayInput) error {
	if in.PayGrade == "" {
		return fmt.Errorf("pay_grade is required")
	}
	if in.YearsOfService < 0 {
		return fmt.Errorf("years_of_service cannot be negative, got %d", in.YearsOfService)
	}
	if err := validateFilingStatus(in.FilingStatus); err != nil {
		return err
	}
	return ValidateNonNegative(map[string]decimal.Decimal{
		"monthly_taxable_special_pay": in.MonthlyTaxableSpecialPay,
		"monthly_bonus":               in.MonthlyBonus,
		"monthly_combat_pay":          in.MonthlyCombatPay,
	})
}

// ValidateTransitionInput checks every nested input
func ValidateTransitionInput(in domain.TransitionInput) error {
	if err := ValidateRetirementInput(in.Retirement); err != nil {
		return err
	}
	if err := ValidateRatings(in.Ratings); err != nil {
		return err
	}
	if err := ValidateRatings(in.CombatRelatedRatings); err != nil {
		return fmt.Errorf("combat related %w", err)
	}
	if err := ValidateDependents(in.Dependents); err != nil {
		return err
	}
	if err := validateFilingStatus(in.FilingStatus); err != nil {
		return err
	}
	return ValidateNonNegative(map[string]decimal.Decimal{
		"civilian_annual_salary": in.CivilianAnnualSalary,
	})
}
