package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rules"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a fraction (0.22) as a percentage (22.00%)
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func optionalMoney(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return money(*d)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func field(name, value string) []string { return []string{name, value} }

// EligibilityReport lists one row per pay type followed by the summary
func EligibilityReport(res *domain.EligibilityResult) Report {
	r := Report{
		Title:  "Special Pay Eligibility",
		Header: []string{"Pay Type", "Name", "Status", "Met", "Monthly", "Range Min", "Range Max", "Reason"},
		Rows:   make([][]string, 0, len(res.Results)),
		Value:  res,
	}
	for _, pr := range res.Results {
		rangeMin, rangeMax := "", ""
		if pr.AmountRange != nil {
			rangeMin, rangeMax = money(pr.AmountRange.Min), money(pr.AmountRange.Max)
		}
		r.Rows = append(r.Rows, []string{
			string(pr.PayType),
			pr.Name,
			rules.StatusLabel(pr.Status),
			fmt.Sprintf("%d/%d", pr.MetRequirements, pr.TotalRequirements),
			optionalMoney(pr.MonthlyAmount),
			rangeMin,
			rangeMax,
			pr.Reason,
		})
	}

	s := res.Summary
	r.Notes = append(r.Notes,
		fmt.Sprintf("Checked %d pay types: %d eligible, %d potentially eligible, %d not eligible, %d incomplete",
			s.TotalPayTypesChecked, s.EligibleCount, s.PotentiallyEligibleCount, s.NotEligibleCount, s.IncompleteCount),
		fmt.Sprintf("Estimated monthly: %s  annual: %s", FormatCurrency(s.EstimatedMonthlyTotal), FormatCurrency(s.EstimatedAnnualTotal)),
	)
	for _, pr := range res.Results {
		if pr.Status == domain.StatusNotEligible || len(pr.NextSteps) == 0 {
			continue
		}
		r.Notes = append(r.Notes, "", fmt.Sprintf("%s %s", rules.StatusSymbol(pr.Status), pr.Name))
		for _, step := range pr.NextSteps {
			r.Notes = append(r.Notes, "  - "+step)
		}
		if len(pr.DocumentsNeeded) > 0 {
			r.Notes = append(r.Notes, "  Documents: "+strings.Join(pr.DocumentsNeeded, ", "))
		}
	}
	return r
}

// WorksheetReport shows each whole-person step of a combined rating
func WorksheetReport(ws domain.CombinedRatingWorksheet) Report {
	r := Report{
		Title:  "VA Combined Rating",
		Header: []string{"Step", "Rating", "Efficiency Before", "Reduction", "Efficiency After"},
		Value:  ws,
	}
	for i, step := range ws.Steps {
		r.Rows = append(r.Rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(step.Rating),
			money(step.EfficiencyBefore),
			money(step.Reduction),
			money(step.EfficiencyAfter),
		})
	}
	r.Notes = []string{
		fmt.Sprintf("Exact combined value: %s", ws.Exact.StringFixed(2)),
		fmt.Sprintf("Combined rating: %d%%", ws.Combined),
	}
	return r
}

// CompensationReport renders a VA compensation lookup
func CompensationReport(res domain.VACompensationResult) Report {
	return Report{
		Title:  "VA Compensation",
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			field("Rating", strconv.Itoa(res.Rating)),
			field("Table row", res.Row),
			field("Base", money(res.Base)),
			field("Dependent additions", money(res.DependentAdditions)),
			field("Monthly", money(res.Monthly)),
			field("Annual", money(res.Annual)),
		},
		Value: res,
	}
}

// RetirementReport renders a retired pay estimate
func RetirementReport(res domain.RetirementEstimate) Report {
	return Report{
		Title:  "Military Retirement",
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			field("System", string(res.System)),
			field("Years of service", res.YearsOfService.String()),
			field("Per-year rate", FormatPercentage(res.PerYearRate)),
			field("Multiplier", FormatPercentage(res.Multiplier)),
			field("Capped", yesNo(res.Capped)),
			field("Monthly", money(res.MonthlyPay)),
			field("Annual", money(res.AnnualPay)),
		},
		Value: res,
	}
}

// ConcurrentReport compares CRDP and CRSC
func ConcurrentReport(res domain.ConcurrentReceiptResult) Report {
	return Report{
		Title:  "Concurrent Receipt",
		Header: []string{"Program", "Eligible", "Monthly Total", "Reason"},
		Rows: [][]string{
			{"CRDP", yesNo(res.CRDP.Eligible), money(res.CRDP.MonthlyTotal), res.CRDP.Reason},
			{"CRSC", yesNo(res.CRSC.Eligible), money(res.CRSC.MonthlyTotal), res.CRSC.Reason},
		},
		Notes: []string{
			fmt.Sprintf("Recommended: %s (%s per month)", strings.ToUpper(string(res.Recommended)), FormatCurrency(res.MonthlyTotal)),
		},
		Value: res,
	}
}

// SeparationReport renders a separation pay estimate
func SeparationReport(res domain.SeparationPayResult) Report {
	return Report{
		Title:  "Separation Pay",
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			field("Eligible", yesNo(res.Eligible)),
			field("Rate", FormatPercentage(res.Rate)),
			field("Gross", money(res.Gross)),
			field("Estimated withholding", money(res.EstimatedWithholding)),
			field("Net estimate", money(res.NetEstimate)),
		},
		Notes: []string{res.Reason},
		Value: res,
	}
}

// LeaveReport renders a leave sellback calculation
func LeaveReport(res domain.LeaveSellbackResult) Report {
	return Report{
		Title:  "Leave Sellback",
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			field("Sellable days", res.SellableDays.String()),
			field("Terminal leave days", res.TerminalLeaveDays.String()),
			field("Limited by", res.LimitedBy),
			field("Daily rate", money(res.DailyRate)),
			field("Gross value", money(res.GrossValue)),
		},
		Value: res,
	}
}

// TaxReport shows the annual, monthly and per-paycheck breakdown
func TaxReport(res *domain.TaxEstimateResult) Report {
	r := Report{
		Title:  fmt.Sprintf("Tax Estimate %d (%s)", res.Year, res.FilingStatus),
		Header: []string{"Period", "Federal", "State", "FICA", "Total"},
		Rows: [][]string{
			breakdownRow("Annual", res.Annual),
			breakdownRow("Monthly", res.Monthly),
			breakdownRow("Per paycheck", res.PerPaycheck),
		},
		Value: res,
	}
	r.Notes = []string{
		fmt.Sprintf("Taxable income: %s  standard deduction: %s  adjusted: %s",
			FormatCurrency(res.Federal.TaxableIncome), FormatCurrency(res.Federal.StandardDeduction), FormatCurrency(res.Federal.AdjustedIncome)),
		fmt.Sprintf("Marginal rate: %s  effective rate: %s",
			FormatPercentage(res.Federal.MarginalRate), FormatPercentage(res.Federal.EffectiveRate)),
	}
	if res.Federal.CombatZoneExclusion.IsPositive() {
		r.Notes = append(r.Notes, fmt.Sprintf("Combat zone exclusion: %s", FormatCurrency(res.Federal.CombatZoneExclusion)))
	}
	if res.State.NoIncomeTax {
		r.Notes = append(r.Notes, fmt.Sprintf("%s has no state income tax", res.State.State))
	}
	return r
}

func breakdownRow(label string, b domain.TaxBreakdown) []string {
	return []string{label, money(b.Federal), money(b.State), money(b.FICA), money(b.Total)}
}

// PayReport renders a monthly pay estimate
func PayReport(est *domain.PayEstimate) Report {
	bah := money(est.BAH)
	if !est.BAHAvailable {
		bah = "n/a"
	}
	return Report{
		Title:  fmt.Sprintf("Pay Estimate %s (%d years)", est.PayGrade, est.YearsOfService),
		Header: []string{"Item", "Monthly"},
		Rows: [][]string{
			field("Base pay", money(est.BasePay)),
			field("BAH", bah),
			field("BAS", money(est.BAS)),
			field("Special pay", money(est.SpecialPay)),
			field("Bonus", money(est.Bonus)),
			field("Gross", money(est.GrossMonthly)),
			field("Taxable", money(est.TaxableMonthly)),
			field("Non-taxable", money(est.NonTaxableMonthly)),
			field("Taxes", money(est.Taxes.Monthly.Total)),
			field("Net", money(est.NetMonthly)),
			field("Net per paycheck", money(est.NetPerPaycheck)),
		},
		Notes: est.Notes,
		Value: est,
	}
}

// TransitionReport renders the post-service monthly income picture
func TransitionReport(p *domain.TransitionProjection) Report {
	return Report{
		Title:  "Transition Income",
		Header: []string{"Source", "Monthly"},
		Rows: [][]string{
			field("Retirement pay", money(p.MonthlyRetirement)),
			field("VA compensation", money(p.MonthlyVA)),
			field("CRSC", money(p.MonthlyCRSC)),
			field("Civilian income", money(p.MonthlyCivilian)),
			field("Total", money(p.MonthlyTotal)),
			field("Net", money(p.NetMonthly)),
		},
		Notes: []string{
			fmt.Sprintf("Combined VA rating: %d%%  concurrent receipt: %s", p.CombinedRating, p.ConcurrentReceipt.Recommended),
			fmt.Sprintf("Annual taxable: %s  non-taxable: %s", FormatCurrency(p.TaxableAnnual), FormatCurrency(p.NonTaxableAnnual)),
			fmt.Sprintf("Annual taxes: federal %s  state %s  FICA %s",
				FormatCurrency(p.FederalTax), FormatCurrency(p.StateTax), FormatCurrency(p.FICATax)),
		},
		Value: p,
	}
}
