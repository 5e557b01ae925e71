package rates

import (
	"fmt"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// FEDERAL TAX TABLE ASSUMPTIONS:
//
// 1. Brackets are the published IRS schedules for 2024 and 2025.
// 2. BaseTax is precomputed per bracket and checked by VerifyBrackets, never derived at lookup time.
// 3. Years outside the table resolve to the latest embedded year.

var ordinaryRates = []string{"0.10", "0.12", "0.22", "0.24", "0.32", "0.35", "0.37"}

// schedule builds a seven-band schedule from the lower bounds and precomputed base taxes.
// The last band is unbounded.
func schedule(mins []int64, baseTaxes []string) []domain.TaxBracket {
	brackets := make([]domain.TaxBracket, len(mins))
	for i, lo := range mins {
		b := domain.TaxBracket{
			Min:     decimal.NewFromInt(lo),
			Rate:    decimal.RequireFromString(ordinaryRates[i]),
			BaseTax: decimal.RequireFromString(baseTaxes[i]),
		}
		if i+1 < len(mins) {
			hi := decimal.NewFromInt(mins[i+1])
			b.Max = &hi
		}
		brackets[i] = b
	}
	return brackets
}

func federal2024() domain.FederalTaxYear {
	return domain.FederalTaxYear{
		Year: 2024,
		Brackets: map[domain.FilingStatus][]domain.TaxBracket{
			domain.FilingSingle: schedule(
				[]int64{0, 11600, 47150, 100525, 191950, 243725, 609350},
				[]string{"0", "1160", "5426", "17168.5", "39110.5", "55678.5", "183647.25"}),
			domain.FilingMarriedJointly: schedule(
				[]int64{0, 23200, 94300, 201050, 383900, 487450, 731200},
				[]string{"0", "2320", "10852", "34337", "78221", "111357", "196669.5"}),
			domain.FilingMarriedSeparately: schedule(
				[]int64{0, 11600, 47150, 100525, 191950, 243725, 365600},
				[]string{"0", "1160", "5426", "17168.5", "39110.5", "55678.5", "98334.75"}),
			domain.FilingHeadOfHousehold: schedule(
				[]int64{0, 16550, 63100, 100500, 191950, 243700, 609350},
				[]string{"0", "1655", "7241", "15469", "37417", "53977", "181954.5"}),
		},
		StandardDeductions: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:            decimal.NewFromInt(14600),
			domain.FilingMarriedJointly:    decimal.NewFromInt(29200),
			domain.FilingMarriedSeparately: decimal.NewFromInt(14600),
			domain.FilingHeadOfHousehold:   decimal.NewFromInt(21900),
		},
	}
}

func federal2025() domain.FederalTaxYear {
	return domain.FederalTaxYear{
		Year: 2025,
		Brackets: map[domain.FilingStatus][]domain.TaxBracket{
			domain.FilingSingle: schedule(
				[]int64{0, 11925, 48475, 103350, 197300, 250525, 626350},
				[]string{"0", "1192.5", "5578.5", "17651", "40199", "57231", "188769.75"}),
			domain.FilingMarriedJointly: schedule(
				[]int64{0, 23850, 96950, 206700, 394600, 501050, 751600},
				[]string{"0", "2385", "11157", "35302", "80398", "114462", "202154.5"}),
			domain.FilingMarriedSeparately: schedule(
				[]int64{0, 11925, 48475, 103350, 197300, 250525, 375800},
				[]string{"0", "1192.5", "5578.5", "17651", "40199", "57231", "101077.25"}),
			domain.FilingHeadOfHousehold: schedule(
				[]int64{0, 17000, 64850, 103350, 197300, 250500, 626350},
				[]string{"0", "1700", "7442", "15912", "38460", "55484", "187031.5"}),
		},
		StandardDeductions: map[domain.FilingStatus]decimal.Decimal{
			domain.FilingSingle:            decimal.NewFromInt(15000),
			domain.FilingMarriedJointly:    decimal.NewFromInt(30000),
			domain.FilingMarriedSeparately: decimal.NewFromInt(15000),
			domain.FilingHeadOfHousehold:   decimal.NewFromInt(22500),
		},
	}
}

// VerifyBrackets checks that a schedule starts at zero, is contiguous and ordered,
// ends unbounded, and that every BaseTax equals the cumulative tax of the bands below it.
func VerifyBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("schedule has no brackets")
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("first bracket starts at %s, want 0", brackets[0].Min)
	}
	if !brackets[0].BaseTax.IsZero() {
		return fmt.Errorf("first bracket base tax is %s, want 0", brackets[0].BaseTax)
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate %s outside [0, 1]", i, b.Rate)
		}
		last := i == len(brackets)-1
		if last {
			if b.Max != nil {
				return fmt.Errorf("top bracket must be unbounded, got max %s", b.Max)
			}
			break
		}
		if b.Max == nil {
			return fmt.Errorf("bracket %d is unbounded but is not the top bracket", i)
		}
		if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("bracket %d: max %s not above min %s", i, b.Max, b.Min)
		}
		next := brackets[i+1]
		if !next.Min.Equal(*b.Max) {
			return fmt.Errorf("bracket %d: gap or overlap between %s and %s", i+1, b.Max, next.Min)
		}
		want := b.BaseTax.Add(b.Max.Sub(b.Min).Mul(b.Rate))
		if !next.BaseTax.Equal(want) {
			return fmt.Errorf("bracket %d: base tax %s, want %s", i+1, next.BaseTax, want)
		}
	}
	return nil
}
