package rates

import (
	"fmt"
	"slices"
	"strings"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// Tables is a read-only set of tax tables. Build it once and share it.
type Tables struct {
	federal map[int]domain.FederalTaxYear
	fica    map[int]domain.FICARules
	states  map[string]domain.StateRule
}

// DefaultRegulatory returns the embedded regulatory data
func DefaultRegulatory() domain.RegulatoryConfig {
	return domain.RegulatoryConfig{
		Metadata: domain.RegulatoryMetadata{
			DataYear:    2025,
			LastUpdated: "2025-01-01",
			Description: "IRS 2024/2025 schedules, SSA wage bases, flat state approximations",
		},
		FederalTax: []domain.FederalTaxYear{federal2024(), federal2025()},
		FICA:       []domain.FICARules{ficaRules(2024, 168600), ficaRules(2025, 176100)},
		States:     defaultStates(),
	}
}

var defaultTables = mustTables(DefaultRegulatory())

func mustTables(cfg domain.RegulatoryConfig) *Tables {
	t, err := NewTables(cfg)
	if err != nil {
		panic(fmt.Sprintf("embedded tax tables are inconsistent: %v", err))
	}
	return t
}

// Default returns the embedded tables
func Default() *Tables { return defaultTables }

// NewTables indexes and verifies a regulatory config
func NewTables(cfg domain.RegulatoryConfig) (*Tables, error) {
	t := &Tables{
		federal: make(map[int]domain.FederalTaxYear),
		fica:    make(map[int]domain.FICARules),
		states:  make(map[string]domain.StateRule),
	}
	if err := t.apply(cfg); err != nil {
		return nil, err
	}
	return t, nil
}

// Merge returns a copy of t with the years and states present in override replaced
func (t *Tables) Merge(override domain.RegulatoryConfig) (*Tables, error) {
	merged := &Tables{
		federal: make(map[int]domain.FederalTaxYear, len(t.federal)),
		fica:    make(map[int]domain.FICARules, len(t.fica)),
		states:  make(map[string]domain.StateRule, len(t.states)),
	}
	for k, v := range t.federal {
		merged.federal[k] = v
	}
	for k, v := range t.fica {
		merged.fica[k] = v
	}
	for k, v := range t.states {
		merged.states[k] = v
	}
	if err := merged.apply(override); err != nil {
		return nil, err
	}
	return merged, nil
}

func (t *Tables) apply(cfg domain.RegulatoryConfig) error {
	for _, fy := range cfg.FederalTax {
		for status, brackets := range fy.Brackets {
			if !status.Valid() {
				return fmt.Errorf("federal %d: unknown filing status %q", fy.Year, status)
			}
			if err := VerifyBrackets(brackets); err != nil {
				return fmt.Errorf("federal %d %s: %w", fy.Year, status, err)
			}
		}
		t.federal[fy.Year] = fy
	}
	for _, f := range cfg.FICA {
		if f.SocialSecurityWageBase.IsNegative() {
			return fmt.Errorf("fica %d: negative wage base", f.Year)
		}
		t.fica[f.Year] = f
	}
	for code, s := range cfg.States {
		if s.Rate.IsNegative() {
			return fmt.Errorf("state %s: negative rate", code)
		}
		t.states[strings.ToUpper(code)] = s
	}
	return nil
}

// Years lists the federal tax years available, ascending
func (t *Tables) Years() []int {
	years := make([]int, 0, len(t.federal))
	for y := range t.federal {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// ResolveYear returns year when it is embedded, otherwise the latest embedded year
func (t *Tables) ResolveYear(year int) int {
	if _, ok := t.federal[year]; ok {
		return year
	}
	years := t.Years()
	if len(years) == 0 {
		return year
	}
	return years[len(years)-1]
}

// Brackets returns the schedule for a year and filing status
func (t *Tables) Brackets(year int, status domain.FilingStatus) ([]domain.TaxBracket, error) {
	fy, ok := t.federal[t.ResolveYear(year)]
	if !ok {
		return nil, fmt.Errorf("no federal tax table for %d", year)
	}
	b, ok := fy.Brackets[status]
	if !ok {
		return nil, fmt.Errorf("no %d brackets for filing status %q", fy.Year, status)
	}
	return b, nil
}

// StandardDeduction returns the standard deduction for a year and filing status
func (t *Tables) StandardDeduction(year int, status domain.FilingStatus) (decimal.Decimal, error) {
	fy, ok := t.federal[t.ResolveYear(year)]
	if !ok {
		return decimal.Zero, fmt.Errorf("no federal tax table for %d", year)
	}
	d, ok := fy.StandardDeductions[status]
	if !ok {
		return decimal.Zero, fmt.Errorf("no %d standard deduction for filing status %q", fy.Year, status)
	}
	return d, nil
}

// FICA returns payroll parameters for a year, falling back to the latest year on file
func (t *Tables) FICA(year int) (domain.FICARules, error) {
	if f, ok := t.fica[year]; ok {
		return f, nil
	}
	latest := -1
	for y := range t.fica {
		if y > latest {
			latest = y
		}
	}
	if latest < 0 {
		return domain.FICARules{}, fmt.Errorf("no FICA parameters for %d", year)
	}
	return t.fica[latest], nil
}

// State looks up a state by its two-letter abbreviation
func (t *Tables) State(code string) (domain.StateRule, bool) {
	s, ok := t.states[strings.ToUpper(strings.TrimSpace(code))]
	return s, ok
}
