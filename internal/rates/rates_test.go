package rates

import (
	"testing"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedBracketsAreConsistent(t *testing.T) {
	tables := Default()
	for _, year := range []int{2024, 2025} {
		for _, status := range domain.FilingStatuses {
			t.Run(string(status), func(t *testing.T) {
				brackets, err := tables.Brackets(year, status)
				require.NoError(t, err)
				assert.Len(t, brackets, 7)
				assert.NoError(t, VerifyBrackets(brackets))
			})
		}
	}
}

func TestVerifyBrackets_Rejects(t *testing.T) {
	good := func() []domain.TaxBracket {
		return schedule([]int64{0, 100, 200}, []string{"0", "10", "22"})
	}
	require.NoError(t, VerifyBrackets(good()[:3]))

	tests := []struct {
		name   string
		mutate func([]domain.TaxBracket) []domain.TaxBracket
		errMsg string
	}{
		{"empty", func([]domain.TaxBracket) []domain.TaxBracket { return nil }, "no brackets"},
		{"nonzero start", func(b []domain.TaxBracket) []domain.TaxBracket {
			b[0].Min = decimal.NewFromInt(1)
			return b
		}, "starts at"},
		{"bounded top", func(b []domain.TaxBracket) []domain.TaxBracket {
			hi := decimal.NewFromInt(300)
			b[2].Max = &hi
			return b
		}, "unbounded"},
		{"gap", func(b []domain.TaxBracket) []domain.TaxBracket {
			b[1].Min = decimal.NewFromInt(150)
			return b
		}, "gap or overlap"},
		{"wrong base tax", func(b []domain.TaxBracket) []domain.TaxBracket {
			b[2].BaseTax = decimal.NewFromInt(25)
			return b
		}, "base tax"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyBrackets(tt.mutate(good()))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTables_ResolveYear(t *testing.T) {
	tables := Default()
	assert.Equal(t, []int{2024, 2025}, tables.Years())
	assert.Equal(t, 2024, tables.ResolveYear(2024))
	assert.Equal(t, 2025, tables.ResolveYear(2031))

	ded, err := tables.StandardDeduction(2024, domain.FilingSingle)
	require.NoError(t, err)
	assert.True(t, ded.Equal(decimal.NewFromInt(14600)))

	_, err = tables.Brackets(2024, domain.FilingStatus("widowed"))
	assert.Error(t, err)
}

func TestTables_FICA(t *testing.T) {
	tables := Default()
	f, err := tables.FICA(2024)
	require.NoError(t, err)
	assert.True(t, f.SocialSecurityWageBase.Equal(decimal.NewFromInt(168600)))

	f, err = tables.FICA(2030)
	require.NoError(t, err)
	assert.Equal(t, 2025, f.Year)
}

func TestTables_State(t *testing.T) {
	tables := Default()
	for _, code := range NoIncomeTaxStates {
		s, ok := tables.State(code)
		require.True(t, ok, code)
		assert.True(t, s.NoIncomeTax, code)
	}
	s, ok := tables.State(" ca ")
	require.True(t, ok)
	assert.Equal(t, "California", s.Name)
	assert.False(t, s.NoIncomeTax)

	_, ok = tables.State("ZZ")
	assert.False(t, ok)
}

func TestTables_Merge(t *testing.T) {
	base := Default()
	merged, err := base.Merge(domain.RegulatoryConfig{
		States: map[string]domain.StateRule{"pa": {Name: "Pennsylvania", Rate: decimal.RequireFromString("0.04")}},
	})
	require.NoError(t, err)

	s, _ := merged.State("PA")
	assert.True(t, s.Rate.Equal(decimal.RequireFromString("0.04")))
	orig, _ := base.State("PA")
	assert.True(t, orig.Rate.Equal(decimal.RequireFromString("0.0307")), "merge must not mutate the source tables")

	bad := federal2025()
	bad.Brackets[domain.FilingSingle][3].BaseTax = decimal.NewFromInt(1)
	_, err = base.Merge(domain.RegulatoryConfig{FederalTax: []domain.FederalTaxYear{bad}})
	assert.Error(t, err)
}

func TestVACompensationRow(t *testing.T) {
	tests := []struct {
		rating int
		want   int
		ok     bool
	}{
		{0, 0, false},
		{5, 0, false},
		{10, 10, true},
		{25, 20, true},
		{70, 70, true},
		{100, 100, true},
	}
	for _, tt := range tests {
		row, ok := VACompensationRow(tt.rating)
		assert.Equal(t, tt.ok, ok, "rating %d", tt.rating)
		assert.Equal(t, tt.want, row.Rating, "rating %d", tt.rating)
	}
	assert.Len(t, VACompensationTable(), 10)
}

func TestBasePay(t *testing.T) {
	tests := []struct {
		grade string
		yos   int
		want  string
		ok    bool
	}{
		{"E-5", 4, "3283.20", true},
		{"e5", 5, "3283.20", true},
		{"E5", 0, "2802.00", true},
		{"O-3", 40, "8325.30", true},
		{"E-9", 4, "", false},
		{"E-9", 10, "6214.20", true},
		{"Z-1", 4, "", false},
		{"E-5", -1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			got, ok := BasePay(tt.grade, tt.yos)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
			}
		})
	}
}

func TestBASAndBAH(t *testing.T) {
	assert.True(t, BAS("E-4").Equal(decimal.RequireFromString("460.25")))
	assert.True(t, BAS("O-2").Equal(decimal.RequireFromString("316.98")))

	with, ok := BAH("TX286", "E-5", true)
	require.True(t, ok)
	without, ok := BAH("tx286", "E5", false)
	require.True(t, ok)
	assert.True(t, with.GreaterThan(without))

	e1, _ := BAH("CA038", "E-1", false)
	e4, _ := BAH("CA038", "E-4", false)
	assert.True(t, e1.Equal(e4))

	_, ok = BAH("XX999", "E-5", true)
	assert.False(t, ok)
	_, ok = BAH("TX286", "W-2", true)
	assert.False(t, ok)
}

func TestPerYearRate(t *testing.T) {
	assert.True(t, PerYearRate(domain.RetirementBRS).Equal(decimal.RequireFromString("0.02")))
	assert.True(t, PerYearRate(domain.RetirementHigh3).Equal(decimal.RequireFromString("0.025")))
	assert.True(t, PerYearRate(domain.RetirementFinalPay).Equal(decimal.RequireFromString("0.025")))
}
