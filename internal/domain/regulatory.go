package domain

import (
	"github.com/shopspring/decimal"
)

// FilingStatus is a federal filing status
type FilingStatus string

const (
	FilingSingle            FilingStatus = "single"
	FilingMarriedJointly    FilingStatus = "married_filing_jointly"
	FilingMarriedSeparately FilingStatus = "married_filing_separately"
	FilingHeadOfHousehold   FilingStatus = "head_of_household"
)

// FilingStatuses lists every supported filing status
var FilingStatuses = []FilingStatus{FilingSingle, FilingMarriedJointly, FilingMarriedSeparately, FilingHeadOfHousehold}

// Valid reports whether the filing status is supported
func (f FilingStatus) Valid() bool {
	switch f {
	case FilingSingle, FilingMarriedJointly, FilingMarriedSeparately, FilingHeadOfHousehold:
		return true
	}
	return false
}

// TaxBracket is one band of a progressive schedule. A nil Max marks the unbounded top bracket.
// BaseTax is the cumulative tax of every lower bracket at its own Max.
type TaxBracket struct {
	Min     decimal.Decimal  `yaml:"min" json:"min"`
	Max     *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate    decimal.Decimal  `yaml:"rate" json:"rate"`
	BaseTax decimal.Decimal  `yaml:"base_tax" json:"baseTax"`
}

// Contains reports whether income falls inside [Min, Max)
func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.Min) {
		return false
	}
	return b.Max == nil || income.LessThan(*b.Max)
}

// FederalTaxYear holds one year's brackets and standard deductions
type FederalTaxYear struct {
	Year               int                              `yaml:"year" json:"year"`
	Brackets           map[FilingStatus][]TaxBracket    `yaml:"brackets" json:"brackets"`
	StandardDeductions map[FilingStatus]decimal.Decimal `yaml:"standard_deductions" json:"standardDeductions"`
}

// FICARules contains payroll tax parameters for one year
type FICARules struct {
	Year                        int                              `yaml:"year" json:"year"`
	SocialSecurityRate          decimal.Decimal                  `yaml:"social_security_rate" json:"socialSecurityRate"`
	SocialSecurityWageBase      decimal.Decimal                  `yaml:"social_security_wage_base" json:"socialSecurityWageBase"`
	MedicareRate                decimal.Decimal                  `yaml:"medicare_rate" json:"medicareRate"`
	AdditionalMedicareRate      decimal.Decimal                  `yaml:"additional_medicare_rate" json:"additionalMedicareRate"`
	AdditionalMedicareThreshold map[FilingStatus]decimal.Decimal `yaml:"additional_medicare_threshold" json:"additionalMedicareThreshold"`
}

// StateRule is the flat-rate approximation for one state
type StateRule struct {
	Name        string          `yaml:"name" json:"name"`
	Rate        decimal.Decimal `yaml:"rate" json:"rate"`
	NoIncomeTax bool            `yaml:"no_income_tax" json:"noIncomeTax"`
}

// RegulatoryConfig is the overridable set of tax tables, loaded from regulatory.yaml
type RegulatoryConfig struct {
	Metadata   RegulatoryMetadata   `yaml:"metadata" json:"metadata"`
	FederalTax []FederalTaxYear     `yaml:"federal_tax" json:"federalTax"`
	FICA       []FICARules          `yaml:"fica" json:"fica"`
	States     map[string]StateRule `yaml:"states" json:"states"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	DataYear    int    `yaml:"data_year" json:"dataYear"`
	LastUpdated string `yaml:"last_updated" json:"lastUpdated"`
	Description string `yaml:"description" json:"description"`
}

// VACompensationRow holds monthly VA rates for one rating
type VACompensationRow struct {
	Rating              int             `yaml:"rating" json:"rating"`
	Alone               decimal.Decimal `yaml:"alone" json:"alone"`
	WithSpouse          decimal.Decimal `yaml:"with_spouse" json:"withSpouse"`
	WithSpouseAndChild  decimal.Decimal `yaml:"with_spouse_and_child" json:"withSpouseAndChild"`
	WithChild           decimal.Decimal `yaml:"with_child" json:"withChild"`
	AdditionalChild     decimal.Decimal `yaml:"additional_child" json:"additionalChild"`
	SchoolChild         decimal.Decimal `yaml:"school_child" json:"schoolChild"`
	SpouseAidAttendance decimal.Decimal `yaml:"spouse_aid_attendance" json:"spouseAidAttendance"`
}
