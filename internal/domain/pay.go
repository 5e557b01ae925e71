package domain

import (
	"github.com/shopspring/decimal"
)

// RetirementSystem selects the per-year retirement multiplier
type RetirementSystem string

const (
	RetirementHigh3    RetirementSystem = "high_3"
	RetirementFinalPay RetirementSystem = "final_pay"
	RetirementBRS      RetirementSystem = "brs"
)

// Valid reports whether the retirement system is supported
func (r RetirementSystem) Valid() bool {
	switch r {
	case RetirementHigh3, RetirementFinalPay, RetirementBRS:
		return true
	}
	return false
}

// RetirementInput holds the inputs for a longevity retirement estimate
type RetirementInput struct {
	System           RetirementSystem `yaml:"system" json:"system"`
	YearsOfService   decimal.Decimal  `yaml:"years_of_service" json:"yearsOfService"`
	HighThreeBasePay decimal.Decimal  `yaml:"high_three_base_pay" json:"highThreeBasePay"` // Monthly
}

// RetirementEstimate is the monthly retired pay projection
type RetirementEstimate struct {
	System         RetirementSystem `yaml:"system" json:"system"`
	YearsOfService decimal.Decimal  `yaml:"years_of_service" json:"yearsOfService"`
	PerYearRate    decimal.Decimal  `yaml:"per_year_rate" json:"perYearRate"`
	Multiplier     decimal.Decimal  `yaml:"multiplier" json:"multiplier"`
	Capped         bool             `yaml:"capped" json:"capped"`
	MonthlyPay     decimal.Decimal  `yaml:"monthly_pay" json:"monthlyPay"`
	AnnualPay      decimal.Decimal  `yaml:"annual_pay" json:"annualPay"`
}

// Dependents describes the household for VA compensation
type Dependents struct {
	HasSpouse              bool `yaml:"has_spouse" json:"hasSpouse"`
	ChildrenUnder18        int  `yaml:"children_under_18" json:"childrenUnder18"`
	SchoolChildren         int  `yaml:"school_children" json:"schoolChildren"` // Ages 18-23 in school
	SpouseAidAndAttendance bool `yaml:"spouse_aid_and_attendance" json:"spouseAidAndAttendance"`
}

// RatingStep is one line of the combined-rating worksheet
type RatingStep struct {
	Rating           int             `yaml:"rating" json:"rating"`
	EfficiencyBefore decimal.Decimal `yaml:"efficiency_before" json:"efficiencyBefore"`
	Reduction        decimal.Decimal `yaml:"reduction" json:"reduction"`
	EfficiencyAfter  decimal.Decimal `yaml:"efficiency_after" json:"efficiencyAfter"`
}

// CombinedRatingWorksheet shows how individual ratings combine
type CombinedRatingWorksheet struct {
	Ratings    []int           `yaml:"ratings" json:"ratings"` // Sorted descending
	Steps      []RatingStep    `yaml:"steps" json:"steps"`
	Efficiency decimal.Decimal `yaml:"efficiency" json:"efficiency"`
	Exact      decimal.Decimal `yaml:"exact" json:"exact"`
	Combined   int             `yaml:"combined" json:"combined"`
}

// VACompensationResult is the monthly VA disability payment
type VACompensationResult struct {
	Rating             int             `yaml:"rating" json:"rating"`
	Row                string          `yaml:"row" json:"row"`
	Base               decimal.Decimal `yaml:"base" json:"base"`
	DependentAdditions decimal.Decimal `yaml:"dependent_additions" json:"dependentAdditions"`
	Monthly            decimal.Decimal `yaml:"monthly" json:"monthly"`
	Annual             decimal.Decimal `yaml:"annual" json:"annual"`
}

// ConcurrentReceiptInput feeds the CRDP/CRSC resolution
type ConcurrentReceiptInput struct {
	CombinedRating              int             `yaml:"combined_rating" json:"combinedRating"`
	CombatRelatedRating         int             `yaml:"combat_related_rating" json:"combatRelatedRating"`
	RetirementPay               decimal.Decimal `yaml:"retirement_pay" json:"retirementPay"`
	VACompensation              decimal.Decimal `yaml:"va_compensation" json:"vaCompensation"`
	CombatRelatedVACompensation decimal.Decimal `yaml:"combat_related_va_compensation" json:"combatRelatedVaCompensation"`
}

// CRDPResult is the Concurrent Retirement and Disability Pay outcome
type CRDPResult struct {
	Eligible       bool            `yaml:"eligible" json:"eligible"`
	Reason         string          `yaml:"reason" json:"reason"`
	RetirementPay  decimal.Decimal `yaml:"retirement_pay" json:"retirementPay"`
	VACompensation decimal.Decimal `yaml:"va_compensation" json:"vaCompensation"`
	MonthlyTotal   decimal.Decimal `yaml:"monthly_total" json:"monthlyTotal"`
}

// CRSCResult is the Combat-Related Special Compensation outcome
type CRSCResult struct {
	Eligible     bool            `yaml:"eligible" json:"eligible"`
	Reason       string          `yaml:"reason" json:"reason"`
	Payable      decimal.Decimal `yaml:"payable" json:"payable"`
	MonthlyTotal decimal.Decimal `yaml:"monthly_total" json:"monthlyTotal"`
}

// ConcurrentProgram names the elected concurrent-receipt program
type ConcurrentProgram string

const (
	ProgramNone ConcurrentProgram = "none"
	ProgramCRDP ConcurrentProgram = "crdp"
	ProgramCRSC ConcurrentProgram = "crsc"
)

// ConcurrentReceiptResult compares both programs and recommends the larger
type ConcurrentReceiptResult struct {
	CRDP         CRDPResult        `yaml:"crdp" json:"crdp"`
	CRSC         CRSCResult        `yaml:"crsc" json:"crsc"`
	Recommended  ConcurrentProgram `yaml:"recommended" json:"recommended"`
	MonthlyTotal decimal.Decimal   `yaml:"monthly_total" json:"monthlyTotal"`
}

// SeparationPayType is full or half involuntary separation pay
type SeparationPayType string

const (
	SeparationFull SeparationPayType = "full"
	SeparationHalf SeparationPayType = "half"
)

// SeparationPayInput holds the inputs for involuntary separation pay
type SeparationPayInput struct {
	YearsOfService decimal.Decimal   `yaml:"years_of_service" json:"yearsOfService"`
	MonthlyBasePay decimal.Decimal   `yaml:"monthly_base_pay" json:"monthlyBasePay"`
	Type           SeparationPayType `yaml:"type" json:"type"`
}

// SeparationPayResult is the lump-sum estimate
type SeparationPayResult struct {
	Eligible             bool            `yaml:"eligible" json:"eligible"`
	Reason               string          `yaml:"reason" json:"reason"`
	Rate                 decimal.Decimal `yaml:"rate" json:"rate"`
	Gross                decimal.Decimal `yaml:"gross" json:"gross"`
	EstimatedWithholding decimal.Decimal `yaml:"estimated_withholding" json:"estimatedWithholding"`
	NetEstimate          decimal.Decimal `yaml:"net_estimate" json:"netEstimate"`
}

// LeaveSellbackInput holds the inputs for selling accrued leave
type LeaveSellbackInput struct {
	RequestedDays  decimal.Decimal `yaml:"requested_days" json:"requestedDays"`
	CurrentBalance decimal.Decimal `yaml:"current_balance" json:"currentBalance"`
	MonthlyBasePay decimal.Decimal `yaml:"monthly_base_pay" json:"monthlyBasePay"`
}

// LeaveSellbackResult splits the balance between sellback and terminal leave
type LeaveSellbackResult struct {
	SellableDays      decimal.Decimal `yaml:"sellable_days" json:"sellableDays"`
	TerminalLeaveDays decimal.Decimal `yaml:"terminal_leave_days" json:"terminalLeaveDays"`
	LimitedBy         string          `yaml:"limited_by" json:"limitedBy"`
	DailyRate         decimal.Decimal `yaml:"daily_rate" json:"dailyRate"`
	GrossValue        decimal.Decimal `yaml:"gross_value" json:"grossValue"`
}

// TaxInput describes monthly military pay for an annualized tax estimate
type TaxInput struct {
	Year                     int             `yaml:"year" json:"year"`
	FilingStatus             FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	State                    string          `yaml:"state" json:"state"`
	MonthlyBasePay           decimal.Decimal `yaml:"monthly_base_pay" json:"monthlyBasePay"`
	MonthlyTaxableSpecialPay decimal.Decimal `yaml:"monthly_taxable_special_pay" json:"monthlyTaxableSpecialPay"`
	MonthlyBonus             decimal.Decimal `yaml:"monthly_bonus" json:"monthlyBonus"`
	MonthlyCombatPay         decimal.Decimal `yaml:"monthly_combat_pay" json:"monthlyCombatPay"`
	InCombatZone             bool            `yaml:"in_combat_zone" json:"inCombatZone"`
}

// FederalTaxDetail is the federal income tax portion of an estimate
type FederalTaxDetail struct {
	TaxableIncome       decimal.Decimal `yaml:"taxable_income" json:"taxableIncome"`
	CombatZoneExclusion decimal.Decimal `yaml:"combat_zone_exclusion" json:"combatZoneExclusion"`
	StandardDeduction   decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"`
	AdjustedIncome      decimal.Decimal `yaml:"adjusted_income" json:"adjustedIncome"`
	MarginalRate        decimal.Decimal `yaml:"marginal_rate" json:"marginalRate"`
	EffectiveRate       decimal.Decimal `yaml:"effective_rate" json:"effectiveRate"`
	Tax                 decimal.Decimal `yaml:"tax" json:"tax"`
}

// StateTaxDetail is the flat-rate state estimate
type StateTaxDetail struct {
	State       string          `yaml:"state" json:"state"`
	NoIncomeTax bool            `yaml:"no_income_tax" json:"noIncomeTax"`
	Rate        decimal.Decimal `yaml:"rate" json:"rate"`
	Tax         decimal.Decimal `yaml:"tax" json:"tax"`
}

// FICADetail is the payroll tax portion of an estimate
type FICADetail struct {
	Wages              decimal.Decimal `yaml:"wages" json:"wages"`
	SocialSecurityTax  decimal.Decimal `yaml:"social_security_tax" json:"socialSecurityTax"`
	MedicareTax        decimal.Decimal `yaml:"medicare_tax" json:"medicareTax"`
	AdditionalMedicare decimal.Decimal `yaml:"additional_medicare" json:"additionalMedicare"`
	Total              decimal.Decimal `yaml:"total" json:"total"`
}

// TaxBreakdown is one period's view of the estimate
type TaxBreakdown struct {
	Federal decimal.Decimal `yaml:"federal" json:"federal"`
	State   decimal.Decimal `yaml:"state" json:"state"`
	FICA    decimal.Decimal `yaml:"fica" json:"fica"`
	Total   decimal.Decimal `yaml:"total" json:"total"`
}

// TaxEstimateResult aggregates the withholding estimate
type TaxEstimateResult struct {
	Year         int              `yaml:"year" json:"year"`
	FilingStatus FilingStatus     `yaml:"filing_status" json:"filingStatus"`
	Federal      FederalTaxDetail `yaml:"federal" json:"federal"`
	State        StateTaxDetail   `yaml:"state" json:"state"`
	FICA         FICADetail       `yaml:"fica" json:"fica"`
	Annual       TaxBreakdown     `yaml:"annual" json:"annual"`
	Monthly      TaxBreakdown     `yaml:"monthly" json:"monthly"`
	PerPaycheck  TaxBreakdown     `yaml:"per_paycheck" json:"perPaycheck"`
}

// PayInput describes a member's pay situation
type PayInput struct {
	Year                     int             `yaml:"year" json:"year"`
	PayGrade                 string          `yaml:"pay_grade" json:"payGrade"`
	YearsOfService           int             `yaml:"years_of_service" json:"yearsOfService"`
	LocalityCode             string          `yaml:"locality_code" json:"localityCode"`
	HasDependents            bool            `yaml:"has_dependents" json:"hasDependents"`
	MonthlyTaxableSpecialPay decimal.Decimal `yaml:"monthly_taxable_special_pay" json:"monthlyTaxableSpecialPay"`
	MonthlyBonus             decimal.Decimal `yaml:"monthly_bonus" json:"monthlyBonus"`
	MonthlyCombatPay         decimal.Decimal `yaml:"monthly_combat_pay" json:"monthlyCombatPay"`
	InCombatZone             bool            `yaml:"in_combat_zone" json:"inCombatZone"`
	FilingStatus             FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	State                    string          `yaml:"state" json:"state"`
}

// PayEstimate is the monthly pay and take-home projection
type PayEstimate struct {
	PayGrade          string            `yaml:"pay_grade" json:"payGrade"`
	YearsOfService    int               `yaml:"years_of_service" json:"yearsOfService"`
	BasePay           decimal.Decimal   `yaml:"base_pay" json:"basePay"`
	BAH               decimal.Decimal   `yaml:"bah" json:"bah"`
	BAHAvailable      bool              `yaml:"bah_available" json:"bahAvailable"`
	BAS               decimal.Decimal   `yaml:"bas" json:"bas"`
	SpecialPay        decimal.Decimal   `yaml:"special_pay" json:"specialPay"`
	Bonus             decimal.Decimal   `yaml:"bonus" json:"bonus"`
	GrossMonthly      decimal.Decimal   `yaml:"gross_monthly" json:"grossMonthly"`
	TaxableMonthly    decimal.Decimal   `yaml:"taxable_monthly" json:"taxableMonthly"`
	NonTaxableMonthly decimal.Decimal   `yaml:"non_taxable_monthly" json:"nonTaxableMonthly"`
	Taxes             TaxEstimateResult `yaml:"taxes" json:"taxes"`
	NetMonthly        decimal.Decimal   `yaml:"net_monthly" json:"netMonthly"`
	NetPerPaycheck    decimal.Decimal   `yaml:"net_per_paycheck" json:"netPerPaycheck"`
	Notes             []string          `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// TransitionInput combines retirement, VA and post-service income
type TransitionInput struct {
	Year                 int             `yaml:"year" json:"year"`
	Retirement           RetirementInput `yaml:"retirement" json:"retirement"`
	Ratings              []int           `yaml:"ratings" json:"ratings"`
	CombatRelatedRatings []int           `yaml:"combat_related_ratings" json:"combatRelatedRatings"`
	Dependents           Dependents      `yaml:"dependents" json:"dependents"`
	CivilianAnnualSalary decimal.Decimal `yaml:"civilian_annual_salary" json:"civilianAnnualSalary"`
	FilingStatus         FilingStatus    `yaml:"filing_status" json:"filingStatus"`
	State                string          `yaml:"state" json:"state"`
}

// TransitionProjection is the combined post-service income picture
type TransitionProjection struct {
	Retirement        RetirementEstimate      `yaml:"retirement" json:"retirement"`
	CombinedRating    int                     `yaml:"combined_rating" json:"combinedRating"`
	VACompensation    VACompensationResult    `yaml:"va_compensation" json:"vaCompensation"`
	ConcurrentReceipt ConcurrentReceiptResult `yaml:"concurrent_receipt" json:"concurrentReceipt"`
	MonthlyRetirement decimal.Decimal         `yaml:"monthly_retirement" json:"monthlyRetirement"`
	MonthlyVA         decimal.Decimal         `yaml:"monthly_va" json:"monthlyVa"`
	MonthlyCRSC       decimal.Decimal         `yaml:"monthly_crsc" json:"monthlyCrsc"`
	MonthlyCivilian   decimal.Decimal         `yaml:"monthly_civilian" json:"monthlyCivilian"`
	MonthlyTotal      decimal.Decimal         `yaml:"monthly_total" json:"monthlyTotal"`
	AnnualTotal       decimal.Decimal         `yaml:"annual_total" json:"annualTotal"`
	TaxableAnnual     decimal.Decimal         `yaml:"taxable_annual" json:"taxableAnnual"`
	NonTaxableAnnual  decimal.Decimal         `yaml:"non_taxable_annual" json:"nonTaxableAnnual"`
	FederalTax        decimal.Decimal         `yaml:"federal_tax" json:"federalTax"`
	StateTax          decimal.Decimal         `yaml:"state_tax" json:"stateTax"`
	FICATax           decimal.Decimal         `yaml:"fica_tax" json:"ficaTax"`
	NetAnnual         decimal.Decimal         `yaml:"net_annual" json:"netAnnual"`
	NetMonthly        decimal.Decimal         `yaml:"net_monthly" json:"netMonthly"`
}
