package rates

import (
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

func additionalMedicareThresholds() map[domain.FilingStatus]decimal.Decimal {
	return map[domain.FilingStatus]decimal.Decimal{
		domain.FilingSingle:            decimal.NewFromInt(200000),
		domain.FilingMarriedJointly:    decimal.NewFromInt(250000),
		domain.FilingMarriedSeparately: decimal.NewFromInt(125000),
		domain.FilingHeadOfHousehold:   decimal.NewFromInt(200000),
	}
}

func ficaRules(year int, wageBase int64) domain.FICARules {
	return domain.FICARules{
		Year:                        year,
		SocialSecurityRate:          decimal.RequireFromString("0.062"),
		SocialSecurityWageBase:      decimal.NewFromInt(wageBase),
		MedicareRate:                decimal.RequireFromString("0.0145"),
		AdditionalMedicareRate:      decimal.RequireFromString("0.009"),
		AdditionalMedicareThreshold: additionalMedicareThresholds(),
	}
}

// NoIncomeTaxStates have no tax on wages
var NoIncomeTaxStates = []string{"AK", "FL", "NH", "NV", "SD", "TN", "TX", "WA", "WY"}

// flat approximations of each state's graduated schedule; estimate only
var stateRates = map[string]struct {
	name string
	rate string
}{
	"AL": {"Alabama", "0.05"},
	"AR": {"Arkansas", "0.044"},
	"AZ": {"Arizona", "0.025"},
	"CA": {"California", "0.06"},
	"CO": {"Colorado", "0.044"},
	"CT": {"Connecticut", "0.05"},
	"DC": {"District of Columbia", "0.065"},
	"DE": {"Delaware", "0.055"},
	"GA": {"Georgia", "0.0549"},
	"HI": {"Hawaii", "0.0725"},
	"IA": {"Iowa", "0.057"},
	"ID": {"Idaho", "0.058"},
	"IL": {"Illinois", "0.0495"},
	"IN": {"Indiana", "0.0305"},
	"KS": {"Kansas", "0.052"},
	"KY": {"Kentucky", "0.04"},
	"LA": {"Louisiana", "0.0425"},
	"MA": {"Massachusetts", "0.05"},
	"MD": {"Maryland", "0.0475"},
	"ME": {"Maine", "0.0675"},
	"MI": {"Michigan", "0.0425"},
	"MN": {"Minnesota", "0.068"},
	"MO": {"Missouri", "0.048"},
	"MS": {"Mississippi", "0.047"},
	"MT": {"Montana", "0.059"},
	"NC": {"North Carolina", "0.045"},
	"ND": {"North Dakota", "0.0195"},
	"NE": {"Nebraska", "0.0584"},
	"NJ": {"New Jersey", "0.055"},
	"NM": {"New Mexico", "0.049"},
	"NY": {"New York", "0.06"},
	"OH": {"Ohio", "0.035"},
	"OK": {"Oklahoma", "0.0475"},
	"OR": {"Oregon", "0.0875"},
	"PA": {"Pennsylvania", "0.0307"},
	"RI": {"Rhode Island", "0.0475"},
	"SC": {"South Carolina", "0.064"},
	"UT": {"Utah", "0.0465"},
	"VA": {"Virginia", "0.0575"},
	"VT": {"Vermont", "0.066"},
	"WI": {"Wisconsin", "0.053"},
	"WV": {"West Virginia", "0.0512"},
}

var noIncomeTaxNames = map[string]string{
	"AK": "Alaska", "FL": "Florida", "NH": "New Hampshire", "NV": "Nevada", "SD": "South Dakota",
	"TN": "Tennessee", "TX": "Texas", "WA": "Washington", "WY": "Wyoming",
}

func defaultStates() map[string]domain.StateRule {
	out := make(map[string]domain.StateRule, len(stateRates)+len(NoIncomeTaxStates))
	for code, s := range stateRates {
		out[code] = domain.StateRule{Name: s.name, Rate: decimal.RequireFromString(s.rate)}
	}
	for _, code := range NoIncomeTaxStates {
		out[code] = domain.StateRule{Name: noIncomeTaxNames[code], NoIncomeTax: true}
	}
	return out
}
