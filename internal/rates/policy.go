package rates

import (
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// Retirement, separation and leave policy constants
var (
	RetirementCap         = decimal.RequireFromString("0.75")
	legacyPerYearRate     = decimal.RequireFromString("0.025")
	brsPerYearRate        = decimal.RequireFromString("0.02")
	SeparationFullRate    = decimal.RequireFromString("0.10")
	SeparationHalfRate    = decimal.RequireFromString("0.05")
	SeparationWithholding = decimal.RequireFromString("0.25")
	SeparationMinYears    = decimal.NewFromInt(6)
	LeaveSellbackCapDays  = decimal.NewFromInt(60)
	LeaveDaysPerMonth     = decimal.NewFromInt(30)
)

const (
	CRDPMinRating = 50
	CRSCMinRating = 10
	MinVARating   = 10

	// MinDependentRating is the lowest rating whose table row has dependent columns
	MinDependentRating = 30
	PaychecksPerYear   = 24
)

// PerYearRate is the retirement multiplier earned per year of service
func PerYearRate(system domain.RetirementSystem) decimal.Decimal {
	if system == domain.RetirementBRS {
		return brsPerYearRate
	}
	return legacyPerYearRate
}
