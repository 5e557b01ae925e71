package calculation

import (
	"slices"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	ten     = decimal.NewFromInt(10)
	twelve  = decimal.NewFromInt(12)
)

// CombineRatings applies the VA "whole person" formula and rounds to the nearest 10.
// An empty list is 0 and a single rating is returned unchanged.
func CombineRatings(ratings []int) int {
	return CombinedRatingWorksheetFor(ratings).Combined
}

// CombinedRatingWorksheetFor returns the combined rating with per-step detail.
// Ratings are clamped to 0-100 and applied in descending order, each against
// the remaining efficiency.
func CombinedRatingWorksheetFor(ratings []int) domain.CombinedRatingWorksheet {
	sorted := make([]int, len(ratings))
	for i, r := range ratings {
		sorted[i] = ClampRating(r)
	}
	slices.SortFunc(sorted, func(a, b int) int { return b - a })

	ws := domain.CombinedRatingWorksheet{
		Ratings:    sorted,
		Steps:      []domain.RatingStep{},
		Efficiency: hundred,
		Exact:      decimal.Zero,
	}
	if len(sorted) == 0 {
		return ws
	}

	efficiency := hundred
	for _, r := range sorted {
		reduction := efficiency.Mul(decimal.NewFromInt(int64(r))).Div(hundred)
		after := efficiency.Sub(reduction)
		ws.Steps = append(ws.Steps, domain.RatingStep{
			Rating:           r,
			EfficiencyBefore: efficiency,
			Reduction:        reduction,
			EfficiencyAfter:  after,
		})
		efficiency = after
	}
	ws.Efficiency = efficiency
	ws.Exact = hundred.Sub(efficiency)

	if len(sorted) == 1 {
		ws.Combined = sorted[0]
		return ws
	}
	// Round half up to the nearest multiple of ten
	ws.Combined = int(ws.Exact.Div(ten).Round(0).Mul(ten).IntPart())
	return ws
}
