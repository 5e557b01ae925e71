package calculation

import (
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rates"
	"github.com/shopspring/decimal"
)

// Rate-table rows
const (
	RowNone           = "none"
	RowAlone          = "alone"
	RowSpouse         = "with_spouse"
	RowSpouseAndChild = "with_spouse_and_child"
	RowChild          = "with_child"
)

// CalculateVACompensation looks up monthly VA compensation for a combined rating and household.
// Below 10% nothing is paid; 10% and 20% pay the flat rate regardless of dependents.
func CalculateVACompensation(rating int, deps domain.Dependents) domain.VACompensationResult {
	rating = ClampRating(rating)
	res := domain.VACompensationResult{
		Rating:             rating,
		Row:                RowNone,
		Base:               decimal.Zero,
		DependentAdditions: decimal.Zero,
		Monthly:            decimal.Zero,
		Annual:             decimal.Zero,
	}
	row, ok := rates.VACompensationRow(rating)
	if !ok || rating < rates.MinVARating {
		return res
	}

	if rating < rates.MinDependentRating {
		res.Row = RowAlone
		res.Base = row.Alone
		res.Monthly = row.Alone
		res.Annual = row.Alone.Mul(twelve)
		return res
	}

	children := max(deps.ChildrenUnder18, 0)
	school := max(deps.SchoolChildren, 0)

	// The child rows cover one child under 18
	var base decimal.Decimal
	hasChild := children > 0
	switch {
	case deps.HasSpouse && hasChild:
		res.Row, base = RowSpouseAndChild, row.WithSpouseAndChild
	case deps.HasSpouse:
		res.Row, base = RowSpouse, row.WithSpouse
	case hasChild:
		res.Row, base = RowChild, row.WithChild
	default:
		res.Row, base = RowAlone, row.Alone
	}

	additions := decimal.Zero
	if children > 1 {
		additions = additions.Add(row.AdditionalChild.Mul(decimal.NewFromInt(int64(children - 1))))
	}
	if school > 0 {
		additions = additions.Add(row.SchoolChild.Mul(decimal.NewFromInt(int64(school))))
	}
	if deps.HasSpouse && deps.SpouseAidAndAttendance {
		additions = additions.Add(row.SpouseAidAttendance)
	}

	res.Base = base
	res.DependentAdditions = additions
	res.Monthly = base.Add(additions)
	res.Annual = res.Monthly.Mul(twelve)
	return res
}
