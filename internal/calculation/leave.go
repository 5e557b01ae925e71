package calculation

import (
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rates"
	"github.com/shopspring/decimal"
)

// Leave sellback limits
const (
	LimitRequested = "requested"
	LimitCap       = "career_cap"
	LimitBalance   = "balance"
)

// CalculateLeaveSellback sells min(requested, 60, balance) days at 1/30 of monthly base pay.
// The rest of the balance becomes terminal leave.
func CalculateLeaveSellback(in domain.LeaveSellbackInput) domain.LeaveSellbackResult {
	requested := nonNegative(in.RequestedDays)
	balance := nonNegative(in.CurrentBalance)

	sellable, limit := requested, LimitRequested
	if rates.LeaveSellbackCapDays.LessThan(sellable) {
		sellable, limit = rates.LeaveSellbackCapDays, LimitCap
	}
	if balance.LessThan(sellable) {
		sellable, limit = balance, LimitBalance
	}

	daily := ClampMoney(in.MonthlyBasePay).Div(rates.LeaveDaysPerMonth)
	return domain.LeaveSellbackResult{
		SellableDays:      sellable,
		TerminalLeaveDays: decimal.Max(balance.Sub(sellable), decimal.Zero),
		LimitedBy:         limit,
		DailyRate:         daily,
		GrossValue:        sellable.Mul(daily),
	}
}
