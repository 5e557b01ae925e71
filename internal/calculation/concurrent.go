package calculation

import (
	"fmt"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rates"
	"github.com/shopspring/decimal"
)

// CalculateCRDP pays full retired pay alongside VA compensation at a combined rating of 50% or more.
// The phase-in period is treated as complete.
func CalculateCRDP(in domain.ConcurrentReceiptInput) domain.CRDPResult {
	rating := ClampRating(in.CombinedRating)
	if rating < rates.CRDPMinRating {
		return domain.CRDPResult{
			Reason:         fmt.Sprintf("CRDP requires a combined VA rating of %d%% or higher", rates.CRDPMinRating),
			RetirementPay:  decimal.Zero,
			VACompensation: decimal.Zero,
			MonthlyTotal:   decimal.Zero,
		}
	}
	retirement := ClampMoney(in.RetirementPay)
	va := ClampMoney(in.VACompensation)
	return domain.CRDPResult{
		Eligible:       true,
		Reason:         fmt.Sprintf("Combined rating of %d%% qualifies for full concurrent receipt", rating),
		RetirementPay:  retirement,
		VACompensation: va,
		MonthlyTotal:   retirement.Add(va),
	}
}

// CalculateCRSC pays min(combat-related VA compensation, retired pay) when a
// combat-related rating of 10% or more exists. When no combat-related amount is
// supplied the full VA compensation is used.
func CalculateCRSC(in domain.ConcurrentReceiptInput) domain.CRSCResult {
	rating := ClampRating(in.CombatRelatedRating)
	if rating < rates.CRSCMinRating {
		return domain.CRSCResult{
			Reason:       fmt.Sprintf("CRSC requires a combat-related rating of %d%% or higher", rates.CRSCMinRating),
			Payable:      decimal.Zero,
			MonthlyTotal: decimal.Zero,
		}
	}
	va := ClampMoney(in.VACompensation)
	combatVA := ClampMoney(in.CombatRelatedVACompensation)
	if combatVA.IsZero() {
		combatVA = va
	}
	payable := decimal.Min(combatVA, ClampMoney(in.RetirementPay))
	return domain.CRSCResult{
		Eligible:     true,
		Reason:       fmt.Sprintf("Combat-related rating of %d%% qualifies for CRSC", rating),
		Payable:      payable,
		MonthlyTotal: noConcurrentTotal(in).Add(payable),
	}
}

// ResolveConcurrentReceipt evaluates both programs and recommends the higher monthly total.
// CRDP wins ties; a member cannot receive both.
func ResolveConcurrentReceipt(in domain.ConcurrentReceiptInput) domain.ConcurrentReceiptResult {
	crdp := CalculateCRDP(in)
	crsc := CalculateCRSC(in)
	res := domain.ConcurrentReceiptResult{
		CRDP:         crdp,
		CRSC:         crsc,
		Recommended:  domain.ProgramNone,
		MonthlyTotal: noConcurrentTotal(in),
	}
	switch {
	case crdp.Eligible && (!crsc.Eligible || !crsc.MonthlyTotal.GreaterThan(crdp.MonthlyTotal)):
		res.Recommended = domain.ProgramCRDP
		res.MonthlyTotal = crdp.MonthlyTotal
	case crsc.Eligible:
		res.Recommended = domain.ProgramCRSC
		res.MonthlyTotal = crsc.MonthlyTotal
	}
	return res
}

// noConcurrentTotal is VA compensation plus retired pay reduced dollar for dollar by the VA waiver
func noConcurrentTotal(in domain.ConcurrentReceiptInput) decimal.Decimal {
	va := ClampMoney(in.VACompensation)
	retired := decimal.Max(ClampMoney(in.RetirementPay).Sub(va), decimal.Zero)
	return va.Add(retired)
}
