package server

import (
	"net/http"

	"github.com/scott198989/securepoint-sub000/internal/calculation"
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/metrics"
)

// calculate decodes the body into In, validates it and writes the result of fn
func calculate[In any](s *Server, name string, validate func(In) error, fn func(In) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decodeJSON(w, r, &in); err != nil {
			metrics.ObserveCalculator(name, err)
			s.writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid "+name+" body: "+err.Error())
			return
		}
		if validate != nil {
			if err := validate(in); err != nil {
				metrics.ObserveCalculator(name, err)
				s.writeError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
				return
			}
		}
		out, err := fn(in)
		metrics.ObserveCalculator(name, err)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, "CALCULATION_FAILED", err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, out)
	}
}

type ratingRequest struct {
	Ratings []int `json:"ratings"`
}

type compensationRequest struct {
	Rating     *int              `json:"rating"`
	Ratings    []int             `json:"ratings"`
	Dependents domain.Dependents `json:"dependents"`
}

// rating is the explicit combined rating, or the combination of the individual ratings
func (c compensationRequest) rating() int {
	if c.Rating != nil {
		return *c.Rating
	}
	return calculation.CombineRatings(c.Ratings)
}

func validateCompensation(c compensationRequest) error {
	if c.Rating != nil {
		if err := calculation.ValidateRatings([]int{*c.Rating}); err != nil {
			return err
		}
	}
	if err := calculation.ValidateRatings(c.Ratings); err != nil {
		return err
	}
	return calculation.ValidateDependents(c.Dependents)
}

func (s *Server) handleVARating(w http.ResponseWriter, r *http.Request) {
	calculate(s, "va_rating",
		func(in ratingRequest) error { return calculation.ValidateRatings(in.Ratings) },
		func(in ratingRequest) (any, error) { return calculation.CombinedRatingWorksheetFor(in.Ratings), nil },
	)(w, r)
}

func (s *Server) handleVACompensation(w http.ResponseWriter, r *http.Request) {
	calculate(s, "va_compensation", validateCompensation,
		func(in compensationRequest) (any, error) {
			return calculation.CalculateVACompensation(in.rating(), in.Dependents), nil
		},
	)(w, r)
}

func (s *Server) handleRetirement(w http.ResponseWriter, r *http.Request) {
	calculate(s, "retirement", calculation.ValidateRetirementInput,
		func(in domain.RetirementInput) (any, error) { return calculation.CalculateRetirementPay(in), nil },
	)(w, r)
}

func (s *Server) handleConcurrentReceipt(w http.ResponseWriter, r *http.Request) {
	calculate(s, "concurrent_receipt", calculation.ValidateConcurrentInput,
		func(in domain.ConcurrentReceiptInput) (any, error) { return calculation.ResolveConcurrentReceipt(in), nil },
	)(w, r)
}

func (s *Server) handleSeparationPay(w http.ResponseWriter, r *http.Request) {
	calculate(s, "separation_pay", calculation.ValidateSeparationInput,
		func(in domain.SeparationPayInput) (any, error) { return calculation.CalculateSeparationPay(in), nil },
	)(w, r)
}

func (s *Server) handleLeaveSellback(w http.ResponseWriter, r *http.Request) {
	calculate(s, "leave_sellback", calculation.ValidateLeaveInput,
		func(in domain.LeaveSellbackInput) (any, error) { return calculation.CalculateLeaveSellback(in), nil },
	)(w, r)
}

func (s *Server) handleTaxes(w http.ResponseWriter, r *http.Request) {
	calculate(s, "taxes", calculation.ValidateTaxInput,
		func(in domain.TaxInput) (any, error) { return s.taxes.EstimateTaxes(in) },
	)(w, r)
}

func (s *Server) handlePayEstimate(w http.ResponseWriter, r *http.Request) {
	calculate(s, "pay_estimate", calculation.ValidatePayInput,
		func(in domain.PayInput) (any, error) { return s.taxes.EstimatePay(in) },
	)(w, r)
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	calculate(s, "transition", calculation.ValidateTransitionInput,
		func(in domain.TransitionInput) (any, error) { return s.taxes.ProjectTransition(in) },
	)(w, r)
}
