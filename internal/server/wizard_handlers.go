package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/wizard"
)

// GET /v1/wizards
func (s *Server) handleListWizards(w http.ResponseWriter, r *http.Request) {
	type summary struct {
		ID          string           `json:"id"`
		Title       string           `json:"title"`
		Description string           `json:"description,omitempty"`
		PayTypes    []domain.PayType `json:"payTypes"`
		Questions   int              `json:"questions"`
	}
	wizards := s.service.Wizards()
	out := make([]summary, 0, len(wizards))
	for _, cfg := range wizards {
		out = append(out, summary{
			ID:          cfg.ID,
			Title:       cfg.Title,
			Description: cfg.Description,
			PayTypes:    cfg.PayTypes,
			Questions:   len(cfg.Questions()),
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"wizards": out})
}

// GET /v1/wizards/{configID}
func (s *Server) handleGetWizard(w http.ResponseWriter, r *http.Request) {
	m, err := s.service.Machine(chi.URLParam(r, "configID"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m.Config())
}

// POST /v1/wizards/{configID}/sessions
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Start(r.Context(), chi.URLParam(r, "configID"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/sessions/"+snap.Session.ID)
	s.writeJSON(w, http.StatusCreated, snap)
}

// GET /v1/sessions/{id}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK)(s.service.Get(r.Context(), chi.URLParam(r, "id")))
}

// DELETE /v1/sessions/{id}
func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type answerRequest struct {
	Value domain.AnswerValue `json:"value"`
}

// PUT /v1/sessions/{id}/answers/{questionID}
func (s *Server) handleSetAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid answer body: "+err.Error())
		return
	}
	s.respond(w, http.StatusOK)(s.service.SetAnswer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "questionID"), req.Value))
}

// POST /v1/sessions/{id}/next
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK)(s.service.Next(r.Context(), chi.URLParam(r, "id")))
}

// POST /v1/sessions/{id}/previous
func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK)(s.service.Previous(r.Context(), chi.URLParam(r, "id")))
}

// POST /v1/sessions/{id}/steps/{index}
func (s *Server) handleGoToStep(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	step, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_STEP", "invalid step index: "+raw)
		return
	}
	s.respond(w, http.StatusOK)(s.service.GoToStep(r.Context(), chi.URLParam(r, "id"), step))
}

// POST /v1/sessions/{id}/complete
func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK)(s.service.Complete(r.Context(), chi.URLParam(r, "id")))
}

// GET /v1/results/{id}
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Result(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type assessmentRequest struct {
	PayTypes []domain.PayType `json:"payTypes"`
	Answers  []domain.Answer  `json:"answers"`
}

// POST /v1/assessments
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_BODY", "invalid assessment body: "+err.Error())
		return
	}
	if len(req.PayTypes) == 0 {
		s.writeError(w, http.StatusBadRequest, "MISSING_PAY_TYPES", "payTypes is required")
		return
	}
	result, err := s.service.Assess(r.Context(), req.PayTypes, req.Answers)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, result)
}

// respond writes a snapshot or maps the error
func (s *Server) respond(w http.ResponseWriter, status int) func(*wizard.Snapshot, error) {
	return func(snap *wizard.Snapshot, err error) {
		if err != nil {
			s.serviceError(w, err)
			return
		}
		s.writeJSON(w, status, snap)
	}
}
