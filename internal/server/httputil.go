package server

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/scott198989/securepoint-sub000/internal/wizard"
)

// writeJSON marshals v as JSON and writes it with the given status code
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("writeJSON encode error: %v", err)
	}
}

type errorBody struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	QuestionID string `json:"questionId,omitempty"`
}

// writeError writes a structured JSON error response
func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorBody{Error: message, Code: code})
}

// maxBodyBytes caps every JSON request body
const maxBodyBytes = 1 << 20

// decodeJSON decodes the request body into v, rejecting unknown fields and
// bodies over maxBodyBytes
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// serviceError maps wizard and store errors to HTTP responses
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	var answerErr *wizard.AnswerError
	switch {
	case errors.As(err, &answerErr):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:      answerErr.Message,
			Code:       "INVALID_ANSWER",
			QuestionID: answerErr.QuestionID,
		})
	case errors.Is(err, wizard.ErrSessionNotFound),
		errors.Is(err, wizard.ErrResultNotFound),
		errors.Is(err, wizard.ErrConfigNotFound),
		errors.Is(err, wizard.ErrUnknownQuestion):
		s.writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, wizard.ErrSessionComplete):
		s.writeError(w, http.StatusConflict, "SESSION_COMPLETE", err.Error())
	case errors.Is(err, wizard.ErrStepOutOfRange):
		s.writeError(w, http.StatusBadRequest, "STEP_OUT_OF_RANGE", err.Error())
	default:
		s.logger.Errorf("internal error: %v", err)
		s.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
