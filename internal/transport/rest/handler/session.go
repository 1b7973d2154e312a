package handler

import (
	"encoding/json"
	"net/http"

	"hirelens/internal/model"
	"hirelens/internal/service"
	"hirelens/internal/transport/rest/middleware"
)

// SessionHandler handles candidate-facing endpoints gated by the
// interview session token.
type SessionHandler struct {
	interviewSvc *service.InterviewService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(interviewSvc *service.InterviewService) *SessionHandler {
	return &SessionHandler{interviewSvc: interviewSvc}
}

// SubmitAnswerRequest is the request body for an answer submission
type SubmitAnswerRequest struct {
	Answer  string                `json:"answer" validate:"required,min=1,max=20000"`
	Sensors *model.SensorMetadata `json:"sensors,omitempty"`
}

// SubmitAnswer handles POST /v1/session/answers
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSessionToken(r.Context())

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.interviewSvc.SubmitAnswer(r.Context(), token, req.Answer, req.Sensors)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Cancel handles POST /v1/session/cancel
func (h *SessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSessionToken(r.Context())

	if err := h.interviewSvc.Cancel(r.Context(), token); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
