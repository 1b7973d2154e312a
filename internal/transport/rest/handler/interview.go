package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"hirelens/internal/service"
	"hirelens/internal/transport/rest/middleware"
)

// InterviewHandler handles owner-facing interview endpoints
type InterviewHandler struct {
	interviewSvc *service.InterviewService
	reportSvc    *service.ReportService
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(interviewSvc *service.InterviewService, reportSvc *service.ReportService) *InterviewHandler {
	return &InterviewHandler{interviewSvc: interviewSvc, reportSvc: reportSvc}
}

// StartInterviewRequest is the request body for starting an interview
type StartInterviewRequest struct {
	CandidateName string `json:"candidateName" validate:"required,min=1,max=120"`
	Position      string `json:"position" validate:"required,min=2,max=120"`
	MaxQuestions  int    `json:"maxQuestions" validate:"omitempty,min=1,max=20"`
}

// Start handles POST /v1/interviews
func (h *InterviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	var req StartInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.interviewSvc.Start(r.Context(), ownerID, req.CandidateName, req.Position, req.MaxQuestions)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"interviewId":   result.Interview.ID,
		"sessionToken":  result.SessionToken,
		"firstQuestion": result.FirstQuestion,
	})
}

// List handles GET /v1/interviews
func (h *InterviewHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	interviews, err := h.interviewSvc.List(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"interviews": interviews})
}

// Get handles GET /v1/interviews/{id}
func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	id := mux.Vars(r)["id"]

	snapshot, err := h.interviewSvc.Get(r.Context(), ownerID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// GetReport handles GET /v1/reports/{interviewId}
func (h *InterviewHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	interviewID := mux.Vars(r)["interviewId"]

	owns, err := h.interviewSvc.OwnsInterview(r.Context(), ownerID, interviewID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !owns {
		writeError(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}

	report, err := h.reportSvc.GetByInterview(r.Context(), interviewID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
