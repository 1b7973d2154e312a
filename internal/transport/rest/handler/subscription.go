package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"hirelens/internal/service"
	"hirelens/internal/transport/rest/middleware"
)

// SubscriptionHandler handles subscription endpoints
type SubscriptionHandler struct {
	subscriptionSvc *service.SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionSvc *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionSvc: subscriptionSvc}
}

// CreateSubscriptionRequest is the request body for creating a plan
type CreateSubscriptionRequest struct {
	PlanName string `json:"planName" validate:"required,min=1,max=80"`
	Credits  int    `json:"credits" validate:"required,min=1,max=1000"`
}

// Create handles POST /v1/subscriptions
func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	var req CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.subscriptionSvc.Create(r.Context(), ownerID, req.PlanName, req.Credits)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sub)
}

// Get handles GET /v1/subscriptions/{id}
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	id := mux.Vars(r)["id"]

	sub, err := h.subscriptionSvc.Get(r.Context(), ownerID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}

// GetActive handles GET /v1/subscriptions/active
func (h *SubscriptionHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	sub, err := h.subscriptionSvc.GetActive(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sub)
}
