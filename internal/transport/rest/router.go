package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"hirelens/internal/service"
	"hirelens/internal/transport/rest/handler"
	"hirelens/internal/transport/rest/middleware"
	"hirelens/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService         *service.AuthService
	SubscriptionService *service.SubscriptionService
	InterviewService    *service.InterviewService
	ReportService       *service.ReportService
	WSHub               *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	subscriptionHandler := handler.NewSubscriptionHandler(c.SubscriptionService)
	interviewHandler := handler.NewInterviewHandler(c.InterviewService, c.ReportService)
	sessionHandler := handler.NewSessionHandler(c.InterviewService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.InterviewService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (owner token in query param)
	v1.HandleFunc("/ws/interviews/{id}/watch", wsHandler.WatchWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Owner routes (require owner auth)
	ownerRoutes := v1.NewRoute().Subrouter()
	ownerRoutes.Use(authMW.RequireOwner)

	ownerRoutes.HandleFunc("/subscriptions", subscriptionHandler.Create).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/subscriptions/active", subscriptionHandler.GetActive).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/subscriptions/{id}", subscriptionHandler.Get).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/interviews", interviewHandler.Start).Methods("POST", "OPTIONS")
	ownerRoutes.HandleFunc("/interviews", interviewHandler.List).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/interviews/{id}", interviewHandler.Get).Methods("GET", "OPTIONS")
	ownerRoutes.HandleFunc("/reports/{interviewId}", interviewHandler.GetReport).Methods("GET", "OPTIONS")

	// Session routes (require the interview session token)
	sessionRoutes := v1.NewRoute().Subrouter()
	sessionRoutes.Use(authMW.RequireSessionToken)

	sessionRoutes.HandleFunc("/session/answers", sessionHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/session/cancel", sessionHandler.Cancel).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.SessionTokenHeader)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
