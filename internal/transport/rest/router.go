package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"clinscore/internal/service"
	"clinscore/internal/transport/rest/handler"
	"clinscore/internal/transport/rest/middleware"
	"clinscore/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	CatalogService  *service.CatalogService
	ResponseService *service.ResponseService
	StatsService    *service.StatsService
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	questionnaireHandler := handler.NewQuestionnaireHandler(c.CatalogService)
	responseHandler := handler.NewResponseHandler(c.ResponseService)
	statsHandler := handler.NewStatsHandler(c.StatsService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes: respondents fetch the schema and submit answers
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questionnaires/{id}", questionnaireHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questionnaires/{id}/responses", responseHandler.Submit).Methods("POST", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/questionnaires/{id}/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/questionnaires", questionnaireHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{id}/scoring-config", questionnaireHandler.SetScoringConfig).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{id}/responses", responseHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{id}/recalculate", responseHandler.Recalculate).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questionnaires/{id}/stats", statsHandler.ForQuestionnaire).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/responses/{id}", responseHandler.Get).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
