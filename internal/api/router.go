package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pelletion/battlereq/internal/api/handler"
	apimiddleware "github.com/pelletion/battlereq/internal/api/middleware"
	"github.com/pelletion/battlereq/internal/middleware"
	"github.com/pelletion/battlereq/internal/services/auth"
	"github.com/pelletion/battlereq/internal/services/availability"
	"github.com/pelletion/battlereq/internal/services/booking"
	"github.com/pelletion/battlereq/internal/twitch"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger              *slog.Logger
	AuthService         *auth.Service
	BookingController   *booking.Controller
	AvailabilityService *availability.Service
	TwitchClient        *twitch.Client
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	requestHandler := handler.NewRequestHandler(cfg.BookingController, cfg.AvailabilityService)
	adminHandler := handler.NewAdminHandler(cfg.AuthService)
	twitchHandler := handler.NewTwitchHandler(cfg.TwitchClient)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Public battle request routes. Availability must register before the
	// {id} route so it isn't captured as an id.
	api.HandleFunc("/battle-requests/availability", requestHandler.Availability).Methods(http.MethodGet)
	api.HandleFunc("/battle-requests", requestHandler.Submit).Methods(http.MethodPost)

	// Status updates are guarded by the per-request token, not a session
	api.HandleFunc("/battle-requests/update-status", requestHandler.UpdateStatus).Methods(http.MethodPost)

	// Admin-only listing routes
	adminRequests := api.PathPrefix("/battle-requests").Subrouter()
	adminRequests.Use(authMiddleware)
	adminRequests.HandleFunc("", requestHandler.List).Methods(http.MethodGet)
	adminRequests.HandleFunc("/{id:[0-9]+}", requestHandler.Get).Methods(http.MethodGet)

	// Admin account routes
	api.HandleFunc("/admin/register", adminHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/admin/login", adminHandler.Login).Methods(http.MethodPost)

	adminProtected := api.PathPrefix("/admin").Subrouter()
	adminProtected.Use(authMiddleware)
	adminProtected.HandleFunc("/logout", adminHandler.Logout).Methods(http.MethodPost)
	adminProtected.HandleFunc("/me", adminHandler.Me).Methods(http.MethodGet)

	// Twitch proxy routes (no session; the Helix token travels with the call)
	api.HandleFunc("/twitch/auth", twitchHandler.Auth).Methods(http.MethodGet)
	api.HandleFunc("/twitch/channel/live", twitchHandler.Live).Methods(http.MethodGet)
	api.HandleFunc("/twitch/channel/videos", twitchHandler.Videos).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
