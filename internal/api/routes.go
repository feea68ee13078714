package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Newrona-pi/Twilio-mensetsu/internal/config"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/storage/sqlite"
	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(cfg *config.Config, appointments *sqlite.AppointmentStorage, callbacks *sqlite.CallbackStorage, log *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(cfg, appointments, callbacks, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// Call entry points
	router.Post("/voice/entry", r.handler.VoiceEntry)
	router.Get("/voice/stream", r.handler.VoiceStream)

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		router.Get("/appointments", r.handler.GetAppointments)
		router.Get("/callbacks", r.handler.GetCallbacks)
		router.Get("/health", r.handler.GetHealth)
	})

	return router
}
