package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the chi router: request ID, real IP, panic recovery,
// structured request logging, CORS when origins are configured, and the
// /api/v1 routes.
func NewRouter(h *Handler, logger *slog.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return httplogger.LoggingMiddlewareSlog(logger, next)
	})

	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate_client", h.GenerateClient)
		r.Post("/get_service_list", h.GetServiceList)
		r.Post("/add_service", h.AddService)
		r.Post("/approve_service", h.ApproveService)
		r.Post("/fetch_client", h.FetchClient)
		r.Post("/encrypt_clientid", h.EncryptClientID)
		r.Post("/decrypt_clientid", h.DecryptClientID)
		r.Get("/health", h.Health)
	})

	return r
}
