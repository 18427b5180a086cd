package routes

import (
	"net/http"
	"time"

	"pastoral-bknd/internal/config"
	"pastoral-bknd/internal/geoindex"
	"pastoral-bknd/internal/handlers"
	"pastoral-bknd/internal/logger"
	mdlwr "pastoral-bknd/internal/middleware"
	"pastoral-bknd/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/cors"
)

func NewRouter(index *geoindex.Index, cfg *config.Config, logr *logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(mdlwr.NewRequestLogger(logr.Logger).Handler)

	// CORS middleware with config
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Marker and detail queries go to the remote parish API when one is
	// configured; otherwise the built-in index serves both.
	var source services.MarkerSource = index
	var remote services.DetailSource = index
	var searcher handlers.Searcher
	if cfg.ParishAPIBaseURL != "" {
		client := services.NewParishAPIClient(cfg.ParishAPIBaseURL, cfg.HTTPTimeout)
		source = client
		remote = client
		searcher = client
	}

	manager := services.NewSessionManager(index, source, remote, nil,
		cfg.BoundsPrecision, cfg.DebounceWindow, cfg.HTTPTimeout, logr.Logger)
	manager.StartSweeper(5*time.Minute, 30*time.Minute)
	relay := services.NewChatRelay(cfg.ChatRelayURL, cfg.HTTPTimeout, logr.Logger)
	appointmentSvc := services.NewAppointmentService(cfg.AppointmentSinkURL, cfg.HTTPTimeout, logr.Logger)

	sessionHandler := handlers.NewSessionHandler(manager, logr.Logger)
	parishHandler := handlers.NewParishHandler(index, remote, searcher, logr.Logger)
	metaHandler := handlers.NewMetaHandler(index, logr.Logger)
	chatHandler := handlers.NewChatHandler(relay, logr.Logger)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentSvc, logr.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("ok"))
		if err != nil {
			return
		}
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.CreateSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", sessionHandler.DeleteSession)
				r.Put("/filters", sessionHandler.SetFilters)
				r.Get("/markers", sessionHandler.GetMarkers)
				r.Get("/parishes", sessionHandler.GetParishes)

				r.Route("/viewport", func(r chi.Router) {
					r.Get("/", sessionHandler.GetViewport)
					r.Post("/bounds", sessionHandler.BoundsChanged)
					r.Post("/ready", sessionHandler.Ready)
				})

				r.Post("/selection", sessionHandler.Select)
				r.Delete("/selection", sessionHandler.ClearSelection)

				r.Post("/chat", chatHandler.Ask(sessionHandler))
				r.Get("/chat", chatHandler.Transcript(sessionHandler))
			})
		})

		r.Route("/parishes", func(r chi.Router) {
			r.Get("/", parishHandler.Search)
			r.Get("/filter", parishHandler.Filter)
			r.Get("/{id}", parishHandler.GetByID)
		})

		r.Route("/meta", func(r chi.Router) {
			r.Get("/services", metaHandler.GetServices)
			r.Get("/countries", metaHandler.GetCountries)
			r.Get("/provinces", metaHandler.GetProvinces)
		})

		r.Post("/appointments", appointmentHandler.Create)
	})

	return r
}
