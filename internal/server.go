package internal

import (
	"context"
	"net/http"

	"it-helpdesk/internal/config"
	"it-helpdesk/internal/handlers"
	"it-helpdesk/internal/store"
	"it-helpdesk/pkg/importer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Store   *store.Store
	Schema  importer.Schema
	Metrics *Metrics
	Log     logrus.FieldLogger
}

// NewServer resolves the asset schema and mounts every route.
func NewServer(cfg *config.Config, log logrus.FieldLogger) (*Server, error) {
	schema, err := importer.ResolveSchema(cfg.AssetSchema, cfg.AssetSchemaFile)
	if err != nil {
		return nil, errors.Wrap(err, "resolve asset schema")
	}

	views, err := handlers.NewViews(log)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Router:  chi.NewRouter(),
		Store:   store.New(),
		Schema:  schema,
		Metrics: NewMetrics(),
		Log:     log,
	}

	s.Router.Use(middleware.RequestID)
	s.Router.Use(RequestLogger(log))
	s.Router.Use(middleware.Recoverer)

	if cfg.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	s.mountRoutes(s.Router, cfg, views)

	return s, nil
}

// mountRoutes mounts the HTML pages
func (s *Server) mountRoutes(r chi.Router, cfg *config.Config, views *handlers.Views) {
	imports := handlers.NewImportsHandler(s.Store, s.Schema, views, s.Log)
	imports.MaxBytes = cfg.MaxUploadBytes
	imports.Metrics = s.Metrics

	assets := handlers.NewAssetsHandler(s.Store, s.Schema, views)

	tickets := handlers.NewTicketsHandler(s.Store, views, s.Log)
	tickets.Metrics = s.Metrics

	r.Get("/", views.Page("home"))

	r.Get("/upload", imports.UploadForm)
	r.Post("/upload", imports.Upload)
	r.Get("/assets", assets.ListAssets)

	r.Get("/ticket", tickets.TicketForm)
	r.Post("/ticket", tickets.CreateTicket)
	r.Get("/tickets", tickets.ListTickets)
}

// Close releases server resources. The store is in memory, so there is
// nothing to flush.
func (s *Server) Close(ctx context.Context) error {
	s.Log.Info("Server closed")
	return nil
}
