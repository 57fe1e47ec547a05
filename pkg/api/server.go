// Package api cohbin REST API
//
// @title           cohbin REST API
// @version         1.0.0
// @description     Read-only access to decoded game data files.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/ssargent/cohbin/pkg/metrics"
	"github.com/swaggo/swag"
)

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>cohbin API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

// Server holds the API server state
type Server struct {
	catalog  Catalog
	exports  ExportStore
	config   ServerConfig
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   zerolog.Logger
}

// NewServer creates a new API server. exports may be nil, in which case the
// export routes answer 503.
func NewServer(catalog Catalog, exports ExportStore, config ServerConfig, m *metrics.Metrics, gatherer prometheus.Gatherer, logger zerolog.Logger) *Server {
	return &Server{
		catalog:  catalog,
		exports:  exports,
		config:   config,
		metrics:  m,
		gatherer: gatherer,
		logger:   logger,
	}
}

// Router builds the HTTP handler with all routes configured
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		if s.config.APIKey != "" {
			r.Use(s.metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))
		}

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Archive
		r.Get("/files", s.metrics.InstrumentHandler("GET", "/api/v1/files", s.handleFiles))
		r.Get("/kinds", s.metrics.InstrumentHandler("GET", "/api/v1/kinds", s.handleKinds))
		r.Get("/bins/{kind}", s.metrics.InstrumentHandler("GET", "/api/v1/bins/{kind}", s.handleDecode))
		r.Get("/messages/{key}", s.metrics.InstrumentHandler("GET", "/api/v1/messages/{key}", s.handleMessage))

		// Exports
		r.Get("/exports/{kind}", s.metrics.InstrumentHandler("GET", "/api/v1/exports/{kind}", s.handleListExports))
		r.Post("/exports/{kind}", s.metrics.InstrumentHandler("POST", "/api/v1/exports/{kind}", s.handleCreateExport))
		r.Get("/exports/{kind}/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/exports/{kind}/{id}", s.handleGetExport))
		r.Delete("/exports/{kind}/{id}", s.metrics.InstrumentHandler("DELETE", "/api/v1/exports/{kind}/{id}", s.handleDeleteExport))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", s.handleSwagger)

	return r
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))
	case "/swagger/swagger.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to generate swagger doc")
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	default:
		http.NotFound(w, r)
	}
}

// StartServer serves the API until ctx is cancelled, then shuts down
// gracefully
func StartServer(ctx context.Context, catalog Catalog, exports ExportStore, config ServerConfig, logger zerolog.Logger) error {
	SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	server := NewServer(catalog, exports, config, metrics.New(reg), reg, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Bind, config.Port),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting cohbin REST API server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
