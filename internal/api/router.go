// Package api serves the engine over HTTP.
package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/satoh-er/eui_calc_go/energycalc"
	"github.com/satoh-er/eui_calc_go/internal/metrics"
	"github.com/satoh-er/eui_calc_go/refdata"
)

type Server struct {
	engine  *energycalc.Engine
	tables  *refdata.Tables
	metrics *metrics.Metrics
	log     *slog.Logger
}

// New builds the API. m may be nil, in which case /metrics is not served.
func New(engine *energycalc.Engine, tables *refdata.Tables, m *metrics.Metrics, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{engine: engine, tables: tables, metrics: m, log: log}
}

// NewRouter registers the routes with their per-route metrics.
func (s *Server) NewRouter() *mux.Router {
	r := mux.NewRouter()

	route := func(path string, h http.HandlerFunc) http.Handler {
		return s.metrics.WrapHandler(path, h)
	}
	jsonBody := func(h http.Handler) http.Handler {
		return handlers.ContentTypeHandler(h, "application/json")
	}

	r.Handle("/healthz", route("/healthz", s.health)).Methods(http.MethodGet)
	r.Handle("/v1/cities", route("/v1/cities", s.listCities)).Methods(http.MethodGet)
	r.Handle("/v1/materials", route("/v1/materials", s.listMaterials)).Methods(http.MethodGet)
	r.Handle("/v1/evaluate", jsonBody(route("/v1/evaluate", s.evaluate))).Methods(http.MethodPost)
	r.Handle("/v1/compare", jsonBody(route("/v1/compare", s.compare))).Methods(http.MethodPost)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}
	return r
}

// Handler wraps the router with panic recovery and access logging.
func (s *Server) Handler() http.Handler {
	recovered := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError)),
	)(s.NewRouter())

	return handlers.CustomLoggingHandler(io.Discard, recovered, func(_ io.Writer, p handlers.LogFormatterParams) {
		s.log.Info("http request",
			"method", p.Request.Method,
			"path", p.URL.Path,
			"status", p.StatusCode,
			"size", p.Size,
			"elapsed", time.Since(p.TimeStamp),
		)
	})
}
