// Package server exposes the calculators, datasets and charts over HTTP and
// serves the embedded web UI.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/iwvelando/poder-adquisitivo/internal/charts"
	"github.com/iwvelando/poder-adquisitivo/internal/compare"
	"github.com/iwvelando/poder-adquisitivo/internal/config"
	"github.com/iwvelando/poder-adquisitivo/internal/dataset"
	"github.com/iwvelando/poder-adquisitivo/internal/navigation"
	"github.com/iwvelando/poder-adquisitivo/internal/series"
	"github.com/iwvelando/poder-adquisitivo/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

// Error kinds reported for failures outside the series taxonomy.
const (
	kindBadRequest     = "bad_request"
	kindBodyTooLarge   = "body_too_large"
	kindUnknownVariant = "unknown_variant"
	kindUnknownMarket  = "unknown_market"
)

type handler struct {
	logger     *zap.Logger
	conf       *config.Configuration
	store      *dataset.Store
	comparator *compare.Comparator
	cfg        *Config
}

type errorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

type seriesResponse struct {
	Name    string                 `json:"name"`
	Records []series.MonthlyRecord `json:"records"`
}

// NewHandler constructs the HTTP handler that serves the web UI and the
// comparison API over the loaded datasets.
func NewHandler(logger *zap.Logger, conf *config.Configuration, store *dataset.Store, cfg *Config) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = dataset.NewStore()
	}

	bounds := series.Bounds{Min: conf.Periods.Min, Max: conf.Periods.Max}
	h := &handler{
		logger:     logger,
		conf:       conf,
		store:      store,
		comparator: compare.NewComparator(logger, store.Datasets(), bounds),
		cfg:        cfg,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(limitBody(cfg.BodySizeBytes()))

	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/sections", h.handleSections)
		r.Get("/bounds", h.handleBounds)
		r.Get("/config", h.handleConfig)
		r.Get("/series/{dataset}", h.handleSeries)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/exchange-inflation", h.handleExchangeChart)
			r.Get("/fare", h.handleFareChart)
		})
		r.Post("/compare/{variant}", h.handleCompare)
	})

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.Handle("/*", http.FileServer(http.FS(sub)))

	return r
}

// Server wraps an http.Server running the handler.
type Server struct {
	logger *zap.Logger
	server *http.Server
}

// New creates a server listening on cfg.Address.
func New(logger *zap.Logger, handler http.Handler, cfg *Config) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.RequestTimeout,
			WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// ListenAndServe blocks until the server stops. A graceful shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting HTTP server",
		zap.String("op", "server.ListenAndServe"),
		zap.String("address", s.server.Addr),
	)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server", zap.String("op", "server.Shutdown"))
	return s.server.Shutdown(ctx)
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"datasets": h.store.Names(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.cfg.Version,
	})
}

func (h *handler) handleSections(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, navigation.Sections())
}

func (h *handler) handleBounds(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.comparator.Bounds())
}

func (h *handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	data, err := yaml.Marshal(h.conf)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Kind: string(series.KindUnknown)}, "server.handleConfig")
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write YAML response", zap.String("op", "server.handleConfig"), zap.Error(err))
	}
}

func (h *handler) handleSeries(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "dataset")
	s, ok := h.store.Get(name)
	if !ok {
		h.respondError(w, http.StatusNotFound, errorResponse{
			Error: fmt.Sprintf("dataset %q not loaded", name),
			Kind:  string(series.KindUnknown),
		}, "server.handleSeries")
		return
	}
	h.writeJSON(w, http.StatusOK, seriesResponse{Name: s.Name, Records: s.Records()})
}

func (h *handler) handleExchangeChart(w http.ResponseWriter, r *http.Request) {
	ds := h.store.Datasets()
	h.writeJSON(w, http.StatusOK, charts.ExchangeVsInflation(ds.Inflation, ds.OfficialRate, ds.BlueRate))
}

func (h *handler) handleFareChart(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, charts.FareHistory(h.store.Datasets().Fare))
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"

	variant, err := compare.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		h.respondError(w, http.StatusNotFound, errorResponse{Error: err.Error(), Kind: kindUnknownVariant}, op)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: fmt.Sprintf("request body exceeds limit of %d bytes", h.cfg.BodySizeBytes()),
				Kind:  kindBodyTooLarge,
			}, op)
			return
		}
		h.respondError(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("failed to read request: %v", err), Kind: kindBadRequest}, op)
		return
	}

	req, err := compare.DecodeRequest(variant, body)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: kindBadRequest}, op)
		return
	}

	result, err := h.comparator.Compare(req)
	if err != nil {
		if errors.Is(err, compare.ErrUnknownMarket) {
			h.respondError(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: kindUnknownMarket}, op)
			return
		}
		resp := errorResponse{Error: err.Error(), Kind: string(series.KindOf(err))}
		if msg, ok := output.ErrorMessage(err, h.comparator.Bounds()); ok {
			resp.Message = msg
		}
		h.respondError(w, http.StatusUnprocessableEntity, resp, op)
		return
	}

	h.writeJSON(w, http.StatusOK, output.View(result))
}

func (h *handler) respondError(w http.ResponseWriter, status int, resp errorResponse, op string) {
	level := h.logger.Warn
	if status >= http.StatusInternalServerError {
		level = h.logger.Error
	}
	level("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("kind", resp.Kind),
		zap.String("error", resp.Error),
	)

	h.writeJSON(w, status, resp)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}
