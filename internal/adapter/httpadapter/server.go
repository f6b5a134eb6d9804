package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/election-map/internal/domain"
	"github.com/couchcryptid/election-map/internal/pipeline"
	"github.com/couchcryptid/election-map/internal/render"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// YearSelector runs render passes and lists the years it can render.
type YearSelector interface {
	SelectYear(ctx context.Context, year int) (pipeline.Summary, error)
	Years() []int
}

// LayerSource returns the most recently rendered layer.
type LayerSource interface {
	Latest() (domain.Layer, bool)
}

// Server exposes the map API alongside health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	selector   YearSelector
	layers     LayerSource
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /api routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, selector YearSelector, layers LayerSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		selector: selector,
		layers:   layers,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/years", s.handleYears)
	mux.HandleFunc("GET /api/layer", s.handleLayer)
	mux.HandleFunc("GET /api/county/{fips}", s.handleCounty)
	mux.HandleFunc("PUT /api/year/{year}", s.handleSelectYear)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleYears(w http.ResponseWriter, _ *http.Request) {
	years := s.selector.Years()
	if years == nil {
		years = []int{}
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string][]int{"years": years})
}

func (s *Server) handleLayer(w http.ResponseWriter, _ *http.Request) {
	layer, ok := s.layers.Latest()
	if !ok {
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no layer rendered yet"})
		return
	}
	data, err := render.EncodeLayer(layer).MarshalJSON()
	if err != nil {
		s.logger.Error("encode layer failed", "year", layer.Year, "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode layer failed"})
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck // client may have gone away
}

// countyResponse is the hover payload for one county in the latest layer.
type countyResponse struct {
	FIPS    string `json:"fips"`
	Year    int    `json:"year"`
	Tooltip string `json:"tooltip"`
	domain.CountyResult
}

func (s *Server) handleCounty(w http.ResponseWriter, r *http.Request) {
	layer, ok := s.layers.Latest()
	if !ok {
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no layer rendered yet"})
		return
	}
	fips := domain.NormalizeFIPS(r.PathValue("fips"))
	lf, ok := layer.Lookup(fips)
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "unknown county " + fips})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, countyResponse{
		FIPS:         fips,
		Year:         layer.Year,
		Tooltip:      domain.Tooltip(lf.Feature.Name, lf.Result),
		CountyResult: lf.Result,
	})
}

func (s *Server) handleSelectYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "year must be an integer"})
		return
	}

	summary, err := s.selector.SelectYear(r.Context(), year)
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, summary)
}
