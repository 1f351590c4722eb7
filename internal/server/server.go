// Package server exposes the dashboard over HTTP: the record query API, the
// WebSocket selection-sync channel, export downloads, and the embedded
// single-page table+map frontend.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/schema"
	"go.uber.org/zap"

	"github.com/sells-group/siteboard/internal/config"
	"github.com/sells-group/siteboard/internal/engine"
	"github.com/sells-group/siteboard/internal/export"
	"github.com/sells-group/siteboard/internal/geo"
	"github.com/sells-group/siteboard/internal/model"
	"github.com/sells-group/siteboard/internal/monitoring"
	"github.com/sells-group/siteboard/internal/selection"
	"github.com/sells-group/siteboard/internal/store"
)

// Server wires the store, query engine, selection tracker, and sync hub
// behind one router.
type Server struct {
	cfg       config.ServerConfig
	store     *store.Store
	tracker   *selection.Tracker
	hub       *Hub
	collector *monitoring.Collector
	decoder   *schema.Decoder
}

// New creates a Server and subscribes the hub to selection changes, so any
// transition reaches every connected view.
func New(cfg config.ServerConfig, st *store.Store) *Server {
	s := &Server{
		cfg:       cfg,
		store:     st,
		tracker:   selection.New(),
		hub:       NewHub(),
		collector: monitoring.NewCollector(),
		decoder:   newParamsDecoder(),
	}
	s.tracker.Subscribe(func(ev selection.Event) {
		s.collector.RecordSelection()
		s.hub.Broadcast(newMessage(msgSelection, ev))
	})
	return s
}

func newParamsDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// Router builds the chi router with CORS, request logging, rate limiting,
// and the simulated-latency middleware on data fetches.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	r.Use(requestLogger)
	r.Use(rateLimiter(s.cfg.RateLimit, s.cfg.RateBurst))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/stats", s.handleStats)
	r.Get("/ws", s.handleWS)

	// The original frontend simulated network latency on every data fetch;
	// the same delay lives here so the debounced UI behaves identically.
	r.Group(func(r chi.Router) {
		r.Use(simulatedLatency(s.cfg.FetchLatency))
		r.Get("/api/records", s.handleRecords)
		r.Get("/api/records/export", s.handleExport)
		r.Get("/api/records/{id}", s.handleRecord)
	})

	r.Handle("/*", http.FileServer(http.FS(staticFS())))

	return r
}

// recordsResponse is the payload of GET /api/records and of WebSocket
// result pushes. Bounds is omitted for empty pages.
type recordsResponse struct {
	Items        []model.Record `json:"items"`
	TotalMatched int            `json:"total_matched"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	Bounds       *geo.Bounds    `json:"bounds,omitempty"`
}

// runQuery executes one engine query against the current snapshot and
// assembles the wire response.
func (s *Server) runQuery(params model.QueryParams) recordsResponse {
	start := time.Now()
	res := engine.Query(s.store.Records(), params)
	s.collector.RecordQuery(time.Since(start))

	resp := recordsResponse{
		Items:        res.Items,
		TotalMatched: res.TotalMatched,
		Page:         params.Page,
		PageSize:     params.PageSize,
	}
	if b, ok := geo.PageBounds(res.Items); ok {
		resp.Bounds = &b
	}
	return resp
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	var params model.QueryParams
	if err := s.decoder.Decode(&params, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}
	writeJSON(w, http.StatusOK, s.runQuery(params.Normalize()))
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var params model.QueryParams
	if err := s.decoder.Decode(&params, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}

	// Export covers the whole filtered+sorted set, not one page.
	records := s.store.Records()
	params = params.Normalize()
	params.Page = 1
	params.PageSize = len(records)
	res := engine.Query(records, params)
	s.collector.RecordExport()

	switch format := r.URL.Query().Get("format"); format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="records.xlsx"`)
		if err := export.WriteXLSX(w, res.Items); err != nil {
			zap.L().Error("server: xlsx export failed", zap.Error(err))
		}
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="records.csv"`)
		if err := export.WriteCSV(w, res.Items); err != nil {
			zap.L().Error("server: csv export failed", zap.Error(err))
		}
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
	}
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.collector.Collect(s.store.Len()))
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("server: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
