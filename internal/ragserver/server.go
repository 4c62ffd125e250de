// Package ragserver exposes the placeholder retrieval endpoint that fronts
// the guideline corpus for report-drafting pipelines.
package ragserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	ragRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rag_requests_total",
			Help: "Total number of /rag requests",
		},
		[]string{"status"},
	)

	ragRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rag_request_duration_seconds",
			Help:    "RAG request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)
)

// QueryRequest is the /rag request body.
type QueryRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

// QueryResponse echoes the question with retrieved contexts and a
// placeholder answer.
type QueryResponse struct {
	Question string     `json:"question"`
	Contexts []Document `json:"contexts"`
	Answer   string     `json:"answer"`
}

// Handler provides the HTTP handlers for the retrieval service.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a retrieval handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// Routes registers the retrieval routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/rag", h.Query)
	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// Query retrieves the best-matching guideline snippets for a question.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ragRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusBadRequest)).Inc()
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Question == "" {
		ragRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusBadRequest)).Inc()
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	hits := Retrieve(req.Question, req.TopK)
	h.logger.Info("rag query",
		zap.String("question", req.Question),
		zap.Int("hits", len(hits)),
	)

	ragRequestsTotal.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	ragRequestDuration.Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, QueryResponse{
		Question: req.Question,
		Contexts: hits,
		Answer:   "Placeholder answer grounded in retrieved snippets.",
	})
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
