package threshold

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// maxBodyBytes matches the API Gateway payload limit.
const maxBodyBytes = 10 << 20

// HTTPOptions configures the local HTTP front of the handler.
type HTTPOptions struct {
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer // nil disables /metrics
	Ready          func() bool         // nil means always ready
}

// NewHTTPHandler serves the handler over plain HTTP for local development:
//
//	POST /threshold  threshold update
//	GET  /healthz    liveness
//	GET  /readyz     readiness
//	GET  /metrics    Prometheus metrics
func NewHTTPHandler(h *Handler, opts HTTPOptions) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) }).
		Methods(http.MethodGet)

	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ready := opts.Ready == nil || opts.Ready()
		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ready": ready})
	}).Methods(http.MethodGet)

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	r.HandleFunc("/threshold", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		requestID := req.Header.Get("X-Request-Id")

		var resp Response
		raw, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
		if err != nil {
			resp = h.rejectUnreadable(requestID, err)
		} else {
			resp = h.Handle(req.Context(), Request{Body: string(raw), RequestID: requestID})
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = io.WriteString(w, resp.Body)
	}).Methods(http.MethodPost, http.MethodPut)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	})
	return c.Handler(r)
}
