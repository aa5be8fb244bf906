package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xgallery_api_requests_total",
		Help: "Total upstream GraphQL requests by outcome",
	}, []string{"outcome"})
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xgallery_request_cache_hits_total",
		Help: "Total request cache hits",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "xgallery_request_cache_misses_total",
		Help: "Total request cache misses",
	})
	MediaResolved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "xgallery_media_resolved_total",
		Help: "Total media entries resolved by type",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(APIRequests, CacheHits, CacheMisses, MediaResolved)
}

// StartServer exposes /metrics and /health on addr; no-op when addr is
// empty.
func StartServer(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	go func() { _ = http.ListenAndServe(addr, mux) }()
}
