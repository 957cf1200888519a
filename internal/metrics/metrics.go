package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vozclient", Name: "api_requests_total", Help: "Backend API requests",
	}, []string{"method", "outcome"})
	APIErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vozclient", Name: "api_errors_total", Help: "Backend API failures by kind",
	}, []string{"kind"})
	APIDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vozclient", Name: "api_request_seconds", Help: "Backend API request latency",
		Buckets: prometheus.DefBuckets,
	})
	Notices = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vozclient", Name: "notices_total", Help: "User-facing notices emitted",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(APIRequests, APIErrors, APIDuration, Notices)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveAPI(method, outcome string, d time.Duration) {
	APIRequests.WithLabelValues(method, outcome).Inc()
	APIDuration.Observe(d.Seconds())
}
