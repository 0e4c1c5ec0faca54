package articles

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const userAgent = "article-admin/1.0"

var (
	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of requests sent to the article backend.",
		},
		[]string{"endpoint", "code"},
	)
	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Duration of requests to the article backend.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(backendRequests, backendDuration)
}

// CustomTransport setzt User-Agent und API-Schlüssel auf jede Anfrage ans Backend.
type CustomTransport struct {
	Transport http.RoundTripper
	APIKey    string
}

func (t *CustomTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	if t.APIKey != "" {
		req.Header.Set("X-API-KEY", t.APIKey)
	}
	return t.Transport.RoundTrip(req)
}

// observe zählt eine Anfrage; code 0 steht für einen Transportfehler.
func observe(endpoint string, code int, start time.Time) {
	backendRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	backendDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
