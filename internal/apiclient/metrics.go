package apiclient

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func instrument(reg prometheus.Registerer, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	factory := promauto.With(reg)

	requests := factory.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_api_requests_total",
		Help: "Количество запросов к API дашборда по коду ответа и методу.",
	}, []string{"code", "method"})

	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_api_request_duration_seconds",
		Help:    "Длительность запросов к API дашборда.",
		Buckets: prometheus.DefBuckets,
	}, []string{"code", "method"})

	return promhttp.InstrumentRoundTripperCounter(requests,
		promhttp.InstrumentRoundTripperDuration(duration, next))
}
