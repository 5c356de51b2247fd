// Copyright (c) 2026 Raduga Center. All rights reserved.

/*
Package metrics exposes Prometheus instrumentation for the HTTP layer.

It tracks request throughput, latency distribution, and the number of
in-flight requests, labeled by method, route pattern, and status code.

The route pattern from chi is used instead of the raw URL path so that
/patients/1 and /patients/2 collapse into a single series.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// # Collectors

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "raduga_http_in_flight_requests",
		Help: "Number of HTTP requests currently being served.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raduga_http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "raduga_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register adds the HTTP collectors to the default Prometheus registry.
// Call it exactly once during startup.
func Register() {
	prometheus.MustRegister(httpInFlight, httpRequestsTotal, httpRequestDuration)
}

// Handler returns the scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// # Instrumentation Middleware

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (writer *statusWriter) WriteHeader(code int) {
	writer.code = code
	writer.ResponseWriter.WriteHeader(code)
}

// Instrument records throughput, latency, and in-flight gauges for every request.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		httpInFlight.Inc()
		startTime := time.Now()

		wrapped := &statusWriter{ResponseWriter: writer, code: http.StatusOK}
		next.ServeHTTP(wrapped, request)

		// Resolve the chi route pattern after routing has happened.
		route := request.URL.Path
		if routeCtx := chi.RouteContext(request.Context()); routeCtx != nil {
			if pattern := routeCtx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := strconv.Itoa(wrapped.code)
		elapsed := time.Since(startTime).Seconds()

		httpRequestDuration.WithLabelValues(request.Method, route, status).Observe(elapsed)
		httpRequestsTotal.WithLabelValues(request.Method, route, status).Inc()
		httpInFlight.Dec()
	})
}
