// Package metrics exposes Prometheus collectors for incident fetching.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hero"

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	PageFetches     *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec
	LoadedIncidents prometheus.Gauge
	TotalIncidents  prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PageFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_fetches_total",
			Help:      "Incident pages fetched, by source and result.",
		}, []string{"source", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "page_fetch_duration_seconds",
			Help:      "Time taken to fetch one page of incidents.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		LoadedIncidents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loaded_incidents",
			Help:      "Incidents currently held in the list.",
		}),
		TotalIncidents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_incidents",
			Help:      "Total incidents last reported by the server.",
		}),
	}

	m.registry.MustRegister(m.PageFetches, m.FetchDuration, m.LoadedIncidents, m.TotalIncidents)
	return m
}

// ObserveFetch records one page fetch
func (m *Metrics) ObserveFetch(source string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.PageFetches.WithLabelValues(source, result).Inc()
	m.FetchDuration.WithLabelValues(source).Observe(d.Seconds())
}

// SetListSize records the accumulated and total incident counts
func (m *Metrics) SetListSize(loaded, total int) {
	if m == nil {
		return
	}
	m.LoadedIncidents.Set(float64(loaded))
	m.TotalIncidents.Set(float64(total))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Router routes GET /metrics to Handler
func (m *Metrics) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	return r
}

// Serve exposes /metrics on addr until ctx is done
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: m.Router(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics.Serve", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
