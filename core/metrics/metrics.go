package metrics

import (
	"net/http"
	"time"

	"data-extractor/core/fault"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OutcomeOK labels successful operations. Failures are labelled with their fault kind.
const OutcomeOK = "ok"

var (
	extractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "extractions_total",
		Help: "Total number of extractions by source and outcome",
	}, []string{"source", "outcome"})

	extractionRows = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "extraction_rows",
		Help:    "Rows produced by successful extractions",
		Buckets: prometheus.ExponentialBuckets(1, 10, 7),
	}, []string{"source"})

	extractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "extraction_duration_seconds",
		Help:    "Extraction wall time in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	updatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_updates_total",
		Help: "Total number of remote record updates by outcome",
	}, []string{"outcome"})
)

// RecordExtraction records one extraction attempt.
func RecordExtraction(source string, rows int, d time.Duration, err error) {
	outcome := Outcome(err)
	extractionsTotal.WithLabelValues(source, outcome).Inc()
	extractionDuration.WithLabelValues(source).Observe(d.Seconds())
	if err == nil {
		extractionRows.WithLabelValues(source).Observe(float64(rows))
	}
}

// RecordUpdate records one remote update attempt.
func RecordUpdate(err error) {
	updatesTotal.WithLabelValues(Outcome(err)).Inc()
}

// Outcome maps an error to its metric label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if kind := fault.KindOf(err); kind != "" {
		return string(kind)
	}
	return "unknown"
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
