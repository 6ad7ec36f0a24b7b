package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run-level metrics
var (
	// RunErrorsTotal tracks errors that aborted a run (unreadable directory, safety violation)
	RunErrorsTotal prometheus.Counter

	// JobsTotal tracks jobs by outcome (ok, failed, skipped)
	JobsTotal *prometheus.CounterVec

	// RunLastTimestamp records the Unix timestamp of the last run
	RunLastTimestamp prometheus.Gauge
)

func initRunMetrics() {
	RunErrorsTotal = NewCounter(
		"caserenamer_run_errors_total",
		"Total number of errors that aborted a run.",
	)

	JobsTotal = NewCounterVec(
		"caserenamer_jobs_total",
		"Total number of jobs processed by outcome.",
		[]string{"status"},
	)

	RunLastTimestamp = NewGauge(
		"caserenamer_last_run_timestamp",
		"Timestamp of the last run (Unix epoch seconds).",
	)
}

func registerRunMetrics() {
	prometheus.MustRegister(RunErrorsTotal)
	prometheus.MustRegister(JobsTotal)
	prometheus.MustRegister(RunLastTimestamp)
}

// RecordRun updates the last run timestamp to now
func RecordRun() {
	RunLastTimestamp.Set(float64(time.Now().Unix()))
}

// RecordJob counts one job with the given status
func RecordJob(status string) {
	JobsTotal.WithLabelValues(status).Inc()
}
