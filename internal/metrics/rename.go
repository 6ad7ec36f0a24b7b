package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Rename subsystem metrics
var (
	// RenamesTotal tracks successful renames per directory
	RenamesTotal *prometheus.CounterVec

	// RenameErrorsTotal tracks per-entry rename failures per directory
	RenameErrorsTotal *prometheus.CounterVec

	// EntriesScannedTotal tracks directory entries listed per directory
	EntriesScannedTotal *prometheus.CounterVec

	// BatchDuration tracks how long one directory batch takes
	BatchDuration prometheus.Histogram
)

func initRenameMetrics() {
	RenamesTotal = NewCounterVec(
		"caserenamer_renames_total",
		"Total number of entries renamed.",
		[]string{"dir"},
	)

	RenameErrorsTotal = NewCounterVec(
		"caserenamer_rename_errors_total",
		"Total number of entries whose rename failed.",
		[]string{"dir"},
	)

	EntriesScannedTotal = NewCounterVec(
		"caserenamer_entries_scanned_total",
		"Total number of directory entries listed.",
		[]string{"dir"},
	)

	BatchDuration = NewDurationHistogram(
		"caserenamer_batch_duration_seconds",
		"Duration of one directory batch in seconds.",
	)
}

func registerRenameMetrics() {
	prometheus.MustRegister(RenamesTotal)
	prometheus.MustRegister(RenameErrorsTotal)
	prometheus.MustRegister(EntriesScannedTotal)
	prometheus.MustRegister(BatchDuration)
}

// RecordRename counts one successful rename in dir
func RecordRename(dir string) {
	RenamesTotal.WithLabelValues(dir).Inc()
}

// RecordRenameError counts one failed rename in dir
func RecordRenameError(dir string) {
	RenameErrorsTotal.WithLabelValues(dir).Inc()
}

// RecordScanned adds n listed entries for dir
func RecordScanned(dir string, n int) {
	EntriesScannedTotal.WithLabelValues(dir).Add(float64(n))
}
