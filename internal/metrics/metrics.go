package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var initOnce sync.Once

// Init initializes all metrics and registers them with the default Prometheus registry
// This function is safe to call multiple times (uses sync.Once)
func Init() {
	initOnce.Do(func() {
		initRenameMetrics()
		initRunMetrics()

		registerRenameMetrics()
		registerRunMetrics()

		// Present in exported output even before the first run
		RunLastTimestamp.Set(0)
	})
}

// WriteTextfile writes every registered metric to path in the text exposition format,
// for node_exporter's textfile collector. The write is atomic.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(path, prometheus.DefaultGatherer)
}

// WriteTextfileFrom is WriteTextfile for an explicit gatherer
func WriteTextfileFrom(path string, g prometheus.Gatherer) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics directory %s: %w", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
