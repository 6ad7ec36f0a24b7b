package runner

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"case-renamer/internal/config"
	"case-renamer/internal/database"
	"case-renamer/internal/fsops"
	"case-renamer/internal/metrics"
	"case-renamer/internal/rename"
	"case-renamer/internal/safety"
)

// Options carries the shared collaborators for every job in a run
type Options struct {
	Logger *log.Logger
	Out    io.Writer          // per-entry report lines, stdout when nil
	DB     *database.RenameDB // optional rename history
	FS     fsops.FS           // real filesystem when nil
}

// Summary holds one result per job that ran
type Summary struct {
	Results []rename.Result
}

// Renamed returns the number of successful renames across all jobs
func (s Summary) Renamed() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Renamed)
	}
	return n
}

// Failed returns the number of per-entry failures across all jobs
func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Failed)
	}
	return n
}

// Run executes cfg's jobs in order. A job whose directory cannot be listed, or that
// fails safety validation, aborts the run; per-entry failures do not.
// Cancellation is checked between jobs only.
func Run(ctx context.Context, cfg *config.Config, opts Options) (Summary, error) {
	var summary Summary

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if cfg == nil {
		return summary, errors.New("nil config")
	}

	metrics.Init()
	metrics.RecordRun()
	defer writeTextfile(cfg, logger)

	validator := safety.NewValidator(cfg.ProtectedPaths)
	start := time.Now()

	for i, job := range cfg.Jobs {
		select {
		case <-ctx.Done():
			logger.Printf("run cancelled before job %d (%s)", i, job.Dir)
			metrics.RecordJob("skipped")
			return summary, ctx.Err()
		default:
		}

		renamer := rename.NewRenamer(logger, opts.Out, opts.DB)
		renamer.SetValidator(validator)
		if opts.FS != nil {
			renamer.SetFS(opts.FS)
		}

		jobStart := time.Now()
		res, err := renamer.RenameMatching(job.Dir, job.From, job.To)
		metrics.BatchDuration.Observe(time.Since(jobStart).Seconds())
		if err != nil {
			metrics.RunErrorsTotal.Inc()
			metrics.RecordJob("failed")
			return summary, err
		}

		metrics.RecordJob("ok")
		summary.Results = append(summary.Results, res)
	}

	logger.Printf("run complete: jobs=%d renamed=%d errors=%d duration=%.3fs",
		len(summary.Results), summary.Renamed(), summary.Failed(), time.Since(start).Seconds())
	return summary, nil
}

// writeTextfile exports metrics when configured; failures are logged only
func writeTextfile(cfg *config.Config, logger *log.Logger) {
	if cfg.Metrics.TextfilePath == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
		logger.Printf("failed to write metrics textfile: %v", err)
	}
}
