package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"case-renamer/internal/config"
	"case-renamer/internal/database"
	"case-renamer/internal/exitcodes"
	"case-renamer/internal/logging"
	"case-renamer/internal/runner"
	"case-renamer/internal/safety"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (overrides -dir/-from/-to)")
	dir := flag.String("dir", config.DefaultDir, "Directory whose entries are renamed")
	from := flag.String("from", config.DefaultSourceSuffix, "Case-sensitive suffix to match")
	to := flag.String("to", config.DefaultTargetSuffix, "Suffix to substitute")
	dbPath := flag.String("db", "", "Path to SQLite rename history (empty disables it)")
	textfile := flag.String("metrics-textfile", "", "Write Prometheus metrics to this file after the run")
	logFile := flag.String("log-file", "", "Also append log output to this file")
	flag.Parse()

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.FromFlags(*dir, *from, *to, *dbPath)
	}
	if err != nil {
		logging.New().Printf("ERROR: invalid configuration: %v", err)
		os.Exit(exitcodes.InvalidConfig)
	}
	if *configPath != "" && *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}
	if *textfile != "" {
		cfg.Metrics.TextfilePath = *textfile
	}
	if *logFile != "" {
		cfg.Logging.File = *logFile
	}

	os.Exit(run(cfg))
}

func run(cfg *config.Config) int {
	logger, closer := logging.NewWithConfig(cfg)
	defer closer.Close()

	var db *database.RenameDB
	if cfg.DatabasePath != "" {
		var err error
		db, err = database.NewRenameDB(cfg.DatabasePath)
		if err != nil {
			logger.Printf("ERROR: Failed to open database: %v", err)
			return exitcodes.RuntimeError
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Printf("ERROR: Failed to close database: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, cfg, runner.Options{Logger: logger, Out: os.Stdout, DB: db})
	if err != nil {
		logger.Printf("ERROR: %v", err)
		if errors.Is(err, safety.ErrProtectedPath) || errors.Is(err, safety.ErrInvalidSuffix) || errors.Is(err, safety.ErrInvalidPath) {
			return exitcodes.SafetyViolation
		}
		return exitcodes.RuntimeError
	}

	if summary.Failed() > 0 {
		logger.Printf("completed with %d per-entry failures", summary.Failed())
	}
	return exitcodes.Success
}
