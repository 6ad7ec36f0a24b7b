package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDir          = "."
	DefaultSourceSuffix = ".JPG"
	DefaultTargetSuffix = ".jpg"
)

// Job is one directory to normalize: entries ending with From are renamed to end with To
type Job struct {
	Dir  string `yaml:"dir" json:"dir"`
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

type MetricsCfg struct {
	TextfilePath string `yaml:"textfile_path" json:"textfile_path"` // node_exporter textfile collector output
}

type LoggingCfg struct {
	File         string `yaml:"file" json:"file"`                   // Optional log file in addition to stderr
	RotationDays int    `yaml:"rotation_days" json:"rotation_days"` // Days to keep logs before rotation
}

type Config struct {
	Jobs           []Job      `yaml:"jobs" json:"jobs"`
	DatabasePath   string     `yaml:"database_path" json:"database_path"` // SQLite rename history, empty disables it
	Metrics        MetricsCfg `yaml:"metrics" json:"metrics"`
	Logging        LoggingCfg `yaml:"logging" json:"logging"`
	ProtectedPaths []string   `yaml:"protected_paths" json:"protected_paths"`
}

var (
	errNoJobs        = errors.New("configuration must specify at least one job")
	errEmptySuffix   = errors.New("suffix must not be empty")
	errSameSuffix    = errors.New("from and to suffixes must differ")
	errSuffixPath    = errors.New("suffix must not contain a path separator")
	errSuffixDotName = errors.New("suffix must not be . or ..")
)

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromFlags builds a single-job config from command-line values
func FromFlags(dir, from, to, dbPath string) (*Config, error) {
	cfg := &Config{
		Jobs:         []Job{{Dir: dir, From: from, To: to}},
		DatabasePath: dbPath,
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if len(c.Jobs) == 0 {
		return errNoJobs
	}

	if c.Logging.RotationDays <= 0 {
		c.Logging.RotationDays = 30
	}

	for i := range c.Jobs {
		job := &c.Jobs[i]
		if strings.TrimSpace(job.Dir) == "" {
			job.Dir = DefaultDir
		}
		job.Dir = filepath.Clean(job.Dir)

		if err := ValidateSuffix(job.From); err != nil {
			return fmt.Errorf("job %d (%s): from: %w", i, job.Dir, err)
		}
		if err := ValidateSuffix(job.To); err != nil {
			return fmt.Errorf("job %d (%s): to: %w", i, job.Dir, err)
		}
		if job.From == job.To {
			return fmt.Errorf("job %d (%s): %w", i, job.Dir, errSameSuffix)
		}
	}

	if c.DatabasePath != "" {
		c.DatabasePath = filepath.Clean(c.DatabasePath)
	}

	return nil
}

// ValidateSuffix rejects suffixes that could move an entry out of its directory
func ValidateSuffix(s string) error {
	if s == "" {
		return errEmptySuffix
	}
	if strings.ContainsRune(s, '/') || strings.ContainsRune(s, os.PathSeparator) {
		return fmt.Errorf("%w: %q", errSuffixPath, s)
	}
	if s == "." || s == ".." {
		return errSuffixDotName
	}
	return nil
}
