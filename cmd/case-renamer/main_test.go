package main

import (
	"os"
	"path/filepath"
	"testing"

	"case-renamer/internal/config"
	"case-renamer/internal/exitcodes"
)

func TestRunExitCodes(t *testing.T) {
	tmp := t.TempDir()
	photos := filepath.Join(tmp, "photos")
	if err := os.Mkdir(photos, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(photos, "a.JPG"), nil, 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	tests := []struct {
		name string
		dir  string
		want int
	}{
		{"existing directory", photos, exitcodes.Success},
		{"missing directory", filepath.Join(tmp, "missing"), exitcodes.RuntimeError},
		{"protected directory", "/etc", exitcodes.SafetyViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.FromFlags(tt.dir, ".JPG", ".jpg", filepath.Join(tmp, tt.name+".db"))
			if err != nil {
				t.Fatalf("FromFlags failed: %v", err)
			}
			if got := run(cfg); got != tt.want {
				t.Errorf("run() = %d, want %d", got, tt.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(photos, "a.jpg")); err != nil {
		t.Errorf("Expected a.JPG to be renamed: %v", err)
	}
}
