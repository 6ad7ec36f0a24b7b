package scan

import (
	"fmt"
	"path/filepath"
	"strings"

	"case-renamer/internal/fsops"
)

// Plan is one pending rename inside Dir
type Plan struct {
	Dir     string
	OldName string
	NewName string
	OldPath string
	NewPath string
}

// DirectoryAccessError reports that a directory could not be listed at all.
// It aborts the whole batch; per-entry problems are reported separately.
type DirectoryAccessError struct {
	Dir string
	Err error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("cannot list directory %s: %v", e.Dir, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error {
	return e.Err
}

// Matches reports whether name ends with suffix, comparing bytes exactly
func Matches(name, suffix string) bool {
	return suffix != "" && strings.HasSuffix(name, suffix)
}

// NewName replaces the trailing from suffix of name with to.
// The caller must have checked Matches(name, from).
func NewName(name, from, to string) string {
	return name[:len(name)-len(from)] + to
}

// PlanFor builds the rename plan for one matching entry
func PlanFor(dir, name, from, to string) Plan {
	newName := NewName(name, from, to)
	return Plan{
		Dir:     dir,
		OldName: name,
		NewName: newName,
		OldPath: filepath.Join(dir, name),
		NewPath: filepath.Join(dir, newName),
	}
}

// Scan lists dir (non-recursively) and returns a plan for every entry whose name ends with from.
// Subdirectories are matched like files. Plans follow the filesystem's listing order.
func Scan(fs fsops.FS, dir, from, to string) ([]Plan, int, error) {
	names, err := fs.ReadDirNames(dir)
	if err != nil {
		return nil, 0, &DirectoryAccessError{Dir: dir, Err: err}
	}

	plans := make([]Plan, 0)
	for _, name := range names {
		if !Matches(name, from) {
			continue
		}
		plans = append(plans, PlanFor(dir, name, from, to))
	}
	return plans, len(names), nil
}
