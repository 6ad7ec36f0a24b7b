package safety

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"case-renamer/internal/config"
)

var (
	ErrInvalidPath      = errors.New("invalid path")
	ErrProtectedPath    = errors.New("protected path")
	ErrOutsideDirectory = errors.New("rename target outside directory")
	ErrInvalidSuffix    = errors.New("invalid suffix")
)

// Validator enforces the safety contract for rename operations
type Validator struct {
	ProtectedPaths []string
}

// NewValidator creates a validator with the built-in protected paths plus extraProtected
func NewValidator(extraProtected []string) *Validator {
	return &Validator{
		ProtectedPaths: defaultProtected(extraProtected),
	}
}

// ValidateDirectory refuses to operate on empty or protected directories.
// It does not check existence; listing reports that.
func (v *Validator) ValidateDirectory(dir string) error {
	p, err := NormalizePath(dir)
	if err != nil {
		return err
	}
	if IsProtectedPath(p, v.ProtectedPaths) {
		return fmt.Errorf("%w: %s", ErrProtectedPath, p)
	}
	return nil
}

// ValidateSuffix rejects suffixes that would let a rename leave its directory
func (v *Validator) ValidateSuffix(suffix string) error {
	if err := config.ValidateSuffix(suffix); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSuffix, err)
	}
	return nil
}

// ValidateRenameTarget ensures newPath is a direct child of dir
func (v *Validator) ValidateRenameTarget(dir, newPath string) error {
	d, err := NormalizePath(dir)
	if err != nil {
		return err
	}
	p, err := NormalizePath(newPath)
	if err != nil {
		return err
	}
	if filepath.Dir(p) != d || p == d {
		return fmt.Errorf("%w: %s", ErrOutsideDirectory, newPath)
	}
	return nil
}

// NormalizePath converts path to absolute, cleaned form
func NormalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrInvalidPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ErrInvalidPath
	}
	return filepath.Clean(abs), nil
}

// IsProtectedPath reports whether path is exactly one of the protected paths.
// Children are allowed: renaming inside /usr/local/share/photos is fine, /usr itself is not.
func IsProtectedPath(path string, protected []string) bool {
	p := filepath.Clean(path)

	if p == string(os.PathSeparator) {
		return true
	}

	for _, prot := range protected {
		if p == filepath.Clean(prot) {
			return true
		}
	}
	return false
}

// defaultProtected returns the base set of protected paths plus any extras
func defaultProtected(extra []string) []string {
	base := []string{
		"/",
		"/etc",
		"/bin",
		"/usr",
		"/usr/bin",
		"/usr/lib",
		"/boot",
		"/lib",
		"/lib64",
		"/sbin",
		"/proc",
		"/sys",
		"/dev",
	}
	return append(base, extra...)
}
