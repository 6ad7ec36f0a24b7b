package rename

import (
	"fmt"
	"io"
	"log"
	"os"

	"case-renamer/internal/database"
	"case-renamer/internal/fsops"
	"case-renamer/internal/logging"
	"case-renamer/internal/metrics"
	"case-renamer/internal/safety"
	"case-renamer/internal/scan"
)

// Logger is the leveled logging surface the renamer needs
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// RenameError is a rename failure scoped to one entry. It never aborts the batch.
type RenameError struct {
	Plan scan.Plan
	Err  error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("rename %s: %v", e.Plan.OldName, e.Err)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

// Result summarizes one batch
type Result struct {
	Dir     string
	Scanned int
	Renamed []scan.Plan
	Failed  []*RenameError
}

// Renamer normalizes entry suffixes within a single directory
type Renamer struct {
	logger    Logger
	out       io.Writer
	fs        fsops.FS
	validator *safety.Validator
	db        *database.RenameDB // Optional rename history
}

// NewRenamer creates a Renamer that reports to out and logs to logger.
// db may be nil to disable history.
func NewRenamer(logger *log.Logger, out io.Writer, db *database.RenameDB) *Renamer {
	metrics.Init()
	if out == nil {
		out = os.Stdout
	}
	return &Renamer{
		logger:    logging.NewLeveled(logger),
		out:       out,
		fs:        fsops.OSFS{},
		validator: safety.NewValidator(nil),
		db:        db,
	}
}

// SetFS replaces the filesystem, for tests
func (r *Renamer) SetFS(fs fsops.FS) {
	r.fs = fs
}

// SetValidator replaces the safety validator
func (r *Renamer) SetValidator(v *safety.Validator) {
	r.validator = v
}

// RenameMatching is the convenience entry point: real filesystem, default validator,
// reports to stdout and logs to the standard logger.
func RenameMatching(dir, from, to string) (Result, error) {
	return NewRenamer(nil, nil, nil).RenameMatching(dir, from, to)
}

// RenameMatching renames every entry directly in dir whose name ends with from so that it ends with to.
//
// A returned error means nothing was renamed: the arguments failed validation or
// the directory could not be listed (*scan.DirectoryAccessError). Per-entry failures
// are reported, logged and collected in Result.Failed; they are never returned as the error.
func (r *Renamer) RenameMatching(dir, from, to string) (Result, error) {
	res := Result{Dir: dir}

	if err := r.validator.ValidateSuffix(from); err != nil {
		return res, err
	}
	if err := r.validator.ValidateSuffix(to); err != nil {
		return res, err
	}
	if err := r.validator.ValidateDirectory(dir); err != nil {
		return res, err
	}

	plans, scanned, err := scan.Scan(r.fs, dir, from, to)
	if err != nil {
		r.logger.Error("Failed to list directory", "dir", dir, "error", err)
		return res, err
	}
	res.Scanned = scanned
	metrics.RecordScanned(dir, scanned)

	r.logger.Info("Starting rename", "dir", dir, "from", from, "to", to, "entries", scanned, "matches", len(plans))

	for _, plan := range plans {
		if err := r.renameOne(plan); err != nil {
			res.Failed = append(res.Failed, err)
			continue
		}
		res.Renamed = append(res.Renamed, plan)
	}

	r.logger.Info("Rename complete", "dir", dir, "renamed", len(res.Renamed), "errors", len(res.Failed))
	return res, nil
}

// renameOne performs and reports a single rename
func (r *Renamer) renameOne(plan scan.Plan) *RenameError {
	err := r.validator.ValidateRenameTarget(plan.Dir, plan.NewPath)
	if err == nil {
		err = r.fs.Rename(plan.OldPath, plan.NewPath)
	}

	if err != nil {
		rerr := &RenameError{Plan: plan, Err: err}
		fmt.Fprintf(r.out, "error renaming %s: %v\n", plan.OldName, err)
		r.logger.Error("Failed to rename", "dir", plan.Dir, "name", plan.OldName, "error", err)
		r.record(database.ActionError, plan, err.Error())
		metrics.RecordRenameError(plan.Dir)
		return rerr
	}

	fmt.Fprintf(r.out, "%s -> %s\n", plan.OldName, plan.NewName)
	r.logger.Info("Renamed", "dir", plan.Dir, "old", plan.OldName, "new", plan.NewName)
	r.record(database.ActionRename, plan, "")
	metrics.RecordRename(plan.Dir)
	return nil
}

// record writes history; a database failure never fails the rename
func (r *Renamer) record(action string, plan scan.Plan, errMsg string) {
	if r.db == nil {
		return
	}
	if dbErr := r.db.RecordRename(action, plan, errMsg); dbErr != nil {
		r.logger.Error("Failed to record to database", "error", dbErr)
	}
}
