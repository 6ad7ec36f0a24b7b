package exitcodes

// Exit codes for case-renamer
// Per-entry rename failures do not change the exit code
const (
	Success         = 0 // Run completed, including runs with per-entry failures
	InvalidConfig   = 2 // Configuration file or flags invalid
	SafetyViolation = 3 // Safety validator refused the directory or a suffix
	RuntimeError    = 4 // Directory could not be listed, or another runtime failure
)
