package pstate

import (
	"errors"
	"fmt"
)

// Control file names, also used to identify the failing field in errors.
const (
	fileMinPerfPct = "min_perf_pct"
	fileMaxPerfPct = "max_perf_pct"
	fileNoTurbo    = "no_turbo"
)

// ErrNotFound is returned by New when the intel_pstate directory does not
// exist.
var ErrNotFound = errors.New("intel_pstate directory not found")

// GetError reports a failed read of one control file. Field is the file name
// (min_perf_pct, max_perf_pct, or no_turbo); Err is the underlying I/O or
// parse error.
type GetError struct {
	Field string
	Err   error
}

func (e *GetError) Error() string {
	return fmt.Sprintf("failed to get %s value: %v", e.Field, e.Err)
}

func (e *GetError) Unwrap() error { return e.Err }

// SetError reports a failed write of one control file. Value is the text
// that was being applied.
type SetError struct {
	Field string
	Value string
	Err   error
}

func (e *SetError) Error() string {
	return fmt.Sprintf("failed to set %s value to %s: %v", e.Field, e.Value, e.Err)
}

func (e *SetError) Unwrap() error { return e.Err }
