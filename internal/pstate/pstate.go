// Package pstate reads and writes the intel_pstate driver tunables under
// /sys/devices/system/cpu/intel_pstate.
//
// The three control files (min_perf_pct, max_perf_pct, no_turbo) hold ASCII
// decimal text. Reads trim and parse; writes replace the whole file contents.
// Setting any of them typically requires root.
package pstate

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

const basePath = "/sys/devices/system/cpu/intel_pstate"

var pstateBasePath = basePath

// Values is a snapshot of the three intel_pstate tunables, either fetched
// from the kernel or intended to be applied.
type Values struct {
	MinPerfPct uint8
	MaxPerfPct uint8
	NoTurbo    bool
}

// DefaultValues returns the neutral configuration: the full performance
// range with turbo available.
func DefaultValues() Values {
	return Values{MinPerfPct: 0, MaxPerfPct: 100, NoTurbo: false}
}

// PState is a handle to the intel_pstate sysfs directory.
//
// The directory's existence is checked once, in New. Individual file
// operations can still fail afterwards (e.g., driver unloaded); those errors
// surface per call.
type PState struct {
	path string
}

// New binds a handle to the intel_pstate control directory.
//
// Returns ErrNotFound when the directory is absent, which is the normal case
// on non-Intel CPUs, hosts without the intel_pstate driver, and non-Linux
// systems.
func New() (*PState, error) {
	path := pstateBasePath
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, ErrNotFound
	}
	return &PState{path: path}, nil
}

// MinPerfPct returns the minimum performance percentage.
func (p *PState) MinPerfPct() (uint8, error) {
	v, err := readUint8(filepath.Join(p.path, fileMinPerfPct))
	if err != nil {
		return 0, &GetError{Field: fileMinPerfPct, Err: err}
	}
	return v, nil
}

// SetMinPerfPct sets the minimum performance percentage.
func (p *PState) SetMinPerfPct(min uint8) error {
	s := strconv.FormatUint(uint64(min), 10)
	if err := writeFile(filepath.Join(p.path, fileMinPerfPct), s); err != nil {
		return &SetError{Field: fileMinPerfPct, Value: s, Err: err}
	}
	return nil
}

// MaxPerfPct returns the maximum performance percentage.
func (p *PState) MaxPerfPct() (uint8, error) {
	v, err := readUint8(filepath.Join(p.path, fileMaxPerfPct))
	if err != nil {
		return 0, &GetError{Field: fileMaxPerfPct, Err: err}
	}
	return v, nil
}

// SetMaxPerfPct sets the maximum performance percentage.
func (p *PState) SetMaxPerfPct(max uint8) error {
	s := strconv.FormatUint(uint64(max), 10)
	if err := writeFile(filepath.Join(p.path, fileMaxPerfPct), s); err != nil {
		return &SetError{Field: fileMaxPerfPct, Value: s, Err: err}
	}
	return nil
}

// NoTurbo reports whether turbo is disabled. Any stored value above zero
// counts as disabled.
func (p *PState) NoTurbo() (bool, error) {
	v, err := readUint8(filepath.Join(p.path, fileNoTurbo))
	if err != nil {
		return false, &GetError{Field: fileNoTurbo, Err: err}
	}
	return v > 0, nil
}

// SetNoTurbo sets the no_turbo flag; true disables turbo.
func (p *PState) SetNoTurbo(noTurbo bool) error {
	s := "0"
	if noTurbo {
		s = "1"
	}
	if err := writeFile(filepath.Join(p.path, fileNoTurbo), s); err != nil {
		return &SetError{Field: fileNoTurbo, Value: s, Err: err}
	}
	return nil
}

// Values reads all three tunables in the order min, max, no_turbo. The first
// failing read aborts the whole operation; no partial snapshot is returned.
func (p *PState) Values() (Values, error) {
	var v Values
	var err error

	if v.MinPerfPct, err = p.MinPerfPct(); err != nil {
		return Values{}, err
	}
	if v.MaxPerfPct, err = p.MaxPerfPct(); err != nil {
		return Values{}, err
	}
	if v.NoTurbo, err = p.NoTurbo(); err != nil {
		return Values{}, err
	}
	return v, nil
}

// SetValues writes all three tunables in the order min, max, no_turbo,
// stopping at the first failure. Writing min before max avoids transient
// kernel rejection when the new min exceeds the old max.
//
// There is no atomicity across the three files; a failure leaves the fields
// written so far applied and the rest untouched.
func (p *PState) SetValues(v Values) error {
	if err := p.SetMinPerfPct(v.MinPerfPct); err != nil {
		return err
	}
	if err := p.SetMaxPerfPct(v.MaxPerfPct); err != nil {
		return err
	}
	return p.SetNoTurbo(v.NoTurbo)
}

// Writable reports whether the current process can write the control files.
// Setting tunables normally needs root; this lets a front end warn before
// attempting a write.
func (p *PState) Writable() bool {
	for _, name := range []string{fileMinPerfPct, fileMaxPerfPct, fileNoTurbo} {
		if unix.Access(filepath.Join(p.path, name), unix.W_OK) != nil {
			return false
		}
	}
	return true
}

func readUint8(path string) (uint8, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(b))
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return uint8(n), nil
}

func writeFile(path, value string) error {
	// O_WRONLY without O_TRUNC/O_CREATE: sysfs attributes are kernel-managed
	// and some reject truncation flags at open() time.
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	_, werr := f.WriteString(value)
	if werr == nil {
		// Drop stale bytes when the prior content was longer. On a sysfs
		// attribute the file already has the written length, so this is a
		// no-op there.
		werr = f.Truncate(int64(len(value)))
	}
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}
