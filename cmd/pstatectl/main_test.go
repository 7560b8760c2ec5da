package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pstatectl/internal/pstate"
)

func TestRenderValues(t *testing.T) {
	got := renderValues(pstate.Values{MinPerfPct: 10, MaxPerfPct: 95, NoTurbo: true})
	want := "min_perf_pct: 10\nmax_perf_pct: 95\nno_turbo:     true\n"
	assert.Equal(t, want, got)
}

func TestRenderValues_Defaults(t *testing.T) {
	got := renderValues(pstate.DefaultValues())
	want := "min_perf_pct: 0\nmax_perf_pct: 100\nno_turbo:     false\n"
	assert.Equal(t, want, got)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b\n", indent("a\nb\n"))
}

func TestSetCmd_NothingToSet(t *testing.T) {
	cmd := &SetCmd{}
	err := cmd.Run()
	assert.ErrorContains(t, err, "nothing to set")
}
