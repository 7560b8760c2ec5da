// Command pstatectl inspects and tunes the intel_pstate driver through its
// sysfs control files. Setting values requires root.
package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/alecthomas/kong"

	"pstatectl/internal/profile"
	"pstatectl/internal/pstate"
)

var cli struct {
	Status   StatusCmd   `cmd:"" default:"1" help:"Show current intel_pstate values"`
	Set      SetCmd      `cmd:"" help:"Set individual tunables"`
	Apply    ApplyCmd    `cmd:"" help:"Apply a named profile from a profiles file"`
	Profiles ProfilesCmd `cmd:"" help:"List configured profiles"`
}

type StatusCmd struct{}

func (c *StatusCmd) Run() error {
	p, err := pstate.New()
	if err != nil {
		return err
	}
	v, err := p.Values()
	if err != nil {
		return err
	}
	fmt.Print(renderValues(v))
	if !p.Writable() {
		log.Printf("control files are not writable; set/apply will need root")
	}
	return nil
}

type SetCmd struct {
	Min   *uint8 `help:"Minimum performance percent (0-100)"`
	Max   *uint8 `help:"Maximum performance percent (0-100)"`
	Turbo *bool  `negatable:"" help:"Enable turbo (--no-turbo disables)"`
}

func (c *SetCmd) Run() error {
	if c.Min == nil && c.Max == nil && c.Turbo == nil {
		return fmt.Errorf("nothing to set: pass --min, --max, and/or --turbo/--no-turbo")
	}
	p, err := pstate.New()
	if err != nil {
		return err
	}
	// Same order as SetValues: min before max avoids a transient min>max
	// rejection by the driver.
	if c.Min != nil {
		if err := p.SetMinPerfPct(*c.Min); err != nil {
			return err
		}
	}
	if c.Max != nil {
		if err := p.SetMaxPerfPct(*c.Max); err != nil {
			return err
		}
	}
	if c.Turbo != nil {
		if err := p.SetNoTurbo(!*c.Turbo); err != nil {
			return err
		}
	}
	return nil
}

type ApplyCmd struct {
	Config string `short:"c" default:"profiles.yaml" help:"Path to YAML profiles file"`
	Name   string `arg:"" help:"Profile name to apply"`
}

func (c *ApplyCmd) Run() error {
	cfg, err := profile.Load(c.Config)
	if err != nil {
		return err
	}
	prof, err := cfg.Profile(c.Name)
	if err != nil {
		return err
	}
	p, err := pstate.New()
	if err != nil {
		return err
	}
	if err := p.SetValues(prof.Values()); err != nil {
		return err
	}
	log.Printf("applied profile %q", c.Name)
	return nil
}

type ProfilesCmd struct {
	Config string `short:"c" default:"profiles.yaml" help:"Path to YAML profiles file"`
}

func (c *ProfilesCmd) Run() error {
	cfg, err := profile.Load(c.Config)
	if err != nil {
		return err
	}
	for _, name := range cfg.Names() {
		prof := cfg.Profiles[name]
		fmt.Printf("%s:\n%s", name, indent(renderValues(prof.Values())))
	}
	return nil
}

func renderValues(v pstate.Values) string {
	var b strings.Builder
	fmt.Fprintf(&b, "min_perf_pct: %d\n", v.MinPerfPct)
	fmt.Fprintf(&b, "max_perf_pct: %d\n", v.MaxPerfPct)
	fmt.Fprintf(&b, "no_turbo:     %t\n", v.NoTurbo)
	return b.String()
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n") + "\n"
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("pstatectl"),
		kong.Description("Inspect and tune the intel_pstate CPU scaling driver."),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
