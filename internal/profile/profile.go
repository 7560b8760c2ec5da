// Package profile loads named intel_pstate tuning profiles from a YAML file.
package profile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"pstatectl/internal/pstate"
)

// Profile is one named set of tunables.
//
// An omitted (or zero) max_perf_pct defaults to 100: the kernel clamps max up
// to min anyway, so an explicit zero max is never meaningful.
type Profile struct {
	MinPerfPct uint8 `yaml:"min_perf_pct"`
	MaxPerfPct uint8 `yaml:"max_perf_pct"`
	NoTurbo    bool  `yaml:"no_turbo"`
}

// Values converts the profile to the accessor's value record.
func (p Profile) Values() pstate.Values {
	return pstate.Values{
		MinPerfPct: p.MinPerfPct,
		MaxPerfPct: p.MaxPerfPct,
		NoTurbo:    p.NoTurbo,
	}
}

// Config is the parsed contents of a profiles file.
type Config struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Load reads and validates a profile file.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if len(cfg.Profiles) == 0 {
		return Config{}, fmt.Errorf("no profiles defined")
	}

	for name, p := range cfg.Profiles {
		if p.MaxPerfPct == 0 {
			p.MaxPerfPct = 100
			cfg.Profiles[name] = p
		}
		if p.MinPerfPct > 100 {
			return Config{}, fmt.Errorf("profile %q: min_perf_pct %d exceeds 100", name, p.MinPerfPct)
		}
		if p.MaxPerfPct > 100 {
			return Config{}, fmt.Errorf("profile %q: max_perf_pct %d exceeds 100", name, p.MaxPerfPct)
		}
		if p.MinPerfPct > p.MaxPerfPct {
			return Config{}, fmt.Errorf("profile %q: min_perf_pct %d exceeds max_perf_pct %d", name, p.MinPerfPct, p.MaxPerfPct)
		}
	}

	return cfg, nil
}

// Profile looks up a profile by name.
func (c Config) Profile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q not found (have: %v)", name, c.Names())
	}
	return p, nil
}

// Names returns the configured profile names, sorted.
func (c Config) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
