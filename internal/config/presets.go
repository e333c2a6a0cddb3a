package config

import "sort"

var Presets = map[string]*Config{
	"coin": {
		Distribution: "binary", Steps: 1000, Mode: "cumulative", IntervalMs: 50,
	},
	"coin-average": {
		Distribution: "binary", Steps: 2000, Mode: "average", IntervalMs: 20,
	},
	"steady": {
		Distribution: "constant", Steps: 100, Mode: "cumulative", IntervalMs: 100,
	},
	"light-tail": {
		Distribution: "zeta3", Steps: 2000, Mode: "average", IntervalMs: 20,
	},
	"heavy-tail": {
		Distribution: "zeta2", Steps: 5000, Mode: "cumulative", IntervalMs: 10,
	},
	"heavy-average": {
		Distribution: "zeta2", Steps: 5000, Mode: "average", IntervalMs: 10,
	},
}

// GetPreset returns a copy of the named preset with defaults filled in, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Distribution = p.Distribution
	cfg.Steps = p.Steps
	cfg.Mode = p.Mode
	cfg.IntervalMs = p.IntervalMs
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
