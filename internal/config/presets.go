package config

import (
	"sort"

	"github.com/san-kum/gravdeck/internal/spacetime"
)

// Presets are named grid setups for the spacetime slide.
var Presets = map[string]spacetime.Params{
	"gentle": {
		Spacing: 30, Height: 400, Mass: 1500, Softening: 2000,
	},
	"default": spacetime.DefaultParams(),
	"blackhole": {
		Spacing: 25, Height: 400, Mass: 12000, Softening: 600,
	},
}

func GetPreset(name string) (spacetime.Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
