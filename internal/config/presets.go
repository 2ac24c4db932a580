package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		FPS: 60, Width: DefaultWidth, Height: DefaultHeight,
		Effect: "ascii", Ramp: DefaultRamp, Theme: "retro",
	},
	"braille": {
		FPS: 60, Width: DefaultWidth, Height: DefaultHeight,
		Effect: "braille", Ramp: DefaultRamp, Theme: "ocean",
	},
	"mono": {
		FPS: 30, Width: 80, Height: 24,
		Effect: "ascii", Ramp: " .:-=+*#%@", Theme: "mono",
	},
	"inverted": {
		FPS: 60, Width: DefaultWidth, Height: DefaultHeight,
		Effect: "ascii", Ramp: DefaultRamp, Invert: true, Theme: "paper",
	},
}

// GetPreset returns a copy of the named preset with directories filled from
// the defaults, or nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := p.Clone()
	cfg.ExportDir = DefaultExportDir
	cfg.DataDir = DefaultDataDir
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
