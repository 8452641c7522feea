package config

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	// The original curtain: 60x40 cells, medium stiffness.
	"classic": preset(func(c *Config) {}),

	// Light fabric that stretches visibly and tears easily.
	"veil": preset(func(c *Config) {
		c.Stiffness = 0.2
		c.TearRadius = 16
		c.Gravity = 6.0
	}),

	// Heavily relaxed, near-rigid sheet.
	"stiff": preset(func(c *Config) {
		c.Stiffness = 1.0
		c.RelaxPasses = 12
	}),

	// Wide tear radius for shredding demos.
	"shred": preset(func(c *Config) {
		c.TearRadius = 30
		c.DragRadius = 40
	}),

	// Tiny lattice, handy for terminals and tests.
	"small": preset(func(c *Config) {
		c.Cols = 20
		c.Rows = 12
		c.Width = 240
		c.Height = 160
		c.StartY = 10
	}),
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
