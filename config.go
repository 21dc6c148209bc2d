package nebula

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the engine. Zero values are replaced by the
// built-in defaults in computeDerived, so a partial user file is enough.
type Config struct {
	// Seed feeds the engine's random source. 0 picks a time-based seed.
	Seed uint64 `yaml:"seed"`

	Window        WindowConfig        `yaml:"window"`
	Constellation ConstellationConfig `yaml:"constellation"`
	Transition    TransitionConfig    `yaml:"transition"`
	Connections   ConnectionConfig    `yaml:"connections"`
	Celestial     CelestialConfig     `yaml:"celestial"`
	Navigation    NavigationConfig    `yaml:"navigation"`
	TextFields    []TextFieldConfig   `yaml:"text_fields"`
}

// WindowConfig holds display settings for the Ebitengine host.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
}

// ConstellationConfig controls particle density and spawn ranges.
type ConstellationConfig struct {
	AreaPerParticle float64 `yaml:"area_per_particle"` // viewport px² per particle
	MinParticles    int     `yaml:"min_particles"`
	Depth           Range   `yaml:"depth"` // initial z
	Speed           Range   `yaml:"speed"` // shared vx/vy drift
	Size            Range   `yaml:"size"`
	MinDotSize      float64 `yaml:"min_dot_size"`
}

// TransitionConfig holds warp ramp timing. Durations are virtual milliseconds.
type TransitionConfig struct {
	Smoothing   float64 `yaml:"smoothing"` // exponential smoothing factor per tick
	RampMs      float64 `yaml:"ramp_ms"`
	LockMs      float64 `yaml:"lock_ms"`
	BodyClearMs float64 `yaml:"body_clear_ms"`
}

// ConnectionConfig holds the proximity limits of the connection graph.
type ConnectionConfig struct {
	ConnectionDistance  float64 `yaml:"connection_distance"`
	MouseDistance       float64 `yaml:"mouse_distance"`
	MaxMouseConnections int     `yaml:"max_mouse_connections"`
	SuppressSection     int     `yaml:"suppress_section"`
}

// CelestialConfig holds planet mesh resolution and layer fade timing.
type CelestialConfig struct {
	FadeInMs float64 `yaml:"fade_in_ms"`
	LatSteps int     `yaml:"lat_steps"`
	LonSteps int     `yaml:"lon_steps"`
}

// NavigationConfig holds the section list and wheel thresholds.
type NavigationConfig struct {
	Sections            []SectionConfig `yaml:"sections"`
	ScrollThreshold     float64         `yaml:"scroll_threshold"`
	ScrollableThreshold float64         `yaml:"scrollable_threshold"`
	ScrollResetMs       float64         `yaml:"scroll_reset_ms"`
	EdgeTolerance       float64         `yaml:"edge_tolerance"`
	WheelScale          float64         `yaml:"wheel_scale"` // px per wheel notch
}

// SectionConfig describes one navigable section.
type SectionConfig struct {
	ID            string  `yaml:"id"`
	ContentHeight float64 `yaml:"content_height"` // inner scroll height; 0 = not scrollable
}

// TextFieldConfig describes one particle-text field. Box is expressed as
// fractions of the viewport and stands in for the parent element bounds.
type TextFieldConfig struct {
	Text        string  `yaml:"text"`
	Section     int     `yaml:"section"`
	Box         Rect    `yaml:"box"`
	FontSize    float64 `yaml:"font_size"`
	FontWeight  int     `yaml:"font_weight"`
	Density     int     `yaml:"density"`
	MouseRadius float64 `yaml:"mouse_radius"`
	MouseForce  float64 `yaml:"mouse_force"`
	ReturnEase  float64 `yaml:"return_ease"`
	Friction    float64 `yaml:"friction"`
	Color       *Color  `yaml:"color"`
	Alignment   string  `yaml:"alignment"` // "center" or "left"
	Padding     float64 `yaml:"padding"`
	WaveSpeed   float64 `yaml:"wave_speed"`
	WaveWidth   float64 `yaml:"wave_width"`
	WaveDelay   int     `yaml:"wave_delay"` // frames
}

// DefaultConfig returns the embedded defaults. It panics only if the
// embedded file is malformed, which is a build defect.
func DefaultConfig() *Config {
	cfg, err := LoadConfig("")
	if err != nil {
		panic(fmt.Sprintf("nebula: embedded defaults: %v", err))
	}
	return cfg
}

// LoadConfig loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("nebula: parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("nebula: reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("nebula: parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("nebula: marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("nebula: writing config file: %w", err)
	}
	return nil
}

// computeDerived replaces zero values with defaults.
func (c *Config) computeDerived() {
	if c.Window.TPS <= 0 {
		c.Window.TPS = 60
	}
	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 720
	}

	k := &c.Constellation
	if k.AreaPerParticle <= 0 {
		k.AreaPerParticle = 8000
	}
	if k.MinParticles <= 0 {
		k.MinParticles = 30
	}
	if k.Depth == (Range{}) {
		k.Depth = Range{0.2, 3.0}
	}
	if k.Size == (Range{}) {
		k.Size = Range{0, 1.5}
	}
	if k.MinDotSize <= 0 {
		k.MinDotSize = 0.5
	}

	t := &c.Transition
	if t.Smoothing <= 0 {
		t.Smoothing = 0.1
	}
	if t.RampMs <= 0 {
		t.RampMs = 800
	}
	if t.LockMs <= 0 {
		t.LockMs = 1200
	}
	if t.BodyClearMs <= 0 {
		t.BodyClearMs = 1500
	}

	g := &c.Connections
	if g.ConnectionDistance <= 0 {
		g.ConnectionDistance = 120
	}
	if g.MouseDistance <= 0 {
		g.MouseDistance = 250
	}
	if g.MaxMouseConnections <= 0 {
		g.MaxMouseConnections = 8
	}

	if c.Celestial.LatSteps <= 0 {
		c.Celestial.LatSteps = 16
	}
	if c.Celestial.LonSteps <= 0 {
		c.Celestial.LonSteps = 24
	}

	n := &c.Navigation
	if n.ScrollThreshold <= 0 {
		n.ScrollThreshold = 200
	}
	if n.ScrollableThreshold <= 0 {
		n.ScrollableThreshold = 800
	}
	if n.ScrollResetMs <= 0 {
		n.ScrollResetMs = 150
	}
	if n.EdgeTolerance <= 0 {
		n.EdgeTolerance = 5
	}
	if n.WheelScale <= 0 {
		n.WheelScale = 100
	}

	for i := range c.TextFields {
		c.TextFields[i].applyDefaults()
	}
}

// applyDefaults fills zero options the same way the field constructor would.
func (tc *TextFieldConfig) applyDefaults() {
	if tc.FontSize <= 0 {
		tc.FontSize = 100
	}
	if tc.FontWeight <= 0 {
		tc.FontWeight = 900
	}
	if tc.Density <= 0 {
		tc.Density = 6
	}
	if tc.MouseRadius <= 0 {
		tc.MouseRadius = 80
	}
	if tc.MouseForce <= 0 {
		tc.MouseForce = 15
	}
	if tc.ReturnEase <= 0 {
		tc.ReturnEase = 0.1
	}
	if tc.Friction <= 0 {
		tc.Friction = 0.9
	}
	if tc.Color == nil {
		white := ColorWhite
		tc.Color = &white
	}
	if tc.Alignment == "" {
		tc.Alignment = "center"
	}
	if tc.Padding <= 0 {
		tc.Padding = 100
	}
	if tc.WaveSpeed <= 0 {
		tc.WaveSpeed = 4
	}
	if tc.WaveWidth <= 0 {
		tc.WaveWidth = 60
	}
	if tc.WaveDelay <= 0 {
		tc.WaveDelay = 200
	}
}
