// Package config defines the generator configuration and how it is loaded.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables prefixed with AUTOTIMELINE_. Nested keys use a
// double underscore, e.g. AUTOTIMELINE_LAYOUT__LABEL_WIDTH=9.
package config

import "time"

// Config represents the complete configuration for page generation.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Dataset is an optional YAML or CSV file replacing the built-in cars.
	Dataset string `koanf:"dataset"`

	Output    Output    `koanf:"output"`
	Layout    Layout    `koanf:"layout"`
	Colors    Colors    `koanf:"colors"`
	Marker    Marker    `koanf:"marker"`
	Fetch     Fetch     `koanf:"fetch"`
	Particles Particles `koanf:"particles"`
	Carousel  Carousel  `koanf:"carousel"`
	Metrics   Metrics   `koanf:"metrics"`
}

// Output names the generated files.
type Output struct {
	HTML string `koanf:"html"` // page path
	SVG  string `koanf:"svg"`  // standalone timeline path, empty to skip
}

// Layout controls the timeline axis and label placement.
type Layout struct {
	Width       int     `koanf:"width"`        // SVG width in pixels
	Margin      int     `koanf:"margin"`       // horizontal inset of the axis in pixels
	LineY       int     `koanf:"line_y"`       // distance from the top to the axis line
	LevelHeight int     `koanf:"level_height"` // vertical step between label levels
	LabelWidth  float64 `koanf:"label_width"`  // label width as a percentage of the axis
	MaxLanes    int     `koanf:"max_lanes"`    // lanes scanned before falling back to lane 0
	PadBefore   int     `koanf:"pad_before"`   // years added before the first event
	PadAfter    int     `koanf:"pad_after"`    // years added after the last event
	FontFamily  string  `koanf:"font_family"`
	FontSize    int     `koanf:"font_size"`
}

// Colors holds the page palette.
type Colors struct {
	Background    string `koanf:"background"`
	Axis          string `koanf:"axis"`
	Text          string `koanf:"text"`
	Muted         string `koanf:"muted"`
	DefaultAccent string `koanf:"default_accent"` // tint used when nothing is selected
}

// Marker styles the dot drawn on the axis for each event.
type Marker struct {
	Shape       string `koanf:"shape"` // circle, square, diamond or triangle
	Size        int    `koanf:"size"`
	StrokeWidth int    `koanf:"stroke_width"`
}

// Fetch configures video metadata retrieval.
type Fetch struct {
	Enabled     bool          `koanf:"enabled"`
	Endpoint    string        `koanf:"endpoint"`
	Timeout     time.Duration `koanf:"timeout"`
	Concurrency int           `koanf:"concurrency"`
}

// Particles configures the decorative background layer.
type Particles struct {
	Count  int    `koanf:"count"`
	Seed   uint64 `koanf:"seed"`
	Frames int    `koanf:"frames"` // simulation steps before the snapshot is taken
	Width  int    `koanf:"width"`
	Height int    `koanf:"height"`
}

// Carousel configures the card strip.
type Carousel struct {
	CardWidth     int `koanf:"card_width"`
	Gap           int `koanf:"gap"`
	Padding       int `koanf:"padding"` // horizontal inset of the track on each side
	ViewportWidth int `koanf:"viewport_width"`
	ScrollStep    int `koanf:"scroll_step"`
	EdgeTolerance int `koanf:"edge_tolerance"`
}

// Metrics configures the optional textfile export.
type Metrics struct {
	Textfile string `koanf:"textfile"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Output: Output{
			HTML: "index.html",
			SVG:  "timeline.svg",
		},
		Layout: Layout{
			Width:       1200,
			Margin:      40,
			LineY:       110,
			LevelHeight: 22,
			LabelWidth:  7,
			MaxLanes:    8,
			PadBefore:   3,
			PadAfter:    8,
			FontFamily:  "'Barlow Condensed', Arial, sans-serif",
			FontSize:    11,
		},
		Colors: Colors{
			Background:    "#080808",
			Axis:          "#3a3a3a",
			Text:          "#e8e8e8",
			Muted:         "#777777",
			DefaultAccent: "#ff4400",
		},
		Marker: Marker{
			Shape:       "circle",
			Size:        4,
			StrokeWidth: 2,
		},
		Fetch: Fetch{
			Enabled:     true,
			Endpoint:    "https://www.youtube.com/oembed",
			Timeout:     5 * time.Second,
			Concurrency: 4,
		},
		Particles: Particles{
			Count:  800,
			Seed:   1966,
			Frames: 240,
			Width:  1600,
			Height: 900,
		},
		Carousel: Carousel{
			CardWidth:     340,
			Gap:           40,
			Padding:       40,
			ViewportWidth: 1280,
			ScrollStep:    380,
			EdgeTolerance: 10,
		},
	}
}
