package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AUTOTIMELINE_"

// Load builds a Config by layering defaults, an optional YAML file and
// environment variables, then validates it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// AUTOTIMELINE_FETCH__TIMEOUT -> fetch.timeout
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrLoadConfig, err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var markerShapes = map[string]bool{
	"circle":   true,
	"square":   true,
	"diamond":  true,
	"triangle": true,
}

// Validate reports the first setting that would break rendering.
func (c *Config) Validate() error {
	switch {
	case c.Output.HTML == "":
		return fmt.Errorf("%w: output.html must not be empty", ErrInvalidConfig)
	case c.Layout.Width <= 2*c.Layout.Margin:
		return fmt.Errorf("%w: layout.width must exceed twice layout.margin", ErrInvalidConfig)
	case c.Layout.LabelWidth <= 0:
		return fmt.Errorf("%w: layout.label_width must be positive", ErrInvalidConfig)
	case c.Layout.MaxLanes < 1:
		return fmt.Errorf("%w: layout.max_lanes must be at least 1", ErrInvalidConfig)
	case c.Layout.LevelHeight <= 0:
		return fmt.Errorf("%w: layout.level_height must be positive", ErrInvalidConfig)
	case c.Layout.PadBefore < 0 || c.Layout.PadAfter < 0:
		return fmt.Errorf("%w: layout padding must not be negative", ErrInvalidConfig)
	case !markerShapes[strings.ToLower(c.Marker.Shape)]:
		return fmt.Errorf("%w: unknown marker.shape %q", ErrInvalidConfig, c.Marker.Shape)
	case c.Fetch.Concurrency < 1:
		return fmt.Errorf("%w: fetch.concurrency must be at least 1", ErrInvalidConfig)
	case c.Fetch.Timeout <= 0:
		return fmt.Errorf("%w: fetch.timeout must be positive", ErrInvalidConfig)
	case c.Particles.Count < 0:
		return fmt.Errorf("%w: particles.count must not be negative", ErrInvalidConfig)
	case c.Carousel.CardWidth <= 0 || c.Carousel.ScrollStep <= 0:
		return fmt.Errorf("%w: carousel sizes must be positive", ErrInvalidConfig)
	case c.Carousel.Gap < 0 || c.Carousel.Padding < 0:
		return fmt.Errorf("%w: carousel gap and padding must not be negative", ErrInvalidConfig)
	}
	return nil
}
