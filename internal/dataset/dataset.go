// Package dataset holds the car records shown on the timeline.
package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed cars.yaml
var builtin []byte

// Car is one event on the timeline.
type Car struct {
	ID          string   `yaml:"id"`
	Year        int      `yaml:"year"`
	Name        string   `yaml:"name"`
	Brand       string   `yaml:"brand"`
	Description string   `yaml:"description"`
	AccentColor string   `yaml:"accent_color"`
	Color       string   `yaml:"color"`
	Specs       []string `yaml:"specs"`
	VideoID     string   `yaml:"video_id"`
}

type document struct {
	Cars []Car `yaml:"cars"`
}

// Builtin returns the compiled-in cars in file order.
func Builtin() ([]Car, error) {
	return ParseYAML(builtin)
}

// ParseYAML decodes a `cars:` document.
func ParseYAML(data []byte) ([]Car, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetFormat, err)
	}
	if err := checkIDs(doc.Cars); err != nil {
		return nil, err
	}
	return doc.Cars, nil
}

// LoadFile reads a dataset from disk. The extension selects the format:
// .yaml/.yml or .csv.
func LoadFile(path string) ([]Car, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading dataset file: %w", err)
		}
		return ParseYAML(data)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("error opening dataset file: %w", err)
		}
		defer f.Close()
		return ParseCSV(f)
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrDatasetFormat, filepath.Ext(path))
	}
}

// Sorted returns a copy ordered by year. Cars sharing a year keep their
// input order.
func Sorted(cars []Car) []Car {
	out := slices.Clone(cars)
	slices.SortStableFunc(out, func(a, b Car) int {
		return a.Year - b.Year
	})
	return out
}

// Find returns the car with the given id.
func Find(cars []Car, id string) (Car, bool) {
	for _, c := range cars {
		if c.ID == id {
			return c, true
		}
	}
	return Car{}, false
}

func checkIDs(cars []Car) error {
	seen := make(map[string]struct{}, len(cars))
	for i, c := range cars {
		if c.ID == "" {
			return fmt.Errorf("%w: car %d has no id", ErrDatasetFormat, i)
		}
		if _, ok := seen[c.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
