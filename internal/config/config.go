// Package config loads benchmark-suite definitions: which reduction
// strategies to run, over which (depth, length) term-generator cells,
// and how many timed rounds per cell.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CellField handles the `depth` and `length` keys of a cell, which may
// be given as a single scalar int ("4") or a "lo-hi" range string
// ("4-8"), expanding to every value in the inclusive range.
type CellField []int

func (c *CellField) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var single int
		if err := value.Decode(&single); err == nil {
			*c = CellField{single}
			return nil
		}
		var lo, hi int
		if _, err := fmt.Sscanf(value.Value, "%d-%d", &lo, &hi); err != nil {
			return fmt.Errorf("config: invalid range %q: %w", value.Value, err)
		}
		if hi < lo {
			return fmt.Errorf("config: invalid range %q: high < low", value.Value)
		}
		out := make(CellField, 0, hi-lo+1)
		for v := lo; v <= hi; v++ {
			out = append(out, v)
		}
		*c = out
		return nil
	}
	var list []int
	if err := value.Decode(&list); err != nil {
		return err
	}
	*c = CellField(list)
	return nil
}

// Cell is one (depth, length) grid axis pair before expansion.
type Cell struct {
	Depth  CellField `yaml:"depth"`
	Length CellField `yaml:"length"`
}

// Suite is a full benchmark run definition.
type Suite struct {
	Strategies []string `yaml:"strategies,omitempty"` // empty = all registered
	Cells      []Cell   `yaml:"cells"`
	Samples    int      `yaml:"samples"` // outer repetitions, averaged
	Measure    int      `yaml:"measure"` // timed rounds per sample
}

// Default returns the built-in grid used when no --config flag is given.
func Default() Suite {
	return Suite{
		Cells:   []Cell{{Depth: CellField{0, 1, 2}, Length: CellField{1, 3, 5}}},
		Samples: 3,
		Measure: 3,
	}
}

// Load reads and parses a Suite from a YAML file at path.
func Load(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Suite{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if s.Samples == 0 {
		s.Samples = 3
	}
	if s.Measure == 0 {
		s.Measure = 3
	}
	return s, nil
}

// Pairs expands every Cell into concrete (depth, length) pairs.
func (s Suite) Pairs() [][2]int {
	var out [][2]int
	for _, c := range s.Cells {
		for _, d := range c.Depth {
			for _, l := range c.Length {
				out = append(out, [2]int{d, l})
			}
		}
	}
	return out
}
