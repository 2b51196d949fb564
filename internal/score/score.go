// Package score loads the Genesys point table: the card-name → point-value
// mapping used to compute a deck's aggregate score.
package score

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TableFile is the top-level YAML structure of the scoring file.
type TableFile struct {
	Points map[string]int `yaml:"points"`
}

// Table maps card names to point values. It is loaded once at startup and
// never mutated afterwards.
type Table struct {
	points map[string]int
}

// Load reads a YAML scoring table from path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tf TableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse scoring YAML: %w", err)
	}
	return New(tf.Points), nil
}

// New builds a table from an already-parsed name → points map.
func New(points map[string]int) *Table {
	if points == nil {
		points = make(map[string]int)
	}
	return &Table{points: points}
}

// PointsFor returns the point value for a card name, 0 if unknown.
func (t *Table) PointsFor(name string) int {
	return t.points[name]
}

// Len returns the number of scored card names.
func (t *Table) Len() int {
	return len(t.points)
}
