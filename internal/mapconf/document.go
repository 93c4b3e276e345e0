// Package mapconf turns YAML map documents into the filters, regions and
// applied rules of a match.
package mapconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/CardinalDevelopment/Cardinal-sub000/internal/logger"
	"github.com/CardinalDevelopment/Cardinal-sub000/internal/types"
)

var log = logger.New("mapconf")

// Document is a parsed map file. Sections other than the name are kept as
// raw nodes so diagnostics can point at the offending line.
type Document struct {
	Name       string      `yaml:"name"`
	Teams      []yaml.Node `yaml:"teams"`
	Objectives []yaml.Node `yaml:"objectives"`
	Kits       []yaml.Node `yaml:"kits"`
	Regions    []yaml.Node `yaml:"regions"`
	Filters    []yaml.Node `yaml:"filters"`
	Applied    []yaml.Node `yaml:"applied"`
}

type teamDoc struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type objectiveDoc struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Owner string `yaml:"owner"`
}

type itemDoc struct {
	Material string `yaml:"material"`
	Amount   int    `yaml:"amount"`
}

type kitDoc struct {
	ID    string    `yaml:"id"`
	Clear bool      `yaml:"clear"`
	Items []itemDoc `yaml:"items"`
	Armor []itemDoc `yaml:"armor"`
}

type teamMessageDoc struct {
	Team  string `yaml:"team"`
	Own   string `yaml:"own"`
	Other string `yaml:"other"`
}

type appliedDoc struct {
	ID           string          `yaml:"id"`
	Type         string          `yaml:"type"`
	Region       yaml.Node       `yaml:"region"`
	Filter       yaml.Node       `yaml:"filter"`
	Message      string          `yaml:"message"`
	TeamMessage  *teamMessageDoc `yaml:"team-message"`
	EarlyWarning bool            `yaml:"early-warning"`
	Velocity     string          `yaml:"velocity"`
	Kit          string          `yaml:"kit"`
}

// Parse decodes a map document. Unknown top-level sections are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("map parse error: %w", err)
	}
	return &doc, nil
}

// Section returns the raw entries of a top-level section.
func (d *Document) Section(s types.MapSection) []yaml.Node {
	switch s {
	case types.SectionTeams:
		return d.Teams
	case types.SectionObjectives:
		return d.Objectives
	case types.SectionKits:
		return d.Kits
	case types.SectionRegions:
		return d.Regions
	case types.SectionFilters:
		return d.Filters
	case types.SectionApplied:
		return d.Applied
	}
	return nil
}

// Len counts the elements declared across all sections.
func (d *Document) Len() int {
	return len(d.Teams) + len(d.Objectives) + len(d.Kits) +
		len(d.Regions) + len(d.Filters) + len(d.Applied)
}
