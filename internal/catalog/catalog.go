// Static reference catalog of named-vessel specifications.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed capabilities.yaml
var capabilitiesYAML []byte

// Capabilities describes the static specification of a named vessel.
type Capabilities struct {
	Name            string   `yaml:"name" json:"name"`
	Class           string   `yaml:"class" json:"class"`
	DisplacementT   int      `yaml:"displacement_t" json:"displacement_t"`
	SpeedKnots      float64  `yaml:"speed_knots" json:"speed_knots"`
	Armament        []string `yaml:"armament" json:"armament"`
	Aircraft        int      `yaml:"aircraft" json:"aircraft"`
	Helicopters     int      `yaml:"helicopters" json:"helicopters"`
}

// Catalog is a read-only lookup of vessel capabilities by name.
type Catalog struct {
	byName map[string]Capabilities
}

// Load parses the embedded capability data.
func Load() (*Catalog, error) {
	return Parse(capabilitiesYAML)
}

// Parse builds a catalog from YAML data.
func Parse(data []byte) (*Catalog, error) {
	var entries []Capabilities
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse capability catalog: %w", err)
	}
	c := &Catalog{byName: make(map[string]Capabilities, len(entries))}
	for _, e := range entries {
		c.byName[e.Name] = e
	}
	return c, nil
}

// Lookup returns the capabilities for a vessel name.
func (c *Catalog) Lookup(name string) (Capabilities, bool) {
	caps, ok := c.byName[name]
	return caps, ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.byName) }
