// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"seawatch/internal/marine"
)

// ThreatWeights holds the per-factor budgets and radii of the scorer.
// Zero values are replaced with the documented defaults.
type ThreatWeights struct {
	TypeMax           int     `yaml:"type_max"`
	HotspotMax        int     `yaml:"hotspot_max"`
	RegionMax         int     `yaml:"region_max"`
	VelocityMax       int     `yaml:"velocity_max"`
	FormationMax      int     `yaml:"formation_max"`
	HotspotCriticalKm float64 `yaml:"hotspot_critical_km"`
	HotspotOuterKm    float64 `yaml:"hotspot_outer_km"`
	VelocityCapKnots  float64 `yaml:"velocity_cap_knots"`
}

// TrackSettings bounds the per-vessel history.
type TrackSettings struct {
	MaxEntries int `yaml:"max_entries"`
	MaxAgeDays int `yaml:"max_age_days"`
}

// EngineConfig is the root configuration for the awareness engine.
type EngineConfig struct {
	ClusterID string `yaml:"cluster_id"`

	// Hotspots are named coordinates used for proximity scoring.
	Hotspots []marine.Hotspot `yaml:"hotspots"`

	// HighTensionRegions maps a country to the named theaters that
	// raise the region factor for its vessels. The "*" key applies to
	// every country.
	HighTensionRegions map[string][]string `yaml:"high_tension_regions"`

	Threat ThreatWeights `yaml:"threat"`

	// FormationProximityKm is the pairwise clustering threshold.
	FormationProximityKm float64 `yaml:"formation_proximity_km"`

	Track TrackSettings `yaml:"track"`
}

// Defaults matching the documented scoring model.
const (
	defaultTypeMax           = 30
	defaultHotspotMax        = 25
	defaultRegionMax         = 25
	defaultVelocityMax       = 10
	defaultFormationMax      = 10
	defaultHotspotCriticalKm = 50
	defaultHotspotOuterKm    = 500
	defaultVelocityCapKnots  = 30
	defaultProximityKm       = 100
	defaultTrackMaxEntries   = 50
	defaultTrackMaxAgeDays   = 30
)

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*EngineConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a config carrying only the built-in defaults.
func Default() *EngineConfig {
	cfg := &EngineConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset knobs with the documented default values.
func (c *EngineConfig) ApplyDefaults() {
	if c.ClusterID == "" {
		c.ClusterID = "watch-01"
	}
	if c.Threat.TypeMax == 0 {
		c.Threat.TypeMax = defaultTypeMax
	}
	if c.Threat.HotspotMax == 0 {
		c.Threat.HotspotMax = defaultHotspotMax
	}
	if c.Threat.RegionMax == 0 {
		c.Threat.RegionMax = defaultRegionMax
	}
	if c.Threat.VelocityMax == 0 {
		c.Threat.VelocityMax = defaultVelocityMax
	}
	if c.Threat.FormationMax == 0 {
		c.Threat.FormationMax = defaultFormationMax
	}
	if c.Threat.HotspotCriticalKm == 0 {
		c.Threat.HotspotCriticalKm = defaultHotspotCriticalKm
	}
	if c.Threat.HotspotOuterKm == 0 {
		c.Threat.HotspotOuterKm = defaultHotspotOuterKm
	}
	if c.Threat.VelocityCapKnots == 0 {
		c.Threat.VelocityCapKnots = defaultVelocityCapKnots
	}
	if c.FormationProximityKm == 0 {
		c.FormationProximityKm = defaultProximityKm
	}
	if c.Track.MaxEntries == 0 {
		c.Track.MaxEntries = defaultTrackMaxEntries
	}
	if c.Track.MaxAgeDays == 0 {
		c.Track.MaxAgeDays = defaultTrackMaxAgeDays
	}
}

// RegionsFor returns the high-tension region names applying to a country,
// including the global "*" entries.
func (c *EngineConfig) RegionsFor(country string) []string {
	var out []string
	out = append(out, c.HighTensionRegions[country]...)
	out = append(out, c.HighTensionRegions["*"]...)
	return out
}
