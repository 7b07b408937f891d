// Multi-factor threat scoring for detected vessels.
package threat

import (
	"fmt"
	"math"
	"strings"

	"seawatch/internal/config"
	"seawatch/internal/geo"
	"seawatch/internal/marine"
)

// typeTier ranks ship types within the type budget. Carriers and
// submarines sit at the top, patrol craft and unknowns at the bottom.
var typeTier = map[marine.ShipType]int{
	marine.ShipCarrier:    30,
	marine.ShipSubmarine:  28,
	marine.ShipDestroyer:  22,
	marine.ShipCruiser:    22,
	marine.ShipAmphibious: 18,
	marine.ShipFrigate:    15,
	marine.ShipSupply:     8,
	marine.ShipPatrol:     5,
	marine.ShipUnknown:    5,
}

// Scorer computes threat assessments from sightings, hotspot proximity,
// configured high-tension regions, and formation membership.
type Scorer struct {
	weights config.ThreatWeights
	regions map[string][]string
}

// NewScorer builds a scorer from engine configuration.
func NewScorer(cfg *config.EngineConfig) *Scorer {
	return &Scorer{weights: cfg.Threat, regions: cfg.HighTensionRegions}
}

// Assess scores one vessel. It always returns a complete assessment;
// missing optional inputs simply contribute nothing. Reasoning carries
// one entry per nonzero factor, in factor order.
func (s *Scorer) Assess(ship marine.DetectedShip, hotspots []marine.Hotspot, inFormation bool) marine.ThreatAssessment {
	var score int
	var reasoning []string

	if pts := s.typePoints(ship.Type); pts > 0 {
		score += pts
		reasoning = append(reasoning, fmt.Sprintf("%s-class vessel (+%d)", ship.Type, pts))
	}
	if pts, spot, dist := s.hotspotPoints(ship, hotspots); pts > 0 {
		score += pts
		reasoning = append(reasoning, fmt.Sprintf("%.0f km from %s (+%d)", dist, spot, pts))
	}
	if pts, region := s.regionPoints(ship); pts > 0 {
		score += pts
		reasoning = append(reasoning, fmt.Sprintf("operating in high-tension theater %s (+%d)", region, pts))
	}
	if pts := s.velocityPoints(ship); pts > 0 {
		score += pts
		reasoning = append(reasoning, fmt.Sprintf("transiting at %.1f kn (+%d)", *ship.Velocity, pts))
	}
	if inFormation && s.weights.FormationMax > 0 {
		score += s.weights.FormationMax
		reasoning = append(reasoning, fmt.Sprintf("sailing in formation (+%d)", s.weights.FormationMax))
	}

	if score > 100 {
		score = 100
	}
	return marine.ThreatAssessment{
		VesselID:  ship.ID,
		Score:     score,
		Level:     LevelFor(score),
		Reasoning: reasoning,
	}
}

// LevelFor maps a total score onto a threat level via fixed thresholds.
func LevelFor(score int) marine.ThreatLevel {
	switch {
	case score >= 75:
		return marine.LevelExtreme
	case score >= 50:
		return marine.LevelHigh
	case score >= 25:
		return marine.LevelMedium
	default:
		return marine.LevelLow
	}
}

func (s *Scorer) typePoints(t marine.ShipType) int {
	pts, ok := typeTier[t]
	if !ok {
		pts = typeTier[marine.ShipUnknown]
	}
	if pts > s.weights.TypeMax {
		pts = s.weights.TypeMax
	}
	return pts
}

// hotspotPoints awards the full budget within the critical radius and
// decays linearly to zero at the outer radius.
func (s *Scorer) hotspotPoints(ship marine.DetectedShip, hotspots []marine.Hotspot) (int, string, float64) {
	if len(hotspots) == 0 {
		return 0, "", 0
	}
	nearest := hotspots[0]
	best := geo.HaversineKm(ship.Lat, ship.Lon, nearest.Lat, nearest.Lon)
	for _, h := range hotspots[1:] {
		if d := geo.HaversineKm(ship.Lat, ship.Lon, h.Lat, h.Lon); d < best {
			best = d
			nearest = h
		}
	}
	critical := s.weights.HotspotCriticalKm
	outer := s.weights.HotspotOuterKm
	switch {
	case best <= critical:
		return s.weights.HotspotMax, nearest.Name, best
	case best >= outer:
		return 0, "", 0
	default:
		frac := (outer - best) / (outer - critical)
		return int(math.Round(frac * float64(s.weights.HotspotMax))), nearest.Name, best
	}
}

// regionPoints is independent of hotspot proximity: a ship far from any
// hotspot coordinate can still sit inside a named theater.
func (s *Scorer) regionPoints(ship marine.DetectedShip) (int, string) {
	loc := strings.ToLower(ship.Location)
	if loc == "" {
		return 0, ""
	}
	for _, key := range []string{ship.Country, "*"} {
		for _, region := range s.regions[key] {
			if strings.Contains(loc, strings.ToLower(region)) {
				return s.weights.RegionMax, region
			}
		}
	}
	return 0, ""
}

func (s *Scorer) velocityPoints(ship marine.DetectedShip) int {
	if ship.Velocity == nil || *ship.Velocity <= 0 {
		return 0
	}
	cap := s.weights.VelocityCapKnots
	frac := *ship.Velocity / cap
	if frac > 1 {
		frac = 1
	}
	return int(math.Round(frac * float64(s.weights.VelocityMax)))
}
