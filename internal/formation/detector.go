// Spatial formation detection over same-country vessel sightings.
package formation

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"seawatch/internal/geo"
	"seawatch/internal/marine"
)

// DefaultProximityKm is the pairwise edge threshold of the cluster graph.
const DefaultProximityKm = 100

// Detector clusters sightings into formations.
type Detector struct {
	proximityKm float64
	newID       func() string
}

// NewDetector returns a detector with the given proximity threshold.
// Non-positive thresholds fall back to the default.
func NewDetector(proximityKm float64) *Detector {
	if proximityKm <= 0 {
		proximityKm = DefaultProximityKm
	}
	return &Detector{
		proximityKm: proximityKm,
		newID:       func() string { return uuid.New().String() },
	}
}

// classifyRule pairs a predicate with its outcome; rules are evaluated in
// order and the first match wins.
type classifyRule struct {
	match func(members []marine.DetectedShip) bool
	typ   marine.FormationType
}

var classifyRules = []classifyRule{
	{func(m []marine.DetectedShip) bool { return hasType(m, marine.ShipCarrier) && len(m) >= 3 }, marine.FormationCarrierGroup},
	{func(m []marine.DetectedShip) bool { return len(m) >= 5 }, marine.FormationTaskForce},
	{func(m []marine.DetectedShip) bool { return hasType(m, marine.ShipAmphibious) }, marine.FormationAmphibForce},
	{func(m []marine.DetectedShip) bool { return len(m) >= 3 }, marine.FormationPatrolGroup},
	{func(m []marine.DetectedShip) bool { return len(m) == 2 }, marine.FormationConvoy},
}

// Detect partitions ships by country, connects same-country pairs within
// the proximity threshold, and returns every connected component of two
// or more vessels as a formation. Pairwise distance is O(n²) per country
// partition, which is fine at the documented scale; callers throttle
// invocation frequency, not the detector.
func (d *Detector) Detect(ships []marine.DetectedShip) []marine.Formation {
	byCountry := make(map[string][]marine.DetectedShip)
	var countries []string
	for _, s := range ships {
		if _, seen := byCountry[s.Country]; !seen {
			countries = append(countries, s.Country)
		}
		byCountry[s.Country] = append(byCountry[s.Country], s)
	}
	sort.Strings(countries)

	var out []marine.Formation
	for _, country := range countries {
		group := byCountry[country]
		for _, component := range d.components(group) {
			if len(component) < 2 {
				continue
			}
			out = append(out, d.describe(country, component))
		}
	}
	return out
}

// components computes connected components of the proximity graph via BFS.
func (d *Detector) components(ships []marine.DetectedShip) [][]marine.DetectedShip {
	n := len(ships)
	visited := make([]bool, n)
	var comps [][]marine.DetectedShip

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		queue := []int{start}
		visited[start] = true
		var comp []marine.DetectedShip
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			comp = append(comp, ships[i])
			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				dist := geo.HaversineKm(ships[i].Lat, ships[i].Lon, ships[j].Lat, ships[j].Lon)
				if dist <= d.proximityKm {
					visited[j] = true
					queue = append(queue, j)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// describe derives center, radius, averages, and classification for one
// component.
func (d *Detector) describe(country string, members []marine.DetectedShip) marine.Formation {
	var sumLat, sumLon float64
	ids := make([]string, len(members))
	for i, m := range members {
		sumLat += m.Lat
		sumLon += m.Lon
		ids[i] = m.ID
	}
	centerLat := sumLat / float64(len(members))
	centerLon := sumLon / float64(len(members))

	var radius float64
	for _, m := range members {
		if r := geo.HaversineKm(centerLat, centerLon, m.Lat, m.Lon); r > radius {
			radius = r
		}
	}

	typ := classify(members)
	f := marine.Formation{
		ID:          d.newID(),
		Name:        fmt.Sprintf("%s %s (%d ships)", country, typ, len(members)),
		Type:        typ,
		Country:     country,
		MemberIDs:   ids,
		CenterLat:   centerLat,
		CenterLon:   centerLon,
		RadiusKm:    radius,
		AvgHeading:  avgHeading(members),
		AvgVelocity: avgVelocity(members),
	}
	return f
}

func classify(members []marine.DetectedShip) marine.FormationType {
	for _, rule := range classifyRules {
		if rule.match(members) {
			return rule.typ
		}
	}
	// Unreachable for components of size >= 2.
	return marine.FormationConvoy
}

func hasType(members []marine.DetectedShip, t marine.ShipType) bool {
	for _, m := range members {
		if m.Type == t {
			return true
		}
	}
	return false
}

// avgHeading is the circular mean of reported headings, handling the
// wraparound at 0/360. Nil when no member reports a heading.
func avgHeading(members []marine.DetectedShip) *float64 {
	var rads []float64
	for _, m := range members {
		if m.Heading != nil {
			rads = append(rads, *m.Heading*math.Pi/180)
		}
	}
	if len(rads) == 0 {
		return nil
	}
	mean := stat.CircularMean(rads, nil) * 180 / math.Pi
	mean = math.Mod(mean+360, 360)
	return &mean
}

// avgVelocity is the arithmetic mean of reported velocities; nil when no
// member reports one.
func avgVelocity(members []marine.DetectedShip) *float64 {
	var vals []float64
	for _, m := range members {
		if m.Velocity != nil {
			vals = append(vals, *m.Velocity)
		}
	}
	if len(vals) == 0 {
		return nil
	}
	mean := stat.Mean(vals, nil)
	return &mean
}
