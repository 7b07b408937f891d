// Great-circle path prediction with confidence estimation.
package predict

import (
	"time"

	"seawatch/internal/geo"
	"seawatch/internal/marine"
)

// confidence model: base plus bonuses, clamped to [0,1]. The history
// tiers are mutually exclusive; the highest matching tier wins.
const (
	baseConfidence        = 0.5
	longHistoryBonus      = 0.2 // >= 5 entries
	shortHistoryBonus     = 0.1 // 3-4 entries
	explicitVelocityBonus = 0.15
	explicitHeadingBonus  = 0.15
)

// confidenceTier pairs a history-length predicate with its bonus; tiers
// are evaluated in order and the first match wins.
var confidenceTiers = []struct {
	match func(historyLen int) bool
	bonus float64
}{
	{func(n int) bool { return n >= 5 }, longHistoryBonus},
	{func(n int) bool { return n >= 3 }, shortHistoryBonus},
}

// Predictor projects vessel positions along great circles.
type Predictor struct{}

// New returns a Predictor.
func New() *Predictor { return &Predictor{} }

// Predict extrapolates the ship's position hoursAhead hours into the
// future. It returns nil only when the ship has neither an explicit
// heading nor two history entries to derive one from. A ship with a
// bearing but no usable speed is treated as stationary: a valid
// zero-displacement prediction at reduced confidence, not a failure.
func (p *Predictor) Predict(ship marine.DetectedShip, history []marine.PositionEntry, hoursAhead float64) *marine.PredictedPosition {
	bearing, explicitHeading, ok := bearingFor(ship, history)
	if !ok {
		return nil
	}
	speed, explicitVelocity := speedFor(ship, history)

	lat, lon := geo.Destination(ship.Lat, ship.Lon, bearing, speed*hoursAhead)

	conf := baseConfidence
	for _, tier := range confidenceTiers {
		if tier.match(len(history)) {
			conf += tier.bonus
			break
		}
	}
	if explicitVelocity {
		conf += explicitVelocityBonus
	}
	if explicitHeading {
		conf += explicitHeadingBonus
	}
	if conf > 1 {
		conf = 1
	}

	return &marine.PredictedPosition{
		VesselID:   ship.ID,
		Lat:        lat,
		Lon:        lon,
		Confidence: conf,
		Timestamp:  ship.Timestamp.Add(time.Duration(hoursAhead * float64(time.Hour))),
	}
}

// bearingFor prefers the reported heading and falls back to the bearing
// between the two most recent history entries.
func bearingFor(ship marine.DetectedShip, history []marine.PositionEntry) (bearing float64, explicit, ok bool) {
	if ship.Heading != nil {
		return *ship.Heading, true, true
	}
	if len(history) < 2 {
		return 0, false, false
	}
	prev, last := history[len(history)-2], history[len(history)-1]
	return geo.InitialBearingDeg(prev.Lat, prev.Lon, last.Lat, last.Lon), false, true
}

// speedFor prefers the reported velocity and falls back to distance over
// elapsed time between the two most recent history entries. With neither
// available the ship is treated as stationary.
func speedFor(ship marine.DetectedShip, history []marine.PositionEntry) (kmh float64, explicit bool) {
	if ship.Velocity != nil {
		// Reported velocities are in knots.
		return *ship.Velocity * 1.852, true
	}
	if len(history) < 2 {
		return 0, false
	}
	prev, last := history[len(history)-2], history[len(history)-1]
	elapsed := last.Timestamp.Sub(prev.Timestamp).Hours()
	if elapsed <= 0 {
		return 0, false
	}
	dist := geo.HaversineKm(prev.Lat, prev.Lon, last.Lat, last.Lon)
	return dist / elapsed, false
}
