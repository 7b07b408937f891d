package predict

import (
	"math"
	"testing"
	"time"

	"seawatch/internal/geo"
	"seawatch/internal/marine"
)

var t0 = time.Date(2026, 1, 27, 10, 0, 0, 0, time.UTC)

func baseShip() marine.DetectedShip {
	return marine.DetectedShip{
		ID:        "v1",
		Country:   "US",
		Type:      marine.ShipDestroyer,
		Lat:       13.45,
		Lon:       144.75,
		Timestamp: t0,
	}
}

func historyOf(n int) []marine.PositionEntry {
	h := make([]marine.PositionEntry, n)
	for i := range h {
		// Steady eastward track, one hour apart.
		h[i] = marine.PositionEntry{
			Lat:       13.45,
			Lon:       144.0 + float64(i)*0.2,
			Timestamp: t0.Add(time.Duration(i-n) * time.Hour),
		}
	}
	return h
}

func TestNilOnlyWithoutHeadingAndHistory(t *testing.T) {
	p := New()
	ship := baseShip()

	if got := p.Predict(ship, nil, 4); got != nil {
		t.Error("expected nil: no heading, no history")
	}
	if got := p.Predict(ship, historyOf(1), 4); got != nil {
		t.Error("expected nil: no heading, single history entry")
	}
	if got := p.Predict(ship, historyOf(2), 4); got == nil {
		t.Error("expected prediction from two history entries")
	}
	ship.Heading = marine.Float64(90)
	if got := p.Predict(ship, nil, 4); got == nil {
		t.Error("expected prediction from explicit heading alone")
	}
}

func TestZeroHoursReturnsCurrentPosition(t *testing.T) {
	p := New()
	ship := baseShip()
	ship.Heading = marine.Float64(45)
	ship.Velocity = marine.Float64(20)

	got := p.Predict(ship, historyOf(5), 0)
	if got == nil {
		t.Fatal("expected prediction")
	}
	if math.Abs(got.Lat-ship.Lat) > 1e-9 || math.Abs(got.Lon-ship.Lon) > 1e-9 {
		t.Errorf("position moved with hoursAhead=0: %f,%f", got.Lat, got.Lon)
	}
	// Full data quality: maximum achievable confidence.
	if math.Abs(got.Confidence-1.0) > 1e-9 {
		t.Errorf("confidence = %f, want 1.0", got.Confidence)
	}
	if !got.Timestamp.Equal(ship.Timestamp) {
		t.Errorf("projected timestamp = %v, want %v", got.Timestamp, ship.Timestamp)
	}
}

func TestStationaryWithoutSpeedStillPredicts(t *testing.T) {
	p := New()
	ship := baseShip()
	ship.Heading = marine.Float64(270)

	got := p.Predict(ship, nil, 6)
	if got == nil {
		t.Fatal("expected stationary prediction, not nil")
	}
	if math.Abs(got.Lat-ship.Lat) > 1e-9 || math.Abs(got.Lon-ship.Lon) > 1e-9 {
		t.Errorf("stationary ship moved: %f,%f", got.Lat, got.Lon)
	}
	if math.Abs(got.Confidence-0.65) > 1e-9 {
		t.Errorf("confidence = %f, want 0.65 (base + explicit heading)", got.Confidence)
	}
}

func TestDisplacementMatchesSpeedAndBearing(t *testing.T) {
	p := New()
	ship := baseShip()
	ship.Heading = marine.Float64(90)
	ship.Velocity = marine.Float64(20) // knots

	got := p.Predict(ship, nil, 3)
	if got == nil {
		t.Fatal("expected prediction")
	}
	wantKm := 20 * 1.852 * 3
	if d := geo.HaversineKm(ship.Lat, ship.Lon, got.Lat, got.Lon); math.Abs(d-wantKm) > 0.5 {
		t.Errorf("travelled %f km, want %f", d, wantKm)
	}
	if got.Lon <= ship.Lon {
		t.Errorf("eastbound ship went west: %f -> %f", ship.Lon, got.Lon)
	}
}

func TestDerivedBearingFollowsTrack(t *testing.T) {
	p := New()
	ship := baseShip()
	// Track is steady eastward; no explicit heading.
	got := p.Predict(ship, historyOf(4), 2)
	if got == nil {
		t.Fatal("expected prediction")
	}
	if got.Lon <= ship.Lon {
		t.Errorf("derived eastward bearing but moved west: %f -> %f", ship.Lon, got.Lon)
	}
	if math.Abs(got.Lat-ship.Lat) > 1.0 {
		t.Errorf("equatorial-parallel track drifted: lat %f -> %f", ship.Lat, got.Lat)
	}
}

func TestConfidenceMatrix(t *testing.T) {
	p := New()
	heading := marine.Float64(90)
	velocity := marine.Float64(15)

	for _, histLen := range []int{0, 1, 2, 5, 10} {
		for _, hasHeading := range []bool{true, false} {
			for _, hasVelocity := range []bool{true, false} {
				ship := baseShip()
				if hasHeading {
					ship.Heading = heading
				}
				if hasVelocity {
					ship.Velocity = velocity
				}
				got := p.Predict(ship, historyOf(histLen), 4)
				if got == nil {
					if hasHeading || histLen >= 2 {
						t.Errorf("hist=%d heading=%v velocity=%v: unexpected nil", histLen, hasHeading, hasVelocity)
					}
					continue
				}
				if !hasHeading && histLen < 2 {
					t.Errorf("hist=%d heading=%v: expected nil", histLen, hasHeading)
					continue
				}
				if got.Confidence < 0 || got.Confidence > 1 {
					t.Errorf("hist=%d heading=%v velocity=%v: confidence %f outside [0,1]",
						histLen, hasHeading, hasVelocity, got.Confidence)
				}
			}
		}
	}
}

func TestHistoryTiersAreExclusive(t *testing.T) {
	p := New()
	ship := baseShip()
	ship.Heading = marine.Float64(0)

	short := p.Predict(ship, historyOf(3), 1)
	long := p.Predict(ship, historyOf(5), 1)
	if short == nil || long == nil {
		t.Fatal("expected predictions")
	}
	// base 0.5 + heading 0.15 + tier
	if math.Abs(short.Confidence-0.75) > 1e-9 {
		t.Errorf("3-entry confidence = %f, want 0.75", short.Confidence)
	}
	if math.Abs(long.Confidence-0.85) > 1e-9 {
		t.Errorf("5-entry confidence = %f, want 0.85", long.Confidence)
	}
}

func TestProjectedTimestamp(t *testing.T) {
	p := New()
	ship := baseShip()
	ship.Heading = marine.Float64(180)
	got := p.Predict(ship, nil, 6)
	if got == nil {
		t.Fatal("expected prediction")
	}
	if want := t0.Add(6 * time.Hour); !got.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, want)
	}
}
