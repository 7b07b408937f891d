package formation

import (
	"math"
	"testing"
	"time"

	"seawatch/internal/geo"
	"seawatch/internal/marine"
)

func vessel(id, country string, typ marine.ShipType, lat, lon float64) marine.DetectedShip {
	return marine.DetectedShip{
		ID:        id,
		Name:      id,
		Country:   country,
		Type:      typ,
		Lat:       lat,
		Lon:       lon,
		Timestamp: time.Now().UTC(),
	}
}

func TestTwoShipsFormConvoy(t *testing.T) {
	d := NewDetector(100)
	// ~40 km apart on the equator.
	ships := []marine.DetectedShip{
		vessel("a", "CN", marine.ShipFrigate, 0, 114.0),
		vessel("b", "CN", marine.ShipSupply, 0, 114.36),
	}
	got := d.Detect(ships)
	if len(got) != 1 {
		t.Fatalf("formations = %d, want 1", len(got))
	}
	f := got[0]
	if f.Type != marine.FormationConvoy {
		t.Errorf("type = %s, want convoy", f.Type)
	}
	if len(f.MemberIDs) != 2 {
		t.Errorf("members = %d, want 2", len(f.MemberIDs))
	}
	if f.ID == "" {
		t.Error("formation id empty")
	}
}

func TestCrossCountryNeverClusters(t *testing.T) {
	d := NewDetector(100)
	ships := []marine.DetectedShip{
		vessel("cn1", "CN", marine.ShipDestroyer, 20.0, 118.0),
		vessel("us1", "US", marine.ShipDestroyer, 20.01, 118.01),
		vessel("cn2", "CN", marine.ShipFrigate, 20.02, 118.02),
		vessel("us2", "US", marine.ShipFrigate, 20.03, 118.03),
	}
	got := d.Detect(ships)
	for _, f := range got {
		for _, id := range f.MemberIDs {
			country := id[:2]
			if country != "cn" && country != "us" {
				t.Fatalf("unexpected member id %s", id)
			}
			if (country == "cn") != (f.Country == "CN") {
				t.Errorf("formation %s (%s) contains %s", f.ID, f.Country, id)
			}
		}
	}
	if len(got) != 2 {
		t.Errorf("formations = %d, want 2 single-country groups", len(got))
	}
}

func TestTransitiveChainIsOneFormation(t *testing.T) {
	d := NewDetector(100)
	// a-b and b-c within 100 km; a-c beyond it.
	ships := []marine.DetectedShip{
		vessel("a", "RU", marine.ShipCruiser, 0, 30.0),
		vessel("b", "RU", marine.ShipDestroyer, 0, 30.8),
		vessel("c", "RU", marine.ShipFrigate, 0, 31.6),
	}
	if ac := geo.HaversineKm(0, 30.0, 0, 31.6); ac <= 100 {
		t.Fatalf("test geometry broken: endpoints only %f km apart", ac)
	}
	got := d.Detect(ships)
	if len(got) != 1 {
		t.Fatalf("formations = %d, want 1 transitive chain", len(got))
	}
	if len(got[0].MemberIDs) != 3 {
		t.Errorf("members = %d, want 3", len(got[0].MemberIDs))
	}
}

func TestSingletonsDiscarded(t *testing.T) {
	d := NewDetector(100)
	ships := []marine.DetectedShip{
		vessel("lone", "FR", marine.ShipFrigate, 43.0, 5.0),
		vessel("far", "FR", marine.ShipFrigate, 35.0, 25.0),
	}
	got := d.Detect(ships)
	if len(got) != 0 {
		t.Errorf("formations = %d, want 0 (no singleton formations)", len(got))
	}
}

func TestRadiusIsMaxMemberDistance(t *testing.T) {
	d := NewDetector(100)
	ships := []marine.DetectedShip{
		vessel("a", "CN", marine.ShipFrigate, 0, 114.0),
		vessel("b", "CN", marine.ShipFrigate, 0, 114.5),
	}
	got := d.Detect(ships)
	if len(got) != 1 {
		t.Fatalf("formations = %d, want 1", len(got))
	}
	f := got[0]
	var want float64
	for _, s := range ships {
		if r := geo.HaversineKm(f.CenterLat, f.CenterLon, s.Lat, s.Lon); r > want {
			want = r
		}
	}
	if math.Abs(f.RadiusKm-want) > 1e-9 {
		t.Errorf("radius = %f, want %f", f.RadiusKm, want)
	}
	if f.RadiusKm <= 0 {
		t.Errorf("radius = %f, want > 0", f.RadiusKm)
	}
}

func TestClassificationOrder(t *testing.T) {
	cases := []struct {
		name  string
		types []marine.ShipType
		want  marine.FormationType
	}{
		{"carrier with escorts", []marine.ShipType{marine.ShipCarrier, marine.ShipDestroyer, marine.ShipFrigate}, marine.FormationCarrierGroup},
		{"carrier pair stays convoy", []marine.ShipType{marine.ShipCarrier, marine.ShipDestroyer}, marine.FormationConvoy},
		{"five ships", []marine.ShipType{marine.ShipDestroyer, marine.ShipDestroyer, marine.ShipFrigate, marine.ShipFrigate, marine.ShipSupply}, marine.FormationTaskForce},
		{"amphibious trio", []marine.ShipType{marine.ShipAmphibious, marine.ShipFrigate, marine.ShipSupply}, marine.FormationAmphibForce},
		{"three smalls", []marine.ShipType{marine.ShipPatrol, marine.ShipPatrol, marine.ShipPatrol}, marine.FormationPatrolGroup},
		{"pair", []marine.ShipType{marine.ShipFrigate, marine.ShipSupply}, marine.FormationConvoy},
		{"carrier in five-ship group", []marine.ShipType{marine.ShipCarrier, marine.ShipDestroyer, marine.ShipDestroyer, marine.ShipFrigate, marine.ShipSupply}, marine.FormationCarrierGroup},
	}
	d := NewDetector(100)
	for _, c := range cases {
		var ships []marine.DetectedShip
		for i, typ := range c.types {
			ships = append(ships, vessel(string(rune('a'+i)), "CN", typ, 0, 114.0+float64(i)*0.05))
		}
		got := d.Detect(ships)
		if len(got) != 1 {
			t.Fatalf("%s: formations = %d, want 1", c.name, len(got))
		}
		if got[0].Type != c.want {
			t.Errorf("%s: type = %s, want %s", c.name, got[0].Type, c.want)
		}
	}
}

func TestAvgHeadingWraparound(t *testing.T) {
	d := NewDetector(100)
	a := vessel("a", "CN", marine.ShipFrigate, 0, 114.0)
	a.Heading = marine.Float64(350)
	b := vessel("b", "CN", marine.ShipFrigate, 0, 114.1)
	b.Heading = marine.Float64(10)
	got := d.Detect([]marine.DetectedShip{a, b})
	if len(got) != 1 {
		t.Fatalf("formations = %d, want 1", len(got))
	}
	h := got[0].AvgHeading
	if h == nil {
		t.Fatal("avg heading nil")
	}
	// Circular mean of 350 and 10 is 0, not 180.
	diff := math.Min(*h, 360-*h)
	if diff > 1 {
		t.Errorf("avg heading = %f, want ~0/360", *h)
	}
}

func TestAveragesUndefinedWithoutReports(t *testing.T) {
	d := NewDetector(100)
	got := d.Detect([]marine.DetectedShip{
		vessel("a", "CN", marine.ShipFrigate, 0, 114.0),
		vessel("b", "CN", marine.ShipFrigate, 0, 114.1),
	})
	if len(got) != 1 {
		t.Fatalf("formations = %d, want 1", len(got))
	}
	if got[0].AvgHeading != nil || got[0].AvgVelocity != nil {
		t.Errorf("averages should be nil without reports: %+v", got[0])
	}
}

func TestAvgVelocityIgnoresSilentMembers(t *testing.T) {
	d := NewDetector(100)
	a := vessel("a", "CN", marine.ShipFrigate, 0, 114.0)
	a.Velocity = marine.Float64(10)
	b := vessel("b", "CN", marine.ShipFrigate, 0, 114.1)
	b.Velocity = marine.Float64(20)
	c := vessel("c", "CN", marine.ShipFrigate, 0, 114.2)
	got := d.Detect([]marine.DetectedShip{a, b, c})
	if len(got) != 1 {
		t.Fatalf("formations = %d, want 1", len(got))
	}
	v := got[0].AvgVelocity
	if v == nil || math.Abs(*v-15) > 1e-9 {
		t.Errorf("avg velocity = %v, want 15", v)
	}
}
