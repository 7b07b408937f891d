// Shared domain types for the maritime awareness engine.
package marine

import "time"

// ShipType classifies a detected vessel.
type ShipType string

const (
	ShipCarrier    ShipType = "carrier"
	ShipSubmarine  ShipType = "submarine"
	ShipDestroyer  ShipType = "destroyer"
	ShipCruiser    ShipType = "cruiser"
	ShipFrigate    ShipType = "frigate"
	ShipAmphibious ShipType = "amphibious"
	ShipSupply     ShipType = "supply"
	ShipPatrol     ShipType = "patrol"
	ShipUnknown    ShipType = "unknown"
)

// DetectedShip is one structured sighting produced upstream per refresh
// cycle. Heading and Velocity are nil when the source did not report them.
type DetectedShip struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Type      ShipType  `json:"type"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Heading   *float64  `json:"heading,omitempty"`
	Velocity  *float64  `json:"velocity,omitempty"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"ts"`
	Source    string    `json:"source"`
}

// PositionEntry is one retained history point for a tracked vessel.
type PositionEntry struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// Hotspot is a named geographic point of elevated strategic interest.
type Hotspot struct {
	Name string  `json:"name" yaml:"name"`
	Lat  float64 `json:"lat" yaml:"lat"`
	Lon  float64 `json:"lon" yaml:"lon"`
}

// ThreatLevel buckets a threat score.
type ThreatLevel string

const (
	LevelLow     ThreatLevel = "low"
	LevelMedium  ThreatLevel = "medium"
	LevelHigh    ThreatLevel = "high"
	LevelExtreme ThreatLevel = "extreme"
)

// ThreatAssessment is the per-cycle scoring result for one vessel.
// Reasoning holds one entry per contributing factor, in factor order.
type ThreatAssessment struct {
	VesselID  string      `json:"vessel_id"`
	Score     int         `json:"score"`
	Level     ThreatLevel `json:"level"`
	Reasoning []string    `json:"reasoning"`
}

// FormationType classifies a detected vessel cluster.
type FormationType string

const (
	FormationConvoy        FormationType = "convoy"
	FormationPatrolGroup   FormationType = "patrol_group"
	FormationCarrierGroup  FormationType = "carrier_group"
	FormationTaskForce     FormationType = "naval_task_force"
	FormationAmphibForce   FormationType = "amphibious_task_force"
)

// Formation is a connected cluster of same-country vessels.
type Formation struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        FormationType `json:"type"`
	Country     string        `json:"country"`
	MemberIDs   []string      `json:"member_ids"`
	CenterLat   float64       `json:"center_lat"`
	CenterLon   float64       `json:"center_lon"`
	RadiusKm    float64       `json:"radius_km"`
	AvgHeading  *float64      `json:"avg_heading,omitempty"`
	AvgVelocity *float64      `json:"avg_velocity,omitempty"`
}

// PredictedPosition is a projected future position with confidence.
type PredictedPosition struct {
	VesselID   string    `json:"vessel_id"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"ts"`
}

// Float64 returns a pointer to v. Convenience for optional fields.
func Float64(v float64) *float64 { return &v }
