// Row structs with greptime tags
package marine

import (
	"os"
	"time"
)

// tableName resolves a table name with an environment override.
func tableName(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}

// ThreatTableName holds the table used for threat assessment rows.
// Defaults to "vessel_threats", overridable via SEAWATCH_THREAT_TABLE.
var ThreatTableName = tableName("SEAWATCH_THREAT_TABLE", "vessel_threats")

// FormationTableName holds the table used for formation rows.
var FormationTableName = tableName("SEAWATCH_FORMATION_TABLE", "vessel_formations")

// PredictionTableName holds the table used for predicted position rows.
var PredictionTableName = tableName("SEAWATCH_PREDICTION_TABLE", "vessel_predictions")

// SightingTableName holds the table used for raw sighting rows.
var SightingTableName = tableName("SEAWATCH_SIGHTING_TABLE", "vessel_sightings")

// SightingRow represents one sighting record for GreptimeDB.
type SightingRow struct {
	ClusterID string    `json:"cluster_id"` // TAG
	VesselID  string    `json:"vessel_id"`  // TAG
	Name      string    `json:"name"`       // FIELD
	Country   string    `json:"country"`    // FIELD
	Type      string    `json:"type"`       // FIELD
	Lat       float64   `json:"lat"`        // FIELD
	Lon       float64   `json:"lon"`        // FIELD
	Location  string    `json:"location"`   // FIELD
	Source    string    `json:"source"`     // FIELD
	Timestamp time.Time `json:"ts"`         // TIME INDEX
}

func (SightingRow) TableName() string { return SightingTableName }

// ThreatRow represents one threat assessment record for GreptimeDB.
type ThreatRow struct {
	ClusterID string    `json:"cluster_id"` // TAG
	VesselID  string    `json:"vessel_id"`  // TAG
	Score     int       `json:"score"`      // FIELD
	Level     string    `json:"level"`      // FIELD
	Reasoning []string  `json:"reasoning"`  // FIELD (JSON)
	Timestamp time.Time `json:"ts"`         // TIME INDEX
}

func (ThreatRow) TableName() string { return ThreatTableName }

// FormationRow represents one detected formation record for GreptimeDB.
type FormationRow struct {
	ClusterID   string    `json:"cluster_id"`   // TAG
	FormationID string    `json:"formation_id"` // TAG
	Type        string    `json:"type"`         // FIELD
	Country     string    `json:"country"`      // FIELD
	MemberIDs   []string  `json:"member_ids"`   // FIELD (JSON)
	CenterLat   float64   `json:"center_lat"`   // FIELD
	CenterLon   float64   `json:"center_lon"`   // FIELD
	RadiusKm    float64   `json:"radius_km"`    // FIELD
	Timestamp   time.Time `json:"ts"`           // TIME INDEX
}

func (FormationRow) TableName() string { return FormationTableName }

// PredictionRow represents one predicted position record for GreptimeDB.
type PredictionRow struct {
	ClusterID  string    `json:"cluster_id"` // TAG
	VesselID   string    `json:"vessel_id"`  // TAG
	Lat        float64   `json:"lat"`        // FIELD
	Lon        float64   `json:"lon"`        // FIELD
	Confidence float64   `json:"confidence"` // FIELD
	Timestamp  time.Time `json:"ts"`         // TIME INDEX
}

func (PredictionRow) TableName() string { return PredictionTableName }
