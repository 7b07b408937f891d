package engine

import "seawatch/internal/marine"

// ThreatWriter handles threat assessment rows.
type ThreatWriter interface {
	WriteThreat(marine.ThreatRow) error
}

// Optional: writers may support batch mode for threat rows.
type batchThreatWriter interface {
	WriteThreats([]marine.ThreatRow) error
}

// FormationWriter handles formation rows.
type FormationWriter interface {
	WriteFormation(marine.FormationRow) error
}

type batchFormationWriter interface {
	WriteFormations([]marine.FormationRow) error
}

// PredictionWriter handles predicted position rows.
type PredictionWriter interface {
	WritePrediction(marine.PredictionRow) error
}

type batchPredictionWriter interface {
	WritePredictions([]marine.PredictionRow) error
}

// SightingWriter handles raw sighting rows.
type SightingWriter interface {
	WriteSighting(marine.SightingRow) error
}

type batchSightingWriter interface {
	WriteSightings([]marine.SightingRow) error
}
