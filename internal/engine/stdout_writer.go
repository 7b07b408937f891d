// Writer implementation printing rows to STDOUT
package engine

import (
	"encoding/json"
	"fmt"

	"seawatch/internal/marine"
)

// StdoutWriter prints rows as JSON lines to STDOUT.
type StdoutWriter struct{}

// WriteThreat outputs a single threat row.
func (w *StdoutWriter) WriteThreat(row marine.ThreatRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteThreats outputs multiple threat rows.
func (w *StdoutWriter) WriteThreats(rows []marine.ThreatRow) error {
	for _, r := range rows {
		_ = w.WriteThreat(r)
	}
	return nil
}

// WriteFormation outputs a single formation row.
func (w *StdoutWriter) WriteFormation(row marine.FormationRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteFormations outputs multiple formation rows.
func (w *StdoutWriter) WriteFormations(rows []marine.FormationRow) error {
	for _, r := range rows {
		_ = w.WriteFormation(r)
	}
	return nil
}

// WritePrediction outputs a single prediction row.
func (w *StdoutWriter) WritePrediction(row marine.PredictionRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WritePredictions outputs multiple prediction rows.
func (w *StdoutWriter) WritePredictions(rows []marine.PredictionRow) error {
	for _, r := range rows {
		_ = w.WritePrediction(r)
	}
	return nil
}

// WriteSighting outputs a single sighting row.
func (w *StdoutWriter) WriteSighting(row marine.SightingRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteSightings outputs multiple sighting rows.
func (w *StdoutWriter) WriteSightings(rows []marine.SightingRow) error {
	for _, r := range rows {
		_ = w.WriteSighting(r)
	}
	return nil
}
