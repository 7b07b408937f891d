package engine

import "seawatch/internal/marine"

// MultiWriter fans rows out to several writers. Write errors are
// collected; the first one is returned after every writer has seen the
// row.
type MultiWriter struct {
	threats     []ThreatWriter
	formations  []FormationWriter
	predictions []PredictionWriter
	sightings   []SightingWriter
}

// NewMultiWriter composes writer lists per stream. Nil entries are
// skipped.
func NewMultiWriter(tw []ThreatWriter, fw []FormationWriter, pw []PredictionWriter, sw []SightingWriter) *MultiWriter {
	m := &MultiWriter{}
	for _, w := range tw {
		if w != nil {
			m.threats = append(m.threats, w)
		}
	}
	for _, w := range fw {
		if w != nil {
			m.formations = append(m.formations, w)
		}
	}
	for _, w := range pw {
		if w != nil {
			m.predictions = append(m.predictions, w)
		}
	}
	for _, w := range sw {
		if w != nil {
			m.sightings = append(m.sightings, w)
		}
	}
	return m
}

// WriteThreat forwards a threat row to every writer.
func (m *MultiWriter) WriteThreat(row marine.ThreatRow) error {
	var first error
	for _, w := range m.threats {
		if err := w.WriteThreat(row); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WriteThreats forwards a threat batch, using batch mode where available.
func (m *MultiWriter) WriteThreats(rows []marine.ThreatRow) error {
	var first error
	for _, w := range m.threats {
		var err error
		if bw, ok := w.(batchThreatWriter); ok {
			err = bw.WriteThreats(rows)
		} else {
			for _, r := range rows {
				if e := w.WriteThreat(r); e != nil && err == nil {
					err = e
				}
			}
		}
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WriteFormation forwards a formation row to every writer.
func (m *MultiWriter) WriteFormation(row marine.FormationRow) error {
	var first error
	for _, w := range m.formations {
		if err := w.WriteFormation(row); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WriteFormations forwards a formation batch.
func (m *MultiWriter) WriteFormations(rows []marine.FormationRow) error {
	var first error
	for _, w := range m.formations {
		var err error
		if bw, ok := w.(batchFormationWriter); ok {
			err = bw.WriteFormations(rows)
		} else {
			for _, r := range rows {
				if e := w.WriteFormation(r); e != nil && err == nil {
					err = e
				}
			}
		}
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WritePrediction forwards a prediction row to every writer.
func (m *MultiWriter) WritePrediction(row marine.PredictionRow) error {
	var first error
	for _, w := range m.predictions {
		if err := w.WritePrediction(row); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WritePredictions forwards a prediction batch.
func (m *MultiWriter) WritePredictions(rows []marine.PredictionRow) error {
	var first error
	for _, w := range m.predictions {
		var err error
		if bw, ok := w.(batchPredictionWriter); ok {
			err = bw.WritePredictions(rows)
		} else {
			for _, r := range rows {
				if e := w.WritePrediction(r); e != nil && err == nil {
					err = e
				}
			}
		}
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WriteSighting forwards a sighting row to every writer.
func (m *MultiWriter) WriteSighting(row marine.SightingRow) error {
	var first error
	for _, w := range m.sightings {
		if err := w.WriteSighting(row); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WriteSightings forwards a sighting batch.
func (m *MultiWriter) WriteSightings(rows []marine.SightingRow) error {
	var first error
	for _, w := range m.sightings {
		var err error
		if bw, ok := w.(batchSightingWriter); ok {
			err = bw.WriteSightings(rows)
		} else {
			for _, r := range rows {
				if e := w.WriteSighting(r); e != nil && err == nil {
					err = e
				}
			}
		}
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}
