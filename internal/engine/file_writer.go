package engine

import (
	"encoding/json"
	"os"

	"seawatch/internal/marine"
)

// FileWriter writes threat, formation, prediction, and sighting rows to
// JSONL files. Side-file paths may be empty to skip those streams.
type FileWriter struct {
	threatFile *os.File
	formFile   *os.File
	predFile   *os.File
	threatEnc  *json.Encoder
	formEnc    *json.Encoder
	predEnc    *json.Encoder
}

// NewFileWriter creates a FileWriter. formationPath and predictionPath
// may be empty to skip those logs.
func NewFileWriter(threatPath, formationPath, predictionPath string) (*FileWriter, error) {
	tf, err := os.Create(threatPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{threatFile: tf, threatEnc: json.NewEncoder(tf)}
	if formationPath != "" {
		f, err := os.Create(formationPath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		fw.formFile = f
		fw.formEnc = json.NewEncoder(f)
	}
	if predictionPath != "" {
		f, err := os.Create(predictionPath)
		if err != nil {
			if fw.formFile != nil {
				fw.formFile.Close()
			}
			tf.Close()
			return nil, err
		}
		fw.predFile = f
		fw.predEnc = json.NewEncoder(f)
	}
	return fw, nil
}

// WriteThreat logs a single threat row.
func (f *FileWriter) WriteThreat(row marine.ThreatRow) error {
	return f.threatEnc.Encode(row)
}

// WriteThreats logs multiple threat rows.
func (f *FileWriter) WriteThreats(rows []marine.ThreatRow) error {
	for _, r := range rows {
		if err := f.WriteThreat(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteFormation logs a single formation row, if enabled.
func (f *FileWriter) WriteFormation(row marine.FormationRow) error {
	if f.formEnc == nil {
		return nil
	}
	return f.formEnc.Encode(row)
}

// WriteFormations logs multiple formation rows.
func (f *FileWriter) WriteFormations(rows []marine.FormationRow) error {
	for _, r := range rows {
		if err := f.WriteFormation(r); err != nil {
			return err
		}
	}
	return nil
}

// WritePrediction logs a single prediction row, if enabled.
func (f *FileWriter) WritePrediction(row marine.PredictionRow) error {
	if f.predEnc == nil {
		return nil
	}
	return f.predEnc.Encode(row)
}

// WritePredictions logs multiple prediction rows.
func (f *FileWriter) WritePredictions(rows []marine.PredictionRow) error {
	for _, r := range rows {
		if err := f.WritePrediction(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying files.
func (f *FileWriter) Close() error {
	var err error
	for _, file := range []*os.File{f.threatFile, f.formFile, f.predFile} {
		if file == nil {
			continue
		}
		if e := file.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
