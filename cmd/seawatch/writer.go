package main

import (
	"os"

	"seawatch/internal/engine"
)

// sinks bundles one writer per output stream plus a cleanup hook.
type sinks struct {
	threat     engine.ThreatWriter
	formation  engine.FormationWriter
	prediction engine.PredictionWriter
	sighting   engine.SightingWriter
	cleanup    func()
}

// newSinks sets up output writers based on flags and env vars. A
// non-empty SEAWATCH_GREPTIME_ENDPOINT selects GreptimeDB ingestion
// unless printOnly forces STDOUT. A log file adds a JSONL side channel
// via the multi writer.
func newSinks(printOnly, colorOut, tuiOut bool, logFile string) (*sinks, error) {
	s, err := baseSinks(printOnly, colorOut, tuiOut)
	if err != nil {
		return nil, err
	}
	if logFile == "" {
		return s, nil
	}

	fw, err := engine.NewFileWriter(logFile, logFile+".formations", logFile+".predictions")
	if err != nil {
		return nil, err
	}
	prev := s.cleanup
	mw := engine.NewMultiWriter(
		[]engine.ThreatWriter{s.threat, fw},
		[]engine.FormationWriter{s.formation, fw},
		[]engine.PredictionWriter{s.prediction, fw},
		[]engine.SightingWriter{s.sighting},
	)
	return &sinks{
		threat:     mw,
		formation:  mw,
		prediction: mw,
		sighting:   mw,
		cleanup: func() {
			fw.Close()
			prev()
		},
	}, nil
}

// baseSinks chooses the primary writer: TUI, GreptimeDB, or STDOUT.
func baseSinks(printOnly, colorOut, tuiOut bool) (*sinks, error) {
	if tuiOut {
		w := engine.NewTUIWriter()
		return &sinks{threat: w, formation: w, prediction: w, sighting: w,
			cleanup: func() { w.Close() }}, nil
	}

	endpoint := os.Getenv("SEAWATCH_GREPTIME_ENDPOINT")
	if printOnly || endpoint == "" {
		if colorOut {
			w := engine.NewColorStdoutWriter()
			return &sinks{threat: w, formation: w, prediction: w,
				cleanup: func() {}}, nil
		}
		w := &engine.StdoutWriter{}
		return &sinks{threat: w, formation: w, prediction: w, sighting: w,
			cleanup: func() {}}, nil
	}

	database := os.Getenv("SEAWATCH_GREPTIME_DB")
	if database == "" {
		database = "public"
	}
	w, err := engine.NewGreptimeDBWriter(endpoint, database)
	if err != nil {
		return nil, err
	}
	return &sinks{threat: w, formation: w, prediction: w, sighting: w,
		cleanup: func() {}}, nil
}
