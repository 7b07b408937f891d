// Per-cycle orchestration of the maritime awareness engine.
package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"seawatch/internal/config"
	"seawatch/internal/formation"
	"seawatch/internal/logging"
	"seawatch/internal/marine"
	"seawatch/internal/predict"
	"seawatch/internal/threat"
	"seawatch/internal/track"
)

// DefaultHorizonHours is the prediction lookahead per cycle.
const DefaultHorizonHours = 24

// SightingSource yields one batch of sightings per refresh cycle.
// It returns io.EOF when the source is exhausted.
type SightingSource interface {
	Next() ([]marine.DetectedShip, error)
}

// CycleResult carries everything derived from one refresh cycle. Derived
// entities are recomputed from scratch each cycle; only the track store
// is durable.
type CycleResult struct {
	Sightings   []marine.DetectedShip
	Assessments []marine.ThreatAssessment
	Formations  []marine.Formation
	// Predictions maps vessel id to its projection; vessels with
	// nothing to extrapolate from are present with a nil value.
	Predictions map[string]*marine.PredictedPosition
	Timestamp   time.Time
}

// Engine wires the track store, scorer, detector, and predictor into a
// per-cycle pipeline with a writer fan-out. Cycles are serialized; the
// scheduler must not overlap them.
type Engine struct {
	mu sync.Mutex

	cfg       *config.EngineConfig
	clusterID string
	tracks    *track.TrackStore
	scorer    *threat.Scorer
	detector  *formation.Detector
	predictor *predict.Predictor

	threatWriter     ThreatWriter
	formationWriter  FormationWriter
	predictionWriter PredictionWriter
	sightingWriter   SightingWriter

	horizonHours float64
	now          func() time.Time

	last CycleResult
}

// New builds an engine. Any writer may be nil to skip that stream.
func New(cfg *config.EngineConfig, tracks *track.TrackStore,
	tw ThreatWriter, fw FormationWriter, pw PredictionWriter, sw SightingWriter) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if tracks == nil {
		tracks = track.NewWithLimit(cfg.Track.MaxEntries)
	}
	return &Engine{
		cfg:              cfg,
		clusterID:        cfg.ClusterID,
		tracks:           tracks,
		scorer:           threat.NewScorer(cfg),
		detector:         formation.NewDetector(cfg.FormationProximityKm),
		predictor:        predict.New(),
		threatWriter:     tw,
		formationWriter:  fw,
		predictionWriter: pw,
		sightingWriter:   sw,
		horizonHours:     DefaultHorizonHours,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// SetHorizon overrides the prediction lookahead in hours.
func (e *Engine) SetHorizon(hours float64) {
	if hours >= 0 {
		e.horizonHours = hours
	}
}

// Tracks exposes the underlying track store for persistence calls. The
// engine itself never loads or saves.
func (e *Engine) Tracks() *track.TrackStore { return e.tracks }

// Run pulls batches from src on a ticker until the context is done or
// the source is exhausted.
func (e *Engine) Run(ctx context.Context, src SightingSource, tick time.Duration) error {
	log := logging.FromContext(ctx)
	log.Info("starting engine", "tick_interval", tick, "cluster_id", e.clusterID)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ships, err := src.Next()
			if err != nil {
				if errors.Is(err, io.EOF) {
					log.Info("sighting source exhausted")
					return nil
				}
				return err
			}
			e.RunCycle(ctx, ships)
		case <-ctx.Done():
			log.Info("stopping engine")
			return nil
		}
	}
}

// RunCycle performs one refresh cycle: record the sightings, detect
// formations, assess every vessel, project every vessel, and emit rows.
func (e *Engine) RunCycle(ctx context.Context, ships []marine.DetectedShip) CycleResult {
	log := logging.FromContext(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	for _, s := range ships {
		e.tracks.AppendSighting(s)
	}
	e.tracks.Cleanup(now, e.cfg.Track.MaxAgeDays)

	formations := e.detector.Detect(ships)
	members := make(map[string]bool)
	for _, f := range formations {
		for _, id := range f.MemberIDs {
			members[id] = true
		}
	}

	res := CycleResult{
		Sightings:   ships,
		Formations:  formations,
		Predictions: make(map[string]*marine.PredictedPosition, len(ships)),
		Timestamp:   now,
	}
	for _, s := range ships {
		res.Assessments = append(res.Assessments, e.scorer.Assess(s, e.cfg.Hotspots, members[s.ID]))
		res.Predictions[s.ID] = e.predictor.Predict(s, e.tracks.History(s.ID), e.horizonHours)
	}

	e.emit(log, res)
	e.last = res
	return res
}

// Last returns the most recent cycle result.
func (e *Engine) Last() CycleResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// emit fans the cycle's rows out to the configured writers, preferring
// batch mode where a writer supports it.
func (e *Engine) emit(log *slog.Logger, res CycleResult) {
	if e.sightingWriter != nil {
		rows := make([]marine.SightingRow, 0, len(res.Sightings))
		for _, s := range res.Sightings {
			rows = append(rows, marine.SightingRow{
				ClusterID: e.clusterID,
				VesselID:  s.ID,
				Name:      s.Name,
				Country:   s.Country,
				Type:      string(s.Type),
				Lat:       s.Lat,
				Lon:       s.Lon,
				Location:  s.Location,
				Source:    s.Source,
				Timestamp: s.Timestamp,
			})
		}
		if bw, ok := e.sightingWriter.(batchSightingWriter); ok {
			if err := bw.WriteSightings(rows); err != nil {
				log.Error("sighting batch write failed", "err", err)
			}
		} else {
			for _, r := range rows {
				if err := e.sightingWriter.WriteSighting(r); err != nil {
					log.Error("sighting write failed", "vessel_id", r.VesselID, "err", err)
				}
			}
		}
	}

	if e.threatWriter != nil {
		rows := make([]marine.ThreatRow, 0, len(res.Assessments))
		for _, a := range res.Assessments {
			rows = append(rows, marine.ThreatRow{
				ClusterID: e.clusterID,
				VesselID:  a.VesselID,
				Score:     a.Score,
				Level:     string(a.Level),
				Reasoning: a.Reasoning,
				Timestamp: res.Timestamp,
			})
		}
		if bw, ok := e.threatWriter.(batchThreatWriter); ok {
			if err := bw.WriteThreats(rows); err != nil {
				log.Error("threat batch write failed", "err", err)
			}
		} else {
			for _, r := range rows {
				if err := e.threatWriter.WriteThreat(r); err != nil {
					log.Error("threat write failed", "vessel_id", r.VesselID, "err", err)
				}
			}
		}
	}

	if e.formationWriter != nil {
		rows := make([]marine.FormationRow, 0, len(res.Formations))
		for _, f := range res.Formations {
			rows = append(rows, marine.FormationRow{
				ClusterID:   e.clusterID,
				FormationID: f.ID,
				Type:        string(f.Type),
				Country:     f.Country,
				MemberIDs:   f.MemberIDs,
				CenterLat:   f.CenterLat,
				CenterLon:   f.CenterLon,
				RadiusKm:    f.RadiusKm,
				Timestamp:   res.Timestamp,
			})
		}
		if bw, ok := e.formationWriter.(batchFormationWriter); ok {
			if err := bw.WriteFormations(rows); err != nil {
				log.Error("formation batch write failed", "err", err)
			}
		} else {
			for _, r := range rows {
				if err := e.formationWriter.WriteFormation(r); err != nil {
					log.Error("formation write failed", "formation_id", r.FormationID, "err", err)
				}
			}
		}
	}

	if e.predictionWriter != nil {
		var rows []marine.PredictionRow
		for _, p := range res.Predictions {
			if p == nil {
				continue
			}
			rows = append(rows, marine.PredictionRow{
				ClusterID:  e.clusterID,
				VesselID:   p.VesselID,
				Lat:        p.Lat,
				Lon:        p.Lon,
				Confidence: p.Confidence,
				Timestamp:  p.Timestamp,
			})
		}
		if bw, ok := e.predictionWriter.(batchPredictionWriter); ok {
			if err := bw.WritePredictions(rows); err != nil {
				log.Error("prediction batch write failed", "err", err)
			}
		} else {
			for _, r := range rows {
				if err := e.predictionWriter.WritePrediction(r); err != nil {
					log.Error("prediction write failed", "vessel_id", r.VesselID, "err", err)
				}
			}
		}
	}
}
