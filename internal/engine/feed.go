package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"seawatch/internal/marine"
)

// FeedSource reads JSONL DetectedShip records and groups consecutive
// records sharing a timestamp into one refresh-cycle batch. The upstream
// collaborator stamps each cycle's records alike.
type FeedSource struct {
	dec     *json.Decoder
	pending *marine.DetectedShip
	closer  io.Closer
}

// NewFeedSource reads sightings from r.
func NewFeedSource(r io.Reader) *FeedSource {
	return &FeedSource{dec: json.NewDecoder(r)}
}

// OpenFeedFile opens a JSONL sighting feed.
func OpenFeedFile(path string) (*FeedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	src := NewFeedSource(f)
	src.closer = f
	return src, nil
}

// Next returns the next cycle batch, or io.EOF when the feed is drained.
func (s *FeedSource) Next() ([]marine.DetectedShip, error) {
	var batch []marine.DetectedShip
	if s.pending != nil {
		batch = append(batch, *s.pending)
		s.pending = nil
	}
	for {
		var ship marine.DetectedShip
		if err := s.dec.Decode(&ship); err != nil {
			if err == io.EOF {
				if len(batch) == 0 {
					return nil, io.EOF
				}
				return batch, nil
			}
			return nil, fmt.Errorf("decode sighting: %w", err)
		}
		if len(batch) > 0 && !ship.Timestamp.Equal(batch[0].Timestamp) {
			s.pending = &ship
			return batch, nil
		}
		batch = append(batch, ship)
	}
}

// Close releases the underlying file, if any.
func (s *FeedSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Replay feeds every batch from src through the engine. A speed >0
// reproduces the recorded inter-cycle gaps, scaled; speed <= 0 replays
// without artificial delay.
func Replay(ctx context.Context, src SightingSource, e *Engine, speed float64) error {
	var prev time.Time
	for {
		batch, err := src.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if len(batch) == 0 {
			continue
		}
		ts := batch[0].Timestamp
		if !prev.IsZero() && speed > 0 {
			diff := ts.Sub(prev)
			if speed != 1 {
				diff = time.Duration(float64(diff) / speed)
			}
			if diff > 0 {
				time.Sleep(diff)
			}
		}
		e.RunCycle(ctx, batch)
		prev = ts
	}
}
