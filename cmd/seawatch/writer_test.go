package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"seawatch/internal/config"
	"seawatch/internal/engine"
	"seawatch/internal/marine"
)

func TestNewSinksPrintOnly(t *testing.T) {
	t.Setenv("SEAWATCH_GREPTIME_ENDPOINT", "")
	s, err := newSinks(true, false, false, "")
	if err != nil {
		t.Fatalf("newSinks: %v", err)
	}
	defer s.cleanup()
	if _, ok := s.threat.(*engine.StdoutWriter); !ok {
		t.Fatalf("expected *engine.StdoutWriter, got %T", s.threat)
	}
	if s.sighting == nil {
		t.Fatalf("expected sighting writer in JSON mode")
	}
}

func TestNewSinksColor(t *testing.T) {
	t.Setenv("SEAWATCH_GREPTIME_ENDPOINT", "")
	s, err := newSinks(false, true, false, "")
	if err != nil {
		t.Fatalf("newSinks: %v", err)
	}
	defer s.cleanup()
	if _, ok := s.threat.(*engine.ColorStdoutWriter); !ok {
		t.Fatalf("expected *engine.ColorStdoutWriter, got %T", s.threat)
	}
	if s.sighting != nil {
		t.Fatalf("color board must not echo raw sightings")
	}
}

func TestNewSinksLogFile(t *testing.T) {
	t.Setenv("SEAWATCH_GREPTIME_ENDPOINT", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.log")

	s, err := newSinks(true, false, false, path)
	if err != nil {
		t.Fatalf("newSinks: %v", err)
	}
	if _, ok := s.threat.(*engine.MultiWriter); !ok {
		t.Fatalf("expected *engine.MultiWriter, got %T", s.threat)
	}

	row := marine.ThreatRow{ClusterID: "c1", VesselID: "v1", Score: 40,
		Level: string(marine.LevelMedium), Timestamp: time.Now()}
	if err := s.threat.WriteThreat(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	s.cleanup()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected log file to be non-empty")
	}
	if _, err := os.Stat(path + ".formations"); err != nil {
		t.Fatalf("stat formations failed: %v", err)
	}
}

func TestOpenTracksFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracks.json")
	cfg := config.Default()

	ts, persist, err := openTracks(cfg, path, "")
	if err != nil {
		t.Fatalf("openTracks: %v", err)
	}
	ts.Append("v1", marine.PositionEntry{Lat: 1, Lon: 2, Timestamp: time.Now()})
	if err := persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	ts2, _, err := openTracks(cfg, path, "")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := len(ts2.History("v1")); got != 1 {
		t.Fatalf("restored history = %d, want 1", got)
	}
}

func TestOpenTracksBadgerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()

	ts, persist, err := openTracks(cfg, "", dir)
	if err != nil {
		t.Fatalf("openTracks: %v", err)
	}
	ts.Append("v1", marine.PositionEntry{Lat: 1, Lon: 2, Timestamp: time.Now()})
	if err := persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	ts2, persist2, err := openTracks(cfg, "", dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer persist2()
	if got := len(ts2.History("v1")); got != 1 {
		t.Fatalf("restored history = %d, want 1", got)
	}
}
