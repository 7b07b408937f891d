package main

import (
	"fmt"

	"seawatch/internal/config"
	"seawatch/internal/track"
)

// openTracks builds the track store, restoring persisted history from a
// JSON file or a Badger directory when one is configured. The returned
// persist func saves current history and releases the backing store.
func openTracks(cfg *config.EngineConfig, filePath, badgerDir string) (*track.TrackStore, func() error, error) {
	ts := track.NewWithLimit(cfg.Track.MaxEntries)

	switch {
	case badgerDir != "":
		store, err := track.OpenBadgerStore(badgerDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open track db: %w", err)
		}
		if err := ts.LoadFrom(store); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("load tracks: %w", err)
		}
		persist := func() error {
			err := ts.SaveTo(store)
			if cerr := store.Close(); err == nil {
				err = cerr
			}
			return err
		}
		return ts, persist, nil

	case filePath != "":
		store := track.NewFileStore(filePath)
		if err := ts.LoadFrom(store); err != nil {
			return nil, nil, fmt.Errorf("load tracks: %w", err)
		}
		return ts, func() error { return ts.SaveTo(store) }, nil

	default:
		return ts, func() error { return nil }, nil
	}
}
