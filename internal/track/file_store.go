package track

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"seawatch/internal/marine"
)

// FileStore persists the history mapping as a single JSON document.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the history mapping. A missing file is an empty store.
func (f *FileStore) Load() (map[string][]marine.PositionEntry, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string][]marine.PositionEntry{}, nil
		}
		return nil, fmt.Errorf("read track store: %w", err)
	}
	var out map[string][]marine.PositionEntry
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode track store: %w", err)
	}
	if out == nil {
		out = map[string][]marine.PositionEntry{}
	}
	return out, nil
}

// Save writes the history mapping atomically via a temp file rename.
func (f *FileStore) Save(data map[string][]marine.PositionEntry) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode track store: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("create track store dir: %w", err)
	}
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return fmt.Errorf("write track store: %w", err)
	}
	return os.Rename(tmp, f.Path)
}
