package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lalazar/internal/domains/room/model"
)

// fallbackFile is the on-disk shape of the room fallback store. The single
// fixed key mirrors what the dashboard reads when the primary store is down.
type fallbackFile struct {
	RoomsData []model.Room `json:"roomsData"`
}

// fallbackStore persists the last known-good room list to a local JSON file
// so room screens stay readable through a database outage.
type fallbackStore struct {
	path string
	mu   sync.Mutex
}

func newFallbackStore(path string) *fallbackStore {
	return &fallbackStore{path: path}
}

func (f *fallbackStore) Load() ([]model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Room{}, nil
		}

		return nil, fmt.Errorf("failed to read room fallback file: %w", err)
	}

	var file fallbackFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode room fallback file: %w", err)
	}

	if file.RoomsData == nil {
		file.RoomsData = []model.Room{}
	}

	return file.RoomsData, nil
}

func (f *fallbackStore) Save(rooms []model.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(fallbackFile{RoomsData: rooms}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode room fallback file: %w", err)
	}

	// Write-then-rename so a crash mid-write never leaves a truncated file.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write room fallback file: %w", err)
	}

	if err := os.Rename(tmp, filepath.Clean(f.path)); err != nil {
		return fmt.Errorf("failed to replace room fallback file: %w", err)
	}

	return nil
}
