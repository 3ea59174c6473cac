// Package persistence provides the durable stores for wizard snapshots.
// Both implementations share last-writer-wins semantics: concurrent
// processes over the same storage are not locked against each other, and a
// reader only observes another writer's state after it re-reads.
package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/domain/wizard"
)

// StorageKey is the document name the browser build used in localStorage;
// the file store keeps it as the filename for drop-in compatibility.
const StorageKey = "torra-onboarding"

// envelope matches the persisted shape: {"state": {...}}.
type envelope struct {
	State *wizard.Snapshot `json:"state"`
}

// FileStore persists snapshots as a single JSON document on disk.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a file store rooted at dir. The directory is created
// on demand.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{
		path:   filepath.Join(dir, StorageKey+".json"),
		logger: logger,
	}, nil
}

// Load reads the persisted snapshot. A missing file reports ok=false; a
// corrupt document is an error so the wizard can fall back to defaults.
func (fs *FileStore) Load() (*wizard.Snapshot, bool, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false, fmt.Errorf("parse snapshot: %w", err)
	}
	if env.State == nil {
		return nil, false, fmt.Errorf("snapshot envelope missing state")
	}
	return env.State, true, nil
}

// Save writes the snapshot atomically (temp file + rename) so a crashed
// write never leaves a half-document behind.
func (fs *FileStore) Save(snap *wizard.Snapshot) error {
	data, err := json.Marshal(envelope{State: snap})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
