// Package cas persists per-task build info as a versioned JSON document.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultPath is the build info store file, relative to the project root.
const DefaultPath = ".extbuild/state.json"

// documentVersion guards against reading state written by an incompatible
// release. A mismatch discards the stored state, which only costs a rebuild.
const documentVersion = 1

var _ ports.BuildInfoStore = (*Store)(nil)

// document is the on-disk layout of the store.
type document struct {
	Version int                         `json:"version"`
	Tasks   map[string]domain.BuildInfo `json:"tasks"`
}

// Store implements ports.BuildInfoStore over a single JSON file. Writes go
// through a temp file and rename, so a crashed build never leaves a
// half-written document behind.
type Store struct {
	path string

	mu  sync.RWMutex
	doc document
}

// NewStore creates a new BuildInfoStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path: filepath.Clean(path),
		doc:  document{Version: documentVersion, Tasks: make(map[string]domain.BuildInfo)},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves the build info for a given task name.
func (s *Store) Get(taskName string) (*domain.BuildInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.doc.Tasks[taskName]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

// Put stores the build info and flushes the document to disk.
func (s *Store) Put(info domain.BuildInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Tasks[info.TaskName] = info
	return s.flush()
}

func (s *Store) load() error {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read build info store")
	}
	if len(data) == 0 {
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return zerr.Wrap(err, "failed to unmarshal build info store")
	}
	if doc.Version != documentVersion || doc.Tasks == nil {
		return nil
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// flush writes the document atomically. Callers must hold mu.
func (s *Store) flush() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for build info store")
	}

	tmp, err := os.CreateTemp(dir, "state-*.json")
	if err != nil {
		return zerr.Wrap(err, "failed to create build info temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone already after a successful rename

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.doc); err != nil {
		tmp.Close() //nolint:errcheck // Encode error takes precedence
		return zerr.Wrap(err, "failed to encode build info store")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close build info temp file")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.Wrap(err, "failed to replace build info store")
	}
	return nil
}
