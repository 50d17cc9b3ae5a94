// Package transcache persists the transcript collection to a single JSON
// file between runs. The file is read once at startup and rewritten in full
// on every transcript mutation; unreadable data is discarded rather than
// treated as a startup failure.
package transcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"

	"vidnote/client/models"
)

// File is a durable mirror of the transcript collection. All methods are
// safe for use from a single owner; serialization across callers is the
// store's job.
type File struct {
	path string
	lock *flock.Flock
	log  *logrus.Logger
}

// fileData is the on-disk shape.
type fileData struct {
	Transcripts []models.VideoTranscript `json:"transcripts"`
}

// Open creates or attaches to the cache file at path. The parent directory
// is created if needed and an advisory lock is taken so two processes
// sharing a cache directory cannot interleave writes.
func Open(path string, log *logrus.Logger) (*File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock cache file: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("cache file %s is locked by another process", path)
	}

	return &File{path: path, lock: lock, log: log}, nil
}

// Load reads the persisted transcript collection. A missing file yields an
// empty collection; a corrupt file is logged, removed, and likewise treated
// as empty.
func (f *File) Load() []models.VideoTranscript {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.log.WithFields(logrus.Fields{
				"operation": "transcache.load",
				"path":      f.path,
			}).WithError(err).Warn("Could not read transcript cache")
		}
		return nil
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		f.log.WithFields(logrus.Fields{
			"operation": "transcache.load",
			"path":      f.path,
		}).WithError(err).Warn("Discarding corrupt transcript cache")
		os.Remove(f.path)
		return nil
	}
	return data.Transcripts
}

// Save rewrites the cache file with the full transcript collection. The
// write goes through a temp file and a rename so the file is never left
// partially written. Entries are stored sorted by video id so successive
// saves of the same collection produce identical files.
func (f *File) Save(transcripts []models.VideoTranscript) error {
	sorted := make([]models.VideoTranscript, len(transcripts))
	copy(sorted, transcripts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].VideoID < sorted[j].VideoID })

	encoded, err := json.MarshalIndent(fileData{Transcripts: sorted}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transcript cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".transcripts-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write transcript cache: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync transcript cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace transcript cache: %w", err)
	}
	return nil
}

// Close releases the advisory lock.
func (f *File) Close() error {
	return f.lock.Unlock()
}
