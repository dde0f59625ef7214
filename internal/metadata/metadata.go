// Package metadata manages the _meta.json sidecar files that pipeline
// folders carry alongside their working files.
//
// A sidecar maps file names to free-form production notes: the comment a
// user attached to a save, the version snapshot a working file came from,
// and a short history of lifecycle events. Sidecars are advisory; a
// missing or corrupt one reads as empty and never blocks a pipeline
// operation, but writes are atomic and their failures always surface.
package metadata

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"slate/internal/fileutil"
	"slate/internal/logging"
)

// SidecarName is the file name of the metadata sidecar within a folder.
const SidecarName = "_meta.json"

// Event is one entry in a file's lifecycle history.
type Event struct {
	Date    time.Time `json:"date"`
	Comment string    `json:"comment,omitempty"`
	Version int       `json:"version,omitempty"`
	State   string    `json:"state,omitempty"`
}

// FileMeta holds the notes recorded for one file.
type FileMeta struct {
	Comment         string  `json:"comment,omitempty"`
	Version         int     `json:"version,omitempty"`
	VersionFilePath string  `json:"versionFilePath,omitempty"`
	State           string  `json:"state,omitempty"`
	Resource        string  `json:"resource,omitempty"`
	History         []Event `json:"history,omitempty"`
}

// Manager reads and writes metadata sidecars.
type Manager struct {
	logger *slog.Logger
}

func NewManager(logger *slog.Logger) *Manager {
	return &Manager{logger: logging.NewComponentLogger(logger, "metadata")}
}

// FolderMeta returns the sidecar of a folder keyed by file name. A missing
// or unreadable sidecar reads as empty.
func (m *Manager) FolderMeta(folder string) map[string]FileMeta {
	raw, err := os.ReadFile(filepath.Join(folder, SidecarName))
	if err != nil {
		return map[string]FileMeta{}
	}

	meta := map[string]FileMeta{}
	if err := json.Unmarshal(raw, &meta); err != nil {
		m.logger.Debug("ignoring corrupt metadata sidecar",
			logging.String("folder", folder),
			logging.Error(err))
		return map[string]FileMeta{}
	}
	return meta
}

// FileMeta returns the notes recorded for one file, keyed by its base name
// in the sidecar of its folder.
func (m *Manager) FileMeta(path string) FileMeta {
	return m.FolderMeta(filepath.Dir(path))[filepath.Base(path)]
}

// SetComment records the comment attached to a file.
func (m *Manager) SetComment(path, comment string) error {
	return m.update(path, func(meta *FileMeta) {
		meta.Comment = comment
	})
}

// Comment returns the comment attached to a file, or "".
func (m *Manager) Comment(path string) string {
	return m.FileMeta(path).Comment
}

// SetVersionInfo records which version snapshot a working file corresponds
// to and the state it was saved under.
func (m *Manager) SetVersionInfo(path string, version int, versionFilePath, state string) error {
	return m.update(path, func(meta *FileMeta) {
		meta.Version = version
		meta.VersionFilePath = versionFilePath
		meta.State = state
	})
}

// SetResource records the resource string a file was saved under.
func (m *Manager) SetResource(path, resource string) error {
	return m.update(path, func(meta *FileMeta) {
		meta.Resource = resource
	})
}

// AppendHistory appends a lifecycle event to a file's history. A zero event
// date is stamped with the current time.
func (m *Manager) AppendHistory(path string, event Event) error {
	if event.Date.IsZero() {
		event.Date = time.Now()
	}
	return m.update(path, func(meta *FileMeta) {
		meta.History = append(meta.History, event)
	})
}

func (m *Manager) update(path string, mutate func(*FileMeta)) error {
	folder := filepath.Dir(path)
	name := filepath.Base(path)

	all := m.FolderMeta(folder)
	meta := all[name]
	mutate(&meta)
	all[name] = meta

	raw, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata sidecar: %w", err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(folder, SidecarName), raw); err != nil {
		return fmt.Errorf("write metadata sidecar: %w", err)
	}
	return nil
}
