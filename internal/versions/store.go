package versions

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"slate/internal/fileutil"
	"slate/internal/layout"
	"slate/internal/logging"
	"slate/internal/naming"
)

// ErrMalformed reports a file name the codec cannot decode. Write operations
// refuse such names; listings simply skip them.
var ErrMalformed = errors.New("file name does not decode")

// Record describes one version snapshot found on disk.
type Record struct {
	Version    int
	Resource   string
	State      string
	Path       string
	ModifiedAt time.Time
}

// Selector narrows a listing to one version history group. An empty State
// matches every state.
type Selector struct {
	Project   string
	Kind      naming.Kind
	ShortName string
	Step      string
	Resource  naming.ResourceFilter
	State     string
}

// SelectorFor derives the selector of the group an identity belongs to,
// matching its resource exactly and any state.
func SelectorFor(id naming.Identity) Selector {
	return Selector{
		Project:   id.Project,
		Kind:      id.Kind,
		ShortName: id.ShortName,
		Step:      id.Step,
		Resource:  naming.Resource(id.Resource),
	}
}

func (sel Selector) matches(id naming.Identity) bool {
	if id.Project != sel.Project || id.Kind != sel.Kind ||
		id.ShortName != sel.ShortName || id.Step != sel.Step {
		return false
	}
	if !sel.Resource.Matches(id.Resource) {
		return false
	}
	if sel.State != "" && id.State != sel.State {
		return false
	}
	return true
}

// Store reads and writes the version snapshots of one step folder.
type Store struct {
	folder string
	logger *slog.Logger
}

// NewStore binds a store to a step folder. The folder does not have to exist
// yet; it is created on the first write.
func NewStore(stepFolder string, logger *slog.Logger) *Store {
	return &Store{
		folder: stepFolder,
		logger: logging.NewComponentLogger(logger, "versions"),
	}
}

// Folder returns the step folder the store is bound to.
func (s *Store) Folder() string { return s.folder }

// List returns the snapshots matching sel, sorted by ascending version.
// A missing or empty versions folder yields an empty list, and names the
// codec cannot decode are skipped.
func (s *Store) List(sel Selector) []Record {
	dir := filepath.Join(s.folder, naming.VersionsFolderName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := naming.Decode(entry.Name())
		if !ok || id.IsBackup {
			s.logger.Debug("skipping foreign entry in versions folder",
				logging.String("name", entry.Name()))
			continue
		}
		if id.Version < 0 || !sel.matches(id) {
			continue
		}

		record := Record{
			Version:  id.Version,
			Resource: id.Resource,
			State:    id.State,
			Path:     filepath.Join(dir, entry.Name()),
		}
		if info, err := entry.Info(); err == nil {
			record.ModifiedAt = info.ModTime()
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Version < records[j].Version
	})
	return records
}

// Latest returns the highest version matching sel, or ok=false when the
// history is empty.
func (s *Store) Latest(sel Selector) (Record, bool) {
	records := s.List(sel)
	if len(records) == 0 {
		return Record{}, false
	}
	return records[len(records)-1], true
}

// Previous returns the second-highest version matching sel.
func (s *Store) Previous(sel Selector) (Record, bool) {
	records := s.List(sel)
	if len(records) < 2 {
		return Record{}, false
	}
	return records[len(records)-2], true
}

// CopyToVersion snapshots a working file into the versions folder. With
// increment it claims the next free version number; without it the current
// latest number is reused, overwriting that snapshot in place. Either way
// the first snapshot of a history is version 1. A non-empty newState
// replaces the state recorded in the snapshot name.
//
// Copy and directory failures propagate to the caller; a save believed
// successful but actually lost would corrupt production history.
func (s *Store) CopyToVersion(workingPath string, increment bool, newState string) (string, error) {
	id, ok := naming.Decode(filepath.Base(workingPath))
	if !ok {
		return "", fmt.Errorf("version %q: %w", filepath.Base(workingPath), ErrMalformed)
	}

	// Restored and backup markers never survive into a snapshot name.
	id.IsRestoredVersion = false
	id.RestoredVersion = -1
	id.IsBackup = false

	version := 0
	if latest, found := s.Latest(SelectorFor(id)); found {
		version = latest.Version
	}
	if increment || version < 1 {
		version++
	}

	id.Version = version
	if newState != "" {
		id.State = newState
	}

	dir, err := layout.VersionsFolder(s.folder)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(dir, naming.Encode(id))
	if err := fileutil.CopySnapshot(workingPath, dst); err != nil {
		return "", fmt.Errorf("copy version snapshot: %w", err)
	}

	s.logger.Debug("version snapshot written",
		logging.String("path", dst),
		logging.Int("version", version))
	return dst, nil
}

// Restore copies a version snapshot back out to the working location. The
// produced file carries the restored marker, so the next save is forced to
// claim a fresh version number instead of silently overwriting newer work.
func (s *Store) Restore(versionPath string) (string, error) {
	id, ok := naming.Decode(filepath.Base(versionPath))
	if !ok || id.Version < 0 {
		return "", fmt.Errorf("restore %q: %w", filepath.Base(versionPath), ErrMalformed)
	}

	restored := id.Copy()
	restored.IsRestoredVersion = true
	restored.RestoredVersion = id.Version
	restored.Version = -1
	restored.State = ""

	dst := filepath.Join(s.folder, naming.Encode(restored))
	if err := fileutil.CopyFile(versionPath, dst); err != nil {
		return "", fmt.Errorf("restore version %d: %w", id.Version, err)
	}

	s.logger.Debug("version restored",
		logging.String("path", dst),
		logging.Int("version", id.Version))
	return dst, nil
}

// NeedsIncrement decides whether the next snapshot of workingPath must claim
// a fresh version number, and why. A restored working file always
// increments, as does a file saved from inside a reserved folder. When
// maxAge is positive, a latest snapshot older than maxAge forces an
// increment too.
func (s *Store) NeedsIncrement(workingPath string, maxAge time.Duration) (bool, string) {
	id, ok := naming.Decode(filepath.Base(workingPath))
	if !ok {
		return false, ""
	}
	if id.IsRestoredVersion {
		return true, fmt.Sprintf("working file was restored from version %d", id.RestoredVersion)
	}
	if layout.InReservedFolder(workingPath) {
		return true, "working file sits inside a reserved folder"
	}

	latest, found := s.Latest(SelectorFor(id))
	if !found {
		return true, "no version snapshot recorded yet"
	}
	if maxAge > 0 && !latest.ModifiedAt.IsZero() && time.Since(latest.ModifiedAt) > maxAge {
		return true, fmt.Sprintf("latest snapshot is older than %s", maxAge)
	}
	return false, ""
}
