package publish

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"slate/internal/logging"
	"slate/internal/naming"
)

// ListOptions narrows and orders a publish listing.
type ListOptions struct {
	// FileName keeps only folders that contain a file with this exact
	// name. Used to find the publish that produced a given artifact.
	FileName string

	// Resource keeps only folders whose composite key opens with the
	// matching resource field.
	Resource naming.ResourceFilter

	SortByVersion  bool
	SortDescending bool
}

// DefaultListOptions matches every folder and sorts descending, the order
// existing pipelines expect from a bare listing.
func DefaultListOptions() ListOptions {
	return ListOptions{
		Resource:       naming.AnyResource,
		SortByVersion:  true,
		SortDescending: true,
	}
}

// Store reads the publish snapshots of one step folder.
type Store struct {
	folder string
	logger *slog.Logger
}

// NewStore binds a store to a step folder.
func NewStore(stepFolder string, logger *slog.Logger) *Store {
	return &Store{
		folder: stepFolder,
		logger: logging.NewComponentLogger(logger, "publish"),
	}
}

// List returns the paths of the publish folders matching opts. A missing or
// empty _publish folder yields an empty list.
func (s *Store) List(opts ListOptions) []string {
	dir := filepath.Join(s.folder, naming.PublishFolderName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !opts.Resource.Any() {
			fields := naming.SplitPublishKey(name)
			if len(fields) == 0 || fields[0] != opts.Resource.Value() {
				continue
			}
		}
		if opts.FileName != "" && !containsFile(filepath.Join(dir, name), opts.FileName) {
			continue
		}
		names = append(names, name)
	}

	if opts.SortByVersion {
		sort.SliceStable(names, func(i, j int) bool {
			return LegacyLess(names[i], names[j])
		})
		if opts.SortDescending {
			reverse(names)
		}
	}

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}

// Latest returns the last entry of the ascending listing, or ok=false when
// nothing is published. Existing pipelines depend on exactly this
// relationship between Latest and List, so it is preserved as is.
func (s *Store) Latest(fileName string, resource naming.ResourceFilter) (string, bool) {
	opts := DefaultListOptions()
	opts.FileName = fileName
	opts.Resource = resource
	opts.SortDescending = false

	paths := s.List(opts)
	if len(paths) == 0 {
		return "", false
	}
	return paths[len(paths)-1], true
}

// LegacyLess orders composite publish keys the way existing pipelines have
// always sorted them: field by field, lexicographically. Keys of different
// arity are not compared field-wise at all; the longer key simply sorts
// first. That tie-break is not consistent with the field comparison and can
// place a longer key ahead of a lexicographically smaller shorter one, but
// it is load-bearing for folders published by older tooling, so it stays.
// CanonicalLess is the corrected order for callers that can afford it.
func LegacyLess(a, b string) bool {
	fieldsA := naming.SplitPublishKey(a)
	fieldsB := naming.SplitPublishKey(b)
	if len(fieldsA) != len(fieldsB) {
		return len(fieldsA) > len(fieldsB)
	}
	for i := range fieldsA {
		if fieldsA[i] != fieldsB[i] {
			return fieldsA[i] < fieldsB[i]
		}
	}
	return false
}

// CanonicalLess orders composite keys by resource, then state, then version,
// comparing the version field numerically when both sides parse. It is a
// total order and the recommended replacement for LegacyLess, but it is not
// the default anywhere.
func CanonicalLess(a, b string) bool {
	fieldsA := naming.SplitPublishKey(a)
	fieldsB := naming.SplitPublishKey(b)

	for i := 0; i < 3; i++ {
		fieldA := field(fieldsA, i)
		fieldB := field(fieldsB, i)
		if fieldA == fieldB {
			continue
		}
		if i == 2 {
			numA, errA := strconv.Atoi(strings.TrimPrefix(fieldA, "v"))
			numB, errB := strconv.Atoi(strings.TrimPrefix(fieldB, "v"))
			if errA == nil && errB == nil {
				return numA < numB
			}
		}
		return fieldA < fieldB
	}
	return false
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func containsFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
