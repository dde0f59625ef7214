// Package layout derives the folder hierarchy an identity lives in: the
// item folder, its per-step subfolder and the reserved _versions, _preview
// and _publish subfolders. Folders are created lazily on first access;
// creation is idempotent and failures surface as IO errors.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"slate/internal/naming"
)

// StepFolder returns (and creates) the working folder for the given step
// under the item folder. General items have no step subfolders; their item
// folder is returned unchanged.
func StepFolder(itemFolder string, id naming.Identity) (string, error) {
	if itemFolder == "" {
		return "", fmt.Errorf("layout: empty item folder")
	}
	if id.Kind == naming.KindGeneral || id.Step == "" {
		return itemFolder, nil
	}

	folder := id.Copy()
	folder.Resource = ""
	folder.State = ""
	folder.Version = -1
	folder.Extension = ""
	folder.IsRestoredVersion = false
	folder.IsBackup = false

	path := filepath.Join(itemFolder, naming.Encode(folder))
	if err := ensureDir(path); err != nil {
		return "", err
	}
	return path, nil
}

// VersionsFolder returns (and creates) the _versions subfolder of a step
// folder.
func VersionsFolder(stepFolder string) (string, error) {
	return reservedFolder(stepFolder, naming.VersionsFolderName)
}

// PreviewFolder returns (and creates) the _preview subfolder of a step
// folder.
func PreviewFolder(stepFolder string) (string, error) {
	return reservedFolder(stepFolder, naming.PreviewFolderName)
}

// PublishFolder returns (and creates) the _publish subfolder of a step
// folder.
func PublishFolder(stepFolder string) (string, error) {
	return reservedFolder(stepFolder, naming.PublishFolderName)
}

func reservedFolder(stepFolder, name string) (string, error) {
	if stepFolder == "" {
		return "", fmt.Errorf("layout: empty step folder")
	}
	path := filepath.Join(stepFolder, name)
	if err := ensureDir(path); err != nil {
		return "", err
	}
	return path, nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create folder %q: %w", path, err)
	}
	return nil
}

// InVersionsFolder reports whether the path lives directly inside a
// _versions folder.
func InVersionsFolder(path string) bool {
	return parentFolderName(path) == naming.VersionsFolderName
}

// InReservedFolder reports whether the path lives directly inside any of
// the reserved _versions, _preview or _publish subtrees. A file found there
// must never be saved over in place; the save workflow increments instead.
func InReservedFolder(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		switch part {
		case naming.VersionsFolderName, naming.PreviewFolderName, naming.PublishFolderName:
			return true
		}
	}
	return false
}

func parentFolderName(path string) string {
	return filepath.Base(filepath.Dir(filepath.Clean(path)))
}

// SaveFilePath resolves any path under an item tree (a working file, a
// version snapshot, a preview or publish artifact) to the canonical
// working-file path it belongs to: version and state tokens are stripped
// and the path is lifted back out of reserved folders. Returns ok=false
// when the name does not decode.
func SaveFilePath(path string) (string, bool) {
	name := filepath.Base(path)
	id, ok := naming.Decode(name)
	if !ok {
		return "", false
	}

	dir := filepath.Dir(path)
	for isReservedName(filepath.Base(dir)) || inPublishSnapshot(dir) {
		dir = filepath.Dir(dir)
	}

	live := id.Copy()
	live.Version = -1
	live.State = ""
	live.IsRestoredVersion = false
	live.RestoredVersion = -1
	live.IsBackup = false

	return filepath.Join(dir, naming.Encode(live)), true
}

func isReservedName(name string) bool {
	switch name {
	case naming.VersionsFolderName, naming.PreviewFolderName, naming.PublishFolderName:
		return true
	}
	return false
}

// inPublishSnapshot reports whether dir is a snapshot folder directly under
// a _publish folder.
func inPublishSnapshot(dir string) bool {
	return filepath.Base(filepath.Dir(dir)) == naming.PublishFolderName
}
