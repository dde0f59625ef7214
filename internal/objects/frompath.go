package objects

import (
	"os"
	"path/filepath"
	"strings"

	"slate/internal/daemonclient"
	"slate/internal/logging"
	"slate/internal/naming"
)

// ItemFromPath resolves any file or folder under an item tree to its Item.
// The daemon is asked for the uuid of the item folder; when it does not
// know the path, or is offline, a virtual item is built from the decoded
// name so that file-system operations still work.
func (p *Pipeline) ItemFromPath(path string) (*Item, bool) {
	id, found := decodeFromPath(path)
	if !found {
		return nil, false
	}

	itemID := id.Copy()
	itemID.Step = ""
	itemID.Resource = ""
	itemID.State = ""
	itemID.Version = -1
	itemID.Extension = ""
	itemID.IsRestoredVersion = false
	itemID.RestoredVersion = -1
	itemID.IsBackup = false

	folder := ascendTo(path, naming.Encode(itemID))
	if folder == "" {
		// The path decodes but sits outside a canonical item tree.
		// Anchor the virtual item on the nearest folder.
		folder = containingFolder(path)
	}

	if p.client != nil {
		if uuid := p.client.UUIDFromPath(folder, TypeItem); uuid != "" {
			return p.Item(uuid, itemID.Kind), true
		}
	}

	p.logger.Debug("item unknown to the daemon, building a virtual one",
		logging.String("path", folder))
	item := &Item{
		Object: *newVirtual(p, TypeItem, daemonclient.ObjectData{
			ShortName:  itemID.ShortName,
			Name:       itemID.ShortName,
			FolderPath: folder,
		}),
		kind: itemID.Kind,
	}
	return item, true
}

// StepFromPath resolves any file or folder under a step subfolder to its
// Step, virtual when the daemon does not know it.
func (p *Pipeline) StepFromPath(path string) (*Step, bool) {
	id, found := decodeFromPath(path)
	if !found || id.Step == "" {
		return nil, false
	}

	stepID := id.Copy()
	stepID.Resource = ""
	stepID.State = ""
	stepID.Version = -1
	stepID.Extension = ""
	stepID.IsRestoredVersion = false
	stepID.RestoredVersion = -1
	stepID.IsBackup = false

	folder := ascendTo(path, naming.Encode(stepID))
	if p.client != nil && folder != "" {
		if uuid := p.client.UUIDFromPath(folder, TypeStep); uuid != "" {
			return p.Step(uuid), true
		}
	}

	return &Step{Object: *newVirtual(p, TypeStep, daemonclient.ObjectData{
		ShortName:  id.Step,
		Name:       id.Step,
		FolderPath: folder,
	})}, true
}

// decodeFromPath decodes the deepest path segment that parses as a
// canonical name, skipping reserved folders and publish snapshot keys.
func decodeFromPath(path string) (naming.Identity, bool) {
	remaining := filepath.Clean(path)
	for {
		base := filepath.Base(remaining)
		if !isStructuralName(base) {
			if id, ok := naming.Decode(base); ok {
				return id, true
			}
		}
		parent := filepath.Dir(remaining)
		if parent == remaining {
			return naming.Identity{}, false
		}
		remaining = parent
	}
}

func isStructuralName(name string) bool {
	switch name {
	case naming.VersionsFolderName, naming.PreviewFolderName, naming.PublishFolderName:
		return true
	}
	return strings.Contains(name, naming.PublishKeySep)
}

// ascendTo walks up from path to the segment whose base name equals target.
func ascendTo(path, target string) string {
	remaining := filepath.Clean(path)
	for {
		if filepath.Base(remaining) == target {
			return remaining
		}
		parent := filepath.Dir(remaining)
		if parent == remaining {
			return ""
		}
		remaining = parent
	}
}

func containingFolder(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
