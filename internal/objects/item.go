package objects

import (
	"path/filepath"

	"slate/internal/daemonclient"
	"slate/internal/layout"
	"slate/internal/naming"
	"slate/internal/publish"
	"slate/internal/versions"
)

// Item is a produced thing: a shot, an asset, or a general item. It binds
// the daemon-side object to its folder tree on disk.
type Item struct {
	Object
	kind naming.Kind
}

func (i *Item) Kind() naming.Kind { return i.kind }

// Identity derives the item's naming identity from its folder name, falling
// back to the daemon payload when the folder is unresolvable.
func (i *Item) Identity() (naming.Identity, bool) {
	if folder := i.FolderPath(); folder != "" {
		if id, ok := naming.Decode(filepath.Base(folder)); ok {
			return id, true
		}
	}
	data := i.Data()
	if data.ShortName == "" {
		return naming.Identity{}, false
	}
	id := naming.NewIdentity()
	id.Kind = i.kind
	id.ShortName = data.ShortName
	if project, ok := data.Get("project"); ok {
		id.Project, _ = project.(string)
	}
	return id, id.IsValid()
}

// StepFolder resolves (and creates) the subfolder of one production step.
func (i *Item) StepFolder(step string) (string, error) {
	folder := i.FolderPath()
	if folder == "" {
		return "", daemonclient.ErrOffline
	}
	id, ok := i.Identity()
	if !ok {
		return "", versions.ErrMalformed
	}
	id.Step = step
	return layout.StepFolder(folder, id)
}

// VersionStore returns the version history of one step.
func (i *Item) VersionStore(step string) (*versions.Store, error) {
	folder, err := i.StepFolder(step)
	if err != nil {
		return nil, err
	}
	return versions.NewStore(folder, i.pipeline.logger), nil
}

// PublishStore returns the publish snapshots of one step.
func (i *Item) PublishStore(step string) (*publish.Store, error) {
	folder, err := i.StepFolder(step)
	if err != nil {
		return nil, err
	}
	return publish.NewStore(folder, i.pipeline.logger), nil
}

// LatestVersion returns the newest version snapshot of one step.
func (i *Item) LatestVersion(step string, resource naming.ResourceFilter) (versions.Record, bool) {
	store, err := i.VersionStore(step)
	if err != nil {
		return versions.Record{}, false
	}
	id, ok := i.Identity()
	if !ok {
		return versions.Record{}, false
	}
	sel := versions.SelectorFor(id)
	sel.Step = step
	sel.Resource = resource
	return store.Latest(sel)
}

// VersionFilePaths lists the snapshot paths of one step, oldest first.
func (i *Item) VersionFilePaths(step string, resource naming.ResourceFilter) []string {
	store, err := i.VersionStore(step)
	if err != nil {
		return nil
	}
	id, ok := i.Identity()
	if !ok {
		return nil
	}
	sel := versions.SelectorFor(id)
	sel.Step = step
	sel.Resource = resource

	records := store.List(sel)
	paths := make([]string, len(records))
	for n, record := range records {
		paths[n] = record.Path
	}
	return paths
}

// PublishedFolders lists the publish snapshot folders of one step, newest
// first.
func (i *Item) PublishedFolders(step string, resource naming.ResourceFilter) []string {
	store, err := i.PublishStore(step)
	if err != nil {
		return nil
	}
	opts := publish.DefaultListOptions()
	opts.Resource = resource
	return store.List(opts)
}

// IsPublished reports whether at least one publish snapshot exists for the
// step and resource.
func (i *Item) IsPublished(step string, resource naming.ResourceFilter) bool {
	return len(i.PublishedFolders(step, resource)) > 0
}

// PreviewFolder resolves (and creates) the preview folder of one step.
func (i *Item) PreviewFolder(step string) (string, error) {
	folder, err := i.StepFolder(step)
	if err != nil {
		return "", err
	}
	return layout.PreviewFolder(folder)
}

// StepFilePath computes the canonical working-file path for one step,
// resource and extension. It does not touch the daemon beyond resolving the
// item folder, and does not require the file to exist.
func (i *Item) StepFilePath(step, resource, extension string) (string, error) {
	folder, err := i.StepFolder(step)
	if err != nil {
		return "", err
	}
	id, _ := i.Identity()
	id.Step = step
	id.Resource = resource
	id.Extension = extension
	id.State = ""
	id.Version = -1
	return filepath.Join(folder, naming.Encode(id)), nil
}

// CurrentStatus fetches the production status of this item for one step.
func (i *Item) CurrentStatus(stepUUID string) (daemonclient.Object, bool) {
	if i.virtual || i.pipeline.client == nil {
		return daemonclient.Object{}, false
	}
	return i.pipeline.client.GetStatus(i.uuid, stepUUID)
}
