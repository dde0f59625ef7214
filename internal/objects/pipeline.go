package objects

import (
	"log/slog"
	"time"

	"slate/internal/daemonclient"
	"slate/internal/logging"
	"slate/internal/naming"
	"slate/internal/objcache"
)

// Daemon object types.
const (
	TypeProject = "project"
	TypeAsset   = "asset"
	TypeShot    = "shot"
	TypeItem    = "item"
	TypeStep    = "step"
	TypeState   = "state"
	TypeUser    = "user"
)

// Options describes pipeline construction parameters. A nil Client yields a
// pipeline that only ever produces virtual objects.
type Options struct {
	Client  *daemonclient.Client
	Logger  *slog.Logger
	DataTTL time.Duration
	PathTTL time.Duration
}

// Pipeline is the shared context threaded through every object wrapper.
type Pipeline struct {
	client  *daemonclient.Client
	logger  *slog.Logger
	dataTTL time.Duration
	pathTTL time.Duration
}

func NewPipeline(opts Options) *Pipeline {
	if opts.DataTTL == 0 {
		opts.DataTTL = objcache.DefaultDataTTL
	}
	if opts.PathTTL == 0 {
		opts.PathTTL = objcache.DefaultPathTTL
	}
	return &Pipeline{
		client:  opts.Client,
		logger:  logging.NewComponentLogger(opts.Logger, "objects"),
		dataTTL: opts.DataTTL,
		pathTTL: opts.PathTTL,
	}
}

func (p *Pipeline) Client() *daemonclient.Client { return p.client }

// Online reports whether the daemon currently answers.
func (p *Pipeline) Online() bool {
	if p.client == nil {
		return false
	}
	return p.client.Probe()
}

// RootFolder returns the storage root the daemon reports, or "" offline.
func (p *Pipeline) RootFolder() string {
	if p.client == nil {
		return ""
	}
	return p.client.RootFolder()
}

// Object wraps a daemon-backed object of the given type.
func (p *Pipeline) Object(uuid, objectType string) *Object {
	return &Object{pipeline: p, uuid: uuid, objectType: objectType}
}

func (p *Pipeline) Project(uuid string) *Object { return p.Object(uuid, TypeProject) }
func (p *Pipeline) User(uuid string) *Object    { return p.Object(uuid, TypeUser) }
func (p *Pipeline) State(uuid string) *Object   { return p.Object(uuid, TypeState) }

func (p *Pipeline) Step(uuid string) *Step {
	return &Step{Object: *p.Object(uuid, TypeStep)}
}

// Item wraps a daemon-backed item of the given kind.
func (p *Pipeline) Item(uuid string, kind naming.Kind) *Item {
	objectType := TypeItem
	switch kind {
	case naming.KindAsset:
		objectType = TypeAsset
	case naming.KindShot:
		objectType = TypeShot
	}
	return &Item{Object: *p.Object(uuid, objectType), kind: kind}
}

// States lists every state the daemon knows. Offline yields an empty list.
func (p *Pipeline) States() []daemonclient.Object {
	if p.client == nil {
		return nil
	}
	return p.client.GetObjects(TypeState)
}

// Projects lists every project the daemon knows. Offline yields an empty
// list.
func (p *Pipeline) Projects() []daemonclient.Object {
	if p.client == nil {
		return nil
	}
	return p.client.GetObjects(TypeProject)
}
