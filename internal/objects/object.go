package objects

import (
	"errors"
	"os"

	"github.com/google/uuid"

	"slate/internal/daemonclient"
	"slate/internal/logging"
)

// ErrVirtual reports a write against an object the daemon does not know.
// The change is kept locally; callers that require durability treat this as
// a failure, callers that only need the session to stay coherent ignore it.
var ErrVirtual = errors.New("object is virtual, change kept locally only")

// Object is the base wrapper shared by every pipeline object. The zero
// value is not usable; construct through a Pipeline.
type Object struct {
	pipeline   *Pipeline
	uuid       string
	objectType string

	virtual     bool
	virtualData daemonclient.ObjectData
}

// newVirtual mints an object unknown to the daemon.
func newVirtual(p *Pipeline, objectType string, data daemonclient.ObjectData) *Object {
	return &Object{
		pipeline:    p,
		uuid:        uuid.NewString(),
		objectType:  objectType,
		virtual:     true,
		virtualData: data,
	}
}

func (o *Object) UUID() string  { return o.uuid }
func (o *Object) Type() string  { return o.objectType }
func (o *Object) Virtual() bool { return o.virtual }

// Data returns the object's payload. Daemon-backed objects read through the
// client cache on every call; virtual objects return their local payload.
// Offline or unknown objects read as empty, never as an error.
func (o *Object) Data() daemonclient.ObjectData {
	if o.virtual {
		return o.virtualData
	}
	if o.pipeline.client == nil {
		return daemonclient.ObjectData{}
	}
	data, _ := o.pipeline.client.GetData(o.uuid, o.objectType, o.pipeline.dataTTL)
	return data
}

// Name returns the display name, falling back to the short name.
func (o *Object) Name() string {
	data := o.Data()
	if data.Name != "" {
		return data.Name
	}
	return data.ShortName
}

func (o *Object) ShortName() string { return o.Data().ShortName }

func (o *Object) Comment() string { return o.Data().Comment }

// SetData replaces the object's payload. Virtual objects keep the change
// locally and report ErrVirtual.
func (o *Object) SetData(data daemonclient.ObjectData) error {
	if o.virtual {
		o.virtualData = data
		return ErrVirtual
	}
	if o.pipeline.client == nil {
		return daemonclient.ErrOffline
	}
	return o.pipeline.client.SetData(o.uuid, o.objectType, data)
}

// Set updates one payload key and writes the payload back.
func (o *Object) Set(key string, value any) error {
	data := o.Data()
	raw := data.ToMap()
	raw[key] = value
	return o.SetData(daemonclient.ObjectDataFromMap(raw))
}

// FolderPath resolves the object's folder. The directory is created on
// first access; creation failures are logged and the path still returned,
// since a missing folder surfaces again, with a precise error, on the next
// write into it.
func (o *Object) FolderPath() string {
	var path string
	if o.virtual {
		path = o.virtualData.FolderPath
	} else if o.pipeline.client != nil {
		path, _ = o.pipeline.client.GetPath(o.uuid, o.objectType, o.pipeline.pathTTL)
	}
	if path == "" {
		return ""
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		o.pipeline.logger.Warn("object folder not creatable",
			logging.String("path", path),
			logging.Error(err))
	}
	return path
}
