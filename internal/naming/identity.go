package naming

// Kind classifies what a name refers to.
type Kind int

const (
	// KindGeneral is a project-general file with no item kind marker.
	KindGeneral Kind = iota
	// KindAsset is an asset, marked "A" in names.
	KindAsset
	// KindShot is a shot, marked "S" in names.
	KindShot
)

// Marker returns the single-letter kind token used in names, or an empty
// string for general items.
func (k Kind) Marker() string {
	switch k {
	case KindAsset:
		return "A"
	case KindShot:
		return "S"
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case KindAsset:
		return "asset"
	case KindShot:
		return "shot"
	default:
		return "general"
	}
}

func kindFromMarker(marker string) (Kind, bool) {
	switch marker {
	case "A":
		return KindAsset, true
	case "S":
		return KindShot, true
	default:
		return KindGeneral, false
	}
}

// Identity describes one logical pipeline file or folder. The zero value is
// not a valid identity; at minimum Project and ShortName must be set.
//
// Version -1 means "no version assigned". A name with neither version nor
// state is a live working file as opposed to a version snapshot.
type Identity struct {
	Project   string
	Kind      Kind
	ShortName string
	Step      string
	Resource  string
	State     string
	Version   int
	Extension string

	// RestoredVersion is valid only when IsRestoredVersion is set; it is
	// the version number the working file was restored from.
	IsRestoredVersion bool
	RestoredVersion   int

	// IsBackup marks a publish-adjacent safety copy that must never be
	// read back as a real version snapshot.
	IsBackup bool
}

// NewIdentity returns an identity with no version assigned.
func NewIdentity() Identity {
	return Identity{Version: -1, RestoredVersion: -1}
}

// Copy returns a value clone of the identity. Callers routinely mutate a
// working copy (clear the state, drop the version) before re-encoding to
// build a sibling path; Copy keeps the original intact.
func (id Identity) Copy() Identity {
	return id
}

// IsValid reports whether the identity carries the minimum fields required
// to produce a name.
func (id Identity) IsValid() bool {
	return id.Project != "" && id.ShortName != ""
}

// SameGroup reports whether two identities belong to the same version
// history: same project, kind, short name and step.
func (id Identity) SameGroup(other Identity) bool {
	return id.Project == other.Project &&
		id.Kind == other.Kind &&
		id.ShortName == other.ShortName &&
		id.Step == other.Step
}
