package daemonclient

// Reply is the daemon's JSON envelope. Content is null on any failure;
// callers treat a null Content exactly like "not found" on read paths.
type Reply struct {
	Accepted bool           `json:"accepted"`
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Query    string         `json:"query"`
	Content  map[string]any `json:"content"`
}

// OK reports whether the daemon accepted the query, handled it and
// returned content.
func (r Reply) OK() bool {
	return r.Accepted && r.Success && r.Content != nil
}

// sentinelReply is what malformed or unreachable exchanges collapse into.
func sentinelReply() Reply {
	return Reply{Accepted: false, Success: false}
}

// ObjectData is the metadata payload of one daemon object. The daemon
// schema is loose; the named fields are the ones this client understands,
// everything else passes through Extra untouched.
type ObjectData struct {
	Name       string
	ShortName  string
	Comment    string
	Color      string
	FolderPath string
	Settings   string
	Extra      map[string]any
}

// ObjectDataFromMap validates a raw payload into an ObjectData. Unknown
// keys are preserved in Extra; known keys with unexpected types are
// dropped there as well rather than coerced.
func ObjectDataFromMap(m map[string]any) ObjectData {
	var d ObjectData
	if len(m) == 0 {
		return d
	}
	d.Extra = make(map[string]any)
	for key, value := range m {
		s, isString := value.(string)
		switch key {
		case "name":
			if isString {
				d.Name = s
				continue
			}
		case "shortName":
			if isString {
				d.ShortName = s
				continue
			}
		case "comment":
			if isString {
				d.Comment = s
				continue
			}
		case "color":
			if isString {
				d.Color = s
				continue
			}
		case "folderPath":
			if isString {
				d.FolderPath = s
				continue
			}
		case "settings":
			if isString {
				d.Settings = s
				continue
			}
		}
		d.Extra[key] = value
	}
	if len(d.Extra) == 0 {
		d.Extra = nil
	}
	return d
}

// ToMap renders the payload back into the daemon's wire shape. Empty named
// fields are omitted so a round trip does not invent keys.
func (d ObjectData) ToMap() map[string]any {
	m := make(map[string]any, len(d.Extra)+6)
	for key, value := range d.Extra {
		m[key] = value
	}
	if d.Name != "" {
		m["name"] = d.Name
	}
	if d.ShortName != "" {
		m["shortName"] = d.ShortName
	}
	if d.Comment != "" {
		m["comment"] = d.Comment
	}
	if d.Color != "" {
		m["color"] = d.Color
	}
	if d.FolderPath != "" {
		m["folderPath"] = d.FolderPath
	}
	if d.Settings != "" {
		m["settings"] = d.Settings
	}
	return m
}

// Get looks up a key across the named fields and the passthrough map.
func (d ObjectData) Get(key string) (any, bool) {
	switch key {
	case "name":
		return d.Name, d.Name != ""
	case "shortName":
		return d.ShortName, d.ShortName != ""
	case "comment":
		return d.Comment, d.Comment != ""
	case "color":
		return d.Color, d.Color != ""
	case "folderPath":
		return d.FolderPath, d.FolderPath != ""
	case "settings":
		return d.Settings, d.Settings != ""
	}
	value, ok := d.Extra[key]
	return value, ok
}

// Object is one daemon object reference with its payload.
type Object struct {
	UUID string
	Data ObjectData
}
