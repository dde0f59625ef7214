package naming

import (
	"strconv"
	"strings"
)

// Reserved subfolder names under a step folder.
const (
	VersionsFolderName = "_versions"
	PreviewFolderName  = "_preview"
	PublishFolderName  = "_publish"
)

// Name token separators. Head fields (project, kind marker, short name,
// step, resource) join with FieldSep; state and version append to the last
// head field with TokenSep.
const (
	FieldSep = "_"
	TokenSep = "-"

	versionPrefix = "v"
	versionWidth  = 3

	restoredOpen  = "+restored-v"
	restoredClose = "+"
	backupMark    = "+backup+"
)

// PublishKeySep joins the (resource, state, version) composite key of a
// publish snapshot folder name.
const PublishKeySep = "|"

// Encode renders the canonical name for the identity:
//
//	{project}_{K}_{shortName}[_{step}][_{resource}][-{state}][-v{version}].{extension}
//
// The kind marker is absent for general items, the version is zero-padded
// to three digits and optional fields are omitted when empty. Encoding is a
// total function: any identity yields a string, although only valid
// identities produce names that decode back.
func Encode(id Identity) string {
	var b strings.Builder
	b.WriteString(id.Project)

	if marker := id.Kind.Marker(); marker != "" {
		b.WriteString(FieldSep)
		b.WriteString(marker)
	}

	b.WriteString(FieldSep)
	b.WriteString(id.ShortName)

	if id.Step != "" {
		b.WriteString(FieldSep)
		b.WriteString(id.Step)
	}

	resource := id.Resource
	if id.IsRestoredVersion && id.RestoredVersion >= 0 {
		resource += restoredOpen + strconv.Itoa(id.RestoredVersion) + restoredClose
	}
	if id.IsBackup {
		resource += backupMark
	}
	if resource != "" {
		b.WriteString(FieldSep)
		b.WriteString(resource)
	}

	if id.State != "" {
		b.WriteString(TokenSep)
		b.WriteString(id.State)
	}

	if id.Version >= 0 {
		b.WriteString(TokenSep)
		b.WriteString(versionPrefix)
		b.WriteString(padVersion(id.Version))
	}

	if id.Extension != "" {
		b.WriteString(".")
		b.WriteString(id.Extension)
	}

	return b.String()
}

// Decode parses a file or folder name produced by Encode. Malformed or
// foreign names return ok=false and an identity with an empty ShortName;
// Decode never panics on arbitrary input.
func Decode(name string) (Identity, bool) {
	id := NewIdentity()

	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "/\\") {
		return id, false
	}

	// Extension comes off first. A leading dot is not an extension marker.
	if dot := strings.LastIndex(name, "."); dot > 0 {
		id.Extension = name[dot+1:]
		name = name[:dot]
	}

	fields := strings.Split(name, FieldSep)
	if len(fields) < 2 || fields[0] == "" {
		return NewIdentity(), false
	}
	id.Project = fields[0]

	rest := fields[1:]
	if kind, ok := kindFromMarker(rest[0]); ok {
		if len(rest) < 2 {
			return NewIdentity(), false
		}
		id.Kind = kind
		rest = rest[1:]
	}

	id.ShortName = rest[0]
	if id.ShortName == "" {
		return NewIdentity(), false
	}
	rest = rest[1:]

	// State and version tokens attach to the final field.
	if len(rest) > 0 {
		last := len(rest) - 1
		rest[last] = id.parseTail(rest[last])
		if rest[last] == "" {
			rest = rest[:last]
		}
	} else {
		// No step or resource: the tail tokens hang off the short name.
		id.ShortName = id.parseTail(id.ShortName)
		if id.ShortName == "" {
			return NewIdentity(), false
		}
	}

	switch len(rest) {
	case 0:
	case 1:
		id.Step = rest[0]
	default:
		id.Step = rest[0]
		id.Resource = strings.Join(rest[1:], FieldSep)
	}

	id.Resource, id.IsBackup = strings.CutSuffix(id.Resource, backupMark)
	if resource, restored, ok := splitRestoredMark(id.Resource); ok {
		id.Resource = resource
		id.IsRestoredVersion = true
		id.RestoredVersion = restored
	}

	return id, true
}

// parseTail strips the optional "-{state}" and "-v{NNN}" tokens from the
// final head field and records them on the identity. The state token is
// only recognized alongside a version token: a live working file carries
// neither, and dashes inside a resource must not be misread as states.
func (id *Identity) parseTail(field string) string {
	parts := strings.Split(field, TokenSep)
	last := len(parts) - 1

	if v, ok := parseVersionToken(parts[last]); ok {
		id.Version = v
		parts = parts[:last]
		last--
		if last > 0 {
			id.State = parts[last]
			parts = parts[:last]
		}
	}

	return strings.Join(parts, TokenSep)
}

func parseVersionToken(token string) (int, bool) {
	digits, ok := strings.CutPrefix(token, versionPrefix)
	if !ok || digits == "" {
		return -1, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil || v < 0 {
		return -1, false
	}
	return v, true
}

func splitRestoredMark(resource string) (string, int, bool) {
	open := strings.LastIndex(resource, restoredOpen)
	if open < 0 || !strings.HasSuffix(resource, restoredClose) {
		return resource, -1, false
	}
	digits := resource[open+len(restoredOpen) : len(resource)-len(restoredClose)]
	v, err := strconv.Atoi(digits)
	if err != nil || v < 0 {
		return resource, -1, false
	}
	return resource[:open], v, true
}

func padVersion(v int) string {
	s := strconv.Itoa(v)
	for len(s) < versionWidth {
		s = "0" + s
	}
	return s
}

// PublishKey builds the composite-key name of one publish snapshot folder
// from its resource, state and version.
func PublishKey(resource, state string, version int) string {
	v := ""
	if version >= 0 {
		v = padVersion(version)
	}
	return strings.Join([]string{resource, state, v}, PublishKeySep)
}

// SplitPublishKey splits a publish folder name into its composite-key
// fields. Foreign folder names come back as a single field.
func SplitPublishKey(name string) []string {
	return strings.Split(name, PublishKeySep)
}
