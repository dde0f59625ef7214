// Package naming defines the structured identity of pipeline files and the
// codec between identities and canonical file or folder names.
//
// A name encodes, in order: the project short code, an item kind marker
// ("A" for assets, "S" for shots, absent for project-general files), the
// item short name, and optionally a step, a resource, a state code and a
// zero-padded version. Encoding is total and deterministic; decoding is
// tolerant and reports failure instead of guessing.
package naming
