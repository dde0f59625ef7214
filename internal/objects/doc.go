// Package objects is the high-level face of the pipeline: typed wrappers
// around the raw daemon payloads, bound to the folder layout on disk.
//
// A Pipeline value carries the daemon client, cache TTLs and logger, and is
// passed explicitly to everything that needs it; there is no package-level
// singleton. Objects resolve their metadata through the client's cache on
// every read, so a wrapper is always cheap to hold and never stale beyond
// the category TTL.
//
// Objects unknown to the daemon, or created while it is offline, are
// virtual: they carry their own payload, mint their own uuid, and behave
// like daemon-backed objects everywhere except that writes stay local.
package objects
