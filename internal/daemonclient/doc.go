// Package daemonclient talks to the pipeline metadata daemon over TCP: one
// connection per call, one textual query out, one JSON reply back. The
// client fronts the object cache so repeated identity lookups do not each
// cost a network round trip, and it tracks daemon availability: any
// connection refusal or timeout marks the daemon offline and invalidates
// the cached connected status.
//
// Read calls never fail past this boundary; transport problems and
// malformed replies collapse into sentinel replies and empty results.
// Write calls (setData, create) surface errors.
package daemonclient
