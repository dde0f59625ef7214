// Package objcache implements the process-wide TTL cache the daemon client
// reads through. Entries are keyed by category and object identifier and
// judged stale purely by elapsed time at read, per call-supplied TTL; there
// is no eviction, so entry count is bounded by the number of distinct
// objects touched in a session.
package objcache
