// Package config loads and validates the TOML configuration consumed by the
// operator CLI. Library packages never read configuration themselves; they
// take their parameters explicitly and this package translates the file
// into those parameters in one place.
package config
