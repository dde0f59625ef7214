// Package versions maintains the version history of a step folder.
//
// Records are derived, never stored: every listing rescans the _versions
// folder and decodes the file names it finds, so the file system is the
// single source of truth. Version numbers within one selector group are
// strictly increasing and never reused, even across restores.
//
// The store assumes a single writer. Two processes incrementing versions
// for the same selector can both read the same latest number and one write
// will silently shadow the other; coordinating concurrent writers is out of
// scope here and belongs to whoever owns the storage root.
package versions
