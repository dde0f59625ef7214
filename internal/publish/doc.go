// Package publish enumerates the publish snapshot folders of a step.
//
// Each immediate subfolder of _publish holds one exported artifact set and
// is named by its composite key, resource|state|version. Like version
// records, listings are derived by scanning the folder; nothing is stored.
package publish
