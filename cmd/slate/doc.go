// Command slate is the operator CLI for the pipeline file layer: daemon
// status, version and publish listings, restores, and save-path resolution.
// It is a thin shell over the internal packages; no pipeline logic lives
// here.
package main
