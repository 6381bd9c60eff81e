// Package mmfile provides platform-specific helpers for mapping memory dump
// files used as offline snapshots of a host process.
package mmfile
