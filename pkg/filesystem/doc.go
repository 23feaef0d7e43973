// Package filesystem provides types.FS implementations: a direct OS
// filesystem for production use and an afero-backed one so tests can
// run against an in-memory filesystem.
package filesystem
