// Package app contains the import lifecycle: it loads recorded project
// snapshots, builds the multiplatform model of every project and hands the
// models to the configured publishers, decoupled from any specific
// entrypoint like a CLI.
package app
