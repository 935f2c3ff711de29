// Package source reads workflow definitions and node unit files from blob
// storage
//
// Local directories are served through fileblob; any other gocloud.dev
// bucket URL is opened as-is. Every read is scoped to a single call: the
// bucket is opened, read, and closed again
package source
