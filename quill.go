// Package quill is the root of the quill generator toolkit. Generators are
// assembled from the packages under pkg/; the quill binary in cmd/quill runs
// the built-in inventory generator.
package quill

// Version is the current quill release.
const Version = "0.3.0"
