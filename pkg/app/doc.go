// Package app provides the operations UIs and CLIs share: loading, recording,
// renaming and deleting events against the remote collection while keeping
// the in-memory state in step.
package app
