package source

import "errors"

// Sentinel errors for source discovery. They are wrapped as causes of
// classified errors so callers can use errors.Is.
var (
	// ErrRootNotFound indicates the source root does not exist.
	ErrRootNotFound = errors.New("source root not found")

	// ErrRootNotDirectory indicates the source root is not a directory.
	ErrRootNotDirectory = errors.New("source root is not a directory")

	// ErrWalkFailed indicates filesystem traversal of the source tree failed.
	ErrWalkFailed = errors.New("source directory walk failed")

	// ErrOutsideRoot indicates a file path does not lie under the source root.
	ErrOutsideRoot = errors.New("path is not under source root")
)
