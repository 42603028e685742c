package scan

import "errors"

// Sentinel errors for package scan.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrRootNotDirectory  = errors.New("scan root is not a directory")
	ErrUnexpectedSymlink = errors.New("expected file, got symlink")
)
