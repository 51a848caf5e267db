package health

import "errors"

// Sentinel errors for the health package.
var (
	// ErrCheckFailed is returned when one or more health checks fail.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrDirMissing is returned by DirCheck when the directory is absent.
	ErrDirMissing = errors.New("health: directory missing")
)
