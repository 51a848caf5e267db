package watcher

import "errors"

var (
	ErrNoRoots         = errors.New("watcher: no language roots configured")
	ErrAlreadyStarted  = errors.New("watcher: already started")
	ErrClosed          = errors.New("watcher: closed")
	ErrInvalidSchedule = errors.New("watcher: invalid schedule")
)
