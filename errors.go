package gesture

import "errors"

var (
	// ErrInvalidThreshold is returned when an accumulation target is not
	// positive.
	ErrInvalidThreshold = errors.New("gesture: accumulation threshold must be positive")
	// ErrInvalidTrackCount is returned when fewer than two pointers are
	// requested for multi-finger tracking.
	ErrInvalidTrackCount = errors.New("gesture: tracked pointer count must be at least 2")
	// ErrNotRecorded is returned when a snapshot that was never recorded is
	// requested.
	ErrNotRecorded = errors.New("gesture: event not recorded")
	// ErrInvalidPointer is returned when an injected pointer id is outside
	// the polled pointer slots.
	ErrInvalidPointer = errors.New("gesture: pointer id out of range")
)
