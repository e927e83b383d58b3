package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// Record operation errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidID     = errors.New("invalid record ID")
	ErrNilRecord     = errors.New("record must not be nil")
	ErrInvalidName   = errors.New("name must not be empty")
	ErrInvalidStatus = errors.New("invalid status value")
	ErrInvalidDate   = errors.New("invalid event date")
	ErrNoDetails     = errors.New("event requires at least one detail")
	ErrLifecycleXP   = errors.New("resurrect and death events cannot carry experience")
)

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data dir must not be empty")
)
