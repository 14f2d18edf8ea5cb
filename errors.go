package hscan

import "errors"

var (
	// ErrScanTerminated is returned when the match handler stops a scan
	// early. It is a deliberate early exit, not an engine fault; matches
	// already delivered remain valid.
	ErrScanTerminated = errors.New("scan terminated by handler")
	// ErrNoPatterns is returned when Compile is invoked with an empty
	// pattern slice.
	ErrNoPatterns = errors.New("no patterns specified")
	// ErrInvalidDatabase is returned for a nil, malformed or foreign
	// database handle.
	ErrInvalidDatabase = errors.New("invalid database")
	// ErrDatabaseClosed is returned when a closed database is used.
	ErrDatabaseClosed = errors.New("database closed")
	// ErrStreamClosed is returned when a stream is used after Close.
	ErrStreamClosed = errors.New("stream closed")
	// ErrInvalidScratch is returned when a nil or freed scratch is used.
	ErrInvalidScratch = errors.New("invalid scratch")
	// ErrScratchUndersized is returned when a scratch has not been
	// allocated or reallocated against a database of sufficient size.
	ErrScratchUndersized = errors.New("scratch too small for database, realloc required")
	// ErrResourceExhausted is returned when an allocation request exceeds
	// the scratch resource limit. The caller may retry after freeing
	// memory or with a smaller database.
	ErrResourceExhausted = errors.New("scratch allocation exceeds resource limit")
)
