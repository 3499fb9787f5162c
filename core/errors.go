package core

import "errors"

var (
	// ErrCorruptStore indicates that the startup scan found a truncated or
	// malformed record. The open is aborted; the store never skips or
	// repairs corrupt data and offers no partial-open state.
	ErrCorruptStore = errors.New("caskdb: corrupt datafile")

	// ErrWriteFailed indicates that an append failed after a successful
	// encode (disk full, permissions, I/O fault). Writes are not retried;
	// the caller may re-issue the set.
	ErrWriteFailed = errors.New("caskdb: write failed")
)
