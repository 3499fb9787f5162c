package core

// KeyDirEntry represents the in-memory index entry for a single key.
//
// Each entry points at the value payload (not the record start) of the
// latest record written for a key. Older records for the same key remain
// physically present in the datafile as dead space but are never read.
type KeyDirEntry struct {
	ValuePos  int64  // Absolute byte offset of the value payload in the datafile
	ValueSize uint32 // Size of the value in bytes
}

// KeyDir is the in-memory index mapping keys to their latest on-disk
// entries.
//
// It is rebuilt from scratch on every open by scanning the datafile and is
// never persisted in its own serialised form.
type KeyDir map[string]KeyDirEntry
