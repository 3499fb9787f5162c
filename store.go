package caskdb

import (
	"caskdb/core"
	"caskdb/internal"
)

// Store is a handle to an open key-value store backed by a single
// append-only datafile.
type Store struct {
	ds *core.DiskStore
}

// Open opens (creating if absent) the store datafile at path and rebuilds
// its in-memory index. If the datafile is large, initialisation takes time
// accordingly; the scan is blocking.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := internal.DefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	ds, err := core.Open(path, cfg.Logger, cfg.Registerer)
	if err != nil {
		return nil, err
	}

	return &Store{ds: ds}, nil
}

// Set stores value under key. Both must be valid UTF-8 text.
func (s *Store) Set(key, value string) error {
	return s.ds.Set(key, value)
}

// Get returns the value stored under key, or the empty string when the key
// is unknown.
func (s *Store) Get(key string) (string, error) {
	return s.ds.Get(key)
}

// Close releases the datafile handle. The store must not be used after
// Close.
func (s *Store) Close() error {
	return s.ds.Close()
}
