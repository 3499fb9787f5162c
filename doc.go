// Package caskdb provides a minimal log-structured key-value store
// following the BitCask design: one append-only datafile on disk plus an
// in-memory index (the KeyDir) mapping each key to the location of its
// most recent value.
//
// Example:
//
//	store, err := caskdb.Open("books.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	err = store.Set("othello", "shakespeare")
//	author, err := store.Get("othello")
//
// Keys and values are UTF-8 text. A Store is single-threaded: it must not
// be shared across goroutines.
package caskdb
