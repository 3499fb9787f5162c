package core

import (
	"fmt"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"caskdb/internal/lock"
	"caskdb/internal/record"
)

// DiskStore is a log-structured hash table as described in the BitCask
// paper. Records are only ever appended to a single datafile, like a log,
// and an in-memory KeyDir maps each key to the byte location of its most
// recent value. Reads cost one positioned read; writes cost one append.
//
// DiskStore is strictly single-threaded: no locking discipline exists
// around the keyDir/offset pair, and callers must not share an instance
// across goroutines.
type DiskStore struct {
	file     *os.File
	lockFile *os.File
	keyDir   KeyDir
	offset   int64 // next append position, always the end of the datafile
	logger   log.Logger
	metrics  *storeMetrics
}

// Open opens (creating if absent) the datafile at path and rebuilds the
// KeyDir from its records.
//
// The scan is blocking and proportional to the number of records; the
// store is unusable until it completes. A datafile containing a truncated
// or malformed record fails the open with ErrCorruptStore.
func Open(path string, logger log.Logger, registerer prometheus.Registerer) (*DiskStore, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	lf, err := lock.LockFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		lock.UnlockFile(lf)
		return nil, err
	}

	ds := &DiskStore{
		file:     f,
		lockFile: lf,
		keyDir:   make(KeyDir),
		logger:   logger,
		metrics:  newStoreMetrics(registerer),
	}

	if err := ds.loadKeyDir(); err != nil {
		f.Close()
		lock.UnlockFile(lf)
		return nil, err
	}

	ds.metrics.keys.Set(float64(len(ds.keyDir)))
	level.Debug(logger).Log("msg", "store opened", "path", path, "keys", len(ds.keyDir), "bytes", ds.offset)

	return ds, nil
}

// loadKeyDir rebuilds the in-memory index with one sequential scan of the
// datafile, stopping when the running byte counter reaches the file size.
func (ds *DiskStore) loadKeyDir() error {
	info, err := ds.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()

	header := make([]byte, record.HeaderSize)
	var pos int64

	for pos < size {
		if size-pos < record.HeaderSize {
			return fmt.Errorf("%w: truncated header at offset %d", ErrCorruptStore, pos)
		}
		if _, err := ds.file.ReadAt(header, pos); err != nil {
			return fmt.Errorf("%w: reading header at offset %d: %v", ErrCorruptStore, pos, err)
		}

		_, keySize, valueSize, err := record.DecodeHeader(header)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptStore, err)
		}

		total := int64(record.HeaderSize) + int64(keySize) + int64(valueSize)
		if size-pos < total {
			return fmt.Errorf("%w: truncated record at offset %d", ErrCorruptStore, pos)
		}

		data := make([]byte, total)
		if _, err := ds.file.ReadAt(data, pos); err != nil {
			return fmt.Errorf("%w: reading record at offset %d: %v", ErrCorruptStore, pos, err)
		}

		rec, err := record.Decode(data)
		if err != nil {
			return fmt.Errorf("%w: record at offset %d: %v", ErrCorruptStore, pos, err)
		}

		ds.keyDir[rec.Key] = KeyDirEntry{
			ValuePos:  pos + int64(record.HeaderSize) + int64(keySize),
			ValueSize: valueSize,
		}

		pos += total
	}

	ds.offset = size
	return nil
}

// Set appends a record for key at the end of the datafile and points the
// KeyDir at its value payload. Overwriting an existing key appends a brand
// new record; the old bytes become dead space and are never rewritten.
func (ds *DiskStore) Set(key, value string) error {
	timestamp := uint32(time.Now().Unix())

	total, data, err := record.Encode(timestamp, key, value)
	if err != nil {
		return err
	}

	if _, err := ds.file.WriteAt(data, ds.offset); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	ds.keyDir[key] = KeyDirEntry{
		ValuePos:  ds.offset + int64(total) - int64(len(value)),
		ValueSize: uint32(len(value)),
	}
	ds.offset += int64(total)

	ds.metrics.sets.Inc()
	ds.metrics.bytesAppended.Add(float64(total))
	ds.metrics.keys.Set(float64(len(ds.keyDir)))

	return nil
}

// Get returns the value stored for key.
//
// An unknown key yields the empty string with no error, indistinguishable
// from a stored empty value.
func (ds *DiskStore) Get(key string) (string, error) {
	ds.metrics.gets.Inc()

	entry, ok := ds.keyDir[key]
	if !ok {
		return "", nil
	}

	value := make([]byte, entry.ValueSize)
	if _, err := ds.file.ReadAt(value, entry.ValuePos); err != nil {
		return "", err
	}

	return string(value), nil
}

// Close releases the datafile handle and the single-writer lock. The store
// must not be used afterwards; operations on a closed store surface the
// underlying os.ErrClosed.
func (ds *DiskStore) Close() error {
	err := ds.file.Close()

	if ds.lockFile != nil {
		lock.UnlockFile(ds.lockFile)
		ds.lockFile = nil
	}

	level.Debug(ds.logger).Log("msg", "store closed", "keys", len(ds.keyDir))
	return err
}
