//go:build windows

package lock

import (
	"fmt"
	"os"
)

// LockFile attempts to acquire an exclusive lock guarding the given
// datafile.
//
// On Windows, this is implemented by atomically creating a sibling file
// named "<path>.lock". If the file already exists, the datafile is assumed
// to be in use by another store instance.
//
// The returned file handle must be kept open for the duration of the lock.
func LockFile(path string) (*os.File, error) {
	lockFilePath := path + ".lock"

	f, err := os.OpenFile(lockFilePath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("datafile already in use by another store instance")
	}

	return f, nil
}

// UnlockFile releases a datafile lock acquired via LockFile.
//
// On Windows, this removes the lock file from disk. UnlockFile should be
// called exactly once for each successful LockFile call.
func UnlockFile(f *os.File) {
	name := f.Name()
	f.Close()
	os.Remove(name)
}
