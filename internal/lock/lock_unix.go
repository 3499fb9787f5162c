//go:build unix

package lock

import (
	"fmt"
	"os"
	"syscall"
)

// LockFile attempts to acquire an exclusive, non-blocking advisory lock
// guarding the given datafile.
//
// On Unix systems, this uses flock(2) to place an exclusive lock on a
// sibling file named "<path>.lock". If the lock cannot be acquired, the
// datafile is assumed to be in use by another store instance.
//
// The returned file handle must remain open for the duration of the lock.
func LockFile(path string) (*os.File, error) {
	lockFilePath := path + ".lock"

	f, err := os.OpenFile(lockFilePath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("unable to open lock file: %w", err)
	}

	err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("datafile already in use by another store instance")
	}

	return f, nil
}

// UnlockFile releases a datafile lock acquired via LockFile.
//
// On Unix systems, this releases the advisory flock and closes the file.
func UnlockFile(f *os.File) {
	syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	f.Close()
}
