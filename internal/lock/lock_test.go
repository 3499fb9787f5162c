package lock_test

import (
	"path/filepath"
	"testing"

	"caskdb/internal/lock"
)

func TestLockFile(t *testing.T) {
	t.Run("second lock on the same datafile is refused while active", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "books.db")

		f, err := lock.LockFile(path)
		if err != nil {
			t.Fatalf("could not acquire initial lock: %v", err)
		}

		if _, err := lock.LockFile(path); err == nil {
			t.Error("second lock was not supposed to succeed")
		}

		lock.UnlockFile(f)
	})

	t.Run("lock can be re-acquired after release", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "books.db")

		f, err := lock.LockFile(path)
		if err != nil {
			t.Fatalf("could not acquire initial lock: %v", err)
		}
		lock.UnlockFile(f)

		f2, err := lock.LockFile(path)
		if err != nil {
			t.Errorf("lock was supposed to be free again: %v", err)
		}
		lock.UnlockFile(f2)
	})
}
