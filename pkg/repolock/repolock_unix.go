//go:build unix

package repolock

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/arthur-debert/objlink/pkg/errors"
)

// acquireHandle opens the marker file and takes a non-blocking exclusive
// flock on it. The lock lives as long as the file handle: the kernel drops
// it when the last handle closes, so a crashed holder never leaves a stale
// lock behind.
func acquireHandle(lockPath string) (*os.File, error) {
	file, err := os.OpenFile(lockPath, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLockOpen, "opening lock file %s", lockPath)
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = file.Close()
		if err == unix.EWOULDBLOCK || err == unix.EAGAIN {
			return nil, errors.Wrapf(err, errors.ErrLockBusy, "lock held by another process: %s", lockPath)
		}
		return nil, errors.Wrapf(err, errors.ErrLockOpen, "locking %s", lockPath)
	}

	return file, nil
}

func releaseHandle(file *os.File, _ string) error {
	_ = unix.Flock(int(file.Fd()), unix.LOCK_UN)
	return file.Close()
}
