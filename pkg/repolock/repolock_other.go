//go:build !unix

package repolock

import (
	"os"

	"github.com/arthur-debert/objlink/pkg/errors"
)

// Without flock the marker file itself is the lock: create-if-absent
// exclusive. This protects cooperating objlink runs only; a process killed
// before Release leaves the marker behind and the next run reports busy
// until it is removed by hand.
func acquireHandle(lockPath string) (*os.File, error) {
	file, err := os.OpenFile(lockPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, errors.Wrapf(err, errors.ErrLockBusy, "lock marker exists: %s", lockPath)
		}
		return nil, errors.Wrapf(err, errors.ErrLockOpen, "creating lock marker %s", lockPath)
	}
	return file, nil
}

func releaseHandle(file *os.File, lockPath string) error {
	_ = file.Close()
	return os.Remove(lockPath)
}
