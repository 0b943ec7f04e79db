// Package repolock provides the per-repository mutual exclusion that keeps
// two objlink runs from interleaving the replace protocol on the same
// repository. The lock is advisory: only cooperating processes observe it.
package repolock

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/objlink/pkg/errors"
	"github.com/arthur-debert/objlink/pkg/logging"
)

// LockFileName is the lock marker created inside each repository's object
// store.
const LockFileName = "objlink.lock"

// LockFilePath returns the lock marker path for a repository root.
func LockFilePath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", "objects", LockFileName)
}

// RepoLock is exclusive possession of one repository's mutation right. It
// must be released when the repository's processing ends; if the holding
// process dies first, the OS drops the lock with its last file handle.
type RepoLock struct {
	// Repo is the locked repository root
	Repo string

	// LockPath is the marker file the lock is held on
	LockPath string

	file     *os.File
	released bool
}

// Acquire takes an exclusive, non-blocking lock on the repository's marker
// file, creating it if absent. If another holder exists the returned error
// carries code LOCK_BUSY; there is no waiting or queuing.
func Acquire(repoRoot string) (*RepoLock, error) {
	logger := logging.GetLogger("repolock")

	lockPath := LockFilePath(repoRoot)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLockOpen, "creating lock directory for %s", repoRoot)
	}

	file, err := acquireHandle(lockPath)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("repo", repoRoot).Str("lock", lockPath).Msg("lock acquired")
	return &RepoLock{
		Repo:     repoRoot,
		LockPath: lockPath,
		file:     file,
	}, nil
}

// Release gives up the lock. It is idempotent and safe to defer.
func (l *RepoLock) Release() error {
	if l == nil || l.released {
		return nil
	}
	l.released = true

	logger := logging.GetLogger("repolock")
	logger.Debug().Str("repo", l.Repo).Msg("lock released")
	return releaseHandle(l.file, l.LockPath)
}

// IsBusy reports whether err means the lock is held by someone else.
func IsBusy(err error) bool {
	return errors.IsErrorCode(err, errors.ErrLockBusy)
}
