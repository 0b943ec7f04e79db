// Package hardlink implements the crash-safe replacement protocol that
// turns a duplicate loose object into a hardlink to its canonical source.
//
// A naive delete-then-link sequence has a window where a failed link loses
// the target for good. The protocol here stages the removal through a
// same-directory rename instead, so the original stays recoverable until
// the new link is confirmed to exist.
package hardlink

import (
	"fmt"

	"github.com/arthur-debert/objlink/pkg/fileid"
	"github.com/arthur-debert/objlink/pkg/logging"
	"github.com/arthur-debert/objlink/pkg/types"
)

// BackupSuffix is appended to the target path to form the sibling backup
// name used while a replacement is in flight.
const BackupSuffix = ".objlink-bak"

// Status classifies the outcome of one replace attempt.
type Status int

const (
	// StatusReplaced means the target is now a hardlink to the source
	StatusReplaced Status = iota

	// StatusAlreadyLinked means source and target already share a physical file
	StatusAlreadyLinked

	// StatusCrossFilesystem means the pair spans filesystems; nothing was mutated
	StatusCrossFilesystem

	// StatusRolledBack means the link failed and the original target was restored
	StatusRolledBack

	// StatusRollbackFailed means the link failed and the restore failed too;
	// the target path may be missing its content
	StatusRollbackFailed

	// StatusError covers every other failure; the target file is intact
	StatusError
)

// String returns the status name used in logs and reports.
func (s Status) String() string {
	switch s {
	case StatusReplaced:
		return "replaced"
	case StatusAlreadyLinked:
		return "already-linked"
	case StatusCrossFilesystem:
		return "cross-filesystem"
	case StatusRolledBack:
		return "rolled-back"
	case StatusRollbackFailed:
		return "rollback-failed"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the result of one replace attempt. Reason is empty for the
// success and no-op statuses.
type Outcome struct {
	Status Status
	Reason string
}

// Replacer executes the hardlink-swap protocol on a filesystem.
type Replacer struct {
	fs types.FS
}

// New creates a Replacer operating on the given filesystem.
func New(fsys types.FS) *Replacer {
	return &Replacer{fs: fsys}
}

// Replace makes target a hardlink to source. Both paths must hold
// identical content (same content hash); the bytes are never compared.
// Whatever happens, a file exists at the target path afterwards unless the
// outcome is StatusRollbackFailed.
func (r *Replacer) Replace(source, target string) Outcome {
	logger := logging.GetLogger("hardlink")

	sourceInfo, err := r.fs.Stat(source)
	if err != nil {
		return Outcome{Status: StatusError, Reason: fmt.Sprintf("stat source: %v", err)}
	}
	targetInfo, err := r.fs.Stat(target)
	if err != nil {
		return Outcome{Status: StatusError, Reason: fmt.Sprintf("stat target: %v", err)}
	}

	// Hardlinks cannot span filesystems. When identity metadata is
	// unavailable we cannot tell, so we refuse rather than guess.
	if same, ok := fileid.SameFilesystem(sourceInfo, targetInfo); !ok || !same {
		return Outcome{Status: StatusCrossFilesystem}
	}

	if same, ok := fileid.SamePhysicalFile(sourceInfo, targetInfo); ok && same {
		return Outcome{Status: StatusAlreadyLinked}
	}

	// Stage the target out of the way. Same-directory rename, so the only
	// failure mode is that nothing has changed yet.
	backup := target + BackupSuffix
	if err := r.fs.Rename(target, backup); err != nil {
		return Outcome{Status: StatusError, Reason: fmt.Sprintf("backup rename: %v", err)}
	}

	if err := r.fs.Link(source, target); err != nil {
		return r.rollback(target, backup, err)
	}

	if err := r.fs.Remove(backup); err != nil {
		// The target is correctly linked; only the backup is left behind.
		logger.Warn().Str("backup", backup).Err(err).Msg("failed to remove backup after link")
		return Outcome{Status: StatusError, Reason: fmt.Sprintf("remove backup: %v", err)}
	}

	logger.Debug().Str("source", source).Str("target", target).Msg("replaced with hardlink")
	return Outcome{Status: StatusReplaced}
}

// rollback restores the backup to the target path after a failed link.
func (r *Replacer) rollback(target, backup string, linkErr error) Outcome {
	logger := logging.GetLogger("hardlink")

	// A failed link may leave a partial regular file at the target path;
	// it has to go before the backup can be renamed back.
	if _, err := r.fs.Lstat(target); err == nil {
		if err := r.fs.Remove(target); err != nil {
			logger.Error().Str("target", target).Err(err).Msg("rollback blocked: cannot remove partial target")
			return Outcome{
				Status: StatusRollbackFailed,
				Reason: fmt.Sprintf("link: %v; remove partial target: %v", linkErr, err),
			}
		}
	}

	if err := r.fs.Rename(backup, target); err != nil {
		logger.Error().Str("target", target).Str("backup", backup).Err(err).Msg("rollback failed: target may be missing")
		return Outcome{
			Status: StatusRollbackFailed,
			Reason: fmt.Sprintf("link: %v; restore backup: %v", linkErr, err),
		}
	}

	logger.Warn().Str("target", target).Err(linkErr).Msg("link failed, original restored")
	return Outcome{Status: StatusRolledBack, Reason: fmt.Sprintf("link: %v", linkErr)}
}
