// Package fileid abstracts platform file identity: which filesystem a file
// lives on and whether two paths name the same physical file. On platforms
// without usable identity metadata the predicates report that hardlink
// support is absent rather than guessing.
package fileid

import (
	"io/fs"
)

// Identity is the platform identity of a file: the filesystem it lives on
// and its physical file record on that filesystem.
type Identity struct {
	Device uint64
	Inode  uint64
}

// FromFileInfo extracts the file identity from stat metadata. The second
// return value is false when the platform exposes no identity information.
func FromFileInfo(fi fs.FileInfo) (Identity, bool) {
	return fromFileInfo(fi)
}

// SameFilesystem reports whether both files live on the same filesystem.
// ok is false when identity metadata is unavailable on this platform.
func SameFilesystem(a, b fs.FileInfo) (same, ok bool) {
	ia, okA := fromFileInfo(a)
	ib, okB := fromFileInfo(b)
	if !okA || !okB {
		return false, false
	}
	return ia.Device == ib.Device, true
}

// SamePhysicalFile reports whether both paths name the same physical file,
// meaning they are already hardlinks of each other. ok is false when
// identity metadata is unavailable on this platform.
func SamePhysicalFile(a, b fs.FileInfo) (same, ok bool) {
	ia, okA := fromFileInfo(a)
	ib, okB := fromFileInfo(b)
	if !okA || !okB {
		return false, false
	}
	return ia == ib, true
}
