package types

import (
	"time"
)

// ObjectRecord describes one loose object file on disk. Records are built
// by the scanner from the fan-out layout (<2-hex-dir>/<38-hex-file>) and
// are immutable for the rest of the run.
type ObjectRecord struct {
	// Path is the absolute path of the object file
	Path string

	// Hash is the 40-character content hash, the fan-out directory name
	// concatenated with the file name
	Hash string

	// ModTime is the file's last-modified timestamp
	ModTime time.Time

	// Size is the file size in bytes
	Size int64

	// Inode identifies the physical file record on its filesystem
	Inode uint64

	// Device identifies the filesystem the file lives on
	Device uint64
}

// DuplicateGroup is one content hash with at least one replaceable copy.
// All members share the same hash and device; Duplicates is never empty
// when a group is emitted.
type DuplicateGroup struct {
	// Source is the canonical copy every duplicate will be linked to
	Source ObjectRecord

	// Duplicates are the copies to replace with hardlinks to Source
	Duplicates []ObjectRecord
}

// Savings returns the bytes reclaimed if every duplicate in the group is
// replaced by a hardlink.
func (g DuplicateGroup) Savings() int64 {
	return g.Source.Size * int64(len(g.Duplicates))
}
