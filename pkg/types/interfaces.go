package types

import (
	"io/fs"
)

// FS abstracts the filesystem operations objlink performs, allowing tests
// to inject failures at specific steps of the replace protocol.
type FS interface {
	// Stat returns file info, following symlinks
	Stat(name string) (fs.FileInfo, error)

	// Lstat returns file info without following symlinks
	Lstat(name string) (fs.FileInfo, error)

	// ReadDir reads the named directory
	ReadDir(name string) ([]fs.DirEntry, error)

	// Remove removes the named file
	Remove(name string) error

	// Rename renames (moves) oldpath to newpath
	Rename(oldpath, newpath string) error

	// Link creates newname as a hard link to oldname
	Link(oldname, newname string) error
}
