//go:build !unix

package fileid

import (
	"io/fs"
)

// Without stat identity we cannot tell filesystems or hardlinks apart, so
// every pair degrades to "not the same filesystem" and no replacement is
// ever attempted.
func fromFileInfo(_ fs.FileInfo) (Identity, bool) {
	return Identity{}, false
}
