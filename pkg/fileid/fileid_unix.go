//go:build unix

package fileid

import (
	"io/fs"
	"syscall"
)

func fromFileInfo(fi fs.FileInfo) (Identity, bool) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return Identity{}, false
	}
	return Identity{Device: uint64(st.Dev), Inode: uint64(st.Ino)}, true
}
