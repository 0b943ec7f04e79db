// Package scanner walks directory trees, recognizes git object stores and
// turns loose object files into typed records. Unreadable or oddly named
// entries are skipped, never fatal: one racily-deleted file must not abort
// a whole scan.
package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/objlink/pkg/fileid"
	"github.com/arthur-debert/objlink/pkg/logging"
	"github.com/arthur-debert/objlink/pkg/types"
)

const (
	gitDirName     = ".git"
	objectsDirName = "objects"
	packDirName    = "pack"
	infoDirName    = "info"

	fanoutNameLen = 2
	objectNameLen = 38
)

// Observer is notified once per directory visited during a walk. It is
// purely observational and never affects scan results.
type Observer func(dir string)

// Scanner discovers loose object files and repository roots beneath a set
// of search roots.
type Scanner struct {
	fs             types.FS
	followSymlinks bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithFollowSymlinks makes the walk descend into symlinked directories.
// Off by default: a symlinked checkout would be double-counted through
// both names.
func WithFollowSymlinks(follow bool) Option {
	return func(s *Scanner) {
		s.followSymlinks = follow
	}
}

// New creates a Scanner operating on the given filesystem.
func New(fsys types.FS, opts ...Option) *Scanner {
	s := &Scanner{fs: fsys}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks every root and returns a record for each loose object found.
func (s *Scanner) Scan(roots []string, observer Observer) []types.ObjectRecord {
	logger := logging.GetLogger("scanner")

	var records []types.ObjectRecord
	for _, root := range roots {
		s.walkObjectStores(root, observer, func(objectsDir string) {
			records = append(records, s.scanObjectsDir(objectsDir)...)
		})
	}

	logger.Debug().Int("objects", len(records)).Msg("scan finished")
	return records
}

// FindRepositories walks every root and returns the deduplicated, sorted
// set of repository roots (the parent of each .git directory) found.
func (s *Scanner) FindRepositories(roots []string, observer Observer) []string {
	seen := make(map[string]struct{})
	for _, root := range roots {
		s.walkObjectStores(root, observer, func(objectsDir string) {
			gitDir := filepath.Dir(objectsDir)
			seen[filepath.Dir(gitDir)] = struct{}{}
		})
	}

	repos := make([]string, 0, len(seen))
	for repo := range seen {
		repos = append(repos, repo)
	}
	sort.Strings(repos)
	return repos
}

// walkObjectStores recursively visits the tree below root and invokes fn
// for every .git/objects directory. Object stores are not descended into
// by the outer walk; scanObjectsDir owns the two levels beneath them.
func (s *Scanner) walkObjectStores(root string, observer Observer, fn func(objectsDir string)) {
	if observer != nil {
		observer(root)
	}

	if isObjectStore(root) {
		fn(root)
		return
	}

	entries, err := s.fs.ReadDir(root)
	if err != nil {
		// Unreadable directory: skip this subtree
		return
	}

	for _, entry := range entries {
		child := filepath.Join(root, entry.Name())

		if entry.Type()&fs.ModeSymlink != 0 {
			if !s.followSymlinks {
				continue
			}
			fi, err := s.fs.Stat(child)
			if err != nil || !fi.IsDir() {
				continue
			}
		} else if !entry.IsDir() {
			continue
		}

		s.walkObjectStores(child, observer, fn)
	}
}

// scanObjectsDir visits exactly two levels beneath an object store root:
// the fan-out directories, then the object files inside them. The pack and
// info directories hold packed archives and auxiliary indexes, not loose
// objects, and are excluded.
func (s *Scanner) scanObjectsDir(objectsDir string) []types.ObjectRecord {
	fanouts, err := s.fs.ReadDir(objectsDir)
	if err != nil {
		return nil
	}

	var records []types.ObjectRecord
	for _, fanout := range fanouts {
		if !fanout.IsDir() {
			continue
		}
		name := fanout.Name()
		if name == packDirName || name == infoDirName {
			continue
		}

		fanoutDir := filepath.Join(objectsDir, name)
		files, err := s.fs.ReadDir(fanoutDir)
		if err != nil {
			continue
		}

		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if record, ok := s.RecordFromPath(filepath.Join(fanoutDir, file.Name())); ok {
				records = append(records, record)
			}
		}
	}

	return records
}

// RecordFromPath builds an ObjectRecord from a candidate object file path.
// The parent directory name must be exactly 2 hex characters and the file
// name exactly 38; the two concatenate to the 40-character content hash.
// Returns false for anything that is not a loose object or whose metadata
// cannot be read.
func (s *Scanner) RecordFromPath(path string) (types.ObjectRecord, bool) {
	fileName := filepath.Base(path)
	dirName := filepath.Base(filepath.Dir(path))

	if len(dirName) != fanoutNameLen || len(fileName) != objectNameLen {
		return types.ObjectRecord{}, false
	}
	if !isHex(dirName) || !isHex(fileName) {
		return types.ObjectRecord{}, false
	}

	fi, err := s.fs.Stat(path)
	if err != nil {
		return types.ObjectRecord{}, false
	}

	id, _ := fileid.FromFileInfo(fi)

	return types.ObjectRecord{
		Path:    path,
		Hash:    dirName + fileName,
		ModTime: fi.ModTime(),
		Size:    fi.Size(),
		Inode:   id.Inode,
		Device:  id.Device,
	}, true
}

func isObjectStore(dir string) bool {
	return filepath.Base(dir) == objectsDirName &&
		filepath.Base(filepath.Dir(dir)) == gitDirName
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
