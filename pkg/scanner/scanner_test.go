package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/objlink/pkg/filesystem"
)

const (
	hashA = "aabbccddeeff00112233445566778899aabbccdd"
	hashB = "0123456789abcdef0123456789abcdef01234567"
)

// makeRepo creates <root>/<name>/.git/objects and returns the repo root.
func makeRepo(t *testing.T, root, name string) string {
	t.Helper()
	repo := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git", "objects"), 0o755))
	return repo
}

// writeObject places a loose object file for hash inside repo and returns
// its path.
func writeObject(t *testing.T, repo, hash, content string) string {
	t.Helper()
	dir := filepath.Join(repo, ".git", "objects", hash[:2])
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, hash[2:])
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanFindsLooseObjects(t *testing.T) {
	root := t.TempDir()
	repo := makeRepo(t, root, "proj")
	pathA := writeObject(t, repo, hashA, "blob a")
	pathB := writeObject(t, repo, hashB, "blob b")

	records := New(filesystem.NewOS()).Scan([]string{root}, nil)

	require.Len(t, records, 2)
	byPath := make(map[string]string)
	for _, r := range records {
		byPath[r.Path] = r.Hash
		assert.NotZero(t, r.Size)
		assert.False(t, r.ModTime.IsZero())
	}
	assert.Equal(t, hashA, byPath[pathA])
	assert.Equal(t, hashB, byPath[pathB])
}

func TestScanExcludesPackAndInfo(t *testing.T) {
	root := t.TempDir()
	repo := makeRepo(t, root, "proj")
	writeObject(t, repo, hashA, "blob a")

	objects := filepath.Join(repo, ".git", "objects")
	for _, sub := range []string{"pack", "info"} {
		dir := filepath.Join(objects, sub)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		// 2+38 hex layout inside pack/info must still be ignored
		require.NoError(t, os.MkdirAll(filepath.Join(dir, hashA[:2]), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, hashA[:2], hashA[2:]), []byte("x"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pack-1234.idx"), []byte("x"), 0o644))
	}

	records := New(filesystem.NewOS()).Scan([]string{root}, nil)
	require.Len(t, records, 1)
	assert.Equal(t, hashA, records[0].Hash)
}

func TestScanSkipsNonObjectNames(t *testing.T) {
	root := t.TempDir()
	repo := makeRepo(t, root, "proj")
	keep := writeObject(t, repo, hashA, "blob a")

	objects := filepath.Join(repo, ".git", "objects")
	fanout := filepath.Join(objects, hashA[:2])
	// wrong length, non-hex and in-flight backup names share the fan-out dir
	require.NoError(t, os.WriteFile(filepath.Join(fanout, "tmp_obj_123"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(fanout, hashA[2:]+".objlink-bak"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(objects, "zz-not-hex"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(objects, "zz-not-hex", hashA[2:]), []byte("x"), 0o644))

	records := New(filesystem.NewOS()).Scan([]string{root}, nil)
	require.Len(t, records, 1)
	assert.Equal(t, keep, records[0].Path)
}

func TestScanMultipleRepositories(t *testing.T) {
	root := t.TempDir()
	writeObject(t, makeRepo(t, root, "one"), hashA, "blob")
	writeObject(t, makeRepo(t, filepath.Join(root, "nested"), "two"), hashA, "blob")

	records := New(filesystem.NewOS()).Scan([]string{root}, nil)
	assert.Len(t, records, 2)
}

func TestFindRepositories(t *testing.T) {
	root := t.TempDir()
	repoB := makeRepo(t, root, "beta")
	repoA := makeRepo(t, root, "alpha")
	writeObject(t, repoA, hashA, "blob")
	writeObject(t, repoB, hashB, "blob")

	// the same root twice must not duplicate repos
	repos := New(filesystem.NewOS()).FindRepositories([]string{root, root}, nil)

	assert.Equal(t, []string{repoA, repoB}, repos)
}

func TestScanObserverSeesDirectories(t *testing.T) {
	root := t.TempDir()
	writeObject(t, makeRepo(t, root, "proj"), hashA, "blob")

	var visited []string
	New(filesystem.NewOS()).Scan([]string{root}, func(dir string) {
		visited = append(visited, dir)
	})

	require.NotEmpty(t, visited)
	assert.Equal(t, root, visited[0])
}

func TestScanSymlinkedDirectories(t *testing.T) {
	real := t.TempDir()
	writeObject(t, makeRepo(t, real, "proj"), hashA, "blob")

	root := t.TempDir()
	link := filepath.Join(root, "linked")
	require.NoError(t, os.Symlink(real, link))

	records := New(filesystem.NewOS()).Scan([]string{root}, nil)
	assert.Empty(t, records, "symlinked trees are skipped by default")

	records = New(filesystem.NewOS(), WithFollowSymlinks(true)).Scan([]string{root}, nil)
	assert.Len(t, records, 1)
}

func TestScanUnreadableRootIsEmpty(t *testing.T) {
	records := New(filesystem.NewOS()).Scan([]string{filepath.Join(t.TempDir(), "missing")}, nil)
	assert.Empty(t, records)
}

func TestRecordFromPath(t *testing.T) {
	root := t.TempDir()
	repo := makeRepo(t, root, "proj")
	path := writeObject(t, repo, hashA, "blob a")
	s := New(filesystem.NewOS())

	record, ok := s.RecordFromPath(path)
	require.True(t, ok)
	assert.Equal(t, hashA, record.Hash)
	assert.Equal(t, int64(len("blob a")), record.Size)
	assert.NotZero(t, record.Inode)

	tests := []struct {
		name string
		path string
	}{
		{"fan-out dir too long", filepath.Join(root, "abc", hashA[2:])},
		{"file name too short", filepath.Join(root, hashA[:2], "abcdef")},
		{"non-hex fan-out dir", filepath.Join(root, "zz", hashA[2:])},
		{"non-hex file name", filepath.Join(root, hashA[:2], "zz345678901234567890123456789012345678")},
		{"valid name, missing file", filepath.Join(root, hashB[:2], hashB[2:])},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := s.RecordFromPath(tt.path)
			assert.False(t, ok)
		})
	}
}
