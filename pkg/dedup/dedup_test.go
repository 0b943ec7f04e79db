package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/objlink/pkg/types"
)

const (
	hashA = "aabbccddeeff00112233445566778899aabbccdd"
	hashB = "0123456789abcdef0123456789abcdef01234567"
)

func record(path, hash string, device, inode uint64, mtime time.Time) types.ObjectRecord {
	return types.ObjectRecord{
		Path:    path,
		Hash:    hash,
		ModTime: mtime,
		Size:    100,
		Inode:   inode,
		Device:  device,
	}
}

func TestGroupByDevice(t *testing.T) {
	now := time.Now()
	records := []types.ObjectRecord{
		record("/a", hashA, 1, 10, now),
		record("/b", hashA, 2, 11, now),
		record("/c", hashB, 1, 12, now),
	}

	groups := GroupByDevice(records)

	require.Len(t, groups, 2)
	assert.Len(t, groups[1], 2)
	assert.Len(t, groups[2], 1)
	assert.Equal(t, []uint64{1, 2}, Devices(groups))
}

func TestFindDuplicatesPicksOldestAsSource(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []types.ObjectRecord{
		record("/two", hashA, 1, 11, base.Add(time.Hour)),
		record("/one", hashA, 1, 10, base),
		record("/three", hashA, 1, 12, base.Add(2*time.Hour)),
	}

	groups := FindDuplicates(records)

	require.Len(t, groups, 1)
	assert.Equal(t, "/one", groups[0].Source.Path)
	require.Len(t, groups[0].Duplicates, 2)
	assert.Equal(t, "/three", groups[0].Duplicates[0].Path)
	assert.Equal(t, "/two", groups[0].Duplicates[1].Path)
}

func TestFindDuplicatesLargestClusterWins(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	// /lone is the oldest copy but stands alone; /x and /y already share an
	// inode, so their cluster is kept and /lone is the one to relink.
	records := []types.ObjectRecord{
		record("/lone", hashA, 1, 10, base),
		record("/x", hashA, 1, 20, base.Add(time.Hour)),
		record("/y", hashA, 1, 20, base.Add(2*time.Hour)),
	}

	groups := FindDuplicates(records)

	require.Len(t, groups, 1)
	assert.Equal(t, "/x", groups[0].Source.Path, "earliest member of the winning cluster")
	require.Len(t, groups[0].Duplicates, 1)
	assert.Equal(t, "/lone", groups[0].Duplicates[0].Path)
}

func TestFindDuplicatesAllLinkedYieldsNothing(t *testing.T) {
	now := time.Now()
	records := []types.ObjectRecord{
		record("/a", hashA, 1, 10, now),
		record("/b", hashA, 1, 10, now),
		record("/c", hashA, 1, 10, now),
	}

	assert.Empty(t, FindDuplicates(records))
}

func TestFindDuplicatesSingleCopyYieldsNothing(t *testing.T) {
	records := []types.ObjectRecord{
		record("/a", hashA, 1, 10, time.Now()),
		record("/b", hashB, 1, 11, time.Now()),
	}

	assert.Empty(t, FindDuplicates(records))
}

func TestFindDuplicatesSeparateHashes(t *testing.T) {
	now := time.Now()
	records := []types.ObjectRecord{
		record("/a1", hashA, 1, 10, now),
		record("/a2", hashA, 1, 11, now),
		record("/b1", hashB, 1, 12, now),
		record("/b2", hashB, 1, 13, now),
	}

	groups := FindDuplicates(records)

	require.Len(t, groups, 2)
	// groups come back in hash order
	assert.Equal(t, hashB, groups[0].Source.Hash)
	assert.Equal(t, hashA, groups[1].Source.Hash)
}

func TestFindDuplicatesDeterministic(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	// two clusters of equal size and equal mtime: the path tie-break decides
	records := []types.ObjectRecord{
		record("/b", hashA, 1, 21, base),
		record("/a", hashA, 1, 20, base),
	}

	first := FindDuplicates(records)
	require.Len(t, first, 1)
	assert.Equal(t, "/a", first[0].Source.Path)

	for i := 0; i < 20; i++ {
		again := FindDuplicates(records)
		assert.Equal(t, first, again)
	}
}
