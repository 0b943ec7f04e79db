// Package dedup decides which copy of each duplicated loose object survives
// as the canonical source and which copies become hardlink targets.
//
// Records must already be partitioned by device before grouping: hardlinks
// cannot span filesystems, so comparing across devices is never valid.
package dedup

import (
	"sort"

	"github.com/arthur-debert/objlink/pkg/fileid"
	"github.com/arthur-debert/objlink/pkg/logging"
	"github.com/arthur-debert/objlink/pkg/types"
)

// GroupByDevice partitions records by the device they live on.
func GroupByDevice(records []types.ObjectRecord) map[uint64][]types.ObjectRecord {
	groups := make(map[uint64][]types.ObjectRecord)
	for _, record := range records {
		groups[record.Device] = append(groups[record.Device], record)
	}
	return groups
}

// Devices returns the device identifiers of a partition in ascending order,
// so callers can process device groups in a stable order.
func Devices(groups map[uint64][]types.ObjectRecord) []uint64 {
	devices := make([]uint64, 0, len(groups))
	for device := range groups {
		devices = append(devices, device)
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i] < devices[j] })
	return devices
}

// FindDuplicates groups device-scoped records by content hash and returns
// one DuplicateGroup per hash that still has replaceable copies. Hashes
// whose copies already all share one physical file yield no group.
//
// The pass is idempotent: after every duplicate has been replaced, a
// re-scan collapses each hash into a single cluster and nothing is emitted.
func FindDuplicates(records []types.ObjectRecord) []types.DuplicateGroup {
	logger := logging.GetLogger("dedup")

	byHash := make(map[string][]types.ObjectRecord)
	for _, record := range records {
		byHash[record.Hash] = append(byHash[record.Hash], record)
	}

	hashes := make([]string, 0, len(byHash))
	for hash, members := range byHash {
		if len(members) >= 2 {
			hashes = append(hashes, hash)
		}
	}
	sort.Strings(hashes)

	var groups []types.DuplicateGroup
	for _, hash := range hashes {
		if group, ok := selectGroup(byHash[hash]); ok {
			groups = append(groups, group)
		}
	}

	logger.Debug().
		Int("records", len(records)).
		Int("groups", len(groups)).
		Msg("duplicate selection finished")
	return groups
}

// selectGroup picks the source and the replaceable duplicates for one hash.
//
// Members are clustered by physical identity first: copies sharing
// (device, inode) are already the same file on disk. The largest existing
// cluster wins as the source side, so the fewest link operations are needed
// and no existing sharing relationship is broken. Within the winning
// cluster the earliest-modified member is the canonical source. Everything
// outside the winning cluster is a duplicate.
func selectGroup(members []types.ObjectRecord) (types.DuplicateGroup, bool) {
	clusters := make(map[fileid.Identity][]types.ObjectRecord)
	for _, member := range members {
		id := fileid.Identity{Device: member.Device, Inode: member.Inode}
		clusters[id] = append(clusters[id], member)
	}

	// Order each cluster by modification time so the first member is its
	// representative.
	for _, cluster := range clusters {
		sortByAge(cluster)
	}

	var sourceKey fileid.Identity
	var sourceCluster []types.ObjectRecord
	for key, cluster := range clusters {
		if betterCluster(cluster, sourceCluster) {
			sourceKey = key
			sourceCluster = cluster
		}
	}

	var duplicates []types.ObjectRecord
	for key, cluster := range clusters {
		if key == sourceKey {
			continue
		}
		duplicates = append(duplicates, cluster...)
	}

	if len(duplicates) == 0 {
		return types.DuplicateGroup{}, false
	}

	sort.Slice(duplicates, func(i, j int) bool {
		return duplicates[i].Path < duplicates[j].Path
	})

	return types.DuplicateGroup{
		Source:     sourceCluster[0],
		Duplicates: duplicates,
	}, true
}

// betterCluster reports whether candidate should replace current as the
// source cluster. Bigger clusters win; ties break on the representative's
// age, then its path, keeping the choice stable across runs.
func betterCluster(candidate, current []types.ObjectRecord) bool {
	if current == nil {
		return true
	}
	if len(candidate) != len(current) {
		return len(candidate) > len(current)
	}
	a, b := candidate[0], current[0]
	if !a.ModTime.Equal(b.ModTime) {
		return a.ModTime.Before(b.ModTime)
	}
	return a.Path < b.Path
}

func sortByAge(records []types.ObjectRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].ModTime.Equal(records[j].ModTime) {
			return records[i].ModTime.Before(records[j].ModTime)
		}
		return records[i].Path < records[j].Path
	})
}
