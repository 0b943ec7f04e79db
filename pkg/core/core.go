// Package core drives a full objlink run: validate roots, lock
// repositories, gate on integrity, scan, group and replace. It returns
// structured results and never prints; presentation belongs to the CLI.
package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/objlink/pkg/config"
	"github.com/arthur-debert/objlink/pkg/dedup"
	"github.com/arthur-debert/objlink/pkg/errors"
	"github.com/arthur-debert/objlink/pkg/filesystem"
	"github.com/arthur-debert/objlink/pkg/fsck"
	"github.com/arthur-debert/objlink/pkg/hardlink"
	"github.com/arthur-debert/objlink/pkg/logging"
	"github.com/arthur-debert/objlink/pkg/repolock"
	"github.com/arthur-debert/objlink/pkg/scanner"
	"github.com/arthur-debert/objlink/pkg/types"
)

// Exit codes expected by callers of the CLI.
const (
	ExitOK       = 0
	ExitBadRoot  = 1
	ExitPreFsck  = 2
	ExitPostFsck = 3
)

// Options configures a run.
type Options struct {
	// Paths are the search roots. Every path must exist.
	Paths []string

	// DryRun computes and reports planned groups without mutating anything
	DryRun bool

	// NoFsck skips both integrity gates
	NoFsck bool

	// FsckOnly runs the integrity check and stops
	FsckOnly bool

	// NoLock skips per-repository locking
	NoLock bool

	// Config provides tuning; defaults are used when nil
	Config *config.Config

	// FS is the filesystem to operate on; the OS filesystem when nil
	FS types.FS

	// Observer receives scan progress, one call per directory visited
	Observer scanner.Observer
}

// Stats tallies the outcome of every replace attempt in a run.
type Stats struct {
	// Objects is the number of loose objects scanned
	Objects int

	// Duplicates is the number of replaceable copies found
	Duplicates int

	Replaced        int
	AlreadyLinked   int
	CrossFilesystem int
	RolledBack      int
	RollbackFailed  int
	Errors          int

	// BytesSaved is the estimated reclaim: duplicate count times object
	// size, summed over all groups
	BytesSaved int64
}

// Failure records one non-success replace outcome for reporting.
type Failure struct {
	Path   string
	Status hardlink.Status
	Reason string
}

// Result is everything a caller needs to report on a run.
type Result struct {
	// Repos are the repository roots in this run's working set
	Repos []string

	// SkippedBusy counts repositories excluded because their lock was held
	SkippedBusy int

	// SkippedConfig counts repositories excluded by a skip=true override
	SkippedConfig int

	// Locked is false when locking was skipped
	Locked bool

	// PreFsck and PostFsck are the gate results, nil when not run
	PreFsck  *fsck.Summary
	PostFsck *fsck.Summary

	// PreFsckFailed means the pre-flight gate failed; nothing was mutated
	PreFsckFailed bool

	// PostFsckFailed means the post-mutation gate failed after changes
	// were applied
	PostFsckFailed bool

	// Groups are the duplicate groups found (the plan, in dry-run mode)
	Groups []types.DuplicateGroup

	// Stats are the run tallies
	Stats Stats

	// RollbackFailures must be surfaced to the user unconditionally: each
	// names a target path that may be missing its content
	RollbackFailures []Failure

	// Failures are the remaining non-success outcomes
	Failures []Failure

	DryRun   bool
	FsckOnly bool
}

// ExitCode maps the result onto the observable exit-code contract.
func (r *Result) ExitCode() int {
	if r.PreFsckFailed {
		return ExitPreFsck
	}
	if r.PostFsckFailed {
		return ExitPostFsck
	}
	return ExitOK
}

// Run executes a full objlink pass over the given roots.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("core")
	defer logging.LogDuration(time.Now(), "run")

	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if len(opts.Paths) == 0 {
		opts.Paths = []string{"."}
	}

	for _, path := range opts.Paths {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrRootNotFound, "path does not exist: %s", path).
				WithDetail("path", path)
		}
	}

	var scanOpts []scanner.Option
	if opts.Config.Scan.FollowSymlinks {
		scanOpts = append(scanOpts, scanner.WithFollowSymlinks(true))
	}
	scan := scanner.New(opts.FS, scanOpts...)

	result := &Result{
		DryRun:   opts.DryRun,
		FsckOnly: opts.FsckOnly,
		Locked:   !opts.NoLock && !opts.Config.Lock.Disable,
	}

	repos := scan.FindRepositories(opts.Paths, opts.Observer)
	logger.Info().Int("repos", len(repos)).Msg("repositories discovered")

	repos, skipped, err := applyRepoOverrides(repos)
	if err != nil {
		return nil, err
	}
	result.SkippedConfig = skipped

	var locks []*repolock.RepoLock
	defer func() {
		for _, lock := range locks {
			_ = lock.Release()
		}
	}()

	if result.Locked {
		for _, repo := range repos {
			lock, err := repolock.Acquire(repo)
			if err != nil {
				if repolock.IsBusy(err) {
					logger.Warn().Str("repo", repo).Msg("lock busy, repository excluded from run")
					result.SkippedBusy++
					continue
				}
				return nil, err
			}
			locks = append(locks, lock)
			result.Repos = append(result.Repos, repo)
		}
	} else {
		logger.Debug().Msg("locking skipped")
		result.Repos = repos
	}

	checker := fsck.New(opts.Config.Fsck.Args)

	if opts.FsckOnly {
		result.PreFsck = checker.RunAll(result.Repos)
		result.PreFsckFailed = !result.PreFsck.AllSuccess()
		return result, nil
	}

	if !opts.NoFsck {
		result.PreFsck = checker.RunAll(result.Repos)
		if !result.PreFsck.AllSuccess() {
			result.PreFsckFailed = true
			logger.Error().Int("failed", result.PreFsck.Failed()).Msg("pre-flight integrity gate failed, aborting")
			return result, nil
		}
	}

	records := scan.Scan(opts.Paths, opts.Observer)
	records = restrictToRepos(records, result.Repos)
	result.Stats.Objects = len(records)
	logger.Info().Int("objects", len(records)).Msg("loose objects scanned")

	replacer := hardlink.New(opts.FS)

	byDevice := dedup.GroupByDevice(records)
	for _, device := range dedup.Devices(byDevice) {
		groups := dedup.FindDuplicates(byDevice[device])
		logger.Debug().Uint64("device", device).Int("groups", len(groups)).Msg("device processed")

		for _, group := range groups {
			result.Groups = append(result.Groups, group)
			result.Stats.Duplicates += len(group.Duplicates)
			result.Stats.BytesSaved += group.Savings()

			if opts.DryRun {
				continue
			}

			for _, dup := range group.Duplicates {
				outcome := replacer.Replace(group.Source.Path, dup.Path)
				tally(result, dup.Path, outcome)
			}
		}
	}

	if !opts.NoFsck && !opts.DryRun {
		result.PostFsck = checker.RunAll(result.Repos)
		if !result.PostFsck.AllSuccess() {
			result.PostFsckFailed = true
			logger.Error().Int("failed", result.PostFsck.Failed()).Msg("post-mutation integrity gate failed")
		}
	}

	return result, nil
}

// applyRepoOverrides drops repositories whose .objlink.toml opts them out.
func applyRepoOverrides(repos []string) ([]string, int, error) {
	logger := logging.GetLogger("core")

	kept := repos[:0]
	skipped := 0
	for _, repo := range repos {
		repoCfg, err := config.LoadRepoConfig(repo)
		if err != nil {
			return nil, 0, err
		}
		if repoCfg.Skip {
			logger.Info().Str("repo", repo).Msg("repository opted out via config")
			skipped++
			continue
		}
		kept = append(kept, repo)
	}
	return kept, skipped, nil
}

// restrictToRepos drops records that belong to repositories outside the
// working set. Without this, objects inside a lock-contended or opted-out
// repository would still be rewritten.
func restrictToRepos(records []types.ObjectRecord, repos []string) []types.ObjectRecord {
	kept := records[:0]
	for _, record := range records {
		for _, repo := range repos {
			if underRoot(record.Path, repo) {
				kept = append(kept, record)
				break
			}
		}
	}
	return kept
}

// underRoot reports whether path lies inside root. A plain prefix check
// would fail for the repo root ".", which a default run from inside a
// repository produces: its record paths carry no "./" prefix.
func underRoot(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func tally(result *Result, path string, outcome hardlink.Outcome) {
	switch outcome.Status {
	case hardlink.StatusReplaced:
		result.Stats.Replaced++
	case hardlink.StatusAlreadyLinked:
		result.Stats.AlreadyLinked++
	case hardlink.StatusCrossFilesystem:
		result.Stats.CrossFilesystem++
	case hardlink.StatusRolledBack:
		result.Stats.RolledBack++
		result.Failures = append(result.Failures, Failure{Path: path, Status: outcome.Status, Reason: outcome.Reason})
	case hardlink.StatusRollbackFailed:
		result.Stats.RollbackFailed++
		result.RollbackFailures = append(result.RollbackFailures, Failure{Path: path, Status: outcome.Status, Reason: outcome.Reason})
	case hardlink.StatusError:
		result.Stats.Errors++
		result.Failures = append(result.Failures, Failure{Path: path, Status: outcome.Status, Reason: outcome.Reason})
	}
}
