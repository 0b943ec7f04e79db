package objlink

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Share identical git loose objects across checkouts via hardlinks"
	MsgVersionShort    = "Print version information"
	MsgGenConfigShort  = "Print the default configuration file"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"

	// Status messages
	MsgDryRunNotice  = "\nDRY RUN MODE - No changes were made"
	MsgNoDuplicates  = "No duplicate objects found."
	MsgFsckOnlyDone  = "Integrity check complete."
	MsgAbortPreFsck  = "Pre-flight integrity check failed; no changes were made."
	MsgPostFsckFail  = "Post-run integrity check failed; review the repositories above."
	MsgRollbackAlert = "ROLLBACK FAILED - the following files may be missing their content:"

	// Summary line formats
	MsgLockSummaryFormat = "Locked %d/%d repositories (busy: %d)\n"
	MsgFsckSummaryFormat = "Integrity check: %d/%d passed (failed: %d)\n"

	// Flag descriptions
	MsgFlagDryRun   = "Preview duplicate groups without changing anything"
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoFsck   = "Skip the integrity checks before and after replacement"
	MsgFlagFsckOnly = "Run the integrity check and exit"
	MsgFlagNoLock   = "Skip per-repository locking (unsafe with concurrent runs)"
)

// MsgRootLong is the root command's long help text.
const MsgRootLong = `objlink reclaims disk space shared by multiple git checkouts on the same
host. It scans for loose objects with identical content hashes, picks one
physical copy per filesystem as the canonical source, and replaces the
other copies with hardlinks to it.

Repositories are protected by an advisory lock while they are rewritten,
and git's own integrity check gates the run before and after mutation.`
