package objlink

import (
	"bytes"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/objlink/pkg/config"
	"github.com/arthur-debert/objlink/pkg/core"
	"github.com/arthur-debert/objlink/pkg/errors"
	"github.com/arthur-debert/objlink/pkg/fsck"
	"github.com/arthur-debert/objlink/pkg/logging"
	"github.com/arthur-debert/objlink/pkg/scanner"
	"github.com/arthur-debert/objlink/pkg/style"
)

type shareOptions struct {
	paths     []string
	dryRun    bool
	noFsck    bool
	fsckOnly  bool
	noLock    bool
	verbosity int
}

func runShare(cmd *cobra.Command, opts shareOptions) error {
	logger := logging.GetLogger("cmd")

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if err := style.ConfigureColor(cfg.Output.Color); err != nil {
		return err
	}

	logger.Info().
		Strs("paths", opts.paths).
		Bool("dryRun", opts.dryRun).
		Msg("Starting run")

	// Live progress while the tree walk runs; removed once done.
	var observer scanner.Observer
	var spinner *pterm.SpinnerPrinter
	if opts.verbosity >= 1 {
		spinner, _ = pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Scanning...")
		if spinner != nil {
			observer = func(dir string) {
				spinner.UpdateText("Scanning " + dir)
			}
		}
	}

	result, err := core.Run(core.Options{
		Paths:    opts.paths,
		DryRun:   opts.dryRun,
		NoFsck:   opts.noFsck,
		FsckOnly: opts.fsckOnly,
		NoLock:   opts.noLock,
		Config:   cfg,
		Observer: observer,
	})
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrRootNotFound) {
			fmt.Fprintln(cmd.ErrOrStderr(), style.ErrorStyle.Render(err.Error()))
			return &ExitCodeError{Code: core.ExitBadRoot}
		}
		logger.Error().Str("code", string(errors.GetErrorCode(err))).Err(err).Msg("run failed")
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if result.Locked {
		fmt.Fprintf(out, MsgLockSummaryFormat,
			len(result.Repos), len(result.Repos)+result.SkippedBusy, result.SkippedBusy)
	}

	if result.PreFsck != nil {
		printFsckSummary(out, errOut, result.PreFsck)
	}

	if result.FsckOnly {
		fmt.Fprintln(out, MsgFsckOnlyDone)
		return exitFrom(result)
	}

	if result.PreFsckFailed {
		fmt.Fprintln(errOut, style.ErrorStyle.Render(MsgAbortPreFsck))
		return exitFrom(result)
	}

	if len(result.Groups) == 0 {
		fmt.Fprintln(out, MsgNoDuplicates)
	} else if result.DryRun || opts.verbosity >= 1 {
		fmt.Fprintln(out, style.RenderGroups(result.Groups))
	}

	printSummary(out, result)

	for _, failure := range result.Failures {
		st := style.StatusStyle(failure.Status)
		fmt.Fprintf(errOut, "%s: %s - %s\n", st.Sprint(failure.Status.String()), failure.Path, failure.Reason)
	}

	// Never suppressed, whatever the verbosity: each entry is a path that
	// may have lost its content.
	if len(result.RollbackFailures) > 0 {
		fmt.Fprintln(errOut, style.ErrorStyle.Render(MsgRollbackAlert))
		for _, failure := range result.RollbackFailures {
			fmt.Fprintf(errOut, "  %s - %s\n", failure.Path, failure.Reason)
		}
	}

	if result.PostFsck != nil {
		printFsckSummary(out, errOut, result.PostFsck)
	}
	if result.PostFsckFailed {
		fmt.Fprintln(errOut, style.ErrorStyle.Render(MsgPostFsckFail))
	}

	if result.DryRun {
		fmt.Fprintln(out, MsgDryRunNotice)
	}

	return exitFrom(result)
}

func exitFrom(result *core.Result) error {
	if code := result.ExitCode(); code != core.ExitOK {
		return &ExitCodeError{Code: code}
	}
	return nil
}

func printFsckSummary(out, errOut io.Writer, summary *fsck.Summary) {
	for _, r := range summary.Results {
		if r.Success {
			continue
		}
		detail := r.Stderr
		if detail == "" && r.Code != nil {
			detail = fmt.Sprintf("exit code %d", *r.Code)
		}
		fmt.Fprintf(errOut, "fsck failed: %s - %s\n", r.Repo, detail)
	}
	fmt.Fprintf(out, MsgFsckSummaryFormat,
		summary.Total()-summary.Failed(), summary.Total(), summary.Failed())
}

func printSummary(out io.Writer, result *core.Result) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	stats := result.Stats
	table.Append([]string{"Objects scanned", fmt.Sprintf("%d", stats.Objects)})
	table.Append([]string{"Duplicate copies", fmt.Sprintf("%d", stats.Duplicates)})

	if !result.DryRun {
		table.Append([]string{"Replaced", fmt.Sprintf("%d", stats.Replaced)})
		table.Append([]string{"Already linked", fmt.Sprintf("%d", stats.AlreadyLinked)})
		table.Append([]string{"Cross-filesystem", fmt.Sprintf("%d", stats.CrossFilesystem)})
		if stats.RolledBack > 0 {
			table.Append([]string{"Rolled back", fmt.Sprintf("%d", stats.RolledBack)})
		}
		if stats.RollbackFailed > 0 {
			table.Append([]string{"Rollback failed", fmt.Sprintf("%d", stats.RollbackFailed)})
		}
		if stats.Errors > 0 {
			table.Append([]string{"Errors", fmt.Sprintf("%d", stats.Errors)})
		}
	}

	savingsLabel := "Bytes reclaimed (est.)"
	if result.DryRun {
		savingsLabel = "Estimated savings"
	}
	table.SetFooter([]string{savingsLabel, style.FormatSize(stats.BytesSaved)})

	table.Render()
	fmt.Fprintf(out, "\n%s", buf.String())
}
