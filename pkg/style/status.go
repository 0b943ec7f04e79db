package style

import (
	"github.com/pterm/pterm"

	"github.com/arthur-debert/objlink/pkg/hardlink"
)

// StatusStyle returns the pterm style used to render a replace outcome.
func StatusStyle(status hardlink.Status) *pterm.Style {
	switch status {
	case hardlink.StatusReplaced:
		return pterm.NewStyle(pterm.FgGreen)
	case hardlink.StatusAlreadyLinked:
		return pterm.NewStyle(pterm.FgGray)
	case hardlink.StatusCrossFilesystem:
		return pterm.NewStyle(pterm.FgYellow)
	case hardlink.StatusRolledBack:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case hardlink.StatusRollbackFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgRed)
	}
}
