package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/objlink/pkg/errors"
)

// ConfigureColor applies the output.color config value ("auto", "always"
// or "never") to the process-wide color state, for pterm and lipgloss
// output alike.
func ConfigureColor(mode string) error {
	switch mode {
	case "always":
		pterm.EnableColor()
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "never":
		pterm.DisableColor()
		lipgloss.SetColorProfile(termenv.Ascii)
	case "auto", "":
		if stdoutIsTerminal() {
			pterm.EnableColor()
			lipgloss.SetColorProfile(termenv.ColorProfile())
		} else {
			pterm.DisableColor()
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	default:
		return errors.Newf(errors.ErrInvalidInput,
			"invalid output.color value %q (use \"auto\", \"always\" or \"never\")", mode)
	}
	return nil
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
