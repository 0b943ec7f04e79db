package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arthur-debert/objlink/cmd/objlink"
	"github.com/arthur-debert/objlink/pkg/style"
)

func main() {
	rootCmd := objlink.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var exitErr *objlink.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
