package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// StandardOutputIsTerminal indicates whether or not standard output is a
// terminal.
func StandardOutputIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ConfigureColor enables or disables colorized output. Color is disabled when
// standard output isn't a terminal or when the NO_COLOR environment variable is
// set.
func ConfigureColor() {
	if _, disable := os.LookupEnv("NO_COLOR"); disable || !StandardOutputIsTerminal() {
		color.NoColor = true
	}
}
