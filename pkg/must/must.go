// Package must provides helpers for operations whose failures can only be
// logged.
package must

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/namei/pkg/logging"
)

// Close closes a closer, logging any failure.
func Close(c io.Closer, logger *logging.Logger) {
	err := c.Close()
	if err != nil {
		logger.Warnf("Unable to close: %s", err.Error())
	}
}

// OSRemove removes a path, logging any failure.
func OSRemove(name string, logger *logging.Logger) {
	err := os.Remove(name)
	if err != nil {
		logger.Warnf("Unable to remove '%s': %s", name, err.Error())
	}
}

// CommandHelp prints a command's help, logging any failure.
func CommandHelp(c *cobra.Command, logger *logging.Logger) {
	err := c.Help()
	if err != nil {
		logger.Warnf("Unable to help: %s", err.Error())
	}
}

// Unmount unmounts a filesystem server, logging any failure.
func Unmount(u interface{ Unmount() error }, logger *logging.Logger) {
	err := u.Unmount()
	if err != nil {
		logger.Warnf("Unable to unmount: %s", err.Error())
	}
}
