package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/namei/cmd"
	"github.com/mutagen-io/namei/pkg/naming"
)

// compareMain is the entry point for the compare command.
func compareMain(_ *cobra.Command, arguments []string) error {
	// Decode the names.
	first, err := decodeName(arguments[0], compareConfiguration.escaped)
	if err != nil {
		return err
	}
	second, err := decodeName(arguments[1], compareConfiguration.escaped)
	if err != nil {
		return err
	}

	// Validate the names.
	mode := compareConfiguration.mode.value()
	for _, name := range [][]byte{first, second} {
		if err := naming.Validate(name, globalConfiguration.Naming.Strict); err != nil {
			return errors.Wrapf(err, "invalid name %q", name)
		}
	}

	// Perform the comparison.
	if naming.Equal(mode, first, second) {
		cmd.Println("equal")
	} else {
		cmd.Println("different")
		if compareConfiguration.exitCode {
			return errors.New("names differ")
		}
	}

	// Success.
	return nil
}

// compareCommand is the compare command.
var compareCommand = &cobra.Command{
	Use:          "compare <name> <name>",
	Short:        "Compare two names under a match mode",
	Args:         cobra.ExactArgs(2),
	RunE:         compareMain,
	SilenceUsage: true,
}

// compareConfiguration stores configuration for the compare command.
var compareConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// mode is the match mode.
	mode modeFlag
	// escaped indicates whether or not names contain escape sequences.
	escaped bool
	// exitCode indicates whether or not differing names should fail.
	exitCode bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := compareCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&compareConfiguration.help, "help", "h", false, "Show help information")

	// Wire up comparison flags.
	addModeFlag(flags, &compareConfiguration.mode)
	flags.BoolVarP(&compareConfiguration.escaped, "escaped", "e", false, "Interpret escape sequences in names")
	flags.BoolVar(&compareConfiguration.exitCode, "exit-code", false, "Exit with an error if the names differ")
}
