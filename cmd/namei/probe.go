package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/namei/cmd"
	"github.com/mutagen-io/namei/pkg/filesystem/behavior"
)

// probeMain is the entry point for the probe command.
func probeMain(_ *cobra.Command, arguments []string) error {
	// Determine the directory.
	directory := "."
	if len(arguments) == 1 {
		directory = arguments[0]
	}

	// Convert the probe mode default.
	probeMode := probeConfiguration.probeMode
	if probeMode.IsDefault() {
		probeMode = behavior.ProbeModeProbe
	}

	// Probe the match mode.
	logger := rootLogger.Sublogger("probe")
	mode, probed, err := behavior.ProbeMatchMode(directory, probeMode, logger)
	if err != nil {
		return errors.Wrapf(err, "unable to probe %s", directory)
	}

	// Print the result.
	source := "probed"
	if !probed {
		source = "assumed"
	}
	cmd.Println(fmt.Sprintf("%s (%s, %s)", mode, mode.Description(), source))

	// Success.
	return nil
}

// probeCommand is the probe command.
var probeCommand = &cobra.Command{
	Use:          "probe [<directory>]",
	Short:        "Determine the match mode of a host directory",
	Args:         cmd.RequireArguments(0, 1),
	RunE:         probeMain,
	SilenceUsage: true,
}

// probeConfiguration stores configuration for the probe command.
var probeConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// probeMode is the probing behavior.
	probeMode behavior.ProbeMode
}

func init() {
	// Grab a handle for the command line flags.
	flags := probeCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&probeConfiguration.help, "help", "h", false, "Show help information")

	// Wire up probing flags.
	flags.Var(&probeConfiguration.probeMode, "probe-mode", "Specify the probing behavior (probe|assume)")
}
