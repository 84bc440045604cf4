package main

import (
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/mutagen-io/namei/cmd"
	"github.com/mutagen-io/namei/pkg/naming"
)

// normalizeMain is the entry point for the normalize command.
func normalizeMain(_ *cobra.Command, arguments []string) error {
	// Decode the name.
	name, err := decodeName(arguments[0], normalizeConfiguration.escaped)
	if err != nil {
		return err
	}

	// Compute the comparison sequence. Insensitive modes drain a folding
	// cursor so that malformed input can be reported.
	mode := normalizeConfiguration.mode.value()
	var sequence []rune
	var malformed bool
	if mode.Insensitive() {
		cursor := naming.NewCursor(name, true)
		for r, ok := cursor.Next(); ok; r, ok = cursor.Next() {
			sequence = append(sequence, r)
		}
		malformed = cursor.Malformed()
	} else {
		sequence = naming.Normalize(mode, name)
		malformed = !utf8.Valid(name)
	}

	// Print the sequence and warn about malformed input.
	cmd.Println(formatRunes(sequence))
	if malformed {
		cmd.Warning("name contains invalid UTF-8 sequences")
	}

	// Success.
	return nil
}

// normalizeCommand is the normalize command.
var normalizeCommand = &cobra.Command{
	Use:          "normalize <name>",
	Short:        "Show the code point sequence used to compare a name",
	Args:         cobra.ExactArgs(1),
	RunE:         normalizeMain,
	SilenceUsage: true,
}

// normalizeConfiguration stores configuration for the normalize command.
var normalizeConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// mode is the match mode.
	mode modeFlag
	// escaped indicates whether or not names contain escape sequences.
	escaped bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := normalizeCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&normalizeConfiguration.help, "help", "h", false, "Show help information")

	// Wire up normalization flags.
	addModeFlag(flags, &normalizeConfiguration.mode)
	flags.BoolVarP(&normalizeConfiguration.escaped, "escaped", "e", false, "Interpret escape sequences in names")
}
