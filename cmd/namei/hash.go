package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/namei/cmd"
	"github.com/mutagen-io/namei/pkg/naming"
)

// hashMain is the entry point for the hash command.
func hashMain(_ *cobra.Command, arguments []string) error {
	// Compute the directory seed.
	var salt []byte
	if hashConfiguration.volume != "" {
		identifier, err := uuid.Parse(hashConfiguration.volume)
		if err != nil {
			return errors.Wrap(err, "invalid volume UUID")
		}
		salt = identifier[:]
	}
	seed := naming.NewSeed(salt, hashConfiguration.directory)

	// Hash each name.
	mode := hashConfiguration.mode.value()
	for _, argument := range arguments {
		name, err := decodeName(argument, hashConfiguration.escaped)
		if err != nil {
			return err
		} else if err := naming.Validate(name, globalConfiguration.Naming.Strict); err != nil {
			return errors.Wrapf(err, "invalid name %q", name)
		}
		cmd.Println(fmt.Sprintf("%016x  %s", naming.Hash(mode, seed, name), argument))
	}

	// Success.
	return nil
}

// hashCommand is the hash command.
var hashCommand = &cobra.Command{
	Use:          "hash <name>...",
	Short:        "Compute name hashes under a match mode",
	Args:         cmd.RequireArguments(1, -1),
	RunE:         hashMain,
	SilenceUsage: true,
}

// hashConfiguration stores configuration for the hash command.
var hashConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// mode is the match mode.
	mode modeFlag
	// escaped indicates whether or not names contain escape sequences.
	escaped bool
	// directory is the directory identifier used for seeding.
	directory uint64
	// volume is the volume UUID used for seeding.
	volume string
}

func init() {
	// Grab a handle for the command line flags.
	flags := hashCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&hashConfiguration.help, "help", "h", false, "Show help information")

	// Wire up hashing flags.
	addModeFlag(flags, &hashConfiguration.mode)
	flags.BoolVarP(&hashConfiguration.escaped, "escaped", "e", false, "Interpret escape sequences in names")
	flags.Uint64VarP(&hashConfiguration.directory, "directory", "d", 1, "Specify the directory identifier used for seeding")
	flags.StringVar(&hashConfiguration.volume, "volume-uuid", "", "Specify the volume UUID used for seeding")
}
