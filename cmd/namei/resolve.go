package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/namei/cmd"
)

// resolveMain is the entry point for the resolve command.
func resolveMain(_ *cobra.Command, arguments []string) error {
	// Load the volume.
	logger := rootLogger.Sublogger("resolve")
	namespace, err := loadNamespace(resolveConfiguration.manifest, logger)
	if err != nil {
		return err
	}

	// Resolve each path and print the resulting attributes.
	ctx := context.Background()
	for _, path := range arguments {
		id, err := namespace.Resolve(ctx, path)
		if err != nil {
			return errors.Wrapf(err, "unable to resolve %s", path)
		}
		attributes, err := namespace.Volume.Attributes(id)
		if err != nil {
			return errors.Wrapf(err, "unable to query %s", path)
		}
		cmd.Println(fmt.Sprintf("%s: %s %d (mode %#o)", path, attributes.Type, id, attributes.Mode&permissionMask))
	}

	// Success.
	return nil
}

// resolveCommand is the resolve command.
var resolveCommand = &cobra.Command{
	Use:          "resolve <path>...",
	Short:        "Resolve paths within a volume manifest",
	Args:         cmd.RequireArguments(1, -1),
	RunE:         resolveMain,
	SilenceUsage: true,
}

// resolveConfiguration stores configuration for the resolve command.
var resolveConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// manifest is the path to the volume manifest.
	manifest string
}

func init() {
	// Grab a handle for the command line flags.
	flags := resolveCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&resolveConfiguration.help, "help", "h", false, "Show help information")

	// Wire up volume flags.
	flags.StringVarP(&resolveConfiguration.manifest, "manifest", "f", "", "Specify the volume manifest")
	resolveCommand.MarkFlagRequired("manifest")
}
