package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/namei/cmd"
	"github.com/mutagen-io/namei/pkg/creation"
	"github.com/mutagen-io/namei/pkg/volume"
)

// permissionMask is the mask applied to modes for display.
const permissionMask = 0o7777

// formatEntry formats a listing line for a node.
func formatEntry(path string, attributes volume.Attributes) string {
	var detail string
	switch attributes.Type {
	case creation.TypeSymlink:
		detail = "-> " + attributes.Target
	case creation.TypeCharDevice, creation.TypeBlockDevice:
		detail = fmt.Sprintf("device %d", attributes.Device)
	case creation.TypeDirectory:
		detail = humanize.Comma(int64(attributes.Size)) + " entries"
	default:
		detail = humanize.IBytes(attributes.Size)
	}
	return fmt.Sprintf("%-9s %04o %s (%s)", attributes.Type, attributes.Mode&permissionMask, path, detail)
}

// listMain is the entry point for the list command.
func listMain(_ *cobra.Command, arguments []string) error {
	// Validate the pattern.
	pattern := "**"
	if len(arguments) == 1 {
		pattern = arguments[0]
	}
	if !doublestar.ValidatePattern(pattern) {
		return errors.Errorf("invalid pattern: %s", pattern)
	}

	// Load the volume.
	logger := rootLogger.Sublogger("list")
	v, err := volume.Load(listConfiguration.manifest, globalConfiguration.Volume.MaximumManifestSize, logger)
	if err != nil {
		return err
	}

	// Print matching nodes.
	var matched int
	err = v.Walk(func(path string, attributes volume.Attributes) error {
		if match, err := doublestar.Match(pattern, path); err != nil {
			return errors.Wrap(err, "unable to match path")
		} else if !match {
			return nil
		}
		matched++
		cmd.Println(formatEntry(path, attributes))
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "unable to walk volume")
	}

	// Print a summary.
	if listConfiguration.summary {
		cmd.Println(fmt.Sprintf("%s volume %s: %s of %s nodes matched",
			v.Mode(), v.UUID(), humanize.Comma(int64(matched)), humanize.Comma(int64(v.Len())),
		))
	}

	// Success.
	return nil
}

// listCommand is the list command.
var listCommand = &cobra.Command{
	Use:          "list [<pattern>]",
	Short:        "List the contents of a volume manifest",
	Args:         cmd.RequireArguments(0, 1),
	RunE:         listMain,
	SilenceUsage: true,
}

// listConfiguration stores configuration for the list command.
var listConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// manifest is the path to the volume manifest.
	manifest string
	// summary indicates whether or not to print a summary line.
	summary bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := listCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&listConfiguration.help, "help", "h", false, "Show help information")

	// Wire up listing flags.
	flags.StringVarP(&listConfiguration.manifest, "manifest", "f", "", "Specify the volume manifest")
	listCommand.MarkFlagRequired("manifest")
	flags.BoolVarP(&listConfiguration.summary, "summary", "s", false, "Print a summary line")
}
