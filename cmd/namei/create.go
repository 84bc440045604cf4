package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/namei/cmd"
	"github.com/mutagen-io/namei/pkg/creation"
	"github.com/mutagen-io/namei/pkg/volume"
)

// createMain is the entry point for the create command.
func createMain(_ *cobra.Command, arguments []string) error {
	logger := rootLogger.Sublogger("create")
	path := createConfiguration.manifest

	// Load the volume, initializing a new one if the manifest doesn't exist.
	var namespace *volume.Namespace
	if _, err := os.Stat(path); os.IsNotExist(err) && createConfiguration.initialize {
		v, err := volume.New(uuid.Nil, createConfiguration.matchMode.value(), logger.Sublogger("volume"))
		if err != nil {
			return errors.Wrap(err, "unable to create volume")
		}
		namespace = volume.NewNamespace(v, volume.NamespaceOptions{
			Strict:          globalConfiguration.Naming.Strict,
			NegativeEntries: globalConfiguration.Cache.NegativeEntries,
		}, logger)
		logger.Infof("Initialized %s volume %s", v.Mode(), v.UUID())
	} else if createConfiguration.matchMode.set {
		return errors.New("match mode can only be specified when initializing a volume")
	} else if namespace, err = loadNamespace(path, logger); err != nil {
		return err
	}

	// Parse permissions.
	var permissions volume.Permissions
	if createConfiguration.permissions != "" {
		if err := permissions.UnmarshalText([]byte(createConfiguration.permissions)); err != nil {
			return errors.Wrap(err, "invalid permissions")
		}
	} else if createConfiguration.kind == creation.TypeDirectory {
		permissions = 0o755
	} else {
		permissions = 0o644
	}

	// Validate type-specific flags.
	if createConfiguration.target != "" && createConfiguration.kind != creation.TypeSymlink {
		return errors.New("target can only be specified for symbolic links")
	} else if createConfiguration.device != 0 &&
		createConfiguration.kind != creation.TypeCharDevice &&
		createConfiguration.kind != creation.TypeBlockDevice {
		return errors.New("device can only be specified for device nodes")
	}

	// Create the node.
	ctx := context.Background()
	id, err := namespace.Create(ctx, arguments[0], volume.CreateOptions{
		Type:        createConfiguration.kind,
		Permissions: uint32(permissions),
		Device:      createConfiguration.device,
		Target:      createConfiguration.target,
	})
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", arguments[0])
	}

	// Save the manifest.
	if err := namespace.Volume.Save(path); err != nil {
		return err
	}
	cmd.Println(fmt.Sprintf("Created %s %s (%d)", createConfiguration.kind, arguments[0], id))

	// Success.
	return nil
}

// createCommand is the create command.
var createCommand = &cobra.Command{
	Use:          "create <path>",
	Short:        "Create a node within a volume manifest",
	Args:         cobra.ExactArgs(1),
	RunE:         createMain,
	SilenceUsage: true,
}

// createConfiguration stores configuration for the create command.
var createConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// manifest is the path to the volume manifest.
	manifest string
	// initialize indicates whether or not a missing manifest should be
	// initialized.
	initialize bool
	// matchMode is the match mode for an initialized volume.
	matchMode modeFlag
	// kind is the node type.
	kind creation.NodeType
	// permissions are the permission bits in octal.
	permissions string
	// target is the symbolic link target.
	target string
	// device is the device number.
	device uint64
}

func init() {
	// Grab a handle for the command line flags.
	flags := createCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&createConfiguration.help, "help", "h", false, "Show help information")

	// Wire up volume flags.
	flags.StringVarP(&createConfiguration.manifest, "manifest", "f", "", "Specify the volume manifest")
	createCommand.MarkFlagRequired("manifest")
	flags.BoolVarP(&createConfiguration.initialize, "init", "i", false, "Initialize the manifest if it doesn't exist")
	flags.Var(&createConfiguration.matchMode, "match-mode", "Specify the match mode for an initialized volume")

	// Wire up node flags.
	flags.VarP(&createConfiguration.kind, "type", "t", "Specify the node type (file|directory|symlink|char|block|fifo|socket)")
	flags.StringVarP(&createConfiguration.permissions, "mode", "m", "", "Specify the permission bits in octal")
	flags.StringVar(&createConfiguration.target, "target", "", "Specify the symbolic link target")
	flags.Uint64Var(&createConfiguration.device, "device", 0, "Specify the device number")
}
