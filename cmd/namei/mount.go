package main

import (
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mutagen-io/namei/cmd"
	"github.com/mutagen-io/namei/pkg/mount"
	"github.com/mutagen-io/namei/pkg/must"
)

// mountMain is the entry point for the mount command.
func mountMain(_ *cobra.Command, arguments []string) error {
	// Load the volume.
	logger := rootLogger.Sublogger("mount")
	namespace, err := loadNamespace(mountConfiguration.manifest, logger)
	if err != nil {
		return err
	}

	// Mount the volume.
	server, err := mount.Mount(mount.Options{
		Mountpoint:      arguments[0],
		Namespace:       namespace,
		EntryTimeout:    globalConfiguration.Mount.EntryTimeout,
		NegativeTimeout: globalConfiguration.Mount.NegativeTimeout,
		AllowOther:      globalConfiguration.Mount.AllowOther || mountConfiguration.allowOther,
		Logger:          logger.Sublogger("fuse"),
	})
	if err != nil {
		return err
	}

	// Serve until the filesystem is unmounted externally or a termination
	// signal is received.
	signalTermination := make(chan os.Signal, 1)
	signal.Notify(signalTermination, cmd.TerminationSignals...)
	served := make(chan struct{})
	go func() {
		server.Wait()
		close(served)
	}()
	select {
	case sig := <-signalTermination:
		logger.Infof("Received %s, unmounting", sig)
		must.Unmount(server, logger)
		<-served
	case <-served:
		logger.Info("Volume unmounted externally")
	}

	// Persist any changes made through the mount.
	if mountConfiguration.save {
		if err := namespace.Volume.Save(mountConfiguration.manifest); err != nil {
			return errors.Wrap(err, "unable to persist volume")
		}
	}

	// Success.
	return nil
}

// mountCommand is the mount command.
var mountCommand = &cobra.Command{
	Use:          "mount <mountpoint>",
	Short:        "Serve a volume manifest over FUSE",
	Args:         cobra.ExactArgs(1),
	Run:          cmd.Mainify(mountMain),
	SilenceUsage: true,
}

// mountConfiguration stores configuration for the mount command.
var mountConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// manifest is the path to the volume manifest.
	manifest string
	// allowOther indicates whether or not other users may access the mount.
	allowOther bool
	// save indicates whether or not the manifest is saved on unmount.
	save bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := mountCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&mountConfiguration.help, "help", "h", false, "Show help information")

	// Wire up mount flags.
	flags.StringVarP(&mountConfiguration.manifest, "manifest", "f", "", "Specify the volume manifest")
	mountCommand.MarkFlagRequired("manifest")
	flags.BoolVar(&mountConfiguration.allowOther, "allow-other", false, "Allow other users to access the mount")
	flags.BoolVar(&mountConfiguration.save, "save", false, "Save the manifest after unmounting")
}
