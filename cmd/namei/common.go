package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mutagen-io/namei/cmd"
	"github.com/mutagen-io/namei/pkg/configuration"
	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/namei"
	"github.com/mutagen-io/namei/pkg/naming"
	"github.com/mutagen-io/namei/pkg/volume"
)

var (
	// globalConfiguration is the loaded global configuration. It is populated
	// by initialize before any command runs.
	globalConfiguration = configuration.Default()
	// rootLogger is the logger from which command loggers derive.
	rootLogger = logging.RootLogger
)

// initialize loads the global configuration and configures output for all
// commands.
func initialize(_ *cobra.Command, _ []string) error {
	// Configure colorized output.
	cmd.ConfigureColor()

	// Skip configuration loading during shell completion.
	if cmd.PerformingShellCompletion {
		return nil
	}

	// Load the global configuration.
	var err error
	if rootConfiguration.configuration != "" {
		globalConfiguration, err = configuration.LoadFromPath(rootConfiguration.configuration)
	} else {
		globalConfiguration, err = configuration.Load()
	}
	if err != nil {
		return errors.Wrap(err, "unable to load global configuration")
	}

	// Configure logging.
	if level := globalConfiguration.Logging.Level; level != nil {
		rootLogger = rootLogger.WithLevel(*level)
	}
	if namei.DebugEnabled && rootLogger.Level() < logging.LevelDebug {
		rootLogger = rootLogger.WithLevel(logging.LevelDebug)
	}

	// Success.
	return nil
}

// modeFlag is a match mode flag whose default comes from the global
// configuration.
type modeFlag struct {
	// mode is the explicitly specified mode.
	mode naming.MatchMode
	// set indicates whether or not the mode was specified.
	set bool
}

// String implements pflag.Value.String.
func (f *modeFlag) String() string {
	if !f.set {
		return ""
	}
	return f.mode.String()
}

// Set implements pflag.Value.Set.
func (f *modeFlag) Set(value string) error {
	if err := f.mode.Set(value); err != nil {
		return err
	}
	f.set = true
	return nil
}

// Type implements pflag.Value.Type.
func (f *modeFlag) Type() string {
	return f.mode.Type()
}

// value returns the effective match mode.
func (f *modeFlag) value() naming.MatchMode {
	if f.set {
		return f.mode
	}
	return globalConfiguration.Naming.Mode
}

// addModeFlag registers a match mode flag.
func addModeFlag(flags *pflag.FlagSet, flag *modeFlag) {
	flags.VarP(flag, "mode", "m", "Specify the match mode (sensitive|insensitive|normalization-insensitive)")
}

// decodeName converts a command line argument into a raw name. If escaped is
// set, Go escape sequences (such as \u0301 or \xff) are interpreted.
func decodeName(argument string, escaped bool) ([]byte, error) {
	if !escaped {
		return []byte(argument), nil
	}
	quoted := `"` + strings.ReplaceAll(argument, `"`, `\"`) + `"`
	unquoted, err := strconv.Unquote(quoted)
	if err != nil {
		return nil, errors.Errorf("invalid escape sequence in %q", argument)
	}
	return []byte(unquoted), nil
}

// formatRunes formats a code point sequence for display.
func formatRunes(runes []rune) string {
	var builder strings.Builder
	for i, r := range runes {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString("U+")
		builder.WriteString(strings.ToUpper(strconv.FormatInt(int64(r), 16)))
	}
	return builder.String()
}

// loadNamespace loads a volume manifest and wraps it in a namespace configured
// from the global configuration.
func loadNamespace(path string, logger *logging.Logger) (*volume.Namespace, error) {
	v, err := volume.Load(path, globalConfiguration.Volume.MaximumManifestSize, logger.Sublogger("volume"))
	if err != nil {
		return nil, err
	}
	return volume.NewNamespace(v, volume.NamespaceOptions{
		Strict:          globalConfiguration.Naming.Strict,
		NegativeEntries: globalConfiguration.Cache.NegativeEntries,
	}, logger), nil
}
