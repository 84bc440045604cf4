package configuration

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mutagen-io/namei/pkg/filesystem"
)

const (
	// pathEnvironmentVariable is the environment variable that overrides the
	// global configuration path.
	pathEnvironmentVariable = "NAMEI_CONFIG"
)

// GlobalConfigurationPath returns the path of the YAML-based global
// configuration file. It does not verify that the file exists.
func GlobalConfigurationPath() (string, error) {
	// Check for an override.
	if path := os.Getenv(pathEnvironmentVariable); path != "" {
		return filesystem.ExpandHome(path)
	}

	// Compute the path to the user's home directory.
	homeDirectoryPath, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to compute path to home directory")
	}

	// Success.
	return filepath.Join(homeDirectoryPath, filesystem.GlobalConfigurationName), nil
}
