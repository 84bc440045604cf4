package filesystem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const (
	// GlobalConfigurationName is the name of the global configuration file
	// inside the user's home directory.
	GlobalConfigurationName = ".namei.yml"
)

// ExpandHome expands a leading tilde in a path to the current user's home
// directory. Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "unable to compute path to home directory")
	}
	return filepath.Join(home, path[1:]), nil
}
