package behavior

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/must"
)

// insensitive checks if a filesystem is insensitive to a particular change in a
// name. It creates a temporary file in directory using create as the name
// prefix, then replaces create with check in the generated name and attempts
// to access the file by the resulting name. If the access succeeds, the
// filesystem is insensitive to the replacement. If an error is returned, the
// sensitivity value should not be used.
func insensitive(directory, create, check string, logger *logging.Logger) (bool, error) {
	// Create a temporary file using the creation prefix.
	file, err := os.CreateTemp(directory, create)
	if err != nil {
		return false, errors.Wrap(err, "unable to create test file")
	}

	// Grab the file name. This isn't read from the OS, it's the name computed
	// using the creation prefix, so it won't be changed in any way.
	name := filepath.Base(file.Name())

	// Close and schedule removal of the file.
	must.Close(file, logger)
	defer must.OSRemove(file.Name(), logger)

	// Perform the replacement and try to access the file by that name.
	alternate := filepath.Join(directory, strings.Replace(name, create, check, 1))
	if _, err := os.Lstat(alternate); err == nil {
		return true, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Wrap(err, "unable to query alternate name")
	}

	// We weren't able to access the file by the alternate name, so the system
	// must be sensitive to the replacement.
	return false, nil
}
