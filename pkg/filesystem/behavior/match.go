package behavior

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/mutagen-io/namei/pkg/filesystem"
	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/naming"
)

const (
	// caseProbePrefix is the name prefix used for case sensitivity probes.
	caseProbePrefix = filesystem.TemporaryNamePrefix + "case-test-Ab"
	// caseCheckPrefix is the case-swapped equivalent of caseProbePrefix.
	caseCheckPrefix = filesystem.TemporaryNamePrefix + "case-test-aB"
	// composedProbePrefix is the name prefix used for normalization probes. It
	// is in NFC form.
	composedProbePrefix = filesystem.TemporaryNamePrefix + "unicode-test-\xc3\xa9ntry"
	// decomposedCheckPrefix is the NFD equivalent of composedProbePrefix.
	decomposedCheckPrefix = filesystem.TemporaryNamePrefix + "unicode-test-\x65\xcc\x81ntry"
)

// assumedMatchMode returns the match mode assumed for the host platform's
// default filesystem.
func assumedMatchMode() naming.MatchMode {
	switch runtime.GOOS {
	case "darwin", "ios":
		return naming.NormalizationInsensitive
	case "windows":
		return naming.CaseInsensitive
	default:
		return naming.Sensitive
	}
}

// ProbeMatchMode determines the match mode that corresponds to the name
// comparison behavior of the filesystem containing the specified directory.
// The second value returned indicates whether or not probe files were used.
// Filesystems that are normalization-insensitive but case-sensitive have no
// corresponding match mode and are reported as Sensitive.
func ProbeMatchMode(directory string, probeMode ProbeMode, logger *logging.Logger) (naming.MatchMode, bool, error) {
	// Check the probing mode and see if we can return an assumption.
	if probeMode == ProbeModeAssume {
		return assumedMatchMode(), false, nil
	} else if !probeMode.Supported() {
		panic("invalid probe mode")
	}

	// Probe case sensitivity.
	caseInsensitive, err := insensitive(directory, caseProbePrefix, caseCheckPrefix, logger)
	if err != nil {
		return naming.Sensitive, true, errors.Wrap(err, "unable to probe case sensitivity")
	}

	// Probe normalization sensitivity.
	normalizationInsensitive, err := insensitive(directory, composedProbePrefix, decomposedCheckPrefix, logger)
	if err != nil {
		return naming.Sensitive, true, errors.Wrap(err, "unable to probe normalization sensitivity")
	}
	logger.Debugf("Probed %s: case-insensitive=%t, normalization-insensitive=%t",
		directory, caseInsensitive, normalizationInsensitive,
	)

	// Compute the corresponding mode.
	switch {
	case caseInsensitive && normalizationInsensitive:
		return naming.NormalizationInsensitive, true, nil
	case caseInsensitive:
		return naming.CaseInsensitive, true, nil
	default:
		return naming.Sensitive, true, nil
	}
}
