// Package behavior provides facilities for determining how a host filesystem
// compares names.
package behavior

import (
	"github.com/pkg/errors"
)

// ProbeMode specifies how filesystem behavior is determined.
type ProbeMode uint8

const (
	// ProbeModeDefault represents an unspecified probe mode. It should be
	// converted to one of the following values based on the desired default
	// behavior.
	ProbeModeDefault ProbeMode = iota
	// ProbeModeProbe specifies that filesystem behavior should be determined
	// using temporary files.
	ProbeModeProbe
	// ProbeModeAssume specifies that filesystem behavior should be assumed
	// based on the host platform.
	ProbeModeAssume
)

// IsDefault indicates whether or not the probe mode is ProbeModeDefault.
func (m ProbeMode) IsDefault() bool {
	return m == ProbeModeDefault
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (m ProbeMode) MarshalText() ([]byte, error) {
	var result string
	switch m {
	case ProbeModeDefault:
	case ProbeModeProbe:
		result = "probe"
	case ProbeModeAssume:
		result = "assume"
	default:
		result = "unknown"
	}
	return []byte(result), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (m *ProbeMode) UnmarshalText(textBytes []byte) error {
	// Convert the bytes to a string.
	text := string(textBytes)

	// Convert to a probe mode.
	switch text {
	case "probe":
		*m = ProbeModeProbe
	case "assume":
		*m = ProbeModeAssume
	default:
		return errors.Errorf("unknown probe mode specification: %s", text)
	}

	// Success.
	return nil
}

// Set implements pflag.Value.Set.
func (m *ProbeMode) Set(value string) error {
	return m.UnmarshalText([]byte(value))
}

// Type implements pflag.Value.Type.
func (m *ProbeMode) Type() string {
	return "probe-mode"
}

// Supported indicates whether or not a particular probe mode is a valid,
// non-default value.
func (m ProbeMode) Supported() bool {
	switch m {
	case ProbeModeProbe:
		return true
	case ProbeModeAssume:
		return true
	default:
		return false
	}
}

// String returns the textual name of a probe mode.
func (m ProbeMode) String() string {
	text, _ := m.MarshalText()
	return string(text)
}

// Description returns a human-readable description of a probe mode.
func (m ProbeMode) Description() string {
	switch m {
	case ProbeModeDefault:
		return "Default"
	case ProbeModeProbe:
		return "Probe"
	case ProbeModeAssume:
		return "Assume"
	default:
		return "Unknown"
	}
}
