package naming

import (
	"github.com/pkg/errors"
)

// MatchMode is the volume-wide name equality policy. It is fixed for the
// lifetime of a mounted volume.
type MatchMode uint8

const (
	// Sensitive indicates byte-exact name equality.
	Sensitive MatchMode = iota
	// CaseInsensitive indicates case-folded equality. Names are also
	// canonically decomposed so that composed and decomposed spellings of the
	// same letter compare equal.
	CaseInsensitive
	// NormalizationInsensitive indicates equality under canonical
	// decomposition. It implies case insensitivity.
	NormalizationInsensitive
)

// Insensitive indicates whether or not names must be decoded and folded for
// comparison under the mode.
func (m MatchMode) Insensitive() bool {
	return m == CaseInsensitive || m == NormalizationInsensitive
}

// Supported indicates whether or not a particular match mode is a valid value.
func (m MatchMode) Supported() bool {
	switch m {
	case Sensitive:
		return true
	case CaseInsensitive:
		return true
	case NormalizationInsensitive:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of a match mode.
func (m MatchMode) Description() string {
	switch m {
	case Sensitive:
		return "Sensitive"
	case CaseInsensitive:
		return "Case-insensitive"
	case NormalizationInsensitive:
		return "Normalization-insensitive"
	default:
		return "Unknown"
	}
}

// String returns the textual specification of the match mode.
func (m MatchMode) String() string {
	switch m {
	case Sensitive:
		return "sensitive"
	case CaseInsensitive:
		return "insensitive"
	case NormalizationInsensitive:
		return "normalization-insensitive"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (m MatchMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (m *MatchMode) UnmarshalText(textBytes []byte) error {
	// Convert the bytes to a string.
	text := string(textBytes)

	// Convert to a match mode.
	switch text {
	case "sensitive":
		*m = Sensitive
	case "insensitive", "case-insensitive":
		*m = CaseInsensitive
	case "normalization-insensitive":
		*m = NormalizationInsensitive
	default:
		return errors.Errorf("unknown match mode specification: %s", text)
	}

	// Success.
	return nil
}

// Set implements pflag.Value.Set.
func (m *MatchMode) Set(value string) error {
	return m.UnmarshalText([]byte(value))
}

// Type implements pflag.Value.Type.
func (m *MatchMode) Type() string {
	return "mode"
}
