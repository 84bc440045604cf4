package configuration

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// ByteSize is a uint64 value that supports unmarshalling from both
// human-friendly string representations and numeric representations. It can be
// cast to a uint64 value, where it represents a byte count.
type ByteSize uint64

// UnmarshalText implements the text unmarshalling interface used when loading
// from YAML files.
func (s *ByteSize) UnmarshalText(textBytes []byte) error {
	// Convert the bytes to a string.
	text := string(textBytes)

	// Parse and store the value.
	value, err := humanize.ParseBytes(text)
	if err != nil {
		return err
	}
	*s = ByteSize(value)

	// Success.
	return nil
}

// MarshalText implements encoding.TextMarshaler.MarshalText. Sizes are
// rendered in human-friendly form when that form is exact.
func (s ByteSize) MarshalText() ([]byte, error) {
	text := humanize.IBytes(uint64(s))
	if value, err := humanize.ParseBytes(text); err != nil || value != uint64(s) {
		text = strconv.FormatUint(uint64(s), 10)
	}
	return []byte(text), nil
}

// String returns a human-friendly representation of the size.
func (s ByteSize) String() string {
	return humanize.IBytes(uint64(s))
}
