package naming

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// NameMax is the maximum length, in bytes, of a single name component.
const NameMax = 255

var (
	// ErrNameTooLong indicates that a name exceeds NameMax.
	ErrNameTooLong = errors.New("name too long")
	// ErrMalformedEncoding indicates that a name is not valid UTF-8. It is
	// only surfaced when strict encoding checks are enabled.
	ErrMalformedEncoding = errors.New("malformed name encoding")
)

// RawName is a name component as supplied by a caller or stored on disk. It is
// not required to be valid UTF-8.
type RawName []byte

// CheckLength verifies that a name does not exceed NameMax.
func CheckLength(name RawName) error {
	if len(name) > NameMax {
		return ErrNameTooLong
	}
	return nil
}

// Validate checks a name's length and, if strict is set, its encoding.
func Validate(name RawName, strict bool) error {
	if err := CheckLength(name); err != nil {
		return err
	}
	if strict && !utf8.Valid(name) {
		return ErrMalformedEncoding
	}
	return nil
}
