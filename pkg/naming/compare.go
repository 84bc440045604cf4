package naming

import (
	"bytes"
)

// EqualFunc is an equality oracle for raw names.
type EqualFunc func(a, b RawName) bool

// Equal determines whether or not two raw names are equal under the specified
// match mode. Sensitive comparison is byte-exact and performs no decoding.
// Insensitive comparison walks both names with folding cursors in lockstep and
// stops at the first difference, so neither name is ever fully normalized.
func Equal(mode MatchMode, a, b RawName) bool {
	// Byte-identical names are equal under every mode.
	if bytes.Equal(a, b) {
		return true
	} else if !mode.Insensitive() {
		return false
	}

	// Walk both names in lockstep.
	var left, right Cursor
	left.Init(a, true)
	right.Init(b, true)
	for {
		l, lok := left.Next()
		r, rok := right.Next()
		if lok != rok || l != r {
			return false
		} else if !lok {
			return true
		}
	}
}

// Comparator returns an equality oracle bound to the specified match mode.
func Comparator(mode MatchMode) EqualFunc {
	return func(a, b RawName) bool {
		return Equal(mode, a, b)
	}
}

// Normalize returns the full code point sequence that the comparator uses for a
// name under the specified match mode. It exists for diagnostics; comparisons
// never materialize it.
func Normalize(mode MatchMode, name RawName) []rune {
	var result []rune
	if !mode.Insensitive() {
		for _, b := range name {
			result = append(result, rune(b))
		}
		return result
	}
	var cursor Cursor
	cursor.Init(name, true)
	for {
		r, ok := cursor.Next()
		if !ok {
			return result
		}
		result = append(result, r)
	}
}
