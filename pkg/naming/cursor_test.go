package naming

import (
	"reflect"
	"strings"
	"testing"
)

// collect drains a cursor over the specified name.
func collect(name []byte, fold bool) []rune {
	var result []rune
	cursor := NewCursor(name, fold)
	for {
		r, ok := cursor.Next()
		if !ok {
			return result
		}
		result = append(result, r)
	}
}

// TestCursorDecomposition tests that the cursor yields canonically decomposed
// (and optionally folded) code points.
func TestCursorDecomposition(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		name     string
		fold     bool
		expected []rune
	}{
		{"", false, nil},
		{"", true, nil},
		{"abc", false, []rune{'a', 'b', 'c'}},
		{"ABC", false, []rune{'A', 'B', 'C'}},
		{"ABC", true, []rune{'a', 'b', 'c'}},
		{"caf\u00e9", false, []rune{'c', 'a', 'f', 'e', 0x301}},
		{"cafe\u0301", false, []rune{'c', 'a', 'f', 'e', 0x301}},
		{"CAF\u00c9", true, []rune{'c', 'a', 'f', 'e', 0x301}},
		{"\u00c5", true, []rune{'a', 0x30a}},
		{"\u212b", true, []rune{'a', 0x30a}},
		{"Stra\u00dfe", true, []rune{'s', 't', 'r', 'a', 's', 's', 'e'}},
		{"\u0391\u03a9", true, []rune{0x3b1, 0x3c9}},
		{"\ud55c", false, []rune{0x1112, 0x1161, 0x11ab}},
		{"a\u0307\u0323", false, []rune{'a', 0x323, 0x307}},
		{"\u1ea1\u0307", false, []rune{'a', 0x323, 0x307}},
	}

	// Process test cases.
	for _, testCase := range testCases {
		if result := collect([]byte(testCase.name), testCase.fold); !reflect.DeepEqual(result, testCase.expected) {
			t.Errorf(
				"cursor output for %q (fold: %t) does not match expected: %U != %U",
				testCase.name, testCase.fold, result, testCase.expected,
			)
		}
	}
}

// TestCursorMalformed tests that invalid byte sequences are decoded one byte at
// a time without aborting, and that distinct invalid bytes stay distinct.
func TestCursorMalformed(t *testing.T) {
	// Decode a name with an invalid byte in the middle.
	name := []byte("a\xffB")
	cursor := NewCursor(name, true)
	var result []rune
	for {
		r, ok := cursor.Next()
		if !ok {
			break
		}
		result = append(result, r)
	}
	expected := []rune{'a', invalidByteBase | 0xff, 'b'}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("malformed decoding does not match expected: %U != %U", result, expected)
	}
	if !cursor.Malformed() {
		t.Error("cursor did not report malformed input")
	}

	// Distinct invalid bytes must not collapse to the same code point.
	if reflect.DeepEqual(collect([]byte{0xfe}, true), collect([]byte{0xff}, true)) {
		t.Error("distinct invalid bytes decoded identically")
	}

	// A truncated sequence followed by valid text still terminates.
	if result := collect([]byte("\xc3"), false); len(result) != 1 {
		t.Error("truncated sequence did not decode to a single code point:", result)
	}

	// Valid input is never reported as malformed.
	valid := NewCursor([]byte("caf\u00e9"), true)
	for {
		if _, ok := valid.Next(); !ok {
			break
		}
	}
	if valid.Malformed() {
		t.Error("valid input reported as malformed")
	}
}

// TestCursorDeterminism tests that re-running a cursor over the same bytes with
// the same fold flag yields an identical sequence.
func TestCursorDeterminism(t *testing.T) {
	names := []string{
		"",
		"plain",
		"Caf\u00e9 cr\u00e8me br\u00fbl\u00e9e",
		"\u1e9b\u0323",
		"\u00df\u1e9e\u017f",
		"mixed\xffinvalid\xc3",
		"\ud55c\uad6d\uc5b4",
	}

	for _, name := range names {
		for _, fold := range []bool{false, true} {
			first := collect([]byte(name), fold)
			second := collect([]byte(name), fold)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("cursor output for %q (fold: %t) is not deterministic", name, fold)
			}
		}
	}
}

// TestCursorReinitialization tests that Init rewinds a cursor fully.
func TestCursorReinitialization(t *testing.T) {
	var cursor Cursor
	cursor.Init([]byte("\xff"), false)
	cursor.Next()
	cursor.Init([]byte("Ab"), true)
	if cursor.Malformed() {
		t.Error("malformed state survived reinitialization")
	}
	if r, ok := cursor.Next(); !ok || r != 'a' {
		t.Error("unexpected first code point after reinitialization:", r, ok)
	}
}

// repeatRune returns a slice holding count copies of a code point.
func repeatRune(r rune, count int) []rune {
	result := make([]rune, count)
	for i := range result {
		result[i] = r
	}
	return result
}

// TestCursorLongCombiningRuns tests that runs of more than 30 non-starters are
// ordered as a whole and that no code points are inserted into them.
func TestCursorLongCombiningRuns(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		name     string
		expected []rune
	}{
		{
			"a" + strings.Repeat("\u0301", 30) + "\u0323",
			append([]rune{'a', 0x323}, repeatRune(0x301, 30)...),
		},
		{
			"\u1ea1" + strings.Repeat("\u0301", 30),
			append([]rune{'a', 0x323}, repeatRune(0x301, 30)...),
		},
		{
			"a" + strings.Repeat("\u0301", 31),
			append([]rune{'a'}, repeatRune(0x301, 31)...),
		},
		{
			"a" + strings.Repeat("\u0301", 30) + "\u034f\u0301",
			append(append([]rune{'a'}, repeatRune(0x301, 30)...), 0x34f, 0x301),
		},
		{
			strings.Repeat("\u0323\u0301", 20),
			append(repeatRune(0x323, 20), repeatRune(0x301, 20)...),
		},
	}

	// Process test cases.
	for i, testCase := range testCases {
		for _, fold := range []bool{false, true} {
			if result := collect([]byte(testCase.name), fold); !reflect.DeepEqual(result, testCase.expected) {
				t.Errorf("test index %d: cursor output (fold: %t) does not match expected: %U != %U",
					i, fold, result, testCase.expected,
				)
			}
		}
	}
}

// TestCursorFoldReordering tests that folding a combining mark into a starter
// happens after canonical ordering.
func TestCursorFoldReordering(t *testing.T) {
	expected := []rune{0x3b1, 0x301, 0x3b9}
	for _, name := range []string{"\u03b1\u0345\u0301", "\u03b1\u0301\u0345", "\u1fb4"} {
		if result := collect([]byte(name), true); !reflect.DeepEqual(result, expected) {
			t.Errorf("folded output for %q does not match expected: %U != %U", name, result, expected)
		}
	}
}
