package configuration

import (
	"testing"
)

// TestByteSizeUnmarshal tests ByteSize text unmarshaling.
func TestByteSizeUnmarshal(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		text        string
		expected    ByteSize
		expectError bool
	}{
		{"", 0, true},
		{"abc", 0, true},
		{"0", 0, false},
		{"512", 512, false},
		{"1 KB", 1000, false},
		{"1 KiB", 1024, false},
		{"64MiB", 64 * 1024 * 1024, false},
	}

	// Process test cases.
	for _, testCase := range testCases {
		var size ByteSize
		if err := size.UnmarshalText([]byte(testCase.text)); err != nil {
			if !testCase.expectError {
				t.Errorf("unable to unmarshal size (%s): %s", testCase.text, err)
			}
		} else if testCase.expectError {
			t.Error("size unmarshaling succeeded unexpectedly for text:", testCase.text)
		} else if size != testCase.expected {
			t.Errorf("unmarshaled size (%d) does not match expected (%d)", size, testCase.expected)
		}
	}
}

// TestByteSizeMarshal tests that marshaled sizes unmarshal to the same value.
func TestByteSizeMarshal(t *testing.T) {
	for _, size := range []ByteSize{0, 1, 1024, 1500, 3 * 1024 * 1024} {
		text, err := size.MarshalText()
		if err != nil {
			t.Fatal("unable to marshal size:", err)
		}
		var decoded ByteSize
		if err := decoded.UnmarshalText(text); err != nil {
			t.Errorf("unable to unmarshal %q: %v", text, err)
		} else if decoded != size {
			t.Errorf("size mismatch after round trip: %d != %d", decoded, size)
		}
	}
}
