package naming

import (
	"testing"
)

// TestMatchModeUnmarshal tests that unmarshaling from a string specification
// succeeds for MatchMode.
func TestMatchModeUnmarshal(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		text          string
		expectedMode  MatchMode
		expectFailure bool
	}{
		{"", Sensitive, true},
		{"asdf", Sensitive, true},
		{"sensitive", Sensitive, false},
		{"insensitive", CaseInsensitive, false},
		{"case-insensitive", CaseInsensitive, false},
		{"normalization-insensitive", NormalizationInsensitive, false},
	}

	// Process test cases.
	for _, testCase := range testCases {
		var mode MatchMode
		if err := mode.UnmarshalText([]byte(testCase.text)); err != nil {
			if !testCase.expectFailure {
				t.Errorf("unable to unmarshal text (%s): %s", testCase.text, err)
			}
		} else if testCase.expectFailure {
			t.Error("unmarshaling succeeded unexpectedly for text:", testCase.text)
		} else if mode != testCase.expectedMode {
			t.Errorf(
				"unmarshaled mode (%s) does not match expected (%s)",
				mode,
				testCase.expectedMode,
			)
		}
	}
}

// TestMatchModeRoundTrip tests that marshaled modes unmarshal to themselves.
func TestMatchModeRoundTrip(t *testing.T) {
	for _, mode := range []MatchMode{Sensitive, CaseInsensitive, NormalizationInsensitive} {
		text, err := mode.MarshalText()
		if err != nil {
			t.Fatal("unable to marshal mode:", err)
		}
		var result MatchMode
		if err := result.Set(string(text)); err != nil {
			t.Errorf("unable to set mode from %s: %s", text, err)
		} else if result != mode {
			t.Errorf("round-tripped mode (%s) does not match original (%s)", result, mode)
		}
	}
}

// TestMatchModeSupported tests that MatchMode support detection works as
// expected.
func TestMatchModeSupported(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		mode                MatchMode
		expectSupported     bool
		expectInsensitive   bool
		expectedDescription string
	}{
		{Sensitive, true, false, "Sensitive"},
		{CaseInsensitive, true, true, "Case-insensitive"},
		{NormalizationInsensitive, true, true, "Normalization-insensitive"},
		{NormalizationInsensitive + 1, false, false, "Unknown"},
	}

	// Process test cases.
	for _, testCase := range testCases {
		if supported := testCase.mode.Supported(); supported != testCase.expectSupported {
			t.Errorf("mode support status (%t) does not match expected (%t)", supported, testCase.expectSupported)
		}
		if insensitive := testCase.mode.Insensitive(); insensitive != testCase.expectInsensitive {
			t.Errorf("mode insensitivity (%t) does not match expected (%t)", insensitive, testCase.expectInsensitive)
		}
		if description := testCase.mode.Description(); description != testCase.expectedDescription {
			t.Errorf("mode description (%s) does not match expected (%s)", description, testCase.expectedDescription)
		}
	}
}
