package logging

import (
	"testing"
)

// TestNameToLevel tests that level names round-trip through NameToLevel.
func TestNameToLevel(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		name          string
		expectedLevel Level
		expectValid   bool
	}{
		{"disabled", LevelDisabled, true},
		{"error", LevelError, true},
		{"warn", LevelWarn, true},
		{"info", LevelInfo, true},
		{"debug", LevelDebug, true},
		{"trace", LevelTrace, true},
		{"verbose", LevelDisabled, false},
	}

	// Process test cases.
	for _, testCase := range testCases {
		level, ok := NameToLevel(testCase.name)
		if ok != testCase.expectValid {
			t.Errorf("validity for %q (%t) does not match expected (%t)", testCase.name, ok, testCase.expectValid)
		} else if level != testCase.expectedLevel {
			t.Errorf("level for %q (%s) does not match expected (%s)", testCase.name, level, testCase.expectedLevel)
		} else if ok && level.String() != testCase.name {
			t.Errorf("level string (%s) does not match name (%s)", level, testCase.name)
		}
	}
}
