package filesystem

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomicNonExistentDirectory(t *testing.T) {
	if WriteFileAtomic("/does/not/exist", []byte{}, 0600, nil) == nil {
		t.Error("atomic file write did not fail for non-existent path")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	// Create a temporary directory.
	directory := t.TempDir()

	// Compute the target path.
	target := filepath.Join(directory, "file")

	// Create contents.
	contents := []byte{0, 1, 2, 3, 4, 5, 6}

	// Attempt to write to a temporary file.
	if err := WriteFileAtomic(target, contents, 0600, nil); err != nil {
		t.Fatal("atomic file write failed:", err)
	}

	// Read the contents back and ensure they match what's expected.
	if data, err := os.ReadFile(target); err != nil {
		t.Fatal("unable to read back file:", err)
	} else if !bytes.Equal(data, contents) {
		t.Error("file contents did not match expected")
	}

	// Ensure that the file has the expected permissions.
	if info, err := os.Stat(target); err != nil {
		t.Fatal("unable to query file:", err)
	} else if info.Mode().Perm() != 0600 {
		t.Errorf("file has unexpected permissions: %o", info.Mode().Perm())
	}

	// Ensure that no intermediate files remain.
	if contents, err := os.ReadDir(directory); err != nil {
		t.Fatal("unable to read directory:", err)
	} else {
		for _, c := range contents {
			if strings.HasPrefix(c.Name(), TemporaryNamePrefix) {
				t.Error("intermediate file left behind:", c.Name())
			}
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("home directory unavailable")
	}

	// Set up test cases.
	testCases := []struct {
		path     string
		expected string
	}{
		{"relative/path", "relative/path"},
		{"/absolute", "/absolute"},
		{"~user/path", "~user/path"},
		{"~", home},
		{"~/.namei.yml", filepath.Join(home, ".namei.yml")},
	}

	// Process test cases.
	for _, testCase := range testCases {
		if expanded, err := ExpandHome(testCase.path); err != nil {
			t.Errorf("unable to expand %q: %v", testCase.path, err)
		} else if expanded != testCase.expected {
			t.Errorf("expansion of %q mismatch: %q != %q", testCase.path, expanded, testCase.expected)
		}
	}
}
