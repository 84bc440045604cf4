package namei

import (
	"strings"
	"testing"
)

// TestVersion verifies that the version string is computed from its
// components.
func TestVersion(t *testing.T) {
	if Version == "" {
		t.Fatal("empty version string")
	}
	if !strings.HasPrefix(Version, "0.3.0") {
		t.Error("version string does not start with numeric components:", Version)
	}
	if VersionTag != "" && !strings.HasSuffix(Version, "-"+VersionTag) {
		t.Error("version string missing tag:", Version)
	}
}
