package configuration

import (
	"path/filepath"
	"testing"
)

// TestGlobalConfigurationPath tests that GlobalConfigurationPath succeeds and
// returns a non-empty path.
func TestGlobalConfigurationPath(t *testing.T) {
	t.Setenv(pathEnvironmentVariable, "")
	if path, err := GlobalConfigurationPath(); err != nil {
		t.Fatal("unable to compute global configuration path:", err)
	} else if path == "" {
		t.Error("global configuration path is empty")
	} else if filepath.Base(path) != ".namei.yml" {
		t.Error("global configuration path has unexpected name:", path)
	}
}

// TestGlobalConfigurationPathOverride tests that the configuration path can be
// overridden by the environment.
func TestGlobalConfigurationPathOverride(t *testing.T) {
	t.Setenv(pathEnvironmentVariable, "/etc/namei.yml")
	if path, err := GlobalConfigurationPath(); err != nil {
		t.Fatal("unable to compute global configuration path:", err)
	} else if path != "/etc/namei.yml" {
		t.Error("override not respected:", path)
	}
}
