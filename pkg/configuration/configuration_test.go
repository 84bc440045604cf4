package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/naming"
)

const (
	testConfigurationGibberish = "[a+1a4"
	testConfigurationValid     = `naming:
  mode: "normalization-insensitive"
  strict: true
cache:
  negativeEntries: 64
volume:
  maximumManifestSize: "1 MiB"
mount:
  entryTimeout: "5s"
  allowOther: true
logging:
  level: "debug"
`
	testConfigurationUnknownField = `naming:
  folding: true
`
	testConfigurationInvalidMode = `naming:
  mode: "bogus"
`
)

// writeConfiguration writes configuration content to a temporary path.
func writeConfiguration(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "namei.yml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal("unable to write configuration:", err)
	}
	return path
}

// TestLoadNonExistent tests that loading a non-existent configuration yields
// defaults.
func TestLoadNonExistent(t *testing.T) {
	configuration, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatal("unable to load non-existent configuration:", err)
	}
	if configuration.Naming.Mode != naming.Sensitive {
		t.Error("unexpected default mode:", configuration.Naming.Mode)
	}
	if configuration.Mount.EntryTimeout != DefaultEntryTimeout {
		t.Error("unexpected default entry timeout:", configuration.Mount.EntryTimeout)
	}
	if configuration.Volume.MaximumManifestSize != DefaultMaximumManifestSize {
		t.Error("unexpected default manifest size:", configuration.Volume.MaximumManifestSize)
	}
	if configuration.Logging.Level != nil {
		t.Error("log level set by default")
	}
}

// TestLoad tests configuration loading.
func TestLoad(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		content     string
		expectError bool
	}{
		{testConfigurationGibberish, true},
		{testConfigurationUnknownField, true},
		{testConfigurationInvalidMode, true},
		{testConfigurationValid, false},
		{"", false},
	}

	// Process test cases.
	for i, testCase := range testCases {
		_, err := LoadFromPath(writeConfiguration(t, testCase.content))
		if err != nil && !testCase.expectError {
			t.Errorf("test case %d: unexpected error: %v", i, err)
		} else if err == nil && testCase.expectError {
			t.Errorf("test case %d: expected error", i)
		}
	}
}

// TestLoadValues tests that loaded values override defaults.
func TestLoadValues(t *testing.T) {
	configuration, err := LoadFromPath(writeConfiguration(t, testConfigurationValid))
	if err != nil {
		t.Fatal("unable to load configuration:", err)
	}
	if configuration.Naming.Mode != naming.NormalizationInsensitive {
		t.Error("mode mismatch:", configuration.Naming.Mode)
	}
	if !configuration.Naming.Strict {
		t.Error("strict setting not loaded")
	}
	if configuration.Cache.NegativeEntries != 64 {
		t.Error("negative entry bound mismatch:", configuration.Cache.NegativeEntries)
	}
	if configuration.Volume.MaximumManifestSize != 1024*1024 {
		t.Error("manifest size mismatch:", configuration.Volume.MaximumManifestSize)
	}
	if configuration.Mount.EntryTimeout != 5*time.Second {
		t.Error("entry timeout mismatch:", configuration.Mount.EntryTimeout)
	}
	if configuration.Mount.NegativeTimeout != DefaultNegativeTimeout {
		t.Error("negative timeout default not retained:", configuration.Mount.NegativeTimeout)
	}
	if !configuration.Mount.AllowOther {
		t.Error("allow other setting not loaded")
	}
	if configuration.Logging.Level == nil || *configuration.Logging.Level != logging.LevelDebug {
		t.Error("log level not loaded")
	}
}
