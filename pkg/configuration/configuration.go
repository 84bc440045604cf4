package configuration

import (
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/mutagen-io/namei/pkg/encoding"
	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/naming"
)

const (
	// DefaultEntryTimeout is the default kernel cache lifetime for positive
	// entries and attributes.
	DefaultEntryTimeout = time.Second
	// DefaultNegativeTimeout is the default kernel cache lifetime for negative
	// entries. It is zero since insensitive volumes may gain an equivalent
	// name under a different spelling.
	DefaultNegativeTimeout = time.Duration(0)
	// DefaultMaximumManifestSize is the default bound on loaded manifests.
	DefaultMaximumManifestSize = ByteSize(64 * 1024 * 1024)
)

// Configuration is the global YAML configuration object type.
type Configuration struct {
	// Naming is the name handling configuration.
	Naming struct {
		// Mode is the match mode used for new volumes and for commands that
		// operate on bare names.
		Mode naming.MatchMode `yaml:"mode"`
		// Strict causes names that are not valid UTF-8 to be rejected.
		Strict bool `yaml:"strict"`
	} `yaml:"naming"`
	// Cache is the directory entry cache configuration.
	Cache struct {
		// NegativeEntries bounds the number of resident negative entries.
		NegativeEntries int `yaml:"negativeEntries"`
	} `yaml:"cache"`
	// Volume is the volume manifest configuration.
	Volume struct {
		// MaximumManifestSize bounds the size of loaded manifests.
		MaximumManifestSize ByteSize `yaml:"maximumManifestSize"`
	} `yaml:"volume"`
	// Mount is the FUSE mount configuration.
	Mount struct {
		// EntryTimeout is the kernel cache lifetime for positive entries.
		EntryTimeout time.Duration `yaml:"entryTimeout"`
		// NegativeTimeout is the kernel cache lifetime for negative entries.
		NegativeTimeout time.Duration `yaml:"negativeTimeout"`
		// AllowOther allows users other than the mounting user to access the
		// mount.
		AllowOther bool `yaml:"allowOther"`
	} `yaml:"mount"`
	// Logging is the logging configuration.
	Logging struct {
		// Level is the log level, if set.
		Level *logging.Level `yaml:"level"`
	} `yaml:"logging"`
}

// Default returns a configuration populated with default values.
func Default() *Configuration {
	result := &Configuration{}
	result.Cache.NegativeEntries = 1024
	result.Volume.MaximumManifestSize = DefaultMaximumManifestSize
	result.Mount.EntryTimeout = DefaultEntryTimeout
	result.Mount.NegativeTimeout = DefaultNegativeTimeout
	return result
}

// EnsureValid ensures that the configuration is valid.
func (c *Configuration) EnsureValid() error {
	if !c.Naming.Mode.Supported() {
		return errors.New("unknown match mode")
	} else if c.Cache.NegativeEntries < 0 {
		return errors.New("negative entry bound must be non-negative")
	} else if c.Mount.EntryTimeout < 0 || c.Mount.NegativeTimeout < 0 {
		return errors.New("mount timeouts must be non-negative")
	}
	return nil
}

// LoadFromPath loads a configuration from the specified path. Values not
// present in the file retain their defaults. If the file does not exist, the
// default configuration is returned.
func LoadFromPath(path string) (*Configuration, error) {
	// Create a configuration that we can decode into. We set any default values
	// here because nothing will be modified in this structure if the
	// configuration file doesn't exist.
	result := Default()

	// Attempt to load the configuration from disk.
	if err := encoding.LoadAndUnmarshalYAML(path, result); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "unable to load configuration")
		}
	}

	// Validate the result.
	if err := result.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	// Success.
	return result, nil
}

// Load loads the global configuration file from disk. If the file does not
// exist, this method will return a structure with the default configuration
// values. The returned structure is not re-used, so its members can be freely
// mutated.
func Load() (*Configuration, error) {
	path, err := GlobalConfigurationPath()
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute configuration path")
	}
	return LoadFromPath(path)
}
