package volume

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mutagen-io/namei/pkg/configuration"
	"github.com/mutagen-io/namei/pkg/creation"
	"github.com/mutagen-io/namei/pkg/encoding"
	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/lookup"
	"github.com/mutagen-io/namei/pkg/naming"
)

// Permissions are permission bits that encode as octal text.
type Permissions uint32

// MarshalText implements encoding.TextMarshaler.MarshalText.
func (p Permissions) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%04o", uint32(p))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (p *Permissions) UnmarshalText(textBytes []byte) error {
	value, err := strconv.ParseUint(string(textBytes), 8, 32)
	if err != nil {
		return errors.Wrap(err, "invalid permissions")
	} else if value > 0o7777 {
		return errors.New("permissions out of range")
	}
	*p = Permissions(value)
	return nil
}

// ManifestEntry is the manifest representation of a node.
type ManifestEntry struct {
	// Name is the entry name.
	Name string `yaml:"name"`
	// Type is the node type.
	Type creation.NodeType `yaml:"type"`
	// Permissions are the node permissions. If unspecified, defaults for the
	// node type are used.
	Permissions *Permissions `yaml:"mode,omitempty"`
	// Size is the nominal size of a regular file.
	Size configuration.ByteSize `yaml:"size,omitempty"`
	// Target is the target of a symbolic link.
	Target string `yaml:"target,omitempty"`
	// Device is the device number of a device node.
	Device uint64 `yaml:"device,omitempty"`
	// Entries are the contents of a directory.
	Entries []*ManifestEntry `yaml:"entries,omitempty"`
}

// Manifest is the YAML representation of a volume.
type Manifest struct {
	// UUID is the volume UUID.
	UUID uuid.UUID `yaml:"uuid"`
	// Mode is the volume match mode.
	Mode naming.MatchMode `yaml:"mode"`
	// Root are the contents of the root directory.
	Root []*ManifestEntry `yaml:"root,omitempty"`
}

// defaultPermissions returns the permissions for a node type when a manifest
// doesn't specify any.
func defaultPermissions(kind creation.NodeType) uint32 {
	switch kind {
	case creation.TypeDirectory:
		return 0o755
	case creation.TypeSymlink:
		return 0o755
	default:
		return 0o644
	}
}

// FromManifest creates a volume from a manifest. Entries are created through
// a creation dispatcher so that manifests obey the same rules as live
// creation.
func FromManifest(manifest *Manifest, logger *logging.Logger) (*Volume, error) {
	// Create an empty volume.
	volume, err := New(manifest.UUID, manifest.Mode, logger)
	if err != nil {
		return nil, err
	}

	// Populate it.
	dispatcher := creation.NewDispatcher(volume, logger.Sublogger("creation"))
	var populate func(lookup.ID, []*ManifestEntry) error
	populate = func(directory lookup.ID, entries []*ManifestEntry) error {
		for _, entry := range entries {
			if entry == nil {
				return errors.New("empty manifest entry")
			}
			permissions := defaultPermissions(entry.Type)
			if entry.Permissions != nil {
				permissions = uint32(*entry.Permissions)
			}
			id, err := dispatcher.Make(context.Background(), entry.Type, directory,
				[]byte(entry.Name), permissions, entry.Device, entry.Target,
			)
			if err != nil {
				return errors.Wrapf(err, "unable to create %q", entry.Name)
			}
			if entry.Type == creation.TypeRegular && entry.Size > 0 {
				if err := volume.SetSize(id, uint64(entry.Size)); err != nil {
					return errors.Wrapf(err, "unable to set size of %q", entry.Name)
				}
			}
			if len(entry.Entries) > 0 {
				if entry.Type != creation.TypeDirectory {
					return errors.Errorf("non-directory %q has entries", entry.Name)
				} else if err := populate(id, entry.Entries); err != nil {
					return errors.Wrapf(err, "unable to populate %q", entry.Name)
				}
			}
		}
		return nil
	}
	if err := populate(RootID, manifest.Root); err != nil {
		return nil, err
	}

	// Success.
	return volume, nil
}

// Manifest returns the manifest representation of the volume.
func (v *Volume) Manifest() *Manifest {
	v.lock.RLock()
	defer v.lock.RUnlock()

	var export func(lookup.ID) []*ManifestEntry
	export = func(directory lookup.ID) []*ManifestEntry {
		records := append([]record(nil), v.inodes[directory].records...)
		if len(records) == 0 {
			return nil
		}
		sort.Slice(records, func(i, j int) bool {
			return string(records[i].name) < string(records[j].name)
		})
		result := make([]*ManifestEntry, 0, len(records))
		for _, r := range records {
			node := v.inodes[r.id]
			permissions := Permissions(node.mode & 0o7777)
			entry := &ManifestEntry{
				Name:        string(r.name),
				Type:        node.kind,
				Permissions: &permissions,
			}
			switch node.kind {
			case creation.TypeRegular:
				entry.Size = configuration.ByteSize(node.size)
			case creation.TypeSymlink:
				entry.Target = node.target
			case creation.TypeCharDevice, creation.TypeBlockDevice:
				entry.Device = node.device
			case creation.TypeDirectory:
				entry.Entries = export(r.id)
			}
			result = append(result, entry)
		}
		return result
	}

	return &Manifest{
		UUID: v.uuid,
		Mode: v.mode,
		Root: export(RootID),
	}
}

// Load loads a volume from a manifest at the specified path. Manifests larger
// than maximumSize are rejected. A maximumSize of zero disables the check.
func Load(path string, maximumSize configuration.ByteSize, logger *logging.Logger) (*Volume, error) {
	// Check the manifest size.
	if maximumSize > 0 {
		if info, err := os.Stat(path); err != nil {
			return nil, errors.Wrap(err, "unable to query manifest")
		} else if uint64(info.Size()) > uint64(maximumSize) {
			return nil, errors.Errorf("manifest exceeds maximum size (%s)", maximumSize)
		}
	}

	// Load the manifest.
	manifest := &Manifest{}
	if err := encoding.LoadAndUnmarshalYAML(path, manifest); err != nil {
		return nil, errors.Wrap(err, "unable to load manifest")
	}

	// Create the volume.
	volume, err := FromManifest(manifest, logger)
	if err != nil {
		return nil, errors.Wrap(err, "invalid manifest")
	}
	logger.Debugf("Loaded %s volume %s with %d nodes", volume.mode, volume.uuid, volume.Len())
	return volume, nil
}

// Save saves the volume manifest atomically to the specified path.
func (v *Volume) Save(path string) error {
	if err := encoding.MarshalAndSaveYAML(path, v.logger, v.Manifest()); err != nil {
		return errors.Wrap(err, "unable to save manifest")
	}
	return nil
}
