// Package volume provides an in-memory reference volume implementing the
// collaborators of name resolution and node creation: a hash-ordered directory
// index, an object store, and a uniform node creation engine. Volumes are
// persisted as YAML manifests.
package volume

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/mutagen-io/namei/pkg/creation"
	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/lookup"
	"github.com/mutagen-io/namei/pkg/naming"
)

// RootID is the identifier of a volume's root directory.
const RootID lookup.ID = 1

// rootMode is the mode of a volume's root directory.
const rootMode = unix.S_IFDIR | 0o755

// record is a directory record.
type record struct {
	// hash is the name hash under the volume match mode and the directory
	// seed.
	hash uint64
	// name is the raw name.
	name []byte
	// id is the child identifier.
	id lookup.ID
}

// inode is the volume's internal representation of a node.
type inode struct {
	// kind is the node type.
	kind creation.NodeType
	// mode is the full mode.
	mode uint32
	// size is the nominal file size, used only for regular files.
	size uint64
	// target is the link target, used only for symbolic links.
	target string
	// device is the device number, used only for device nodes.
	device uint64
	// parent is the parent directory identifier.
	parent lookup.ID
	// records are the directory records, ordered by hash and then name. They
	// are used only for directories.
	records []record
}

// Volume is an in-memory volume. It is safe for concurrent usage.
type Volume struct {
	// uuid is the volume UUID, used as the hash seed salt.
	uuid uuid.UUID
	// mode is the volume match mode.
	mode naming.MatchMode
	// logger is the volume logger.
	logger *logging.Logger
	// lock guards inodes and next.
	lock sync.RWMutex
	// inodes maps identifiers to nodes.
	inodes map[lookup.ID]*inode
	// next is the next identifier to allocate.
	next lookup.ID
}

// New creates a new empty volume. If the UUID is the nil UUID, a random one is
// generated.
func New(identifier uuid.UUID, mode naming.MatchMode, logger *logging.Logger) (*Volume, error) {
	// Validate the match mode.
	if !mode.Supported() {
		return nil, errors.New("unsupported match mode")
	}

	// Generate a UUID if necessary.
	if identifier == uuid.Nil {
		if random, err := uuid.NewRandom(); err != nil {
			return nil, errors.Wrap(err, "unable to generate volume UUID")
		} else {
			identifier = random
		}
	}

	// Create the volume with its root directory.
	return &Volume{
		uuid:   identifier,
		mode:   mode,
		logger: logger,
		inodes: map[lookup.ID]*inode{
			RootID: {kind: creation.TypeDirectory, mode: rootMode, parent: RootID},
		},
		next: RootID + 1,
	}, nil
}

// UUID returns the volume UUID.
func (v *Volume) UUID() uuid.UUID {
	return v.uuid
}

// Mode returns the volume match mode.
func (v *Volume) Mode() naming.MatchMode {
	return v.mode
}

// seed computes the hash seed for a directory.
func (v *Volume) seed(directory lookup.ID) naming.Seed {
	return naming.NewSeed(v.uuid[:], uint64(directory))
}

// Directory returns the resolution handle for a directory. It fails with
// ENOENT if the identifier is unknown and ENOTDIR if it is not a directory.
func (v *Volume) Directory(id lookup.ID) (lookup.Directory, error) {
	v.lock.RLock()
	defer v.lock.RUnlock()
	if _, err := v.directory(id); err != nil {
		return lookup.Directory{}, err
	}
	return lookup.Directory{ID: id, Seed: v.seed(id)}, nil
}

// directory returns the directory inode for an identifier. The volume lock
// must be held.
func (v *Volume) directory(id lookup.ID) (*inode, error) {
	node, ok := v.inodes[id]
	if !ok {
		return nil, unix.ENOENT
	} else if node.kind != creation.TypeDirectory {
		return nil, unix.ENOTDIR
	}
	return node, nil
}

// Parent returns the parent of a directory. The root is its own parent.
func (v *Volume) Parent(id lookup.ID) (lookup.ID, error) {
	v.lock.RLock()
	defer v.lock.RUnlock()
	node, err := v.directory(id)
	if err != nil {
		return 0, err
	}
	return node.parent, nil
}

// Attributes are the attributes of a node.
type Attributes struct {
	// ID is the node identifier.
	ID lookup.ID
	// Type is the node type.
	Type creation.NodeType
	// Mode is the full mode.
	Mode uint32
	// Size is the node size. For symbolic links it is the target length and
	// for directories it is the number of entries.
	Size uint64
	// Links is the hard link count.
	Links uint32
	// Target is the link target for symbolic links.
	Target string
	// Device is the device number for device nodes.
	Device uint64
}

// Attributes returns the attributes of a node.
func (v *Volume) Attributes(id lookup.ID) (Attributes, error) {
	v.lock.RLock()
	defer v.lock.RUnlock()
	node, ok := v.inodes[id]
	if !ok {
		return Attributes{}, unix.ENOENT
	}
	return v.attributes(id, node), nil
}

// attributes computes node attributes. The volume lock must be held.
func (v *Volume) attributes(id lookup.ID, node *inode) Attributes {
	result := Attributes{
		ID:     id,
		Type:   node.kind,
		Mode:   node.mode,
		Size:   node.size,
		Links:  1,
		Target: node.target,
		Device: node.device,
	}
	switch node.kind {
	case creation.TypeSymlink:
		result.Size = uint64(len(node.target))
	case creation.TypeDirectory:
		result.Size = uint64(len(node.records))
		result.Links = 2
		for _, r := range node.records {
			if v.inodes[r.id].kind == creation.TypeDirectory {
				result.Links++
			}
		}
	}
	return result
}

// Entry is a directory listing entry.
type Entry struct {
	// Name is the raw entry name.
	Name []byte
	// Attributes are the entry's attributes.
	Attributes Attributes
}

// Entries returns the entries of a directory, sorted by name.
func (v *Volume) Entries(id lookup.ID) ([]Entry, error) {
	v.lock.RLock()
	defer v.lock.RUnlock()
	node, err := v.directory(id)
	if err != nil {
		return nil, err
	}
	result := make([]Entry, 0, len(node.records))
	for _, r := range node.records {
		result = append(result, Entry{
			Name:       append([]byte(nil), r.name...),
			Attributes: v.attributes(r.id, v.inodes[r.id]),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return string(result[i].Name) < string(result[j].Name)
	})
	return result, nil
}

// Readlink returns the target of a symbolic link.
func (v *Volume) Readlink(id lookup.ID) (string, error) {
	v.lock.RLock()
	defer v.lock.RUnlock()
	node, ok := v.inodes[id]
	if !ok {
		return "", unix.ENOENT
	} else if node.kind != creation.TypeSymlink {
		return "", unix.EINVAL
	}
	return node.target, nil
}

// SetSize sets the nominal size of a regular file.
func (v *Volume) SetSize(id lookup.ID, size uint64) error {
	v.lock.Lock()
	defer v.lock.Unlock()
	node, ok := v.inodes[id]
	if !ok {
		return unix.ENOENT
	} else if node.kind != creation.TypeRegular {
		return unix.EINVAL
	}
	node.size = size
	return nil
}

// Len returns the number of nodes in the volume, including the root.
func (v *Volume) Len() int {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return len(v.inodes)
}

// WalkFunc is the callback type for Walk.
type WalkFunc func(path string, attributes Attributes) error

// Walk visits every node below the root in depth-first order, with entries
// visited in name order. Paths are slash-separated and relative to the root.
// Directory contents are snapshotted before the callback is invoked, so the
// callback may safely query the volume.
func (v *Volume) Walk(callback WalkFunc) error {
	var walk func(string, lookup.ID) error
	walk = func(prefix string, directory lookup.ID) error {
		entries, err := v.Entries(directory)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			path := string(entry.Name)
			if prefix != "" {
				path = prefix + "/" + path
			}
			if err := callback(path, entry.Attributes); err != nil {
				return err
			}
			if entry.Attributes.Type == creation.TypeDirectory {
				if err := walk(path, entry.Attributes.ID); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk("", RootID)
}
