package volume

import (
	"bytes"
	"context"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/mutagen-io/namei/pkg/creation"
	"github.com/mutagen-io/namei/pkg/lookup"
	"github.com/mutagen-io/namei/pkg/naming"
)

// ErrExists indicates that an equivalent name already exists in a directory.
// It matches os.ErrExist.
var ErrExists = errors.Wrap(unix.EEXIST, "entry exists")

// search returns the index of the first record with the specified hash, or
// the insertion point for it.
func search(records []record, hash uint64) int {
	return sort.Search(len(records), func(i int) bool {
		return records[i].hash >= hash
	})
}

// Lookup implements lookup.Index.Lookup. Records are located by hash and then
// confirmed with the equality oracle, so the index never interprets names
// itself. If the requested mode differs from the volume mode, the stored
// hashes cannot be used and every record is compared.
func (v *Volume) Lookup(ctx context.Context, directory lookup.ID, name naming.RawName, mode naming.MatchMode, equal naming.EqualFunc) (lookup.ID, error) {
	// Check for cancellation.
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// Grab the directory.
	v.lock.RLock()
	defer v.lock.RUnlock()
	node, err := v.directory(directory)
	if err != nil {
		return 0, err
	}

	// Handle mismatched modes with an exhaustive scan.
	if mode != v.mode {
		for _, r := range node.records {
			if equal(r.name, name) {
				return r.id, nil
			}
		}
		return 0, lookup.ErrNotFound
	}

	// Scan the records that share the name's hash.
	hash := naming.Hash(mode, v.seed(directory), name)
	for i := search(node.records, hash); i < len(node.records) && node.records[i].hash == hash; i++ {
		if equal(node.records[i].name, name) {
			return node.records[i].id, nil
		}
	}
	return 0, lookup.ErrNotFound
}

// CreateNode implements creation.Engine.CreateNode. Creation fails with
// ErrExists if an equivalent name exists under the volume match mode.
func (v *Volume) CreateNode(ctx context.Context, request *creation.Request) (lookup.ID, error) {
	// Check for cancellation.
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// Validate the request.
	if !request.Type.Supported() {
		return 0, creation.ErrInvalidNodeType
	} else if err := naming.CheckLength(request.Name); err != nil {
		return 0, err
	} else if len(request.Name) == 0 || bytes.IndexByte(request.Name, '/') >= 0 || bytes.IndexByte(request.Name, 0) >= 0 {
		return 0, errors.Wrapf(unix.EINVAL, "invalid name %q", request.Name)
	} else if string(request.Name) == "." || string(request.Name) == ".." {
		return 0, ErrExists
	}

	v.lock.Lock()
	defer v.lock.Unlock()
	return v.create(request)
}

// create performs node creation. The volume lock must be held.
func (v *Volume) create(request *creation.Request) (lookup.ID, error) {
	// Grab the parent.
	parent, err := v.directory(request.Directory)
	if err != nil {
		return 0, err
	}

	// Check for equivalent names.
	hash := naming.Hash(v.mode, v.seed(request.Directory), request.Name)
	index := search(parent.records, hash)
	for i := index; i < len(parent.records) && parent.records[i].hash == hash; i++ {
		if naming.Equal(v.mode, parent.records[i].name, request.Name) {
			return 0, ErrExists
		}
	}

	// Allocate the node.
	id := v.next
	v.next++
	node := &inode{
		kind:   request.Type,
		mode:   request.Mode,
		parent: request.Directory,
	}
	switch request.Type {
	case creation.TypeSymlink:
		node.target = request.Target
	case creation.TypeCharDevice, creation.TypeBlockDevice:
		node.device = request.Device
	}
	v.inodes[id] = node

	// Insert the record in hash order.
	r := record{hash: hash, name: append([]byte(nil), request.Name...), id: id}
	parent.records = append(parent.records, record{})
	copy(parent.records[index+1:], parent.records[index:])
	parent.records[index] = r

	v.logger.Tracef("Created %s %d as %q in directory %d", request.Type, id, request.Name, request.Directory)
	return id, nil
}
