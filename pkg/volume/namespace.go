package volume

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/mutagen-io/namei/pkg/creation"
	"github.com/mutagen-io/namei/pkg/dentry"
	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/lookup"
)

// NamespaceOptions are options for a namespace.
type NamespaceOptions struct {
	// Strict causes names that are not valid UTF-8 to be rejected.
	Strict bool
	// NegativeEntries bounds the number of resident negative entries. Zero
	// selects the cache default.
	NegativeEntries int
}

// Namespace wires a volume to a resolver, an entry cache, and a creation
// dispatcher. It is safe for concurrent usage.
type Namespace struct {
	// Volume is the underlying volume.
	Volume *Volume
	// Store is the object store.
	Store *Store
	// Cache is the directory entry cache.
	Cache *dentry.Cache
	// Resolver resolves names within directories.
	Resolver *lookup.Resolver
	// Dispatcher creates nodes.
	Dispatcher *creation.Dispatcher
	// logger is the namespace logger.
	logger *logging.Logger
}

// NewNamespace creates a namespace for a volume.
func NewNamespace(volume *Volume, options NamespaceOptions, logger *logging.Logger) *Namespace {
	store := NewStore(volume, logger.Sublogger("store"))
	cache := dentry.New(volume.mode, options.NegativeEntries, logger.Sublogger("dentry"))
	return &Namespace{
		Volume: volume,
		Store:  store,
		Cache:  cache,
		Resolver: lookup.NewResolver(volume.mode, volume, store, cache, lookup.ResolverOptions{
			Strict: options.Strict,
			Logger: logger.Sublogger("lookup"),
		}),
		Dispatcher: creation.NewDispatcher(volume, logger.Sublogger("creation")),
		logger:     logger,
	}
}

// Lookup resolves a single name within a directory.
func (n *Namespace) Lookup(ctx context.Context, directory lookup.ID, name []byte) (*lookup.Entry, error) {
	handle, err := n.Volume.Directory(directory)
	if err != nil {
		return nil, err
	}
	return n.Resolver.Resolve(ctx, handle, name)
}

// Root returns the object for the root directory.
func (n *Namespace) Root(ctx context.Context) (*Inode, error) {
	object, err := n.Store.Load(ctx, RootID)
	if err != nil {
		return nil, err
	}
	return object.(*Inode), nil
}

// components splits a slash-separated path into its components, dropping
// empty and "." components.
func components(path string) []string {
	var result []string
	for _, component := range strings.Split(path, "/") {
		if component != "" && component != "." {
			result = append(result, component)
		}
	}
	return result
}

// Resolve resolves a slash-separated path relative to the root and returns the
// identifier of the object it denotes. Every intermediate component must be a
// directory. A missing component fails with an error matching
// lookup.ErrNotFound.
func (n *Namespace) Resolve(ctx context.Context, path string) (lookup.ID, error) {
	current := RootID
	for _, component := range components(path) {
		// Handle parent references.
		if component == ".." {
			parent, err := n.Volume.Parent(current)
			if err != nil {
				return 0, err
			}
			current = parent
			continue
		}

		// Resolve the component.
		entry, err := n.Lookup(ctx, current, []byte(component))
		if err != nil {
			return 0, errors.Wrapf(err, "unable to resolve %q", component)
		} else if entry.Negative() {
			return 0, errors.Wrapf(lookup.ErrNotFound, "%q does not exist", component)
		}
		current = entry.Object.ID()
	}
	return current, nil
}

// CreateOptions describe a node to create.
type CreateOptions struct {
	// Type is the node type.
	Type creation.NodeType
	// Permissions are the permission bits. They are ignored for symbolic
	// links.
	Permissions uint32
	// Device is the device number for device nodes.
	Device uint64
	// Target is the target for symbolic links.
	Target string
}

// Create creates a node at a slash-separated path. The parent must exist and
// no equivalent name may exist within it.
func (n *Namespace) Create(ctx context.Context, path string, options CreateOptions) (lookup.ID, error) {
	parts := components(path)
	if len(parts) == 0 {
		return 0, errors.Wrap(ErrExists, "root exists")
	}
	name := parts[len(parts)-1]
	if name == ".." {
		return 0, ErrExists
	}

	// Resolve the parent directory.
	parent, err := n.Resolve(ctx, strings.Join(parts[:len(parts)-1], "/"))
	if err != nil {
		return 0, errors.Wrap(err, "unable to resolve parent")
	}

	// Perform creation.
	id, err := n.Dispatcher.Make(ctx, options.Type, parent, []byte(name),
		options.Permissions, options.Device, options.Target,
	)
	if err != nil {
		return 0, err
	}
	n.Created(ctx, parent, []byte(name))
	return id, nil
}

// Created reconciles the entry cache after a name has been created in a
// directory, replacing any negative entry for the name.
func (n *Namespace) Created(ctx context.Context, directory lookup.ID, name []byte) {
	handle, err := n.Volume.Directory(directory)
	if err != nil {
		n.logger.Warn(errors.Wrap(err, "unable to reconcile created entry"))
		return
	}
	n.Resolver.Invalidate(handle, name)
	if _, err := n.Resolver.Resolve(ctx, handle, name); err != nil {
		n.logger.Warn(errors.Wrap(err, "unable to cache created entry"))
	}
}
