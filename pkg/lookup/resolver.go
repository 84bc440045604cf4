package lookup

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/naming"
)

// ResolverOptions are optional Resolver settings.
type ResolverOptions struct {
	// Strict causes names that are not valid UTF-8 to be rejected with
	// naming.ErrMalformedEncoding instead of being decoded best-effort.
	Strict bool
	// Logger is the logger to use. It may be nil.
	Logger *logging.Logger
}

// Resolver resolves names within directories. It is safe for concurrent usage
// as long as its collaborators are.
type Resolver struct {
	// mode is the volume match mode.
	mode naming.MatchMode
	// equal is the equality oracle handed to the index.
	equal naming.EqualFunc
	// strict indicates whether or not malformed names are rejected.
	strict bool
	// index is the on-disk index.
	index Index
	// store is the object store.
	store ObjectStore
	// cache is the directory entry cache.
	cache EntryCache
	// logger is the resolver logger.
	logger *logging.Logger
}

// NewResolver creates a new resolver for a volume with the specified match
// mode. It panics if the mode is unsupported.
func NewResolver(mode naming.MatchMode, index Index, store ObjectStore, cache EntryCache, options ResolverOptions) *Resolver {
	if !mode.Supported() {
		panic("invalid match mode")
	}
	return &Resolver{
		mode:   mode,
		equal:  naming.Comparator(mode),
		strict: options.Strict,
		index:  index,
		store:  store,
		cache:  cache,
		logger: options.Logger,
	}
}

// Mode returns the resolver's match mode.
func (r *Resolver) Mode() naming.MatchMode {
	return r.mode
}

// Key computes the entry cache key for a name within a directory.
func (r *Resolver) Key(directory Directory, name []byte) Key {
	return Key{
		Directory: directory.ID,
		Name:      string(name),
		Hash:      naming.Hash(r.mode, directory.Seed, name),
	}
}

// Resolve resolves a name within a directory. A name that does not exist
// yields a negative entry and a nil error. Names longer than naming.NameMax
// fail with naming.ErrNameTooLong before the index is consulted. Faults from
// collaborators are returned unchanged and are never retried.
func (r *Resolver) Resolve(ctx context.Context, directory Directory, name []byte) (*Entry, error) {
	// Validate the name.
	if err := naming.Validate(name, r.strict); err != nil {
		r.logger.Debugf("Rejecting name %q in directory %d: %v", name, directory.ID, err)
		return nil, err
	}

	// Compute the cache key.
	key := r.Key(directory, name)

	// Query the index.
	id, err := r.index.Lookup(ctx, directory.ID, name, r.mode, r.equal)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.logger.Tracef("Name %q absent from directory %d", name, directory.ID)
			return r.cache.Splice(key, nil), nil
		}
		return nil, err
	}

	// Materialize the object.
	object, err := r.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	// Reconcile with any resident entry.
	entry := r.cache.Splice(key, object)
	r.logger.Tracef("Resolved %q in directory %d to object %d", name, directory.ID, id)
	return entry, nil
}

// Invalidate drops any resident entry for a name within a directory. Callers
// use it after mutating the directory.
func (r *Resolver) Invalidate(directory Directory, name []byte) {
	r.cache.Invalidate(r.Key(directory, name))
}
