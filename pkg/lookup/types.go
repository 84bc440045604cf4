package lookup

import (
	"context"

	"github.com/mutagen-io/namei/pkg/naming"
)

// ID is an on-disk object identifier (an inode number).
type ID uint64

// Object is an in-memory representation of an on-disk object.
type Object interface {
	// ID returns the object's identifier.
	ID() ID
}

// Directory identifies a directory in which names are resolved, along with the
// hash seed used for names within it.
type Directory struct {
	// ID is the directory's identifier.
	ID ID
	// Seed is the hash seed scoped to the directory.
	Seed naming.Seed
}

// Key identifies a directory entry in an entry cache.
type Key struct {
	// Directory is the identifier of the parent directory.
	Directory ID
	// Name is the entry's raw name.
	Name string
	// Hash is the entry's name hash under the volume match mode and the
	// directory's seed.
	Hash uint64
}

// Entry is a resolved directory entry. An entry with a nil Object is a
// negative entry: it records that the name does not exist.
type Entry struct {
	// Key is the entry's key.
	Key Key
	// Object is the entry's object, or nil for a negative entry.
	Object Object
}

// Negative indicates whether or not the entry records an absent name.
func (e *Entry) Negative() bool {
	return e.Object == nil
}

// Index maps names within a directory to identifiers. Implementations must use
// the provided equality oracle to decide whether a candidate on-disk name
// matches. Implementations return ErrNotFound (possibly wrapped) if no entry
// matches.
type Index interface {
	Lookup(ctx context.Context, directory ID, name naming.RawName, mode naming.MatchMode, equal naming.EqualFunc) (ID, error)
}

// ObjectStore loads (or reuses) in-memory objects for identifiers.
type ObjectStore interface {
	Load(ctx context.Context, id ID) (Object, error)
}

// EntryCache holds resident directory entries.
type EntryCache interface {
	// Splice reconciles an object (or nil, for an absent name) with any
	// resident entry for the key and returns the canonical entry. If an object
	// with the same identifier is already resident, the returned entry refers
	// to the resident object instead of the one provided.
	Splice(key Key, object Object) *Entry
	// Invalidate drops any resident entry for the key.
	Invalidate(key Key)
}
