package volume

import (
	"context"
	"strconv"
	"sync"

	"github.com/golang/groupcache/singleflight"
	"github.com/pkg/errors"

	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/lookup"
)

// Inode is the in-memory object for a volume node. Its attributes are read
// from the volume on demand.
type Inode struct {
	// volume is the owning volume.
	volume *Volume
	// id is the node identifier.
	id lookup.ID
}

// ID implements lookup.Object.ID.
func (i *Inode) ID() lookup.ID {
	return i.id
}

// Attributes returns the node's current attributes.
func (i *Inode) Attributes() (Attributes, error) {
	return i.volume.Attributes(i.id)
}

// Store is a lookup.ObjectStore for a volume. Concurrent loads of the same
// identifier are coalesced and loaded objects remain resident, so a store never
// materializes two objects for one identifier.
type Store struct {
	// volume is the underlying volume.
	volume *Volume
	// logger is the store logger.
	logger *logging.Logger
	// loads coalesces concurrent loads.
	loads singleflight.Group
	// lock guards resident and materialized.
	lock sync.Mutex
	// resident maps identifiers to materialized objects.
	resident map[lookup.ID]*Inode
	// materialized counts object materializations.
	materialized uint64
}

// NewStore creates a new object store for a volume.
func NewStore(volume *Volume, logger *logging.Logger) *Store {
	return &Store{
		volume:   volume,
		logger:   logger,
		resident: make(map[lookup.ID]*Inode),
	}
}

// Load implements lookup.ObjectStore.Load.
func (s *Store) Load(ctx context.Context, id lookup.ID) (lookup.Object, error) {
	// Check for cancellation.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Check for a resident object.
	s.lock.Lock()
	if object, ok := s.resident[id]; ok {
		s.lock.Unlock()
		return object, nil
	}
	s.lock.Unlock()

	// Materialize the object, coalescing with any concurrent load.
	result, err := s.loads.Do(strconv.FormatUint(uint64(id), 10), func() (interface{}, error) {
		s.lock.Lock()
		defer s.lock.Unlock()
		if object, ok := s.resident[id]; ok {
			return object, nil
		}
		s.volume.lock.RLock()
		_, ok := s.volume.inodes[id]
		s.volume.lock.RUnlock()
		if !ok {
			return nil, errors.Errorf("index references missing object %d", id)
		}
		object := &Inode{volume: s.volume, id: id}
		s.resident[id] = object
		s.materialized++
		s.logger.Tracef("Materialized object %d", id)
		return object, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Inode), nil
}

// Materialized returns the number of objects materialized by the store.
func (s *Store) Materialized() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.materialized
}
