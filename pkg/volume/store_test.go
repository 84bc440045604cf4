package volume

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/mutagen-io/namei/pkg/creation"
	"github.com/mutagen-io/namei/pkg/lookup"
	"github.com/mutagen-io/namei/pkg/naming"
)

func TestStoreResidency(t *testing.T) {
	volume := newTestVolume(t, naming.Sensitive)
	id := mustCreate(t, volume, RootID, creation.TypeRegular, "file")
	store := NewStore(volume, nil)

	// Load the same object concurrently.
	var group sync.WaitGroup
	objects := make([]lookup.Object, 32)
	for i := range objects {
		group.Add(1)
		go func(i int) {
			defer group.Done()
			object, err := store.Load(context.Background(), id)
			if err != nil {
				t.Error("load failed:", err)
				return
			}
			objects[i] = object
		}(i)
	}
	group.Wait()

	// Verify that exactly one object was materialized.
	for i, object := range objects {
		if object != objects[0] {
			t.Error("distinct object loaded at index", i)
		}
	}
	if store.Materialized() != 1 {
		t.Error("unexpected materialization count:", store.Materialized())
	}

	// Verify that the object reads live attributes.
	if err := volume.SetSize(id, 4096); err != nil {
		t.Fatal("unable to set size:", err)
	}
	if attributes, err := objects[0].(*Inode).Attributes(); err != nil {
		t.Fatal("unable to read attributes:", err)
	} else if attributes.Size != 4096 {
		t.Error("object attributes are stale:", attributes.Size)
	}
}

func TestStoreMissingObject(t *testing.T) {
	store := NewStore(newTestVolume(t, naming.Sensitive), nil)
	if _, err := store.Load(context.Background(), 999); lookup.Errno(err) != unix.EIO {
		t.Error("unexpected error for missing object:", err)
	}
}
