// Package lookup implements name resolution within a directory: it validates
// a requested name, queries an on-disk index under the volume's match mode,
// materializes the resulting object, and reconciles it with any resident
// directory entry so that exactly one in-memory object exists per identifier.
//
// The index, object store, and entry cache are collaborators supplied by the
// caller. Locking is also the caller's responsibility: resolves against the
// same directory may run in parallel under a shared lock, and the entry cache
// is expected to reconcile aliases atomically.
package lookup
