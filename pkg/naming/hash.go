package naming

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Seed is a per-directory hash seed. The same name hashes differently under
// different parents.
type Seed uint64

// NewSeed derives the seed for a directory from a volume-wide salt (typically
// the volume UUID) and the directory's identifier.
func NewSeed(salt []byte, directory uint64) Seed {
	material := make([]byte, len(salt)+8)
	copy(material, salt)
	binary.LittleEndian.PutUint64(material[len(salt):], directory)
	return Seed(xxh3.Hash(material))
}

// Hash computes the hash of a raw name under the specified match mode and
// directory seed. It is consistent with Equal: names that compare equal under a
// mode hash identically under that mode and seed.
//
// Sensitive names are hashed over their raw bytes. Insensitive names are hashed
// over the code points produced by the same folding cursor the comparator uses,
// each fed to the accumulator as four bytes, least significant first.
func Hash(mode MatchMode, seed Seed, name RawName) uint64 {
	// Seed the accumulator.
	hasher := xxh3.New()
	var buffer [8]byte
	binary.LittleEndian.PutUint64(buffer[:], uint64(seed))
	hasher.Write(buffer[:])

	// Handle the sensitive case.
	if !mode.Insensitive() {
		hasher.Write(name)
		return hasher.Sum64()
	}

	// Hash the normalized sequence.
	var cursor Cursor
	cursor.Init(name, true)
	for {
		r, ok := cursor.Next()
		if !ok {
			break
		}
		binary.LittleEndian.PutUint32(buffer[:4], uint32(r))
		hasher.Write(buffer[:4])
	}
	return hasher.Sum64()
}
