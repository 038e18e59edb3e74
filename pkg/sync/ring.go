package sync

import (
	"encoding/binary"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/spaolacci/murmur3"
)

// ring is a consistent hash ring over murmur3.
type ring[V any] struct {
	hashRing *treemap.Map

	// minEntryValue caches the value of the smallest hash, which is where keys
	// past the largest hash wrap around to.
	minEntryValue V
}

// newRing returns a ring in which every entry occupies replicationFactor
// points.
func newRing[V any](entries map[string]V, replicationFactor uint) *ring[V] {
	hashRing := treemap.NewWith(utils.Int64Comparator)
	for k, v := range entries {
		keyHash, _ := murmur3.Sum128([]byte(k))
		keyHashBytes := binary.LittleEndian.AppendUint64(nil, keyHash)
		for i := 0; i < int(replicationFactor); i++ {
			hasher := murmur3.New128()
			hasher.Write(keyHashBytes)
			hasher.Write(binary.LittleEndian.AppendUint32(nil, uint32(i)))
			hash, _ := hasher.Sum128()
			hashRing.Put(int64(hash), v)
		}
	}

	r := &ring[V]{hashRing: hashRing}
	if _, min := hashRing.Min(); min != nil {
		r.minEntryValue = min.(V)
	}
	return r
}

// shard consistently hashes the key and returns the entry that owns it.
func (r *ring[V]) shard(key []byte) V {
	hasher := murmur3.New128()
	hasher.Write(key)
	raw, _ := hasher.Sum128()

	if _, shard := r.hashRing.Ceiling(int64(raw)); shard != nil {
		return shard.(V)
	}
	return r.minEntryValue
}
