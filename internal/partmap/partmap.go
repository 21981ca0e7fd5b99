// Package partmap provide a partitioned map.
package partmap

import (
	"hash/maphash"
	"sync"
)

// Key constraints keys to be comparable and hashable.
type Key interface {
	comparable
	Hash(seed maphash.Seed) uint64
}

type part[K Key, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

// Map is a concurrency safe map split into independently locked parts.
type Map[K Key, V any] struct {
	numPart uint64
	seed    maphash.Seed
	parts   []*part[K, V]
}

// New returns a map with numPart parts.
func New[K Key, V any](numPart uint64) *Map[K, V] {
	if numPart == 0 {
		numPart = 1
	}
	pm := &Map[K, V]{
		numPart: numPart,
		seed:    maphash.MakeSeed(),
		parts:   make([]*part[K, V], numPart),
	}
	for i := range pm.parts {
		pm.parts[i] = &part[K, V]{m: make(map[K]V)}
	}
	return pm
}

func (pm *Map[K, V]) part(k K) *part[K, V] { return pm.parts[k.Hash(pm.seed)%pm.numPart] }

// Load returns the value stored for k.
func (pm *Map[K, V]) Load(k K) (V, bool) {
	part := pm.part(k)
	part.mu.Lock()
	v, ok := part.m[k]
	part.mu.Unlock()
	return v, ok
}

// LoadOrStore returns the existing value for k if present.
// Otherwise it stores and returns v. The loaded result is true if the value was loaded.
func (pm *Map[K, V]) LoadOrStore(k K, v V) (V, bool) {
	part := pm.part(k)
	part.mu.Lock()
	if actual, ok := part.m[k]; ok {
		part.mu.Unlock()
		return actual, true
	}
	part.m[k] = v
	part.mu.Unlock()
	return v, false
}

// Size returns the number of stored entries.
func (pm *Map[K, V]) Size() int {
	size := 0
	for _, part := range pm.parts {
		part.mu.Lock()
		size += len(part.m)
		part.mu.Unlock()
	}
	return size
}
