package util

import (
	"sync"
	"sync/atomic"
)

// SlicePool provides pooling for scratch slices, keyed by length, to reduce
// allocations in per-row processing loops.
type SlicePool[T any] struct {
	pools map[int]*sync.Pool
	mu    sync.RWMutex

	// Metrics
	hits   atomic.Int64
	misses atomic.Int64
}

var (
	float32Pool = NewSlicePool[float32]()
)

func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{pools: make(map[int]*sync.Pool)}
}

// Get retrieves a zeroed slice of the given length from the pool or creates a new one
func (p *SlicePool[T]) Get(length int) []T {
	if length == 0 {
		return make([]T, 0)
	}

	// Fast path: read lock
	p.mu.RLock()
	pool, exists := p.pools[length]
	p.mu.RUnlock()

	if exists {
		if s := pool.Get(); s != nil {
			p.hits.Add(1)
			return *(s.(*[]T))
		}
	} else {
		// Slow path: create new pool
		p.mu.Lock()
		// Double-check after acquiring write lock
		if _, exists = p.pools[length]; !exists {
			p.pools[length] = &sync.Pool{}
		}
		p.mu.Unlock()
	}

	p.misses.Add(1)
	return make([]T, length)
}

// Put returns a slice to the pool after clearing it
func (p *SlicePool[T]) Put(s []T) {
	if len(s) == 0 {
		return
	}

	p.mu.RLock()
	pool, exists := p.pools[len(s)]
	p.mu.RUnlock()

	if exists {
		clear(s)
		pool.Put(&s)
	}
}

// GetMetrics returns pool usage statistics
func (p *SlicePool[T]) GetMetrics() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

// GetFloat32Slice creates or retrieves a zeroed float32 slice from the pool
func GetFloat32Slice(length int) []float32 {
	return float32Pool.Get(length)
}

// ReturnFloat32Slice returns a float32 slice to the pool
func ReturnFloat32Slice(s []float32) {
	float32Pool.Put(s)
}

// GetPoolMetrics returns metrics for the shared pools
func GetPoolMetrics() map[string]map[string]int64 {
	hits, misses := float32Pool.GetMetrics()
	return map[string]map[string]int64{
		"float32": {
			"hits":   hits,
			"misses": misses,
		},
	}
}
