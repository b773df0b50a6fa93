package pathfinding

import (
	"fmt"
	"sync"
	"sync/atomic"

	"wireroute/core"
)

// PathCacheKey represents a unique key for caching search outputs.
type PathCacheKey struct {
	Start        core.Location
	StartDir     core.Direction
	Dest         core.Location
	ObstacleHash uint64 // AvoidanceMap.Hash at search time
}

type cachedPath struct {
	path    Path
	outcome Outcome
}

// PathCache stores previously computed paths for reuse. Aborted searches are never stored.
type PathCache struct {
	mu        sync.RWMutex
	cache     map[PathCacheKey]cachedPath
	order     []PathCacheKey
	maxSize   int
	hits      int64 // Use atomic operations
	misses    int64 // Use atomic operations
	evictions int64 // Use atomic operations
}

// NewPathCache creates a new path cache with the specified maximum size
func NewPathCache(maxSize int) *PathCache {
	return &PathCache{
		cache:   make(map[PathCacheKey]cachedPath),
		maxSize: maxSize,
	}
}

// Get retrieves a path from the cache if it exists
func (pc *PathCache) Get(key PathCacheKey) (Path, Outcome, bool) {
	pc.mu.RLock()
	entry, found := pc.cache[key]
	pc.mu.RUnlock()

	if found {
		atomic.AddInt64(&pc.hits, 1)
	} else {
		atomic.AddInt64(&pc.misses, 1)
	}
	return entry.path, entry.outcome, found
}

// Put stores a path in the cache, evicting the oldest entry when full.
func (pc *PathCache) Put(key PathCacheKey, path Path, outcome Outcome) {
	if outcome == Aborted || pc.maxSize <= 0 {
		return
	}
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if _, exists := pc.cache[key]; !exists {
		if len(pc.cache) >= pc.maxSize {
			oldest := pc.order[0]
			pc.order = pc.order[1:]
			delete(pc.cache, oldest)
			atomic.AddInt64(&pc.evictions, 1)
		}
		pc.order = append(pc.order, key)
	}
	pc.cache[key] = cachedPath{path: path, outcome: outcome}
}

// Clear removes all entries from the cache
func (pc *PathCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache = make(map[PathCacheKey]cachedPath)
	pc.order = nil
	atomic.StoreInt64(&pc.hits, 0)
	atomic.StoreInt64(&pc.misses, 0)
	atomic.StoreInt64(&pc.evictions, 0)
}

// Stats returns cache statistics
func (pc *PathCache) Stats() (hits, misses, evictions, size int) {
	pc.mu.RLock()
	size = len(pc.cache)
	pc.mu.RUnlock()

	hits = int(atomic.LoadInt64(&pc.hits))
	misses = int(atomic.LoadInt64(&pc.misses))
	evictions = int(atomic.LoadInt64(&pc.evictions))
	return hits, misses, evictions, size
}

// String returns a string representation of cache statistics
func (pc *PathCache) String() string {
	hits, misses, evictions, size := pc.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return fmt.Sprintf("PathCache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, pc.maxSize, hits, misses, hitRate, evictions)
}

// CachedSearcher wraps a Searcher with a PathCache.
type CachedSearcher struct {
	*Searcher
	cache *PathCache
}

// NewCachedSearcher creates a searcher that remembers up to cacheSize results.
func NewCachedSearcher(costs PathCost, cacheSize int) *CachedSearcher {
	return &CachedSearcher{
		Searcher: NewSearcher(costs),
		cache:    NewPathCache(cacheSize),
	}
}

// Search returns a cached result when the same connection was routed to the same
// destination across an identical avoidance map, and searches otherwise.
func (cs *CachedSearcher) Search(conn ConnectionData, dest core.Location, avoid *AvoidanceMap, abort func() bool) (Path, Outcome) {
	var hash uint64
	if avoid != nil {
		hash = avoid.Hash()
	}
	key := PathCacheKey{
		Start:        conn.WirePathStart(),
		StartDir:     conn.Direction(),
		Dest:         dest,
		ObstacleHash: hash,
	}
	if path, outcome, found := cs.cache.Get(key); found {
		return path, outcome
	}
	path, outcome := cs.Searcher.Search(conn, dest, avoid, abort)
	cs.cache.Put(key, path, outcome)
	return path, outcome
}

// CacheStats returns the cache statistics
func (cs *CachedSearcher) CacheStats() string {
	return cs.cache.String()
}
