package filesystem

import (
	"sync"

	"golang.org/x/sys/unix"
)

// StatCache caches stat, lstat and realpath results per path in a
// thread-safe manner. Failed lookups are never cached.
type StatCache struct {
	sync.RWMutex
	stats     map[string]unix.Stat_t
	lstats    map[string]unix.Stat_t
	realpaths map[string]string
}

// NewStatCache returns a pointer to a new, empty [StatCache].
func NewStatCache() *StatCache {
	return &StatCache{
		stats:     make(map[string]unix.Stat_t),
		lstats:    make(map[string]unix.Stat_t),
		realpaths: make(map[string]string),
	}
}

func (c *StatCache) getStat(path string) (unix.Stat_t, bool) {
	c.RLock()
	defer c.RUnlock()

	st, ok := c.stats[path]

	return st, ok
}

func (c *StatCache) putStat(path string, st unix.Stat_t) {
	c.Lock()
	defer c.Unlock()

	c.stats[path] = st
}

func (c *StatCache) getLstat(path string) (unix.Stat_t, bool) {
	c.RLock()
	defer c.RUnlock()

	st, ok := c.lstats[path]

	return st, ok
}

func (c *StatCache) putLstat(path string, st unix.Stat_t) {
	c.Lock()
	defer c.Unlock()

	c.lstats[path] = st
}

func (c *StatCache) getRealpath(path string) (string, bool) {
	c.RLock()
	defer c.RUnlock()

	resolved, ok := c.realpaths[path]

	return resolved, ok
}

func (c *StatCache) putRealpath(path string, resolved string) {
	c.Lock()
	defer c.Unlock()

	c.realpaths[path] = resolved
}

// Invalidate drops the cached stat and lstat results for a path. The cached
// realpath is only dropped when alsoRealpath is set.
func (c *StatCache) Invalidate(path string, alsoRealpath bool) {
	c.Lock()
	defer c.Unlock()

	delete(c.stats, path)
	delete(c.lstats, path)

	if alsoRealpath {
		delete(c.realpaths, path)
	}
}

// Clear drops all cached results.
func (c *StatCache) Clear() {
	c.Lock()
	defer c.Unlock()

	c.stats = make(map[string]unix.Stat_t)
	c.lstats = make(map[string]unix.Stat_t)
	c.realpaths = make(map[string]string)
}

// Len returns the amount of cached stat and lstat results.
func (c *StatCache) Len() int {
	c.RLock()
	defer c.RUnlock()

	return len(c.stats) + len(c.lstats)
}
