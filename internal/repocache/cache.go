package repocache

// Cache maps full repository names to snapshots. It belongs to one request
// and is not safe for concurrent use.
type Cache struct {
	snapshots map[string]Snapshot
	order     []string
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{snapshots: make(map[string]Snapshot)}
}

// Put stores s under s.FullName, replacing any earlier snapshot wholesale.
func (c *Cache) Put(s Snapshot) {
	if _, ok := c.snapshots[s.FullName]; !ok {
		c.order = append(c.order, s.FullName)
	}
	c.snapshots[s.FullName] = s
}

// Get returns the snapshot for fullName.
func (c *Cache) Get(fullName string) (Snapshot, bool) {
	s, ok := c.snapshots[fullName]
	return s, ok
}

// Has reports whether fullName is cached.
func (c *Cache) Has(fullName string) bool {
	_, ok := c.snapshots[fullName]
	return ok
}

// Keys returns cached repository names in first-cached order.
func (c *Cache) Keys() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of cached repositories.
func (c *Cache) Len() int {
	return len(c.snapshots)
}

// Empty reports whether nothing has been cached yet.
func (c *Cache) Empty() bool {
	return len(c.snapshots) == 0
}

// Sum aggregates the counts of the given snapshots.
func Sum(snaps []Snapshot) Totals {
	t := Totals{Repos: len(snaps)}
	for _, s := range snaps {
		t.Files += s.FileCount
		t.Dirs += s.DirCount
	}
	return t
}
