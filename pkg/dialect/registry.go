package dialect

import (
	"sort"
	"strings"
	"sync"
)

// Dialect registry. Populated from dialect packages' init() functions;
// read-only once parsing starts.
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]*Dialect)
)

// Register adds a dialect to the global registry. Called by dialect
// implementations in their init() functions.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(d.Name())] = d
}

// Get returns a registered dialect by name.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// List returns all registered dialect names, sorted.
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
