package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"docqa/internal/port"
)

// Registry memoizes one BoltStore per index name for the lifetime of the
// process. First reference to a name creates the bolt file under the data
// directory. The map only grows; index count is operator-controlled.
type Registry struct {
	mu      sync.Mutex
	dataDir string
	stores  map[string]*BoltStore
}

func NewRegistry(dataDir string) *Registry {
	return &Registry{
		dataDir: dataDir,
		stores:  make(map[string]*BoltStore),
	}
}

// Get returns the store for the named index, opening it on first use.
func (r *Registry) Get(indexName string) (port.IndexStore, error) {
	if indexName == "" {
		return nil, fmt.Errorf("index name must not be empty")
	}
	// Names become file names under dataDir.
	if indexName != filepath.Base(indexName) || indexName == "." || indexName == ".." {
		return nil, fmt.Errorf("invalid index name %q", indexName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.stores[indexName]; ok {
		return st, nil
	}

	if err := os.MkdirAll(r.dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	st, err := NewBoltStore(filepath.Join(r.dataDir, indexName+".db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open index %q: %w", indexName, err)
	}
	r.stores[indexName] = st
	return st, nil
}

// Close closes every open index store.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for name, st := range r.stores {
		if err := st.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.stores, name)
	}
	return firstErr
}
