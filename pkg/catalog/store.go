package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Save persists a catalog snapshot as JSON.
func Save(c Catalog, path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog snapshot: %w", err)
	}
	return nil
}

// Load reads a previously persisted snapshot. A missing snapshot yields an
// empty catalog, not an error; callers then run with fallback pricing.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Catalog{}, nil
		}
		return nil, fmt.Errorf("read catalog snapshot: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal catalog snapshot: %w", err)
	}
	return c, nil
}

// Holder is the read-mostly catalog singleton. Rebuilds swap the whole
// mapping on completion so concurrent readers never observe a partial
// catalog.
type Holder struct {
	mu sync.RWMutex
	c  Catalog
}

func NewHolder(c Catalog) *Holder {
	if c == nil {
		c = Catalog{}
	}
	return &Holder{c: c}
}

// Get returns the position list for a Gewerk, or nil when unknown.
func (h *Holder) Get(gewerk string) []Position {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.c[gewerk]
}

// Gewerke lists the trade codes currently carried by the catalog.
func (h *Holder) Gewerke() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.c))
	for g := range h.c {
		out = append(out, g)
	}
	return out
}

// Replace swaps in a freshly built catalog.
func (h *Holder) Replace(c Catalog) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.c = c
}
