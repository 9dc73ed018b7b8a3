package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
)

// Catalog is the flat mapping from logical document path to a retrievable
// link. It is loaded once at startup and read-only afterwards, so it is
// safe for unsynchronized concurrent reads.
type Catalog struct {
	entries map[string]string
	paths   []string // sorted, for deterministic iteration
}

// Load reads a catalog file: a flat JSON object of path -> link.
func Load(file string) (*Catalog, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", file, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", file, err)
	}

	return New(entries), nil
}

// New builds a Catalog from an in-memory path -> link mapping.
func New(entries map[string]string) *Catalog {
	c := &Catalog{entries: make(map[string]string, len(entries))}
	for p, link := range entries {
		if strings.TrimSpace(p) == "" {
			continue
		}
		c.entries[p] = link
		c.paths = append(c.paths, p)
	}
	sort.Strings(c.paths)
	return c
}

// Resolve returns the link for an exact catalog path.
func (c *Catalog) Resolve(p string) (string, bool) {
	link, ok := c.entries[p]
	return link, ok
}

// Paths returns all catalog paths in sorted order. Callers must not
// modify the returned slice.
func (c *Catalog) Paths() []string {
	return c.paths
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// FindByName returns the first catalog entry (in sorted path order) whose
// path contains name, compared case-insensitively. This is how a retrieved
// chunk's source filename is mapped back to a retrievable link.
func (c *Catalog) FindByName(name string) (string, string, bool) {
	needle := strings.ToLower(name)
	if needle == "" {
		return "", "", false
	}
	for _, p := range c.paths {
		if strings.Contains(strings.ToLower(p), needle) {
			return p, c.entries[p], true
		}
	}
	return "", "", false
}

// FindByBasename returns the catalog entry whose final path segment equals
// name, compared case-insensitively.
func (c *Catalog) FindByBasename(name string) (string, string, bool) {
	needle := strings.ToLower(name)
	for _, p := range c.paths {
		if strings.ToLower(path.Base(p)) == needle {
			return p, c.entries[p], true
		}
	}
	return "", "", false
}
