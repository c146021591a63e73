package dictionary

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Registry resolves table names to dictionaries
type Registry struct {
	tables map[string]*Dictionary
}

// NewRegistry loads every embedded table, then the configured files.
// A configured name equal to a builtin replaces that builtin.
func NewRegistry(root string, files map[string]string) (*Registry, error) {
	r := &Registry{tables: map[string]*Dictionary{}}

	for _, name := range BuiltinNames() {
		d, err := Builtin(name)
		if err != nil {
			return nil, err
		}
		r.tables[name] = d
	}

	for name, path := range files {
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		d, err := LoadFile(name, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary %s: %w", name, err)
		}
		r.tables[name] = d
	}

	return r, nil
}

// Get returns the table with the given name
func (r *Registry) Get(name string) (*Dictionary, error) {
	d, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown dictionary: %s", name)
	}
	return d, nil
}

// Names returns the registered table names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Combined merges every table into one, in sorted name order.
// Used by scan to suggest keys.
func (r *Registry) Combined() *Dictionary {
	all := New("all")
	for _, name := range r.Names() {
		all.Merge(r.tables[name])
	}
	return all
}
