package config

import (
	"fmt"
	"slices"
)

// Provider resolves a dataset name to its Dataset.
//
// Load must return an error wrapping ErrNotFound when the name has no backing
// data, and must be deterministic: loading the same name twice, with no change
// to the underlying source, yields equal datasets.
type Provider interface {
	Load(name string) (Dataset, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(name string) (Dataset, error)

// Load calls f(name).
func (f ProviderFunc) Load(name string) (Dataset, error) {
	return f(name)
}

// MemoryProvider serves datasets from an in-memory table.
// It is the Provider a Container uses when none is configured.
type MemoryProvider struct {
	table map[string]Dataset
}

// NewMemoryProvider creates a MemoryProvider from a table of named datasets.
// The table is copied, later changes to it are not observed.
func NewMemoryProvider(table map[string]Dataset) *MemoryProvider {
	copied := make(map[string]Dataset, len(table))

	for name, dataset := range table {
		copied[name] = dataset.Clone()
	}

	return &MemoryProvider{table: copied}
}

// Load returns a copy of the dataset registered under name.
func (p *MemoryProvider) Load(name string) (Dataset, error) {
	dataset, ok := p.table[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return dataset.Clone(), nil
}

// Names returns the registered dataset names in sorted order.
func (p *MemoryProvider) Names() []string {
	names := make([]string, 0, len(p.table))

	for name := range p.table {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
