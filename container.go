package config

import (
	"errors"
	"log/slog"
	"maps"
	"strconv"
	"strings"
)

// PathSeparator separates segments of a Walk path.
const PathSeparator = ":"

// Entry is one loaded dataset together with the index it is stored under.
type Entry struct {
	Index string
	Data  Dataset
}

// Container loads named datasets from a Provider, deep-merges environment
// overrides into them and serves lookups over the merged result.
//
// A Container is not safe for concurrent mutation. Load once at startup and
// treat it as read-only afterwards; concurrent reads are fine.
// Values handed out by the lookup methods are shared with the Container and
// must not be modified.
type Container struct {
	provider    Provider
	environment string
	logger      *slog.Logger

	order    []string
	loaded   map[string]Dataset
	sequence int
}

// Option configures a Container.
type Option func(*Container)

// WithProvider sets the Provider datasets are loaded from.
func WithProvider(provider Provider) Option {
	return func(c *Container) {
		c.provider = provider
	}
}

// WithEnvironment sets the initial environment name.
func WithEnvironment(environment string) Option {
	return func(c *Container) {
		c.environment = environment
	}
}

// WithLogger sets the logger used for load diagnostics.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// New creates a Container. Without WithProvider it uses an empty MemoryProvider.
func New(opts ...Option) *Container {
	container := &Container{
		loaded: make(map[string]Dataset),
	}

	for _, apply := range opts {
		apply(container)
	}

	if container.provider == nil {
		container.provider = NewMemoryProvider(nil)
	}

	if container.logger == nil {
		container.logger = slog.Default()
	}

	return container
}

// Provider returns the Provider the Container loads from.
//
//nolint:ireturn // the configured Provider is returned as-is
func (c *Container) Provider() Provider {
	return c.provider
}

// SetEnvironment sets the environment applied by subsequent loads.
// An empty name disables environment overrides. Already loaded data is not affected.
func (c *Container) SetEnvironment(name string) {
	c.environment = name
}

// Environment returns the current environment name, empty when unset.
func (c *Container) Environment() string {
	return c.environment
}

// Clear drops every loaded dataset. The Provider and environment are kept.
func (c *Container) Clear() {
	c.order = nil
	c.loaded = make(map[string]Dataset)
	c.sequence = 0
}

// OverrideName returns the name of the environment override dataset for name.
func OverrideName(name, environment string) string {
	return name + "_" + environment
}

// Load loads a single dataset, applies the environment override and stores
// the result under name. It returns the merged dataset.
func (c *Container) Load(name string) (Dataset, error) {
	merged, err := c.resolve(name)
	if err != nil {
		return nil, err
	}

	c.store(name, merged)

	return merged, nil
}

// LoadSet loads several datasets in order.
//
// With indexBySet each merged dataset is stored under its own name and the last
// one is returned. Otherwise the merged datasets are combined into one shallow
// mapping, later names winning on key collision, which is stored under the next
// sequence index and returned.
//
// LoadSet is atomic: if any dataset fails to load nothing is stored.
func (c *Container) LoadSet(names []string, indexBySet bool) (Dataset, error) {
	if len(names) == 0 {
		return nil, nil
	}

	merged := make([]Dataset, 0, len(names))

	for _, name := range names {
		dataset, err := c.resolve(name)
		if err != nil {
			return nil, err
		}

		merged = append(merged, dataset)
	}

	if indexBySet {
		for i, name := range names {
			c.store(name, merged[i])
		}

		return merged[len(merged)-1], nil
	}

	combined := make(Dataset)

	for _, dataset := range merged {
		maps.Copy(combined, dataset)
	}

	c.store(c.nextSlot(), combined)

	return combined, nil
}

func (c *Container) resolve(name string) (Dataset, error) {
	if name == "" {
		return nil, &LoadError{Name: name, Err: ErrEmptyName}
	}

	base, err := c.provider.Load(name)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}

	if c.environment == "" {
		return Merge(base, nil), nil
	}

	overrideName := OverrideName(name, c.environment)

	override, err := c.provider.Load(overrideName)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, &LoadError{Name: overrideName, Err: err}
		}

		c.logger.Debug("environment override not found",
			slog.String("dataset", name),
			slog.String("override", overrideName),
			slog.String("environment", c.environment))

		return Merge(base, nil), nil
	}

	c.logger.Debug("environment override applied",
		slog.String("dataset", name),
		slog.String("override", overrideName),
		slog.String("environment", c.environment))

	return Merge(base, override), nil
}

func (c *Container) store(index string, dataset Dataset) {
	if _, exists := c.loaded[index]; !exists {
		c.order = append(c.order, index)
	}

	c.loaded[index] = dataset

	c.logger.Debug("dataset loaded", slog.String("index", index), slog.Int("keys", len(dataset)))
}

// nextSlot allocates the index for an unindexed LoadSet.
func (c *Container) nextSlot() string {
	for {
		index := strconv.Itoa(c.sequence)
		c.sequence++

		if _, taken := c.loaded[index]; !taken {
			return index
		}
	}
}

// Get returns the value of key from the first loaded dataset, in load order,
// that contains it. def is returned verbatim when no dataset does.
func (c *Container) Get(key string, def any) any {
	value, ok := c.lookupKey(key)
	if !ok {
		return def
	}

	return value
}

// GetFrom returns the value of key inside the dataset stored at index, or def
// when either the index or the key is absent.
func (c *Container) GetFrom(index, key string, def any) any {
	dataset, ok := c.loaded[index]
	if !ok {
		return def
	}

	value, ok := dataset[key]
	if !ok {
		return def
	}

	return value
}

// Lookup returns the dataset stored at index.
func (c *Container) Lookup(index string) (Dataset, bool) {
	dataset, ok := c.loaded[index]

	return dataset, ok
}

// All returns every loaded dataset in insertion order.
func (c *Container) All() []Entry {
	entries := make([]Entry, 0, len(c.order))

	for _, index := range c.order {
		entries = append(entries, Entry{Index: index, Data: c.loaded[index]})
	}

	return entries
}

// Indexes returns the indexes of the loaded datasets in insertion order.
func (c *Container) Indexes() []string {
	indexes := make([]string, len(c.order))
	copy(indexes, c.order)

	return indexes
}

// Walk resolves a colon-delimited path such as "database:primary:host".
//
// The first segment is looked up like Get, each following segment as a key of
// the mapping reached so far. def is returned verbatim as soon as a segment is
// missing or the current value is not a mapping.
func (c *Container) Walk(path string, def any) any {
	value, ok := c.Resolve(path)
	if !ok {
		return def
	}

	return value
}

// Resolve is Walk reporting success instead of taking a default.
func (c *Container) Resolve(path string) (any, bool) {
	segments := strings.Split(path, PathSeparator)

	current, ok := c.lookupKey(segments[0])
	if !ok {
		return nil, false
	}

	for _, segment := range segments[1:] {
		mapping, isMap := asMapping(current)
		if !isMap {
			return nil, false
		}

		current, ok = mapping[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

func (c *Container) lookupKey(key string) (any, bool) {
	for _, index := range c.order {
		if value, ok := c.loaded[index][key]; ok {
			return value, true
		}
	}

	return nil, false
}
