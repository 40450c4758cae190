// Package config loads named configuration datasets, layers per-environment
// overrides on top of them and serves path-based lookups over the result.
//
// Datasets come from a Provider. A Container asks its Provider for a base
// dataset and, when an environment is set, for an override dataset named
// "<name>_<environment>". The override is deep-merged into the base: nested
// mappings merge key by key, anything else is replaced.
//
// # Loading
//
//	c := config.New(config.WithProvider(provider), config.WithEnvironment("test"))
//	if _, err := c.Load("default"); err != nil {
//	    // a missing base dataset is a *LoadError wrapping ErrNotFound
//	}
//
// A missing override is not an error. LoadSet loads several datasets at once,
// either indexed by name or combined into one flat mapping.
//
// # Lookups
//
// Lookups never fail; absence is reported through the caller's default:
//
//	c.Get("name", "fallback")               // first loaded dataset holding "name"
//	c.GetFrom("extra", "foo", nil)          // key inside one index
//	c.Index("extra").Data()                 // whole dataset at an index
//	c.Walk("database:primary:host", "")     // colon-delimited path
//
// Concrete providers live in sub-packages; provider/file reads YAML, JSON(C)
// and TOML definition files from a directory.
package config
