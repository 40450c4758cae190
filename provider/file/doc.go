// Package file provides a config.Provider backed by a directory of definition files.
//
// A dataset named "default" is read from the first of default.yaml,
// default.yml, default.json, default.jsonc and default.toml that exists in
// the directory. Environment overrides are ordinary files named after the
// override dataset, e.g. default_test.yaml.
//
// Files are read on every Load; the provider keeps no cache. Names that would
// escape the directory are reported as not found.
//
// Usage:
//
//	provider, err := file.New("/etc/app/config")
//	container := config.New(config.WithProvider(provider), config.WithEnvironment("test"))
//	_, err = container.Load("default")
package file
