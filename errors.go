package config

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by a Provider when no dataset is registered under a name.
var ErrNotFound = errors.New("dataset not found")

// ErrEmptyName is returned when a dataset name is empty.
var ErrEmptyName = errors.New("dataset name must not be empty")

// ErrNotMapping is returned when a decoded document is not a key/value mapping.
var ErrNotMapping = errors.New("document root is not a mapping")

// LoadError reports a failure to load a dataset into the Container.
// It wraps the Provider error, so errors.Is(err, ErrNotFound) still works.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading dataset %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
