package config

import (
	"errors"
	"fmt"
	"log/slog"

	"go.uber.org/fx"
)

// ErrNoDatasets is returned when a module is configured without datasets to load.
var ErrNoDatasets = errors.New("at least one dataset must be configured")

// ModuleConfig describes what a config module loads at startup.
type ModuleConfig struct {
	Environment string
	Datasets    []string
	IndexBySet  bool
}

// Validate validates the ModuleConfig.
func (c *ModuleConfig) Validate() error {
	if len(c.Datasets) == 0 {
		return ErrNoDatasets
	}

	for _, name := range c.Datasets {
		if name == "" {
			return ErrEmptyName
		}
	}

	return nil
}

type moduleParams struct {
	fx.In

	Provider Provider     `optional:"true"`
	Logger   *slog.Logger `optional:"true"`
}

// NewModule creates an Fx module that provides a *Container with the configured
// datasets already loaded. A Provider and *slog.Logger are taken from DI when
// present. A load failure fails application startup.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(cfg ModuleConfig) fx.Option {
	err := cfg.Validate()
	if err != nil {
		return fx.Error(fmt.Errorf("config module: %w", err))
	}

	return fx.Module("config",
		fx.Provide(func(params moduleParams) (*Container, error) {
			return newLoadedContainer(cfg, params)
		}),
	)
}

func newLoadedContainer(cfg ModuleConfig, params moduleParams) (*Container, error) {
	container := New(
		WithProvider(params.Provider),
		WithEnvironment(cfg.Environment),
		WithLogger(params.Logger),
	)

	var err error

	if len(cfg.Datasets) == 1 {
		_, err = container.Load(cfg.Datasets[0])
	} else {
		_, err = container.LoadSet(cfg.Datasets, cfg.IndexBySet)
	}

	if err != nil {
		return nil, err
	}

	container.logger.Info("configuration loaded",
		slog.Any("datasets", cfg.Datasets),
		slog.String("environment", cfg.Environment),
		slog.Any("indexes", container.Indexes()))

	return container, nil
}
