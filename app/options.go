package app

import (
	"net/http"

	"go.uber.org/fx"

	config "github.com/volnix/config"
	"github.com/volnix/config/inspect"
	"github.com/volnix/config/listener"
)

// InspectorName is the Fx module name and DI tag of the inspection listener.
const InspectorName = "config-inspect"

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat sets the log output format, logging.FormatJSON (default) or logging.FormatText.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithProvider supplies the Provider the config module loads datasets from.
// A nil provider is ignored.
func WithProvider(provider config.Provider) Option {
	return func(opts *Options) {
		if provider == nil {
			return
		}

		opts.Modules = append(opts.Modules, fx.Supply(
			fx.Annotate(provider, fx.As(new(config.Provider))),
		))
	}
}

// WithConfig adds the config module, which provides a loaded *config.Container.
func WithConfig(cfg config.ModuleConfig) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, config.NewModule(cfg))
	}
}

// WithInspector serves the read-only inspection endpoints for the loaded
// *config.Container on address. Requires WithConfig.
func WithInspector(address string, opts ...listener.Option) Option {
	return func(o *Options) {
		listenerOpts := append([]listener.Option{listener.WithAddress(address)}, opts...)

		o.Modules = append(o.Modules,
			fx.Provide(fx.Annotate(
				func(container *config.Container) http.Handler {
					return inspect.NewHandler(container)
				},
				fx.ResultTags(`name:"`+InspectorName+`"`),
			)),
			listener.NewModule(InspectorName, listenerOpts...),
		)
	}
}
