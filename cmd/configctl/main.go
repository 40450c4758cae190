// Command configctl loads datasets from a directory, applies an environment
// override and prints the merged result or a single walked value.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"

	config "github.com/volnix/config"
	"github.com/volnix/config/logging"
	"github.com/volnix/config/provider/file"
)

// EnvironmentVariable names the environment used when --env is not given.
const EnvironmentVariable = "CONFIG_ENV"

// Exit codes besides 0 (success).
const (
	exitFailure    = 1
	exitUnresolved = 2
)

var (
	errUsage      = errors.New("usage: configctl [flags] <dataset[,dataset...]> [path]")
	errBadFormat  = errors.New("unknown output format")
	errUnresolved = errors.New("path not found")
)

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}

	_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)

	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		os.Exit(coder.ExitCode())
	}

	os.Exit(exitFailure)
}

type options struct {
	dir         string
	environment string
	section     string
	format      string
	logLevel    string
	index       bool
	version     bool
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("configctl", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.dir, "dir", "d", ".", "directory holding the dataset files")
	flagSet.StringVarP(&opts.environment, "env", "e", os.Getenv(EnvironmentVariable),
		"environment whose overrides are applied (default $"+EnvironmentVariable+")")
	flagSet.StringVar(&opts.section, "section", "", "colon-delimited section every file is narrowed to")
	flagSet.StringVarP(&opts.format, "format", "f", "yaml", "output format: yaml or json")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flagSet.BoolVar(&opts.index, "index", false, "store every dataset under its own name")
	flagSet.BoolVar(&opts.version, "version", false, "print version and exit")

	err := flagSet.Parse(args)
	if err != nil {
		return err //nolint:wrapcheck // pflag errors already name the flag
	}

	if opts.version {
		_, err = fmt.Fprintf(stdout, "configctl %s (%s)\n", config.Version, config.CompiledAt)

		return err //nolint:wrapcheck
	}

	positional := flagSet.Args()
	if len(positional) == 0 || len(positional) > 2 {
		return &exitError{code: exitFailure, err: errUsage}
	}

	encode, err := encoder(opts.format)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}

	container, err := load(opts, splitNames(positional[0]), stderr)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}

	if len(positional) == 2 {
		value, ok := container.Resolve(positional[1])
		if !ok {
			return &exitError{code: exitUnresolved, err: fmt.Errorf("%w: %s", errUnresolved, positional[1])}
		}

		return encode(stdout, value)
	}

	return encode(stdout, snapshot(container))
}

func load(opts options, names []string, stderr io.Writer) (*config.Container, error) {
	var providerOpts []file.Option
	if opts.section != "" {
		providerOpts = append(providerOpts, file.WithSection(opts.section))
	}

	provider, err := file.New(opts.dir, providerOpts...)
	if err != nil {
		return nil, err //nolint:wrapcheck // provider errors carry the directory
	}

	logger := logging.NewLogger(logging.LoggerConfig{Level: opts.logLevel, Format: logging.FormatText}, stderr)

	container := config.New(
		config.WithProvider(provider),
		config.WithEnvironment(opts.environment),
		config.WithLogger(logger),
	)

	_, err = container.LoadSet(names, opts.index)
	if err != nil {
		return nil, err //nolint:wrapcheck // LoadError names the dataset
	}

	return container, nil
}

func splitNames(arg string) []string {
	var names []string

	for _, name := range strings.Split(arg, ",") {
		names = append(names, strings.TrimSpace(name))
	}

	return names
}

// snapshot returns the single loaded dataset, or every dataset keyed by index
// in load order when several were stored.
func snapshot(container *config.Container) any {
	entries := container.All()
	if len(entries) == 1 {
		return entries[0].Data
	}

	ordered := make(yaml.MapSlice, 0, len(entries))
	for _, entry := range entries {
		ordered = append(ordered, yaml.MapItem{Key: entry.Index, Value: entry.Data})
	}

	return ordered
}

type encodeFunc func(w io.Writer, value any) error

func encoder(format string) (encodeFunc, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return encodeYAML, nil
	case "json":
		return encodeJSON, nil
	default:
		return nil, fmt.Errorf("%w: %q", errBadFormat, format)
	}
}

func encodeYAML(w io.Writer, value any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}

	_, err = w.Write(data)

	return err //nolint:wrapcheck
}

func encodeJSON(w io.Writer, value any) error {
	if ordered, ok := value.(yaml.MapSlice); ok {
		byIndex := make(map[string]any, len(ordered))
		for _, item := range ordered {
			byIndex[fmt.Sprint(item.Key)] = item.Value
		}

		value = byIndex
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	return nil
}
