package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	config "github.com/volnix/config"
	filefetcher "github.com/volnix/config/fetcher/file"
	jsoncparser "github.com/volnix/config/parser/jsonc"
	tomlparser "github.com/volnix/config/parser/toml"
	yamlparser "github.com/volnix/config/parser/yaml"
)

// ErrNotDirectory is returned when the provider root is not a directory.
var ErrNotDirectory = errors.New("provider root is not a directory")

// ErrSectionNotFound is returned when a definition file lacks the configured section.
var ErrSectionNotFound = errors.New("section not found")

// Parser decodes the contents of a definition file.
type Parser interface {
	Parse(data []byte) (config.Dataset, error)
}

// sectionParser is implemented by parsers that can decode a sub-tree directly.
type sectionParser interface {
	ParseSection(data []byte, path string) (config.Dataset, error)
}

type format struct {
	ext    string
	parser Parser
}

// Provider loads datasets from definition files in a directory.
type Provider struct {
	dir     string
	section string
	formats []format
}

// Option configures a Provider.
type Option func(*Provider)

// WithParser registers parser for files with extension ext (including the dot).
// An already registered extension keeps its search position; a new one is
// searched last.
func WithParser(ext string, parser Parser) Option {
	return func(p *Provider) {
		ext = strings.ToLower(ext)

		for i := range p.formats {
			if p.formats[i].ext == ext {
				p.formats[i].parser = parser

				return
			}
		}

		p.formats = append(p.formats, format{ext: ext, parser: parser})
	}
}

// WithSection makes every file contribute only the mapping found at a
// colon-separated path, e.g. "config" for files that nest everything under a
// top-level "config" key.
func WithSection(path string) Option {
	return func(p *Provider) {
		p.section = path
	}
}

// New creates a Provider rooted at dir. dir must be an existing directory.
func New(dir string, opts ...Option) (*Provider, error) {
	cleanDir := filepath.Clean(dir)

	stat, err := os.Stat(cleanDir)
	if err != nil {
		return nil, fmt.Errorf("stat directory %q: %w", cleanDir, err)
	}

	if !stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanDir, ErrNotDirectory)
	}

	yaml := yamlparser.NewParser()
	jsonc := jsoncparser.NewParser()

	provider := &Provider{
		dir: cleanDir,
		formats: []format{
			{ext: ".yaml", parser: yaml},
			{ext: ".yml", parser: yaml},
			{ext: ".json", parser: jsonc},
			{ext: ".jsonc", parser: jsonc},
			{ext: ".toml", parser: tomlparser.NewParser()},
		},
	}

	for _, apply := range opts {
		apply(provider)
	}

	return provider, nil
}

// NewProvider returns a constructor function for New, the form Fx providers expect.
func NewProvider(dir string, opts ...Option) func() (*Provider, error) {
	return func() (*Provider, error) {
		return New(dir, opts...)
	}
}

// Dir returns the directory the Provider reads from.
func (p *Provider) Dir() string {
	return p.dir
}

// Load reads and decodes the definition file for name.
func (p *Provider) Load(name string) (config.Dataset, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: invalid dataset name %q", config.ErrNotFound, name)
	}

	for _, candidate := range p.formats {
		path := filepath.Join(p.dir, name+candidate.ext)

		fetcher, err := filefetcher.New(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("dataset %q: %w", name, err)
		}

		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", name, err)
		}

		dataset, err := p.decode(candidate.parser, data)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", fetcher.Path(), err)
		}

		return dataset, nil
	}

	return nil, fmt.Errorf("%w: %s in %s", config.ErrNotFound, name, p.dir)
}

func (p *Provider) decode(parser Parser, data []byte) (config.Dataset, error) {
	if p.section == "" {
		return parser.Parse(data)
	}

	if sectioned, ok := parser.(sectionParser); ok {
		dataset, err := sectioned.ParseSection(data, p.section)
		if errors.Is(err, yamlparser.ErrPathNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, p.section)
		}

		return dataset, err //nolint:wrapcheck // wrapped by Load
	}

	dataset, err := parser.Parse(data)
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by Load
	}

	var current any = map[string]any(dataset)

	for _, segment := range strings.Split(p.section, config.PathSeparator) {
		mapping, isMap := current.(map[string]any)
		if !isMap {
			return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, p.section)
		}

		var found bool

		current, found = mapping[segment]
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, p.section)
		}
	}

	return config.FromDocument(current)
}

// Names lists the datasets available in the directory, sorted and without duplicates.
func (p *Provider) Names() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", p.dir, err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !p.supports(ext) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if validName(name) && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names, nil
}

func (p *Provider) supports(ext string) bool {
	return slices.ContainsFunc(p.formats, func(f format) bool { return f.ext == ext })
}

func validName(name string) bool {
	return name != "" &&
		!strings.HasPrefix(name, ".") &&
		!strings.ContainsAny(name, `/\`) &&
		!strings.Contains(name, "..")
}
