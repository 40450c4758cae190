package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	config "github.com/volnix/config"
)

// ErrPathNotFound is returned when the requested section is not present in the document.
var ErrPathNotFound = errors.New("path not found")

// Parser decodes YAML documents into datasets.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a whole YAML document.
func (p *Parser) Parse(data []byte) (config.Dataset, error) {
	var document any

	err := yaml.Unmarshal(data, &document)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return config.FromDocument(document)
}

// ParseSection decodes the section of a YAML document at a colon-separated path.
// An empty path decodes the whole document.
func (p *Parser) ParseSection(data []byte, path string) (config.Dataset, error) {
	if path == "" {
		return p.Parse(data)
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(path))
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	var document any

	err = pathObj.Read(bytes.NewReader(data), &document)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return nil, fmt.Errorf("reading path %q: %w", path, err)
	}

	return config.FromDocument(document)
}

// convertToYAMLPath converts "api:permissions" to "$.api.permissions".
func convertToYAMLPath(path string) string {
	return "$." + strings.Join(strings.Split(path, config.PathSeparator), ".")
}
