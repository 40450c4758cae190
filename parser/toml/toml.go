package toml

import (
	"fmt"

	"github.com/BurntSushi/toml"

	config "github.com/volnix/config"
)

// Parser decodes TOML documents into datasets.
type Parser struct{}

// NewParser creates a new TOML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a TOML document.
func (p *Parser) Parse(data []byte) (config.Dataset, error) {
	document := make(map[string]any)

	err := toml.Unmarshal(data, &document)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return config.FromDocument(document)
}
