package jsonc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	config "github.com/volnix/config"
)

// Parser decodes JSON and JSONC documents into datasets.
type Parser struct{}

// NewParser creates a new JSONC parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse strips comments and trailing commas from data and decodes the result.
// Blank input decodes to an empty dataset.
func (p *Parser) Parse(data []byte) (config.Dataset, error) {
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return config.Dataset{}, nil
	}

	var document any

	err := json.Unmarshal(stripped, &document)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return config.FromDocument(document)
}
