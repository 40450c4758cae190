// Package yaml decodes YAML definition files into config datasets.
//
// It uses github.com/goccy/go-yaml. The document root must be a mapping;
// nested mappings are normalised to map[string]any and sequences to []any.
// An empty document decodes to an empty dataset.
//
// ParseSection decodes only the part of a document found at a colon-separated
// path (e.g. "services:api"), converted internally to the YAML path "$.services.api".
package yaml
