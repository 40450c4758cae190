// Package jsonc decodes JSON definition files into config datasets.
//
// Input may carry // and /* */ comments and trailing commas; it is converted
// to plain JSON with github.com/tidwall/jsonc before decoding. Numbers decode
// as float64.
package jsonc
