// Package toml decodes TOML definition files into config datasets using
// github.com/BurntSushi/toml. Arrays of tables become []any of map[string]any.
package toml
