// Package config loads chunkdoc settings.
//
// Settings are resolved in layers, later layers overriding earlier ones:
//
//	1. built-in defaults
//	2. a TOML or YAML file
//	3. CHUNKDOC_* environment variables
//
// The result is a typed Config that can build the logger and buffer options
// used by the rest of the program.
package config
