// Package script runs edit scripts against a buffer.
//
// A declarative script is an ordered list of push, insert, delete and
// replace operations decoded from YAML, TOML or JSON. A Lua script drives
// the same buffer through the doc module inside a sandboxed interpreter.
//
// All offsets are character offsets, as in the buffer.
package script
