package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// NewTOMLLoader creates a loader for a TOML file.
func NewTOMLLoader(fsys FileSystem, path string) *FileLoader {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &FileLoader{fs: fsys, path: path, parse: parseTOML}
}

func parseTOML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return config, nil
}
