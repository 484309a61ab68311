package script

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format is a declarative script encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Decode parses data in the given format.
func Decode(format Format, data []byte) (*Script, error) {
	var (
		s   *Script
		err error
	)
	switch format {
	case FormatYAML:
		s, err = decodeYAML(data)
	case FormatTOML:
		s, err = decodeTOML(data)
	case FormatJSON:
		s, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err == nil {
		err = s.validate()
	}
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}
	return s, nil
}

func decodeYAML(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeTOML(data []byte) (*Script, error) {
	var s Script
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeJSON(data []byte) (*Script, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	s := &Script{Name: root.Get("name").String()}

	ops := root.Get("ops")
	if !ops.IsArray() {
		return nil, errors.New(`"ops" must be an array`)
	}
	var err error
	ops.ForEach(func(key, v gjson.Result) bool {
		var op Op
		if op, err = jsonOp(v); err != nil {
			err = fmt.Errorf("ops[%d]: %w", key.Int(), err)
			return false
		}
		s.Ops = append(s.Ops, op)
		return true
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func jsonOp(v gjson.Result) (Op, error) {
	if !v.IsObject() {
		return Op{}, errors.New("operation must be an object")
	}
	op := Op{Kind: OpKind(v.Get("op").String())}
	for name, dst := range map[string]*uint64{"at": &op.At, "end": &op.End} {
		f := v.Get(name)
		if !f.Exists() {
			continue
		}
		if f.Type != gjson.Number || f.Num < 0 || f.Num != float64(uint64(f.Num)) {
			return Op{}, fmt.Errorf("%q must be a non-negative integer", name)
		}
		*dst = f.Uint()
	}
	if t := v.Get("text"); t.Exists() {
		if t.Type != gjson.String {
			return Op{}, errors.New(`"text" must be a string`)
		}
		op.Text = t.String()
	}
	return op, nil
}

func (s *Script) validate() error {
	for i, op := range s.Ops {
		switch op.Kind {
		case OpPush, OpInsert, OpDelete, OpReplace:
		default:
			return &OpError{Index: i, Op: op, Err: fmt.Errorf("%w: %q", ErrUnknownOp, op.Kind)}
		}
	}
	return nil
}
