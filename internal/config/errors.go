package config

import (
	"errors"
	"fmt"

	"github.com/dshills/chunkdoc/internal/config/loader"
)

// ErrTypeMismatch indicates a setting holds a value of the wrong type.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrValidationFailed indicates a setting holds an unacceptable value.
var ErrValidationFailed = errors.New("validation failed")

// ParseError is returned when a configuration file cannot be parsed.
type ParseError = loader.ParseError

// SettingError describes a problem with one setting.
type SettingError struct {
	Path  string
	Value any
	Err   error
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("setting %s = %v: %v", e.Path, e.Value, e.Err)
}

func (e *SettingError) Unwrap() error {
	return e.Err
}
