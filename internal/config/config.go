package config

import (
	"fmt"
	"io"
	"time"

	"github.com/dshills/chunkdoc/internal/config/loader"
	"github.com/dshills/chunkdoc/internal/engine/buffer"
	"github.com/dshills/chunkdoc/internal/logging"
	"golang.org/x/text/unicode/norm"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CHUNKDOC_"

// Config holds all chunkdoc settings.
type Config struct {
	Log    LogConfig
	Buffer BufferConfig
	Script ScriptConfig
}

// LogConfig configures logging.
type LogConfig struct {
	Level string // debug, info, warn or error
	Color string // auto, always or never
}

// BufferConfig configures new buffers.
type BufferConfig struct {
	LineEnding string // lf, crlf or cr
	Normalize  string // none, nfc or nfd
	Fanout     int    // tree node fan-out
}

// ScriptConfig bounds script execution.
type ScriptConfig struct {
	MaxOps  int           // operations per declarative script, 0 for no limit
	Timeout time.Duration // wall-clock bound for one script run
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Color: "auto"},
		Buffer: BufferConfig{LineEnding: "lf", Normalize: "none", Fanout: 8},
		Script: ScriptConfig{MaxOps: 10000, Timeout: 5 * time.Second},
	}
}

// Options controls where Load looks for settings.
type Options struct {
	// Path is an optional TOML or YAML file. A missing file is ignored.
	Path string
	// FS reads the file; nil means the OS file system.
	FS loader.FileSystem
	// Env loads environment overrides; nil means CHUNKDOC_* variables.
	Env loader.Loader
}

// Load resolves defaults, the optional file and environment overrides.
func Load(opts Options) (Config, error) {
	layers := []loader.Loader{}
	if opts.Path != "" {
		fl, err := loader.NewFileLoader(opts.FS, opts.Path)
		if err != nil {
			return Config{}, err
		}
		layers = append(layers, fl)
	}
	env := opts.Env
	if env == nil {
		env = loader.NewEnvLoader(EnvPrefix, nil)
	}
	layers = append(layers, env)

	merged := map[string]any{}
	for _, l := range layers {
		data, err := l.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// apply copies recognized settings from data into c.
func (c *Config) apply(data map[string]any) error {
	texts := map[string]*string{
		"log.level":         &c.Log.Level,
		"log.color":         &c.Log.Color,
		"buffer.lineEnding": &c.Buffer.LineEnding,
		"buffer.normalize":  &c.Buffer.Normalize,
	}
	for path, dst := range texts {
		v, ok := loader.Lookup(data, path)
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return &SettingError{Path: path, Value: v, Err: ErrTypeMismatch}
		}
		*dst = s
	}

	ints := map[string]*int{
		"buffer.fanout": &c.Buffer.Fanout,
		"script.maxOps": &c.Script.MaxOps,
	}
	for path, dst := range ints {
		v, ok := loader.Lookup(data, path)
		if !ok {
			continue
		}
		n, ok := toInt(v)
		if !ok {
			return &SettingError{Path: path, Value: v, Err: ErrTypeMismatch}
		}
		*dst = n
	}

	if v, ok := loader.Lookup(data, "script.timeout"); ok {
		d, err := toDuration(v)
		if err != nil {
			return &SettingError{Path: "script.timeout", Value: v, Err: err}
		}
		c.Script.Timeout = d
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func toDuration(v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		return time.ParseDuration(d)
	}
	if secs, ok := toInt(v); ok {
		return time.Duration(secs) * time.Second, nil
	}
	return 0, ErrTypeMismatch
}

// Validate checks that every setting holds an accepted value.
func (c Config) Validate() error {
	if _, err := logging.ParseColorMode(c.Log.Color); err != nil {
		return &SettingError{Path: "log.color", Value: c.Log.Color, Err: fmt.Errorf("%w: %v", ErrValidationFailed, err)}
	}
	if _, err := buffer.ParseLineEnding(c.Buffer.LineEnding); err != nil {
		return &SettingError{Path: "buffer.lineEnding", Value: c.Buffer.LineEnding, Err: fmt.Errorf("%w: %v", ErrValidationFailed, err)}
	}
	if _, _, err := normForm(c.Buffer.Normalize); err != nil {
		return &SettingError{Path: "buffer.normalize", Value: c.Buffer.Normalize, Err: err}
	}
	if c.Buffer.Fanout < 4 {
		return &SettingError{Path: "buffer.fanout", Value: c.Buffer.Fanout, Err: fmt.Errorf("%w: must be at least 4", ErrValidationFailed)}
	}
	if c.Script.MaxOps < 0 {
		return &SettingError{Path: "script.maxOps", Value: c.Script.MaxOps, Err: fmt.Errorf("%w: must not be negative", ErrValidationFailed)}
	}
	if c.Script.Timeout <= 0 {
		return &SettingError{Path: "script.timeout", Value: c.Script.Timeout, Err: fmt.Errorf("%w: must be positive", ErrValidationFailed)}
	}
	return nil
}

func normForm(name string) (norm.Form, bool, error) {
	switch name {
	case "", "none":
		return 0, false, nil
	case "nfc":
		return norm.NFC, true, nil
	case "nfd":
		return norm.NFD, true, nil
	}
	return 0, false, fmt.Errorf("%w: unknown normalization %q", ErrValidationFailed, name)
}

// Logger builds a logger writing to w.
func (c Config) Logger(w io.Writer) *logging.Logger {
	mode, _ := logging.ParseColorMode(c.Log.Color)
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(c.Log.Level),
		Output: w,
		Prefix: "chunkdoc",
		Color:  mode,
	})
}

// BufferOptions returns the options for new buffers.
func (c Config) BufferOptions(log *logging.Logger) []buffer.Option {
	le, _ := buffer.ParseLineEnding(c.Buffer.LineEnding)
	opts := []buffer.Option{
		buffer.WithLineEnding(le),
		buffer.WithFanout(c.Buffer.Fanout),
		buffer.WithLogger(log),
	}
	if form, ok, _ := normForm(c.Buffer.Normalize); ok {
		opts = append(opts, buffer.WithNormalization(form))
	}
	return opts
}
