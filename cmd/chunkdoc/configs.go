package main

import (
	"context"
	"io"
	"os"

	"github.com/dshills/chunkdoc/internal/config"
	"github.com/dshills/chunkdoc/internal/engine/buffer"
	"github.com/dshills/chunkdoc/internal/logging"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Config  string `cli:"name=config aliases=c desc='configuration file (toml or yaml)'"`
	Verbose bool   `cli:"name=v aliases=verbose desc='log debug messages'"`

	ctx      context.Context
	settings config.Config
	log      *logging.Logger
	errOut   io.Writer

	Main *cli.Command
}

// setup loads the settings and builds the logger.
func (cfg *MainConfig) setup() error {
	settings, err := config.Load(config.Options{Path: cfg.Config})
	if err != nil {
		return err
	}
	if cfg.Verbose {
		settings.Log.Level = "debug"
	}
	if cfg.errOut == nil {
		cfg.errOut = os.Stderr
	}
	cfg.settings = settings
	cfg.log = settings.Logger(cfg.errOut)
	return nil
}

func (cfg *MainConfig) runContext() context.Context {
	if cfg.ctx == nil {
		return context.Background()
	}
	return cfg.ctx
}

func (cfg *MainConfig) newBuffer(in io.Reader) (*buffer.Buffer, error) {
	return buffer.NewBufferFromReader(in, cfg.settings.BufferOptions(cfg.log)...)
}

type ApplyConfig struct {
	*MainConfig
	Diff  bool `cli:"name=d aliases=diff desc='print a line diff instead of the result'"`
	Color bool `cli:"name=color desc='color the diff'"`

	Apply *cli.Command
}

type LuaConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q aliases=quiet desc='do not print the resulting text'"`

	Lua *cli.Command
}

type StatsConfig struct {
	*MainConfig
	JSON bool `cli:"name=json desc='print statistics as json'"`

	Stats *cli.Command
}

// colorOutput reports whether w is a terminal.
func colorOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
