package main

import (
	"context"
	"io"

	"github.com/dshills/chunkdoc/internal/script"
	"github.com/scott-cotton/cli"
)

func luaMain(cfg *LuaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Lua.Parse(cc, args)
	if err != nil {
		return err
	}
	input, err := inputArg(args, 1)
	if err != nil {
		return err
	}
	in, err := openInput(input)
	if err != nil {
		return err
	}
	defer in.Close()
	return cfg.runLua(cfg.runContext(), args[0], in, cc.Out, cfg.errOut)
}

// runLua runs the Lua file at path over the text read from in. Script
// output goes to msgs and the resulting text to out.
func (cfg *LuaConfig) runLua(ctx context.Context, path string, in io.Reader, out, msgs io.Writer) error {
	buf, err := cfg.newBuffer(in)
	if err != nil {
		return err
	}
	runner := script.NewLuaRunner(
		script.WithTimeout(cfg.settings.Script.Timeout),
		script.WithLuaMaxOps(cfg.settings.Script.MaxOps),
		script.WithOutput(msgs),
		script.WithLuaLogger(cfg.log),
	)
	if err := runner.RunFile(ctx, buf, path); err != nil {
		return err
	}
	if cfg.Quiet {
		return nil
	}
	_, err = buf.WriteTo(out)
	return err
}
