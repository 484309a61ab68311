package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "chunkdoc").
		WithSynopsis("chunkdoc [opts] command [opts]").
		WithDescription("chunkdoc edits and inspects text documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return chunkdocMain(cfg, cc, args)
		}).
		WithSubs(
			ApplyCommand(cfg),
			LuaCommand(cfg),
			StatsCommand(cfg),
		)
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("apply").
		WithAliases("a").
		WithOpts(opts...).
		WithSynopsis("apply [-d] script.{yaml,toml,json} [input]").
		WithDescription("apply a declarative edit script to input (default stdin)").
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
	cfg.Apply = cmd
	return cmd
}

func LuaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LuaConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("lua").
		WithAliases("l").
		WithOpts(opts...).
		WithSynopsis("lua [-q] script.lua [input]").
		WithDescription("run a sandboxed Lua script against input (default stdin)").
		WithRun(func(cc *cli.Context, args []string) error {
			return luaMain(cfg, cc, args)
		})
	cfg.Lua = cmd
	return cmd
}

func StatsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &StatsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("stats").
		WithAliases("s").
		WithOpts(opts...).
		WithSynopsis("stats [-json] [input]").
		WithDescription("print document statistics of input (default stdin)").
		WithRun(func(cc *cli.Context, args []string) error {
			return stats(cfg, cc, args)
		})
	cfg.Stats = cmd
	return cmd
}
