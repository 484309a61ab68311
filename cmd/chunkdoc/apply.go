package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/chunkdoc/internal/report"
	"github.com/dshills/chunkdoc/internal/script"
	"github.com/scott-cotton/cli"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	input, err := inputArg(args, 1)
	if err != nil {
		return err
	}
	s, err := loadScript(args[0])
	if err != nil {
		return err
	}
	in, err := openInput(input)
	if err != nil {
		return err
	}
	defer in.Close()

	colored := cfg.Color || colorOutput(cc.Out)
	return cfg.applyScript(cfg.runContext(), s, in, cc.Out, colored)
}

func loadScript(path string) (*script.Script, error) {
	format, err := script.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := script.Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// applyScript runs s over the text read from in and writes either the
// result or a diff to out.
func (cfg *ApplyConfig) applyScript(ctx context.Context, s *script.Script, in io.Reader, out io.Writer, colored bool) error {
	buf, err := cfg.newBuffer(in)
	if err != nil {
		return err
	}
	before := buf.Snapshot()

	runner := script.NewRunner(
		script.WithMaxOps(cfg.settings.Script.MaxOps),
		script.WithRunnerLogger(cfg.log),
	)
	ctx, cancel := context.WithTimeout(ctx, cfg.settings.Script.Timeout)
	defer cancel()
	results, err := runner.Apply(ctx, buf, s)
	if err != nil {
		return err
	}
	cfg.log.WithField("script", s.Name).Info("applied %d edits", len(results))

	if cfg.Diff {
		_, err = io.WriteString(out, report.Diff(before.Text(), buf.Text(), colored))
		return err
	}
	_, err = buf.WriteTo(out)
	return err
}
