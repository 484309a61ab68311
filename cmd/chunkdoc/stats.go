package main

import (
	"fmt"
	"io"

	"github.com/dshills/chunkdoc/internal/report"
	"github.com/scott-cotton/cli"
)

func stats(cfg *StatsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Stats.Parse(cc, args)
	if err != nil {
		return err
	}
	input, err := inputArg(args, 0)
	if err != nil {
		return err
	}
	in, err := openInput(input)
	if err != nil {
		return err
	}
	defer in.Close()
	return cfg.writeStats(in, cc.Out)
}

func (cfg *StatsConfig) writeStats(in io.Reader, out io.Writer) error {
	buf, err := cfg.newBuffer(in)
	if err != nil {
		return err
	}
	st := report.Collect(buf.Snapshot())
	if !cfg.JSON {
		_, err = st.WriteTo(out)
		return err
	}
	doc, err := st.JSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, doc)
	return err
}
