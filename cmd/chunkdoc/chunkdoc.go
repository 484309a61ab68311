package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

func chunkdocMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	if err := cfg.setup(); err != nil {
		return err
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// openInput opens the named input, or stdin for "" and "-".
func openInput(name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

// inputArg returns the optional input argument following the required
// leading ones.
func inputArg(args []string, required int) (string, error) {
	switch {
	case len(args) < required:
		return "", fmt.Errorf("%w: missing argument", cli.ErrUsage)
	case len(args) > required+1:
		return "", fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args[required+1:])
	case len(args) == required+1:
		return args[required], nil
	}
	return "", nil
}
