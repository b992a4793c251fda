package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func dumpCmd() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "write the block and group structure of INPUT",
		UsageText: "rbbf2xml dump [options] INPUT [OUTPUT]",
		Action:    dumpAction,
	}
}

func dumpAction(_ context.Context, cmd *cli.Command) error {
	in, ok, err := openInput(cmd)
	if !ok || err != nil {
		return err
	}
	defer in.Close()

	s, err := loadSettings(cmd)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), exitFailure)
	}
	out, err := createWriter(cmd, s.cfg.CompressOutput)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), exitFailure)
	}
	warn, err := s.decoder.Dump(out, in)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	printWarning(cmd, warn)
	if err != nil {
		return exitError(err)
	}
	return nil
}
