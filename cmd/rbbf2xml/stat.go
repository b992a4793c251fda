package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	"github.com/xojotools/rbbf/emit"
	"github.com/xojotools/rbbf/rbbfxml"
)

func statCmd() *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "write statistics for INPUT as JSON",
		UsageText: "rbbf2xml stat [options] INPUT [OUTPUT]",
		Action:    statAction,
	}
}

func statAction(_ context.Context, cmd *cli.Command) error {
	in, ok, err := openInput(cmd)
	if !ok || err != nil {
		return err
	}
	defer in.Close()

	s, err := loadSettings(cmd)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), exitFailure)
	}
	var stats rbbfxml.Stats
	s.decoder.Stats = &stats
	warn, err := s.decoder.Convert(emit.NewConsoleSink(io.Discard), in)
	printWarning(cmd, warn)
	if err != nil {
		return exitError(err)
	}

	out, err := createWriter(cmd, s.cfg.CompressOutput)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), exitFailure)
	}
	je := json.NewEncoder(out)
	je.SetEscapeHTML(false)
	je.SetIndent("", "\t")
	err = je.Encode(stats)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: write output: %v", err), exitFailure)
	}
	return nil
}
