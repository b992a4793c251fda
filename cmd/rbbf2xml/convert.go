package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"github.com/xojotools/rbbf/emit"
	"github.com/xojotools/rbbf/internal/source"
	"github.com/xojotools/rbbf/rbbfxml"
)

func convertCmd() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "write the XML project decoded from INPUT",
		UsageText: "rbbf2xml convert [options] INPUT [OUTPUT]",
		Action:    convertAction,
	}
}

func convertAction(_ context.Context, cmd *cli.Command) error {
	in, ok, err := openInput(cmd)
	if !ok || err != nil {
		return err
	}
	defer in.Close()

	s, err := loadSettings(cmd)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), exitFailure)
	}

	sink, err := createWriter(cmd, s.cfg.CompressOutput)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), exitFailure)
	}
	warn, err := s.decoder.Convert(sink, in)
	if cerr := sink.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	printWarning(cmd, warn)
	if err != nil {
		return exitError(err)
	}
	return nil
}

// openInput opens the INPUT argument. It reports false if the input does not
// exist, which is not an error.
func openInput(cmd *cli.Command) (*source.File, bool, error) {
	path := cmd.Args().Get(0)
	if path == "" {
		fmt.Fprintln(cmd.Root().ErrWriter, "Input file does not exist")
		return nil, false, nil
	}
	in, err := source.Open(path)
	if err != nil {
		if source.NotExist(err) {
			fmt.Fprintln(cmd.Root().ErrWriter, "Input file does not exist")
			return nil, false, nil
		}
		return nil, false, cli.Exit(fmt.Sprintf("error: open input: %v", err), exitFailure)
	}
	return in, true, nil
}

// writerSink is a sink that also accepts free-form text.
type writerSink interface {
	emit.Sink
	io.Writer
}

// createWriter returns the sink for the OUTPUT argument.
func createWriter(cmd *cli.Command, compress bool) (writerSink, error) {
	path := cmd.Args().Get(1)
	if path == "" || path == "-" {
		return emit.NewConsoleSink(cmd.Root().Writer), nil
	}
	sink, err := emit.CreateFile(path, compress)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return sink, nil
}

func printWarning(cmd *cli.Command, warn error) {
	if warn != nil {
		fmt.Fprintln(cmd.Root().ErrWriter, fmt.Errorf("warning: %w", warn))
	}
}

func exitError(err error) error {
	code := exitFailure
	if errors.Is(err, rbbfxml.ErrUnknownBlockTag) {
		code = exitUnknownBlock
	}
	return cli.Exit(fmt.Sprintf("error: %v", err), code)
}
