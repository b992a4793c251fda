// The rbbf2xml command converts binary RbBF project files to XML.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

const usage = `Reads a binary RbBF project from INPUT, and writes to OUTPUT the equivalent
XML project.

INPUT and OUTPUT are paths to files. If INPUT is "-", then stdin is used. If
OUTPUT is "-" or unspecified, then stdout is used. Inputs and outputs with the
".lz4" extension are compressed. Warnings and errors are written to stderr.`

// Exit statuses other than success.
const (
	exitFailure      = 1
	exitUnknownBlock = 3
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		code := exitFailure
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			code = ec.ExitCode()
		}
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:        "rbbf2xml",
		Usage:       "convert binary RbBF projects to XML",
		UsageText:   "rbbf2xml [options] INPUT [OUTPUT]",
		Description: usage,
		Writer:      stdout,
		ErrWriter:   stderr,
		Flags:       settingsFlags(),
		Action:      convertAction,
		// Exit statuses are chosen by main, so that the command can be run
		// from tests.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			convertCmd(),
			dumpCmd(),
			statCmd(),
		},
	}
}
