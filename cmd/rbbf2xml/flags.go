package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"github.com/xojotools/rbbf/internal/config"
	"github.com/xojotools/rbbf/internal/logging"
	"github.com/xojotools/rbbf/rbbfxml"
)

func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a .toml or .yaml settings file",
		},
		&cli.StringFlag{
			Name:  "trailers",
			Usage: "group trailer mismatch policy (warn, strict, ignore)",
		},
		&cli.StringFlag{
			Name:  "block-errors",
			Usage: "policy for blocks that fail to decode (partial, omit, abort)",
		},
		&cli.StringFlag{
			Name:  "charset",
			Usage: "text encoding of strings (ascii, latin1, windows-1252, macintosh, utf-8)",
		},
		&cli.StringFlag{
			Name:  "fallback-version",
			Usage: "version written when the project does not record one",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level (trace, debug, info, warn, error, off)",
		},
		&cli.BoolFlag{
			Name:  "compress",
			Usage: "compress OUTPUT with lz4",
		},
	}
}

// settings is what a command needs to run: the loaded configuration with
// flag overrides applied, and the decoder and logger built from it.
type settings struct {
	cfg     config.Config
	decoder rbbfxml.Decoder
	log     zerolog.Logger
}

func loadSettings(cmd *cli.Command) (*settings, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	override := func(name string, dst *string) {
		if cmd.IsSet(name) {
			*dst = cmd.String(name)
		}
	}
	override("trailers", &cfg.TrailerPolicy)
	override("block-errors", &cfg.BlockErrors)
	override("charset", &cfg.Charset)
	override("fallback-version", &cfg.FallbackVersion)
	override("log-level", &cfg.LogLevel)
	if cmd.IsSet("compress") {
		cfg.CompressOutput = cmd.Bool("compress")
	}

	d, err := cfg.Decoder()
	if err != nil {
		return nil, err
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	s := &settings{cfg: cfg, decoder: d}
	s.log = logging.New(cmd.Root().Name, logging.Options{
		Level: cfg.LogLevel,
		Out:   cmd.Root().ErrWriter,
		Env:   os.LookupEnv,
	})
	s.decoder.Logger = &s.log
	return s, nil
}
