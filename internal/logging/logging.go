// Package logging builds the diagnostic logger of the command line tools.
// Output always goes to a stream other than the one carrying documents.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "RBBF_LOG_LEVEL"
	EnvLogTimestamp = "RBBF_LOG_TIMESTAMP"
	EnvLogNoColor   = "RBBF_LOG_NOCOLOR"
)

// Options configures a logger.
type Options struct {
	// Level is a level name such as "debug" or "warn". Empty means "warn".
	Level     string
	Timestamp bool
	NoColor   bool
	// Out defaults to os.Stderr.
	Out io.Writer
	// Env, if set, looks up environment overrides. Use os.LookupEnv for
	// the process environment.
	Env func(key string) (string, bool)
}

// New returns a console logger tagged with the application name and a fresh
// run id.
func New(app string, opts Options) zerolog.Logger {
	applyEnvOverrides(&opts)
	level, ok := ParseLevel(opts.Level)
	if !ok {
		level = zerolog.WarnLevel
	}
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	w := zerolog.ConsoleWriter{
		Out:     out,
		NoColor: opts.NoColor,
	}
	if opts.Timestamp {
		w.TimeFormat = time.RFC3339
	} else {
		w.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	ctx := zerolog.New(w).Level(level).With()
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Str("app", app).Str("run", uuid.NewString()).Logger()
}

func applyEnvOverrides(opts *Options) {
	if opts.Env == nil {
		return
	}
	if v, ok := opts.Env(EnvLogLevel); ok {
		if _, valid := ParseLevel(v); valid {
			opts.Level = v
		}
	}
	if v, ok := parseBool(opts.Env(EnvLogTimestamp)); ok {
		opts.Timestamp = v
	}
	if v, ok := parseBool(opts.Env(EnvLogNoColor)); ok {
		opts.NoColor = v
	}
}

// ParseLevel returns the level with the given name. It reports false for
// unknown names.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.WarnLevel, true
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.WarnLevel, false
	}
}

func parseBool(raw string, present bool) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if !present || raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
