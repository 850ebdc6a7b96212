// cmd/transposer/config.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

type OutputMode string

const (
	ModeXCTSK OutputMode = "xctsk"
	ModeCUP   OutputMode = "cup"
)

// Extension returns the file extension for task output in this mode.
func (m OutputMode) Extension() string {
	return "." + string(m)
}

type Config struct {
	LogLevel  string
	LogDir    string
	OutDir    string
	GeoJSON   bool
	Dump      bool
	NoHistory bool
	Mode      OutputMode
}

// loadDotEnv adds the variables in a .env file in the current directory,
// if there is one, to the environment. Variables that are already set are
// left alone.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// parseConfig parses the command line; defaults for the logging and output
// directory options are taken from the environment. Problems with the
// output mode aren't errors: they are reported to stderr and the .cup
// format is used.
func parseConfig(args []string, getenv func(string) string, stderr io.Writer) (Config, error) {
	envOr := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	var c Config
	flags := flag.NewFlagSet("transposer", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: transposer [flags] [xctsk|cup]\n")
		flags.PrintDefaults()
	}
	flags.StringVar(&c.LogLevel, "loglevel", envOr("TRANSPOSER_LOGLEVEL", "info"), "logging level: debug, info, warn, error")
	flags.StringVar(&c.LogDir, "logdir", envOr("TRANSPOSER_LOGDIR", ""), "log file directory")
	flags.StringVar(&c.OutDir, "outdir", envOr("TRANSPOSER_OUTDIR", "."), "directory for transformed files")
	flags.BoolVar(&c.GeoJSON, "geojson", false, "also write a GeoJSON preview of the transformed task and airspace")
	flags.BoolVar(&c.Dump, "dump", false, "dump the original and transformed task to stderr")
	flags.BoolVar(&c.NoHistory, "nohistory", false, "don't offer or save the previous run's answers")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("%s: invalid log level", c.LogLevel)
	}

	if flags.NArg() > 1 {
		flags.Usage()
		return Config{}, fmt.Errorf("%s: unexpected arguments", strings.Join(flags.Args()[1:], " "))
	}

	var msg string
	c.Mode, msg = parseMode(flags.Arg(0))
	if msg != "" {
		fmt.Fprintln(stderr, msg)
	}
	return c, nil
}

// parseMode returns the output mode named by s. If s is empty or unknown,
// ModeCUP is returned along with a message for the user.
func parseMode(s string) (OutputMode, string) {
	switch m := OutputMode(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); m {
	case ModeXCTSK, ModeCUP:
		return m, ""
	case "":
		return ModeCUP, "No output format given; writing a .cup file. Use \"xctsk\" or \"cup\" to choose."
	default:
		return ModeCUP, fmt.Sprintf("%q: unknown output format; writing a .cup file. Use \"xctsk\" or \"cup\".", s)
	}
}
