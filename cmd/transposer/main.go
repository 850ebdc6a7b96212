// cmd/transposer/main.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// transposer moves a paragliding competition task, and the airspace
// around it, to a new start position and first-leg heading while keeping
// every leg's length and the angles between legs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	av "github.com/mmp/transposer/aviation"
	"github.com/mmp/transposer/log"
)

func main() {
	if err := loadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, ".env: %v\n", err)
	}

	c, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	lg := log.New(c.LogLevel, c.LogDir)
	defer lg.CatchAndReportCrash()

	if err := run(c, os.Stdin, os.Stdout, os.Stderr, time.Now(), lg); err != nil {
		lg.Error("Transform failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", userMessage(err))
		os.Exit(1)
	}
}

// userMessage returns a short explanation of err for the terminal.
func userMessage(err error) string {
	switch {
	case errors.Is(err, av.ErrMissingFile):
		return fmt.Sprintf("Input file missing: %v", err)
	case errors.Is(err, av.ErrInsufficientTurnpoints):
		return fmt.Sprintf("The task can't be transformed: %v", err)
	case errors.Is(err, av.ErrMalformedInput), errors.Is(err, av.ErrUnknownTurnpointType):
		return fmt.Sprintf("Invalid input: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
