// cmd/transposer/prompt.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	av "github.com/mmp/transposer/aviation"
	"github.com/mmp/transposer/math"
	"github.com/mmp/transposer/util"
)

const historyPath = "history/last.msgpack"

// Answers holds the user's answers to the prompts, as typed. They are
// saved after a successful run and offered as defaults the next time.
type Answers struct {
	TaskFile     string
	AirspaceFile string
	Start        string
	Heading      string
}

// Inputs are the parsed answers.
type Inputs struct {
	TaskFile     string
	AirspaceFile string
	Start        math.Point2LL
	Heading      float64
}

func loadHistory() Answers {
	var a Answers
	if _, err := util.CacheRetrieveObject(historyPath, &a); err != nil {
		return Answers{}
	}
	return a
}

func saveHistory(a Answers) error {
	return util.CacheStoreObject(historyPath, a)
}

type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(r), w: w}
}

// ask prints the question and returns the trimmed answer, or def if the
// answer is empty.
func (p *prompter) ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.w, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.w, "%s: ", question)
	}

	line, err := p.r.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		if def != "" {
			return def, nil
		}
		return "", fmt.Errorf("%s: %w", question, io.ErrUnexpectedEOF)
	} else if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	if s := strings.TrimSpace(line); s != "" {
		return s, nil
	}
	return def, nil
}

// trimPath removes the quotes that terminals add to dragged-in paths.
func trimPath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return s
}

// promptInputs asks for the input files, the new start position, and the
// new heading of the first leg. prev supplies defaults.
func promptInputs(p *prompter, prev Answers) (Inputs, Answers, error) {
	var a Answers
	var in Inputs
	var err error

	if a.TaskFile, err = p.ask("Task file (.xctsk)", prev.TaskFile); err != nil {
		return in, a, err
	}
	if in.TaskFile = trimPath(a.TaskFile); in.TaskFile == "" {
		return in, a, fmt.Errorf("no task file given: %w", av.ErrMissingFile)
	}

	if a.AirspaceFile, err = p.ask("Airspace file (OpenAir)", prev.AirspaceFile); err != nil {
		return in, a, err
	}
	if in.AirspaceFile = trimPath(a.AirspaceFile); in.AirspaceFile == "" {
		return in, a, fmt.Errorf("no airspace file given: %w", av.ErrMissingFile)
	}

	if a.Start, err = p.ask("New start position (lat, lon)", prev.Start); err != nil {
		return in, a, err
	}
	if in.Start, err = math.ParseLatLong(a.Start); err != nil {
		return in, a, fmt.Errorf("%w: start position: %w", av.ErrMalformedInput, err)
	}

	if a.Heading, err = p.ask("Heading of the first leg (degrees)", prev.Heading); err != nil {
		return in, a, err
	}
	if in.Heading, err = math.ParseHeading(a.Heading); err != nil {
		return in, a, fmt.Errorf("%w: heading: %w", av.ErrMalformedInput, err)
	}

	return in, a, nil
}
