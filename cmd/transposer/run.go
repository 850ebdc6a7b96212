// cmd/transposer/run.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"

	av "github.com/mmp/transposer/aviation"
	"github.com/mmp/transposer/log"
	"github.com/mmp/transposer/math"
	"github.com/mmp/transposer/util"
)

// run prompts for the inputs, transforms the task and its airspace, and
// writes the results to c.OutDir. Either all of the output files are
// written or, if there is an error, none of them are.
func run(c Config, stdin io.Reader, stdout, stderr io.Writer, now time.Time, lg *log.Logger) error {
	var prev Answers
	if !c.NoHistory {
		prev = loadHistory()
	}

	in, answers, err := promptInputs(newPrompter(stdin, stdout), prev)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Moving the task to start at %s with the first leg heading %.1f° (%s)\n",
		in.Start.DDString(), in.Heading, math.Compass(in.Heading))
	lg.Info("Inputs", slog.String("task", in.TaskFile), slog.String("airspace", in.AirspaceFile),
		slog.String("start", in.Start.DDString()), slog.Float64("heading", in.Heading))

	var task *av.Task
	var zones []av.AirspaceZone
	var g errgroup.Group
	g.Go(func() (err error) {
		task, err = av.LoadTask(in.TaskFile, lg)
		return
	})
	g.Go(func() (err error) {
		zones, err = av.LoadOpenAir(in.AirspaceFile, lg)
		return
	})
	if err := g.Wait(); err != nil {
		return err
	}

	newTask, err := av.TransformTask(task, in.Start, in.Heading)
	if err != nil {
		return err
	}
	newZones, err := av.TransformAirspaces(zones, task.Start(), in.Start, in.Heading)
	if err != nil {
		return err
	}

	if c.Dump {
		godump.Fdump(stderr, task)
		godump.Fdump(stderr, newTask)
	}

	files, err := renderOutputs(c, newTask, newZones, now)
	if err != nil {
		return err
	}
	if err := util.WriteFiles(files); err != nil {
		return err
	}

	for _, f := range files {
		fmt.Fprintf(stdout, "Wrote %s\n", f.Path)
		lg.Info("Wrote output", slog.String("path", f.Path), slog.Int("bytes", len(f.Contents)))
	}

	if !c.NoHistory {
		if err := saveHistory(answers); err != nil {
			lg.Warnf("Unable to save answers: %v", err)
		}
	}
	return nil
}

// renderOutputs returns the contents of all of the output files; nothing
// is written to disk.
func renderOutputs(c Config, t *av.Task, zones []av.AirspaceZone, now time.Time) ([]util.OutputFile, error) {
	stamp := now.Format("20060102-1504")
	taskBase := filepath.Join(c.OutDir, "TransformedTask_"+stamp)

	var files []util.OutputFile

	switch c.Mode {
	case ModeXCTSK:
		b, err := t.MarshalXCTSK()
		if err != nil {
			return nil, err
		}
		files = append(files, util.OutputFile{Path: taskBase + c.Mode.Extension(), Contents: b})
	default:
		files = append(files, util.OutputFile{Path: taskBase + ModeCUP.Extension(), Contents: []byte(av.FormatCUP(t))})
	}

	var buf bytes.Buffer
	if err := av.WriteOpenAir(&buf, zones); err != nil {
		return nil, err
	}
	files = append(files, util.OutputFile{
		Path:     filepath.Join(c.OutDir, "TransformedAirspaces_"+stamp+".txt"),
		Contents: buf.Bytes(),
	})

	if c.GeoJSON {
		b, err := av.ToGeoJSON(t, zones).MarshalJSON()
		if err != nil {
			return nil, err
		}
		files = append(files, util.OutputFile{Path: taskBase + ".geojson", Contents: b})
	}

	return files, nil
}
