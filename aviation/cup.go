// aviation/cup.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"io"
	"strconv"
	"strings"
)

const cupHeader = "name,code,country,lat,lon,elev,style,rwdir,rwlen,freq,desc"

// FormatCUP returns the task as a SeeYou .cup file: a waypoint table with
// one row per turnpoint followed by the task itself, its options, and an
// observation zone per turnpoint. Lines are separated by "\n" with no
// trailing newline.
func FormatCUP(t *Task) string {
	lines := []string{cupHeader}

	for _, tp := range t.Turnpoints {
		wp := tp.Waypoint
		lat, lon := wp.Position().DDMStrings()
		lines = append(lines, strings.Join([]string{
			cupQuote(wp.Name), cupCode(wp.Name), "", lat, lon,
			strconv.Itoa(wp.AltSmoothed) + "m", "1", "", "", "", "",
		}, ","))
	}

	lines = append(lines, "-----Related Tasks-----")
	task := []string{cupQuote(t.TaskType), `""`}
	for _, tp := range t.Turnpoints {
		task = append(task, cupQuote(tp.Waypoint.Name))
	}
	task = append(task, `""`)
	lines = append(lines, strings.Join(task, ","))

	lines = append(lines, "Options,GoalIsLine=True,Competition=True")

	for i, tp := range t.Turnpoints {
		oz := "ObsZone=" + strconv.Itoa(i) + ",R1=" + strconv.Itoa(tp.Radius) + "m"
		switch tp.Type {
		case TurnpointSSS:
			oz += ",sss=True"
		case TurnpointESS:
			oz += ",ess=True,Line=True"
		}
		lines = append(lines, oz)
	}

	return strings.Join(lines, "\n")
}

func WriteCUP(w io.Writer, t *Task) error {
	_, err := io.WriteString(w, FormatCUP(t))
	return err
}

func cupQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// cupCode returns the unquoted code column unless quoting is needed to
// keep the row well-formed.
func cupCode(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return cupQuote(s)
	}
	return s
}
