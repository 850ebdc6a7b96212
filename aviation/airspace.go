// aviation/airspace.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/mmp/transposer/log"
	"github.com/mmp/transposer/math"
	"github.com/mmp/transposer/util"
)

// AirspaceZone is a polygonal airspace from an OpenAir file. The order
// of zones in a file matters: the airspace transform chains the vertices
// of consecutive zones together.
type AirspaceZone struct {
	Name     string
	Class    string
	Floor    string
	Ceiling  string
	Vertices []math.Point2LL
}

// LoadOpenAir reads the airspace zones in the given OpenAir file, which
// may be zstd-compressed.
func LoadOpenAir(path string, lg *log.Logger) ([]AirspaceZone, error) {
	b, err := util.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingFile)
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	zones, err := ParseOpenAir(bytes.NewReader(b), lg.With(slog.String("file", path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return zones, nil
}

// ParseOpenAir parses the AC, AN, AL, AH, and DP records of an OpenAir
// airspace file. Blank lines, comments, and comments following a DP
// coordinate are ignored; a leading byte order mark is skipped. Records that can't
// be used (malformed DP coordinates, records before the first AC, and
// record types other than those above) are logged and skipped; only an
// error reading r is returned as an error.
func ParseOpenAir(r io.Reader, lg *log.Logger) ([]AirspaceZone, error) {
	var zones []AirspaceZone
	var cur *AirspaceZone
	unsupported := make(map[string]bool)

	skip := func(lineno int, line string, err error) {
		lg.Warn("Skipping airspace record", slog.Int("line", lineno), slog.String("record", line),
			slog.String("error", err.Error()))
	}

	sc := bufio.NewScanner(util.NewTextReader(r))
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '*' {
			continue
		}

		rec, arg := line, ""
		if i := strings.IndexAny(line, " \t"); i != -1 {
			rec, arg = line[:i], strings.TrimSpace(line[i+1:])
		}
		rec = strings.ToUpper(rec)

		if rec == "AC" {
			zones = append(zones, AirspaceZone{Class: arg})
			cur = &zones[len(zones)-1]
			continue
		}

		switch rec {
		case "AN", "AL", "AH", "DP":
			if cur == nil {
				skip(lineno, line, fmt.Errorf("%w: %s before first AC", ErrMalformedAirspaceRecord, rec))
				continue
			}
		default:
			if !unsupported[rec] {
				lg.Warnf("%s: unsupported OpenAir record type ignored (first seen at line %d)", rec, lineno)
				unsupported[rec] = true
			}
			continue
		}

		switch rec {
		case "AN":
			cur.Name = arg
		case "AL":
			cur.Floor = arg
		case "AH":
			cur.Ceiling = arg
		case "DP":
			if i := strings.IndexByte(arg, '*'); i != -1 {
				// trailing comment
				arg = strings.TrimSpace(arg[:i])
			}
			p, err := math.ParseDMSLatLong(arg)
			if err != nil {
				skip(lineno, line, fmt.Errorf("%w: %w", ErrMalformedAirspaceRecord, err))
			} else {
				cur.Vertices = append(cur.Vertices, p)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	lg.Debug("Parsed airspace", slog.Int("zones", len(zones)))

	return zones, nil
}

// WriteOpenAir writes the zones in OpenAir format, with vertices given in
// degrees, minutes, and seconds.
func WriteOpenAir(w io.Writer, zones []AirspaceZone) error {
	bw := bufio.NewWriter(w)
	for _, z := range zones {
		fmt.Fprintf(bw, "AC %s\n", z.Class)
		fmt.Fprintf(bw, "AN %s\n", z.Name)
		fmt.Fprintf(bw, "AL %s\n", z.Floor)
		fmt.Fprintf(bw, "AH %s\n", z.Ceiling)
		for _, p := range z.Vertices {
			fmt.Fprintf(bw, "DP %s\n", p.DMSString())
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
