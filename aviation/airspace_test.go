// aviation/airspace_test.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmp/transposer/log"
	"github.com/mmp/transposer/math"
)

const testOpenAir = `* Test airspace

AC R
AN RESTRICTED ONE
AL GND
AH 2000ft AMSL
DP 47:00:00 N 008:00:00 E
DP 47:06:00 N 008:06:00 E
DP 47:03:00 N 008:12:00 E

AC C
AN CTR TWO
AL 1500ft AMSL
AH FL95
DP 46:57:00N 008:15:00E
DP 46:54:30 N, 008:18:00 E
DP 46:51:00 N 008:15:00 E
`

func TestParseOpenAir(t *testing.T) {
	zones, err := ParseOpenAir(strings.NewReader(testOpenAir), nil)
	if err != nil {
		t.Fatalf("ParseOpenAir: %v", err)
	}
	if len(zones) != 2 {
		t.Fatalf("got %d zones, expected 2", len(zones))
	}

	z := zones[0]
	if z.Class != "R" || z.Name != "RESTRICTED ONE" || z.Floor != "GND" || z.Ceiling != "2000ft AMSL" {
		t.Errorf("zone 0: got %+v", z)
	}
	if len(z.Vertices) != 3 || !nearLL(z.Vertices[1], math.LL(47.1, 8.1)) {
		t.Errorf("zone 0 vertices: got %v", z.Vertices)
	}

	z = zones[1]
	if z.Class != "C" || z.Name != "CTR TWO" || z.Floor != "1500ft AMSL" || z.Ceiling != "FL95" {
		t.Errorf("zone 1: got %+v", z)
	}
	if len(z.Vertices) != 3 || !nearLL(z.Vertices[1], math.LL(46+54.5/60, 8.3)) {
		t.Errorf("zone 1 vertices: got %v", z.Vertices)
	}
}

func nearLL(a, b math.Point2LL) bool {
	return math.Abs(a[0]-b[0]) < 1e-9 && math.Abs(a[1]-b[1]) < 1e-9
}

func TestParseOpenAirMalformedDP(t *testing.T) {
	input := `AC R
AN BROKEN
DP 47:00:00 N 008:00:00 E
DP 47:xx:00 N 008:06:00 E
DP 47:03:00 N 008:12:00 E
AL GND
AH FL100
`
	var buf bytes.Buffer
	zones, err := ParseOpenAir(strings.NewReader(input), log.NewWriter(&buf, "warn"))
	if err != nil {
		t.Fatalf("malformed DP line must not be fatal: %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("got %d zones, expected 1", len(zones))
	}

	z := zones[0]
	want := []math.Point2LL{math.LL(47, 8), math.LL(47.05, 8.2)}
	if len(z.Vertices) != len(want) {
		t.Fatalf("got vertices %v, expected %v", z.Vertices, want)
	}
	for i := range want {
		if !nearLL(z.Vertices[i], want[i]) {
			t.Errorf("vertex %d: got %v, expected %v", i, z.Vertices[i], want[i])
		}
	}
	// Records after the bad one are still parsed.
	if z.Floor != "GND" || z.Ceiling != "FL100" {
		t.Errorf("got floor %q ceiling %q", z.Floor, z.Ceiling)
	}

	logged := buf.String()
	if !strings.Contains(logged, "level=WARN") || !strings.Contains(logged, "line=4") {
		t.Errorf("expected a warning for line 4, got: %s", logged)
	}
	if !strings.Contains(logged, ErrMalformedAirspaceRecord.Error()) {
		t.Errorf("warning does not describe the error: %s", logged)
	}
}

func TestParseOpenAirSkippedRecords(t *testing.T) {
	input := `AN ORPHAN
DP 45:00:00 N 006:00:00 E
AC Q
AN DANGER
AT 47:00:00 N 008:00:00 E
V X=47:00:00 N 008:00:00 E
DC 2
SP 0,1,0,0,255
DP 47:00:00 N 008:00:00 E
`
	var buf bytes.Buffer
	zones, err := ParseOpenAir(strings.NewReader(input), log.NewWriter(&buf, "warn"))
	if err != nil {
		t.Fatal(err)
	}
	if len(zones) != 1 || zones[0].Name != "DANGER" || len(zones[0].Vertices) != 1 {
		t.Fatalf("got %+v", zones)
	}
	for _, rec := range []string{"line=1", "line=2", "AT:", "V:", "DC:", "SP:"} {
		if !strings.Contains(buf.String(), rec) {
			t.Errorf("expected %q to be logged: %s", rec, buf.String())
		}
	}
}

func TestWriteOpenAir(t *testing.T) {
	zones := []AirspaceZone{
		{
			Name: "TEST", Class: "R", Floor: "GND", Ceiling: "FL100",
			Vertices: []math.Point2LL{math.LL(47, 8), math.LL(-33.5, -70.25)},
		},
		{Name: "EMPTY", Class: "Q", Floor: "GND", Ceiling: "UNL"},
	}

	var buf bytes.Buffer
	if err := WriteOpenAir(&buf, zones); err != nil {
		t.Fatal(err)
	}
	want := `AC R
AN TEST
AL GND
AH FL100
DP 47:00:00 N 008:00:00 E
DP 33:30:00 S 070:15:00 W

AC Q
AN EMPTY
AL GND
AH UNL

`
	if buf.String() != want {
		t.Errorf("got:\n%s\nexpected:\n%s", buf.String(), want)
	}

	// And it parses back.
	back, err := ParseOpenAir(&buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 || back[0].Name != "TEST" || len(back[0].Vertices) != 2 || back[0].Vertices[1] != math.LL(-33.5, -70.25) {
		t.Errorf("round trip: got %+v", back)
	}
}

func TestLoadOpenAirMissing(t *testing.T) {
	if _, err := LoadOpenAir(filepath.Join(t.TempDir(), "airspace.txt"), nil); !errors.Is(err, ErrMissingFile) {
		t.Errorf("got %v", err)
	}

	fn := filepath.Join(t.TempDir(), "airspace.txt")
	if err := os.WriteFile(fn, []byte(testOpenAir), 0o644); err != nil {
		t.Fatal(err)
	}
	if zones, err := LoadOpenAir(fn, nil); err != nil || len(zones) != 2 {
		t.Errorf("got %d zones, %v", len(zones), err)
	}
}

func TestParseOpenAirByteOrderMark(t *testing.T) {
	var buf bytes.Buffer
	zones, err := ParseOpenAir(strings.NewReader("\ufeff"+testOpenAir), log.NewWriter(&buf, "warn"))
	if err != nil {
		t.Fatal(err)
	}
	if len(zones) != 2 || zones[0].Name != "RESTRICTED ONE" || len(zones[0].Vertices) != 3 {
		t.Fatalf("got %+v", zones)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected warnings: %s", buf.String())
	}

	fn := filepath.Join(t.TempDir(), "bom.txt")
	if err := os.WriteFile(fn, []byte("\ufeff"+testOpenAir), 0o644); err != nil {
		t.Fatal(err)
	}
	zones, err = LoadOpenAir(fn, nil)
	if err != nil || len(zones) != 2 || zones[0].Class != "R" || len(zones[0].Vertices) != 3 {
		t.Errorf("LoadOpenAir: got %+v, %v", zones, err)
	}
}

func TestParseOpenAirTrailingComment(t *testing.T) {
	input := `AC R
AN COMMENTED
DP 47:03:21 N 008:12:00 E * first vertex
DP 47:06:00 N 008:06:00 E*second
`
	zones, err := ParseOpenAir(strings.NewReader(input), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(zones) != 1 || len(zones[0].Vertices) != 2 {
		t.Fatalf("got %+v", zones)
	}
	if !nearLL(zones[0].Vertices[0], math.LL(47+3./60+21./3600, 8.2)) {
		t.Errorf("got vertex %v", zones[0].Vertices[0])
	}
}
