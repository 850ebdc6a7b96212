// aviation/task.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/mmp/transposer/log"
	"github.com/mmp/transposer/math"
	"github.com/mmp/transposer/util"
)

///////////////////////////////////////////////////////////////////////////
// Task

// Task is a competition task as described by an XCTrack .xctsk file.
type Task struct {
	Version    int         `json:"version"`
	TaskType   string      `json:"taskType"`
	EarthModel string      `json:"earthModel,omitempty"`
	SSS        *SSS        `json:"sss,omitempty"`
	Goal       *Goal       `json:"goal,omitempty"`
	Turnpoints []Turnpoint `json:"turnpoints"`
}

// SSS describes the start of the speed section.
type SSS struct {
	Type      string   `json:"type"`
	Direction string   `json:"direction"`
	TimeGates []string `json:"timeGates"`
}

type Goal struct {
	Type     string `json:"type"`
	Deadline string `json:"deadline"`
}

type Turnpoint struct {
	Radius   int           `json:"radius"` // meters
	Waypoint Waypoint      `json:"waypoint"`
	Type     TurnpointType `json:"type,omitempty"`
}

type Waypoint struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	AltSmoothed int     `json:"altSmoothed"` // meters
}

func (wp Waypoint) Position() math.Point2LL {
	return math.LL(wp.Lat, wp.Lon)
}

func (wp *Waypoint) SetPosition(p math.Point2LL) {
	wp.Lat, wp.Lon = p.Latitude(), p.Longitude()
}

// Start returns the position of the task's first turnpoint.
func (t *Task) Start() math.Point2LL {
	return t.Turnpoints[0].Waypoint.Position()
}

// Positions returns the turnpoint positions in task order.
func (t *Task) Positions() []math.Point2LL {
	p := make([]math.Point2LL, len(t.Turnpoints))
	for i, tp := range t.Turnpoints {
		p[i] = tp.Waypoint.Position()
	}
	return p
}

///////////////////////////////////////////////////////////////////////////
// TurnpointType

// TurnpointType is the role a turnpoint plays on the course. Regular
// turnpoints carry no type in .xctsk files.
type TurnpointType int

const (
	TurnpointRegular TurnpointType = iota
	TurnpointTakeoff
	TurnpointSSS
	TurnpointESS
)

func (t TurnpointType) String() string {
	switch t {
	case TurnpointRegular:
		return "TURNPOINT"
	case TurnpointTakeoff:
		return "TAKEOFF"
	case TurnpointSSS:
		return "SSS"
	case TurnpointESS:
		return "ESS"
	default:
		return fmt.Sprintf("TurnpointType(%d)", int(t))
	}
}

func ParseTurnpointType(s string) (TurnpointType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "TURNPOINT":
		return TurnpointRegular, nil
	case "TAKEOFF":
		return TurnpointTakeoff, nil
	case "SSS":
		return TurnpointSSS, nil
	case "ESS":
		return TurnpointESS, nil
	default:
		return TurnpointRegular, fmt.Errorf("%q: %w", s, ErrUnknownTurnpointType)
	}
}

func (t TurnpointType) MarshalJSON() ([]byte, error) {
	if t < TurnpointRegular || t > TurnpointESS {
		return nil, fmt.Errorf("%s: %w", t, ErrUnknownTurnpointType)
	}
	if t == TurnpointRegular {
		// Only reached when the field isn't tagged omitempty.
		return []byte(`""`), nil
	}
	return json.Marshal(t.String())
}

func (t *TurnpointType) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = TurnpointRegular
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	tt, err := ParseTurnpointType(s)
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

///////////////////////////////////////////////////////////////////////////
// .xctsk decoding and encoding

// LoadTask reads and validates the task in the given file, which may be
// zstd-compressed.
func LoadTask(path string, lg *log.Logger) (*Task, error) {
	b, err := util.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingFile)
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var e util.ErrorLogger
	e.Push(path)
	t := ParseTask(b, &e, lg)
	e.Pop()

	if e.HaveErrors() {
		return nil, e.Err()
	}
	return t, nil
}

// ParseTask decodes and validates the JSON task description in b. Any
// problems are reported to e; the returned task is nil if it couldn't be
// decoded at all.
func ParseTask(b []byte, e *util.ErrorLogger, lg *log.Logger) *Task {
	b, err := util.DecodeText(b)
	if err != nil {
		e.Error(fmt.Errorf("%w: %w", ErrMalformedInput, err))
		return nil
	}

	for _, dup := range util.FindDuplicateJSONKeys(b) {
		lg.Warn("Duplicate key in task; the last value is used",
			slog.String("object", dup.Path), slog.String("key", dup.Key))
	}

	var t Task
	if err := util.UnmarshalJSONBytes(b, &t); err != nil {
		e.Error(fmt.Errorf("%w: %w", ErrMalformedInput, err))
		return nil
	}

	t.Validate(e)

	lg.Debug("Parsed task", slog.String("type", t.TaskType), slog.Int("turnpoints", len(t.Turnpoints)))

	return &t
}

// Validate checks that the task can be transformed: it must have at least
// two turnpoints and every turnpoint needs a valid position. Task
// legality (leg lengths and the like) is not checked.
func (t *Task) Validate(e *util.ErrorLogger) {
	if len(t.Turnpoints) < 2 {
		e.Error(fmt.Errorf("%w: found %d", ErrInsufficientTurnpoints, len(t.Turnpoints)))
	}

	for i, tp := range t.Turnpoints {
		e.Push(fmt.Sprintf("turnpoint %d (%s)", i, tp.Waypoint.Name))
		if !tp.Waypoint.Position().IsValid() {
			e.Error(fmt.Errorf("%w: invalid position lat %v lon %v", ErrMalformedInput,
				tp.Waypoint.Lat, tp.Waypoint.Lon))
		}
		if tp.Radius < 0 {
			e.Error(fmt.Errorf("%w: negative radius %d", ErrMalformedInput, tp.Radius))
		}
		e.Pop()
	}
}

// MarshalXCTSK returns the task as an indented .xctsk JSON document.
func (t *Task) MarshalXCTSK() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}
