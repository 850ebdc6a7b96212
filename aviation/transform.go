// aviation/transform.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"

	"github.com/brunoga/deep"

	"github.com/mmp/transposer/math"
)

// TransformTask returns a copy of the task moved so that its first
// turnpoint is at newStart and its first leg has the given heading.
// Every leg keeps its length and is rotated by the same angle, so the
// shape of the course is unchanged. Only turnpoint positions differ from
// the original; the returned task shares no memory with t.
func TransformTask(t *Task, newStart math.Point2LL, heading float64) (*Task, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: no task", ErrMalformedInput)
	}
	if len(t.Turnpoints) < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrInsufficientTurnpoints, len(t.Turnpoints))
	}
	if !newStart.IsValid() {
		return nil, fmt.Errorf("%w: invalid start position %s", ErrMalformedInput, newStart.DDString())
	}
	if !math.IsFinite(heading) {
		return nil, fmt.Errorf("%w: invalid heading %v", ErrMalformedInput, heading)
	}

	old := t.Positions()
	for i, p := range old {
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: turnpoint %d has invalid position %s", ErrMalformedInput, i, p.DDString())
		}
	}

	rotation := math.Rotation(old[0], old[1], heading)
	pos := math.TransformChain(old, newStart, rotation)

	nt := deep.MustCopy(*t)
	for i := range nt.Turnpoints {
		nt.Turnpoints[i].Waypoint.SetPosition(pos[i])
	}
	return &nt, nil
}

// TransformAirspaces moves airspace zones along with a task whose start
// moves from oldStart to newStart with the given first leg heading.
//
// The rotation is taken from the bearing between oldStart and the first
// airspace vertex. All vertices of all zones, in order, form one chain
// anchored at the task start: the first vertex of each zone is placed
// relative to the last vertex of the zone before it, not relative to the
// task start. This matches the files produced by earlier versions of the
// tool.
// TODO: confirm with users whether zones should instead each be anchored
// at the task start; that would change output for multi-zone files.
func TransformAirspaces(zones []AirspaceZone, oldStart, newStart math.Point2LL, heading float64) ([]AirspaceZone, error) {
	if !oldStart.IsValid() || !newStart.IsValid() {
		return nil, fmt.Errorf("%w: invalid task start %s -> %s", ErrMalformedInput,
			oldStart.DDString(), newStart.DDString())
	}
	if !math.IsFinite(heading) {
		return nil, fmt.Errorf("%w: invalid heading %v", ErrMalformedInput, heading)
	}

	chain := []math.Point2LL{oldStart}
	result := make([]AirspaceZone, len(zones))
	for i, z := range zones {
		for _, p := range z.Vertices {
			if !p.IsValid() {
				return nil, fmt.Errorf("%w: zone %q has invalid vertex %s", ErrMalformedInput, z.Name, p.DDString())
			}
		}
		chain = append(chain, z.Vertices...)
		result[i] = AirspaceZone{Name: z.Name, Class: z.Class, Floor: z.Floor, Ceiling: z.Ceiling}
	}
	if len(chain) == 1 {
		// No vertices at all.
		return result, nil
	}

	// chain[1] is the first vertex of the first zone (or of the first
	// zone that has any vertices).
	rotation := math.Rotation(oldStart, chain[1], heading)
	moved := math.TransformChain(chain, newStart, rotation)[1:]

	for i, z := range zones {
		if n := len(z.Vertices); n > 0 {
			result[i].Vertices = moved[:n:n]
			moved = moved[n:]
		}
	}
	return result, nil
}
