// math/heading.go
// Copyright(c) 2022-2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

///////////////////////////////////////////////////////////////////////////
// headings and directions

// NormalizeHeading reduces h to [0,360).
func NormalizeHeading[F constraints.Float](h F) F {
	r := gomath.Mod(float64(h), 360)
	if r < 0 {
		r += 360
	}
	// -tiny + 360 may round to 360, possibly only once narrowed to F.
	if F(r) >= 360 {
		return 0
	}
	return F(r)
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference[F constraints.Float](a F, b F) F {
	d := NormalizeHeading(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// ParseHeading parses a heading given in degrees, e.g. "90" or "273.5".
// The result is normalized to [0,360).
func ParseHeading(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "°")
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q: invalid heading", s)
	}
	if !IsFinite(h) {
		return 0, fmt.Errorf("%q: heading must be finite", s)
	}
	return NormalizeHeading(h), nil
}

// Compass converts a heading expressed in degrees into a string
// corresponding to the closest compass direction.
func Compass(heading float64) string {
	h := NormalizeHeading(heading + 22.5) // now [0,45] is north, etc...
	idx := int(h / 45)
	return [...]string{"North", "Northeast", "East", "Southeast",
		"South", "Southwest", "West", "Northwest"}[idx]
}
