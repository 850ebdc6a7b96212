// math/chain.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Rotation returns the angle, in [0,360), that takes the bearing from
// `from` to `to` onto heading.
func Rotation(from, to Point2LL, heading float64) float64 {
	return NormalizeHeading(heading - Bearing(from, to))
}

// ChainStep is a single step of the chain transform: cur is placed
// relative to prevNew at the same geodesic distance it had from prevOld,
// with the bearing from prevOld rotated by rotation degrees.
func ChainStep(prevOld, prevNew, cur Point2LL, rotation float64) Point2LL {
	d, b := DistanceBearing(prevOld, cur)
	return Destination(prevNew, NormalizeHeading(b+rotation), d)
}

// TransformChain moves the sequence of points old so that old[0] lands on
// anchor and every leg is rotated by rotation degrees. Leg lengths are
// preserved. Each new point is derived from the previously derived one, so
// the returned slice is built strictly in order; result[0] is anchor
// itself.
func TransformChain(old []Point2LL, anchor Point2LL, rotation float64) []Point2LL {
	if len(old) == 0 {
		return nil
	}

	result := make([]Point2LL, 0, len(old))
	result = append(result, anchor)

	prevOld, prevNew := old[0], anchor
	for _, p := range old[1:] {
		np := ChainStep(prevOld, prevNew, p, rotation)
		result = append(result, np)
		prevOld, prevNew = p, np
	}
	return result
}
