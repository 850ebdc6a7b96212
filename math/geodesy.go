// math/geodesy.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"github.com/tidwall/geodesic"
)

// All geodesic computations are done on the WGS-84 ellipsoid using
// Karney's algorithms, which are accurate to a few nanometers; the chain
// transform relies on Destination exactly undoing Distance/Bearing.
var earth = geodesic.WGS84

// Distance returns the length in meters of the geodesic between a and b.
func Distance(a, b Point2LL) float64 {
	var s12 float64
	earth.Inverse(a[1], a[0], b[1], b[0], &s12, nil, nil)
	return s12
}

// Bearing returns the initial bearing in degrees, in [0,360), of the
// geodesic from a to b. On an ellipsoid Bearing(b, a) generally differs
// from Bearing(a, b)+180.
func Bearing(a, b Point2LL) float64 {
	var azi1 float64
	earth.Inverse(a[1], a[0], b[1], b[0], nil, &azi1, nil)
	return NormalizeHeading(azi1)
}

// DistanceBearing returns both the geodesic distance in meters and the
// initial bearing from a to b with a single inverse solution.
func DistanceBearing(a, b Point2LL) (float64, float64) {
	var s12, azi1 float64
	earth.Inverse(a[1], a[0], b[1], b[0], &s12, &azi1, nil)
	return s12, NormalizeHeading(azi1)
}

// Destination returns the point reached by travelling dist meters from p
// along the geodesic with the given initial bearing.
func Destination(p Point2LL, bearing float64, dist float64) Point2LL {
	var lat2, lon2 float64
	earth.Direct(p[1], p[0], bearing, dist, &lat2, &lon2, nil)
	return Point2LL{wrapLongitude(lon2), lat2}
}

// wrapLongitude maps lon to [-180,180].
func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = gomath.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
