// math/geodesy_test.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"math/rand/v2"
	"testing"

	"github.com/StefanSchroeder/Golang-Ellipsoid/ellipsoid"
)

func randomPoints(n int) []Point2LL {
	r := rand.New(rand.NewPCG(1, 2))
	pts := make([]Point2LL, n)
	for i := range pts {
		pts[i] = LL(-60+120*r.Float64(), -180+360*r.Float64())
	}
	return pts
}

func TestDistanceKnownValues(t *testing.T) {
	// One degree of longitude along the equator is a*pi/180 on WGS-84.
	d := Distance(LL(0, 0), LL(0, 1))
	if want := 6378137 * gomath.Pi / 180; gomath.Abs(d-want) > 1e-6 {
		t.Errorf("equator degree: got %.9f, expected %.9f", d, want)
	}

	if d := Distance(LL(47, 8), LL(47, 8)); d != 0 {
		t.Errorf("distance to self: got %g", d)
	}

	for _, tt := range []struct {
		name string
		a, b Point2LL
		want float64
	}{
		{"east along equator", LL(0, 0), LL(0, 1), 90},
		{"north along meridian", LL(10, 5), LL(11, 5), 0},
		{"south along meridian", LL(11, 5), LL(10, 5), 180},
		{"west along equator", LL(0, 1), LL(0, 0), 270},
	} {
		if b := Bearing(tt.a, tt.b); HeadingDifference(b, tt.want) > 1e-9 {
			t.Errorf("%s: bearing %.12f, expected %v", tt.name, b, tt.want)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pts := randomPoints(100)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if d0, d1 := Distance(a, b), Distance(b, a); gomath.Abs(d0-d1) > 1e-6 {
			t.Errorf("%v %v: distance %.9f one way, %.9f the other", a, b, d0, d1)
		}
	}
}

func TestDestinationRoundTrip(t *testing.T) {
	pts := randomPoints(200)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		p := Destination(a, Bearing(a, b), Distance(a, b))
		if gomath.Abs(p.Latitude()-b.Latitude()) > 1e-6 ||
			HeadingDifference(p.Longitude(), b.Longitude()) > 1e-6 {
			t.Errorf("%v -> %v: round trip gave %v", a, b, p)
		}
		if !p.IsValid() {
			t.Errorf("%v: destination is not a valid position", p)
		}
	}
}

func TestBearingRange(t *testing.T) {
	pts := randomPoints(200)
	for i := 1; i < len(pts); i++ {
		if b := Bearing(pts[i-1], pts[i]); b < 0 || b >= 360 {
			t.Errorf("%v %v: bearing %v not in [0,360)", pts[i-1], pts[i], b)
		}
	}
}

// Cross-check against an independent (Vincenty) implementation over
// task-sized legs.
func TestGeodesyMatchesVincenty(t *testing.T) {
	geo := ellipsoid.Init("WGS84", ellipsoid.Degrees, ellipsoid.Meter,
		ellipsoid.LongitudeIsSymmetric, ellipsoid.BearingNotSymmetric)

	r := rand.New(rand.NewPCG(3, 4))
	for range 100 {
		a := LL(-60+120*r.Float64(), -170+340*r.Float64())
		b := Destination(a, 360*r.Float64(), 500+200000*r.Float64())

		vd, vb := geo.To(a.Latitude(), a.Longitude(), b.Latitude(), b.Longitude())
		d, brg := DistanceBearing(a, b)
		if gomath.Abs(vd-d) > 1e-3 {
			t.Errorf("%v %v: distance %.6f, Vincenty %.6f", a, b, d, vd)
		}
		if HeadingDifference(brg, NormalizeHeading(vb)) > 1e-6 {
			t.Errorf("%v %v: bearing %.9f, Vincenty %.9f", a, b, brg, vb)
		}

		vlat, vlon := geo.At(a.Latitude(), a.Longitude(), d, brg)
		if gomath.Abs(vlat-b.Latitude()) > 1e-7 || HeadingDifference(vlon, b.Longitude()) > 1e-7 {
			t.Errorf("%v: destination %v, Vincenty (%f, %f)", a, b, vlat, vlon)
		}
	}
}

func TestWrapLongitude(t *testing.T) {
	for _, tt := range []struct{ lon, want float64 }{
		{0, 0},
		{180, 180},
		{-180, -180},
		{190, -170},
		{-190, 170},
		{540, 180},
	} {
		if got := wrapLongitude(tt.lon); gomath.Abs(got-tt.want) > 1e-12 && !(gomath.Abs(got) == 180 && gomath.Abs(tt.want) == 180) {
			t.Errorf("wrapLongitude(%v) = %v, want %v", tt.lon, got, tt.want)
		}
	}
}
