// math/latlong.go
// Copyright(c) 2022-2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
	"regexp"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////
// Point2LL

// Point2LL represents a 2D point on the Earth in latitude-longitude,
// decimal degrees.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float64

// LL returns the point with the given latitude and longitude.
func LL(lat, lon float64) Point2LL {
	return Point2LL{lon, lat}
}

func (p Point2LL) Longitude() float64 {
	return p[0]
}

func (p Point2LL) Latitude() float64 {
	return p[1]
}

// IsValid reports whether both coordinates are finite and in range.
func (p Point2LL) IsValid() bool {
	return IsFinite(p[0]) && IsFinite(p[1]) && Abs(p[1]) <= 90 && Abs(p[0]) <= 180
}

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0]) // latitude, longitude
}

// DMSString returns the position as whole degrees, minutes, and seconds
// in the form used by OpenAir airspace files, e.g.
// 47:03:21 N 008:12:00 E
func (p Point2LL) DMSString() string {
	format := func(v float64, degDigits int, pos, neg string) string {
		// Round once to whole seconds so that 59.6" carries into the
		// minutes (and on into the degrees) rather than printing as 60.
		total := int64(gomath.Round(Abs(v) * 3600))
		hemi := pos
		if v < 0 && total != 0 {
			hemi = neg
		}
		return fmt.Sprintf("%0*d:%02d:%02d %s", degDigits, total/3600, (total/60)%60, total%60, hemi)
	}
	return format(p[1], 2, "N", "S") + " " + format(p[0], 3, "E", "W")
}

// DDMStrings returns the latitude and longitude as degrees and decimal
// minutes with a trailing hemisphere letter, as used in SeeYou .cup
// files: 4703.350N and 00812.000E.
func (p Point2LL) DDMStrings() (lat string, lon string) {
	format := func(v float64, degDigits int, pos, neg byte) string {
		// Thousandths of a minute.
		total := int64(gomath.Round(Abs(v) * 60000))
		hemi := pos
		if v < 0 && total != 0 {
			hemi = neg
		}
		return fmt.Sprintf("%0*d%02d.%03d%c", degDigits, total/60000, (total%60000)/1000, total%1000, hemi)
	}
	return format(p[1], 2, 'N', 'S'), format(p[0], 3, 'E', 'W')
}

var (
	// pair of decimal numbers, latitude first, as copied from Google Maps
	reWaypointFloat = regexp.MustCompile(`^([-+]?[0-9]+(?:\.[0-9]+)?)\s*[, ]\s*([-+]?[0-9]+(?:\.[0-9]+)?)$`)
	// OpenAir style: 47:03:21 N 008:12:00 E or 47:03.350N,008:12.000E
	reOpenAirDMS = regexp.MustCompile(`^([0-9]+):([0-9]+(?:\.[0-9]+)?)(?::([0-9]+(?:\.[0-9]+)?))?\s*([NSns])\s*,?\s*([0-9]+):([0-9]+(?:\.[0-9]+)?)(?::([0-9]+(?:\.[0-9]+)?))?\s*([EWew])$`)
)

// ParseLatLong parses a position given in one of the following forms:
//
//	47.0512, 8.2021                  decimal degrees, latitude first
//	N47.03.04.320, E008.12.07.560    dotted degrees/minutes/seconds
//	47:03:04 N 008:12:07 E           OpenAir degrees:minutes:seconds
//	47:03.072 N 008:12.126 E         OpenAir degrees:decimal minutes
func ParseLatLong(llstr string) (Point2LL, error) {
	s := strings.TrimSpace(llstr)

	var p Point2LL
	if dp, ok := tryParseWaypointDotted([]byte(s)); ok {
		p = dp
	} else if strs := reWaypointFloat.FindStringSubmatch(s); len(strs) == 3 {
		lat, err := strconv.ParseFloat(strs[1], 64)
		if err != nil {
			return Point2LL{}, err
		}
		lon, err := strconv.ParseFloat(strs[2], 64)
		if err != nil {
			return Point2LL{}, err
		}
		p = LL(lat, lon)
	} else if op, err := ParseDMSLatLong(s); err == nil {
		p = op
	} else {
		return Point2LL{}, fmt.Errorf("%s: invalid latlong string", llstr)
	}

	if !p.IsValid() {
		return Point2LL{}, fmt.Errorf("%s: latitude or longitude out of range", llstr)
	}
	return p, nil
}

// ParseDMSLatLong parses the coordinate of an OpenAir DP record, e.g.
// "47:03:04 N 008:12:07 E".
func ParseDMSLatLong(s string) (Point2LL, error) {
	strs := reOpenAirDMS.FindStringSubmatch(strings.TrimSpace(s))
	if len(strs) != 9 {
		return Point2LL{}, fmt.Errorf("%q: invalid DMS coordinate", s)
	}

	parse := func(deg, min, sec, hemi string, limit float64) (float64, error) {
		d, err := strconv.Atoi(deg)
		if err != nil {
			return 0, err
		}
		m, err := strconv.ParseFloat(min, 64)
		if err != nil {
			return 0, err
		}
		var sc float64
		if sec != "" {
			if sc, err = strconv.ParseFloat(sec, 64); err != nil {
				return 0, err
			}
		}
		if m >= 60 || sc >= 60 {
			return 0, fmt.Errorf("%q: minutes and seconds must be less than 60", s)
		}
		v := float64(d) + m/60 + sc/3600
		if v > limit {
			return 0, fmt.Errorf("%q: out of range", s)
		}
		if hemi == "S" || hemi == "s" || hemi == "W" || hemi == "w" {
			v = -v
		}
		return v, nil
	}

	lat, err := parse(strs[1], strs[2], strs[3], strs[4], 90)
	if err != nil {
		return Point2LL{}, err
	}
	lon, err := parse(strs[5], strs[6], strs[7], strs[8], 180)
	if err != nil {
		return Point2LL{}, err
	}
	return LL(lat, lon), nil
}

// Parse waypoints of the form "N40.37.58.400, W073.46.17.000". This
// is done by hand rather than with a regexp since it is the most
// common form in aviation data.
func tryParseWaypointDotted(b []byte) (Point2LL, bool) {
	if len(b) == 0 || (b[0] != 'N' && b[0] != 'S') {
		return Point2LL{}, false
	}
	negateLatitude := b[0] == 'S'

	// Skip over the N/S and parse the four dotted numbers following it
	b = b[1:]
	latitude, n, ok := tryParseWaypointNumbers(b)
	if !ok {
		return Point2LL{}, false
	}
	if negateLatitude {
		latitude = -latitude
	}
	b = b[n:]

	if len(b) == 0 || b[0] != ',' {
		return Point2LL{}, false
	}
	b = b[1:]

	// Skip optional space
	if len(b) > 0 && b[0] == ' ' {
		b = b[1:]
	}

	if len(b) == 0 || (b[0] != 'E' && b[0] != 'W') {
		return Point2LL{}, false
	}
	negateLongitude := b[0] == 'W'

	b = b[1:]
	longitude, n, ok := tryParseWaypointNumbers(b)
	if !ok || n != len(b) {
		return Point2LL{}, false
	}
	if negateLongitude {
		longitude = -longitude
	}

	return Point2LL{longitude, latitude}, true
}

// tryParseWaypointNumbers parses a latlong of the form aaa.bbb.ccc.ddd and
// returns the value in degrees, the number of bytes of b consumed, and a
// bool indicating success or failure.
func tryParseWaypointNumbers(b []byte) (float64, int, bool) {
	n := 0
	var ll float64

	// Scan to the end of the current number group; return
	// the number of bytes it uses.
	scan := func(b []byte) int {
		for i, v := range b {
			if v == '.' || v == ',' {
				return i
			}
		}
		return len(b)
	}

	for i := 0; i < 4; i++ {
		end := scan(b)
		if end == 0 {
			return 0, 0, false
		}

		value := 0
		for _, ch := range b[:end] {
			if ch < '0' || ch > '9' {
				return 0, 0, false
			}
			value *= 10
			value += int(ch - '0')
		}
		if i == 3 {
			// Treat the last set of digits as a decimal, so that
			// Nxx.yy.zz.1 is handled like Nxx.yy.zz.100.
			for j := end; j < 3; j++ {
				value *= 10
			}
		}

		scales := [4]float64{1, 60, 3600, 3600000}
		ll += float64(value) / scales[i]
		n += end
		b = b[end:]

		if i < 3 {
			if len(b) == 0 || b[0] != '.' {
				return 0, 0, false
			}
			b = b[1:]
			n++
		}
	}

	return ll, n, true
}
