// aviation/geojson.go
// Copyright(c) 2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ToGeoJSON returns a feature collection for previewing a task and its
// airspace in a map viewer: the course as a line, a point per turnpoint,
// and a polygon per airspace zone. Either argument may be empty.
func ToGeoJSON(t *Task, zones []AirspaceZone) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	var all orb.MultiPoint

	if t != nil && len(t.Turnpoints) > 0 {
		var course orb.LineString
		for i, tp := range t.Turnpoints {
			p := orb.Point(tp.Waypoint.Position())
			course = append(course, p)

			f := geojson.NewFeature(p)
			f.Properties["kind"] = "turnpoint"
			f.Properties["index"] = i
			f.Properties["name"] = tp.Waypoint.Name
			f.Properties["radius"] = tp.Radius
			f.Properties["type"] = tp.Type.String()
			fc.Append(f)
		}

		f := geojson.NewFeature(course)
		f.Properties["kind"] = "task"
		f.Properties["name"] = t.TaskType
		fc.Append(f)
		all = append(all, course...)
	}

	for _, z := range zones {
		var g orb.Geometry
		switch n := len(z.Vertices); {
		case n == 0:
			continue
		case n < 3:
			var ls orb.LineString
			for _, p := range z.Vertices {
				ls = append(ls, orb.Point(p))
			}
			g = ls
		default:
			var ring orb.Ring
			for _, p := range z.Vertices {
				ring = append(ring, orb.Point(p))
			}
			if !ring.Closed() {
				ring = append(ring, ring[0])
			}
			g = orb.Polygon{ring}
		}

		for _, p := range z.Vertices {
			all = append(all, orb.Point(p))
		}

		f := geojson.NewFeature(g)
		f.Properties["kind"] = "airspace"
		f.Properties["name"] = z.Name
		f.Properties["class"] = z.Class
		f.Properties["floor"] = z.Floor
		f.Properties["ceiling"] = z.Ceiling
		fc.Append(f)
	}

	if len(all) > 0 {
		fc.BBox = geojson.NewBBox(all.Bound())
	}
	return fc
}
