package kinetic

import "sort"

// RaycastInfo describes one ray hit against a body's bounding box.
type RaycastInfo struct {
	Body     *Body
	Point    Vector
	Normal   Vector
	Distance float64
}

// BodyAt returns the first attached body whose box contains the point.
func (w *World) BodyAt(point Vector) *Body {
	for _, b := range w.bodies {
		if b.node != nil && b.BoundingBox().ContainsVect(point) {
			return b
		}
	}
	return nil
}

func (w *World) BodiesAt(point Vector) []*Body {
	var out []*Body
	w.EnumerateBodiesAt(point, func(b *Body, stop *bool) {
		out = append(out, b)
	})
	return out
}

func (w *World) BodyIn(rect BB) *Body {
	for _, b := range w.bodies {
		if b.node != nil && b.BoundingBox().Intersects(rect) {
			return b
		}
	}
	return nil
}

func (w *World) BodiesIn(rect BB) []*Body {
	var out []*Body
	w.EnumerateBodiesIn(rect, func(b *Body, stop *bool) {
		out = append(out, b)
	})
	return out
}

func (w *World) BodyAlongRay(from, to Vector) *Body {
	for _, b := range w.bodies {
		if b.node != nil && b.BoundingBox().IntersectsSegment(from, to) {
			return b
		}
	}
	return nil
}

func (w *World) EnumerateBodiesAt(point Vector, fn func(body *Body, stop *bool)) {
	var stop bool
	for _, b := range w.bodies {
		if b.node == nil || !b.BoundingBox().ContainsVect(point) {
			continue
		}
		fn(b, &stop)
		if stop {
			return
		}
	}
}

func (w *World) EnumerateBodiesIn(rect BB, fn func(body *Body, stop *bool)) {
	var stop bool
	for _, b := range w.bodies {
		if b.node == nil || !b.BoundingBox().Intersects(rect) {
			continue
		}
		fn(b, &stop)
		if stop {
			return
		}
	}
}

func (w *World) EnumerateBodiesAlongRay(from, to Vector, fn func(body *Body, stop *bool)) {
	var stop bool
	for _, b := range w.bodies {
		if b.node == nil || !b.BoundingBox().IntersectsSegment(from, to) {
			continue
		}
		fn(b, &stop)
		if stop {
			return
		}
	}
}

// Raycast returns the nearest hit along the segment, or nil.
func (w *World) Raycast(from, to Vector) *RaycastInfo {
	var best *RaycastInfo
	for _, b := range w.bodies {
		info := raycastBody(b, from, to)
		if info == nil {
			continue
		}
		if best == nil || info.Distance < best.Distance {
			best = info
		}
	}
	return best
}

// RaycastAll returns every hit along the segment, sorted by non-decreasing
// distance.
func (w *World) RaycastAll(from, to Vector) []*RaycastInfo {
	var out []*RaycastInfo
	for _, b := range w.bodies {
		if info := raycastBody(b, from, to); info != nil {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

func raycastBody(b *Body, from, to Vector) *RaycastInfo {
	if b.node == nil {
		return nil
	}
	t, n := b.BoundingBox().SegmentQueryInfo(from, to)
	if t == INFINITY {
		return nil
	}
	point := from.Lerp(to, t)
	return &RaycastInfo{
		Body:     b,
		Point:    point,
		Normal:   n,
		Distance: from.Distance(point),
	}
}

// SampleFields evaluates the combined field force at an arbitrary point
// using a zero-velocity, zero-charge, unit-mass probe. No body is involved;
// the result is purely diagnostic.
func (w *World) SampleFields(at Vector) Vector {
	return w.fieldForce(w.collectFields(), FieldContext{
		Position: at,
		Mass:     1,
	}, AllCategories)
}
