package kinetic

import "math"

const INFINITY = math.MaxFloat64

// BB is an axis-aligned bounding box.
type BB struct {
	L, B, R, T float64
}

func NewBBForExtents(c Vector, hw, hh float64) BB {
	return BB{
		L: c.X - hw,
		B: c.Y - hh,
		R: c.X + hw,
		T: c.Y + hh,
	}
}

func NewBBForCircle(p Vector, r float64) BB {
	return NewBBForExtents(p, r, r)
}

func NewBBForPoints(points []Vector) BB {
	if len(points) == 0 {
		return BB{}
	}
	bb := BB{points[0].X, points[0].Y, points[0].X, points[0].Y}
	for _, p := range points[1:] {
		bb = bb.Expand(p)
	}
	return bb
}

func (a BB) Intersects(b BB) bool {
	return a.L <= b.R && b.L <= a.R && a.B <= b.T && b.B <= a.T
}

func (bb BB) Contains(other BB) bool {
	return bb.L <= other.L && bb.R >= other.R && bb.B <= other.B && bb.T >= other.T
}

func (bb BB) ContainsVect(v Vector) bool {
	return bb.L <= v.X && bb.R >= v.X && bb.B <= v.Y && bb.T >= v.Y
}

func (a BB) Merge(b BB) BB {
	return BB{
		math.Min(a.L, b.L),
		math.Min(a.B, b.B),
		math.Max(a.R, b.R),
		math.Max(a.T, b.T),
	}
}

func (bb BB) Expand(v Vector) BB {
	return BB{
		math.Min(bb.L, v.X),
		math.Min(bb.B, v.Y),
		math.Max(bb.R, v.X),
		math.Max(bb.T, v.Y),
	}
}

// Grow returns the box inflated by hw and hh on every side.
// Used by the CCD pass to Minkowski-sum a mover's half extent onto a target.
func (bb BB) Grow(hw, hh float64) BB {
	return BB{bb.L - hw, bb.B - hh, bb.R + hw, bb.T + hh}
}

func (bb BB) Center() Vector {
	return Vector{(bb.L + bb.R) * 0.5, (bb.B + bb.T) * 0.5}
}

func (bb BB) Width() float64 {
	return bb.R - bb.L
}

func (bb BB) Height() float64 {
	return bb.T - bb.B
}

func (bb BB) Area() float64 {
	return (bb.R - bb.L) * (bb.T - bb.B)
}

func (bb BB) Offset(v Vector) BB {
	return BB{
		bb.L + v.X,
		bb.B + v.Y,
		bb.R + v.X,
		bb.T + v.Y,
	}
}

// SegmentQuery performs a slab test of the segment a-b against the box,
// returning the parametric hit time in [0, 1) or INFINITY on a miss.
func (bb BB) SegmentQuery(a, b Vector) float64 {
	t, _ := bb.SegmentQueryInfo(a, b)
	return t
}

// SegmentQueryInfo is SegmentQuery plus the outward face normal of the
// slab that produced the entry time.
func (bb BB) SegmentQueryInfo(a, b Vector) (float64, Vector) {
	delta := b.Sub(a)
	tmin := -INFINITY
	tmax := INFINITY
	var n Vector

	if delta.X == 0 {
		if a.X < bb.L || bb.R < a.X {
			return INFINITY, Vector{}
		}
	} else {
		t1 := (bb.L - a.X) / delta.X
		t2 := (bb.R - a.X) / delta.X
		if math.Min(t1, t2) > tmin {
			tmin = math.Min(t1, t2)
			if t1 < t2 {
				n = Vector{-1, 0}
			} else {
				n = Vector{1, 0}
			}
		}
		tmax = math.Min(tmax, math.Max(t1, t2))
	}

	if delta.Y == 0 {
		if a.Y < bb.B || bb.T < a.Y {
			return INFINITY, Vector{}
		}
	} else {
		t1 := (bb.B - a.Y) / delta.Y
		t2 := (bb.T - a.Y) / delta.Y
		if math.Min(t1, t2) > tmin {
			tmin = math.Min(t1, t2)
			if t1 < t2 {
				n = Vector{0, -1}
			} else {
				n = Vector{0, 1}
			}
		}
		tmax = math.Min(tmax, math.Max(t1, t2))
	}

	if tmin <= tmax && 0 <= tmax && tmin < 1.0 {
		return math.Max(tmin, 0.0), n
	}
	return INFINITY, Vector{}
}

func (bb BB) IntersectsSegment(a, b Vector) bool {
	return bb.SegmentQuery(a, b) != INFINITY
}

func (bb BB) ClampVect(v Vector) Vector {
	return Vector{Clamp(v.X, bb.L, bb.R), Clamp(v.Y, bb.B, bb.T)}
}
