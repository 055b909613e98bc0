package kinetic

import "math"

// ccdEpsilon backs the body off its hit point so the next step does not
// start in penetration.
const ccdEpsilon = 1e-3

// ccdMinTravel is the squared distance under which a sweep is pointless.
const ccdMinTravel = 1e-12

type ccdHit struct {
	t      float64
	normal Vector
	other  *Body
}

// sweep traces the mover from its snapshot position to its current one as a
// point against every eligible target box grown by the mover's half extent
// (the Minkowski-sum trick), keeping the earliest hit.
func (w *World) sweep(mover *Body) (ccdHit, bool) {
	from := mover.prevPosition
	to := mover.position()
	if from.DistanceSq(to) < ccdMinTravel {
		return ccdHit{}, false
	}

	half := mover.shape.HalfExtents()
	best := ccdHit{t: INFINITY}

	for _, other := range w.bodies {
		if other == mover || other.node == nil || !shouldTest(mover, other) {
			continue
		}
		target := other.BoundingBox().Grow(half.X, half.Y)
		t, n := target.SegmentQueryInfo(from, to)
		if t < best.t {
			best = ccdHit{t: t, normal: n, other: other}
		}
	}

	if best.t == INFINITY {
		return ccdHit{}, false
	}
	return best, true
}

// resolveSweep repositions the mover at the hit point, reflects the
// velocity component along the face normal, and synthesizes the contact
// the narrow phase would have produced.
func (w *World) resolveSweep(mover *Body, hit ccdHit) *Contact {
	from := mover.prevPosition
	to := mover.position()
	travel := to.Sub(from)

	hitPos := from.Add(travel.Mult(hit.t)).Add(hit.normal.Mult(ccdEpsilon))
	moveNode(mover, hitPos.Sub(mover.position()))

	vn := mover.Velocity.Dot(hit.normal)
	impulse := 0.0
	if vn < 0 {
		e := math.Min(mover.Restitution, hit.other.Restitution)
		mover.Velocity = mover.Velocity.Sub(hit.normal.Mult((1.0 + e) * vn))
		impulse = math.Abs(vn) * mover.Mass()
	}

	return &Contact{
		BodyA:            mover,
		BodyB:            hit.other,
		ContactPoint:     hitPos,
		ContactNormal:    hit.normal.Neg(),
		Penetration:      0,
		CollisionImpulse: impulse,
	}
}
