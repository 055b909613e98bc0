package kinetic

import "math"

// The three mask predicates are independent: testing gates the narrow
// phase, colliding gates physical response, notifying gates delegate
// callbacks.

func shouldTest(a, b *Body) bool {
	if !a.Dynamic && !b.Dynamic {
		return false
	}
	return shouldCollide(a, b) || shouldNotify(a, b)
}

func shouldCollide(a, b *Body) bool {
	return a.CollisionBitMask&b.CategoryBitMask != 0 ||
		b.CollisionBitMask&a.CategoryBitMask != 0
}

func shouldNotify(a, b *Body) bool {
	return a.ContactTestBitMask&b.CategoryBitMask != 0 ||
		b.ContactTestBitMask&a.CategoryBitMask != 0
}

// collide runs the AABB narrow phase for one pair and returns the contact,
// or nil when the boxes do not overlap. The normal points from a toward b
// along the axis of least penetration; the contact point is the midpoint of
// the overlap region.
func collide(a, b *Body) *Contact {
	bbA := a.BoundingBox()
	bbB := b.BoundingBox()
	if !bbA.Intersects(bbB) {
		return nil
	}

	overlapX := math.Min(bbA.R-bbB.L, bbB.R-bbA.L)
	overlapY := math.Min(bbA.T-bbB.B, bbB.T-bbA.B)

	overlap := BB{
		math.Max(bbA.L, bbB.L),
		math.Max(bbA.B, bbB.B),
		math.Min(bbA.R, bbB.R),
		math.Min(bbA.T, bbB.T),
	}

	var normal Vector
	var penetration float64
	if overlapX < overlapY {
		penetration = overlapX
		if bbA.Center().X <= bbB.Center().X {
			normal = Vector{1, 0}
		} else {
			normal = Vector{-1, 0}
		}
	} else {
		penetration = overlapY
		if bbA.Center().Y <= bbB.Center().Y {
			normal = Vector{0, 1}
		} else {
			normal = Vector{0, -1}
		}
	}

	return &Contact{
		BodyA:         a,
		BodyB:         b,
		ContactPoint:  overlap.Center(),
		ContactNormal: normal,
		Penetration:   penetration,
	}
}

// resolve applies the collision impulse, friction and positional correction
// for a penetrating pair and returns the normal impulse magnitude.
func resolve(con *Contact) float64 {
	a := con.BodyA
	b := con.BodyB
	n := con.ContactNormal

	invA := a.invMass()
	invB := b.invMass()
	invSum := invA + invB
	if invSum == 0 {
		return 0
	}

	separate(con, invA, invB)

	relVel := b.Velocity.Sub(a.Velocity).Dot(n)
	if relVel >= 0 {
		// already separating
		return 0
	}

	e := math.Min(a.Restitution, b.Restitution)
	jn := -(1.0 + e) * relVel / invSum

	impulse := n.Mult(jn)
	a.Velocity = a.Velocity.Sub(impulse.Mult(invA))
	b.Velocity = b.Velocity.Add(impulse.Mult(invB))

	applyFriction(a, b, n, jn, invA, invB, invSum)
	return jn
}

// separate pushes the penetration out: half each when both bodies can
// move, all of it onto the single movable body otherwise.
func separate(con *Contact, invA, invB float64) {
	correction := con.ContactNormal.Mult(con.Penetration)

	switch {
	case invA > 0 && invB > 0:
		moveNode(con.BodyA, correction.Mult(-0.5))
		moveNode(con.BodyB, correction.Mult(0.5))
	case invA > 0:
		moveNode(con.BodyA, correction.Neg())
	case invB > 0:
		moveNode(con.BodyB, correction)
	}
}

func applyFriction(a, b *Body, n Vector, jn, invA, invB, invSum float64) {
	relVel := b.Velocity.Sub(a.Velocity)
	tangentVel := relVel.Sub(n.Mult(relVel.Dot(n)))
	speed := tangentVel.Length()
	if speed == 0 {
		return
	}
	tangent := tangentVel.Mult(1.0 / speed)

	friction := (a.Friction + b.Friction) * 0.5
	jt := -speed / invSum
	jt = Clamp(jt, -math.Abs(jn)*friction, math.Abs(jn)*friction)

	impulse := tangent.Mult(jt)
	a.Velocity = a.Velocity.Sub(impulse.Mult(invA))
	b.Velocity = b.Velocity.Add(impulse.Mult(invB))
}

func moveNode(body *Body, delta Vector) {
	if body.node == nil {
		return
	}
	body.node.SetPosition(body.node.Position().Add(delta))
}
