package kinetic

import (
	"math"

	"go.uber.org/zap"
)

// World owns the authoritative collections of attached bodies and
// registered joints and runs the per-step pipeline: field integration,
// joint relaxation, CCD, narrow phase, impulse resolution and contact
// begin/end diffing. Everything happens inline inside Simulate; nothing
// runs concurrently with it.
type World struct {
	Gravity Vector

	// Speed multiplies dt; zero or negative makes Simulate a no-op.
	Speed float64

	bodies []*Body
	joints []*Joint

	delegate    ContactDelegate
	fieldSource FieldSource

	prevContacts map[uint64]contactPair
	currContacts map[uint64]*Contact

	// bodies with kinetic energy below this are flagged Resting
	RestingThreshold float64

	logger *zap.Logger
}

func NewWorld() *World {
	return &World{
		Gravity:          Vector{0, -9.8},
		Speed:            1,
		prevContacts:     map[uint64]contactPair{},
		currContacts:     map[uint64]*Contact{},
		RestingThreshold: 0.05,
		logger:           zap.NewNop(),
	}
}

func (w *World) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w.logger = logger
}

func (w *World) SetDelegate(delegate ContactDelegate) {
	w.delegate = delegate
}

func (w *World) SetFieldSource(source FieldSource) {
	w.fieldSource = source
}

func (w *World) Bodies() []*Body {
	return w.bodies
}

func (w *World) Joints() []*Joint {
	return w.joints
}

// AddBody attaches a body; re-adding an attached body is a no-op.
func (w *World) AddBody(body *Body) *Body {
	for _, b := range w.bodies {
		if b == body {
			return body
		}
	}
	w.bodies = append(w.bodies, body)
	w.logger.Debug("body attached", zap.Uint64("id", body.id), zap.Stringer("shape", body.shape.Kind()))
	return body
}

// RemoveBody detaches a body and purges it from contact tracking. Joints
// referencing the body are the host's to remove; the world does not
// cascade.
func (w *World) RemoveBody(body *Body) {
	for i, b := range w.bodies {
		if b == body {
			last := len(w.bodies) - 1
			w.bodies[i] = w.bodies[last]
			w.bodies[last] = nil
			w.bodies = w.bodies[:last]
			break
		}
	}
	for key, pair := range w.prevContacts {
		if pair.a == body || pair.b == body {
			delete(w.prevContacts, key)
			delete(pair.a.touching, pair.b.id)
			delete(pair.b.touching, pair.a.id)
		}
	}
	for key, con := range w.currContacts {
		if con.BodyA == body || con.BodyB == body {
			delete(w.currContacts, key)
		}
	}
	w.logger.Debug("body detached", zap.Uint64("id", body.id))
}

// AddJoint registers a joint and cross-registers it on both bodies' joint
// lists. Registration is bookkeeping, not ownership.
func (w *World) AddJoint(joint *Joint) *Joint {
	for _, j := range w.joints {
		if j == joint {
			return joint
		}
	}
	w.joints = append(w.joints, joint)
	joint.bodyA.addJoint(joint)
	joint.bodyB.addJoint(joint)
	return joint
}

func (w *World) RemoveJoint(joint *Joint) {
	for i, j := range w.joints {
		if j == joint {
			last := len(w.joints) - 1
			w.joints[i] = w.joints[last]
			w.joints[last] = nil
			w.joints = w.joints[:last]
			joint.bodyA.removeJoint(joint)
			joint.bodyB.removeJoint(joint)
			return
		}
	}
}

// Simulate advances the world one discrete step.
func (w *World) Simulate(dt float64) {
	dt *= w.Speed
	if dt <= 0 {
		return
	}

	w.currContacts = map[uint64]*Contact{}
	ccdHandled := map[*Body]bool{}

	for _, b := range w.bodies {
		if b.UsesPreciseCollisionDetection && b.Dynamic && b.node != nil {
			b.prevPosition = b.position()
		}
	}

	fields := w.collectFields()
	for _, f := range fields {
		f.advance(dt)
	}

	w.integrate(fields, dt)

	for _, j := range w.joints {
		j.step(dt)
	}

	for _, b := range w.bodies {
		if !b.UsesPreciseCollisionDetection || !b.Dynamic || b.node == nil {
			continue
		}
		hit, ok := w.sweep(b)
		if !ok {
			continue
		}
		con := w.resolveSweep(b, hit)
		w.track(con)
		ccdHandled[b] = true
		w.logger.Debug("ccd hit",
			zap.Uint64("mover", b.id),
			zap.Uint64("target", hit.other.id),
			zap.Float64("t", hit.t))
	}

	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		if a.node == nil || ccdHandled[a] {
			continue
		}
		for k := i + 1; k < len(w.bodies); k++ {
			b := w.bodies[k]
			if b.node == nil || ccdHandled[b] {
				continue
			}
			if !shouldTest(a, b) {
				continue
			}
			con := collide(a, b)
			if con == nil {
				continue
			}
			if shouldCollide(a, b) {
				con.CollisionImpulse = resolve(con)
			}
			w.track(con)
		}
	}

	w.updateResting()
	w.diffContacts()

	w.logger.Debug("step",
		zap.Float64("dt", dt),
		zap.Int("bodies", len(w.bodies)),
		zap.Int("contacts", len(w.currContacts)))
}

func (w *World) integrate(fields []*Field, dt float64) {
	for _, b := range w.bodies {
		if !b.Dynamic || b.node == nil {
			continue
		}

		if !b.Pinned && b.Mass() > 0 {
			if b.AffectedByGravity {
				b.Velocity = b.Velocity.Add(w.Gravity.Mult(dt))
			}
			force := w.fieldForce(fields, FieldContext{
				Position: b.position(),
				Velocity: b.Velocity,
				Mass:     b.Mass(),
				Charge:   b.Charge,
			}, b.FieldBitMask)
			if !force.IsZero() {
				b.Velocity = b.Velocity.Add(force.Mult(dt / b.Mass()))
			}
			b.Velocity = b.Velocity.Mult(math.Max(0, 1.0-b.LinearDamping*dt))
			b.node.SetPosition(b.node.Position().Add(b.Velocity.Mult(dt)))
		}

		// pinned bodies never translate but may still rotate
		if b.AllowsRotation {
			b.AngularVelocity *= math.Max(0, 1.0-b.AngularDamping*dt)
			b.node.SetRotation(b.node.Rotation() + b.AngularVelocity*dt)
		}
	}
}

func (w *World) collectFields() []*Field {
	if w.fieldSource == nil {
		return nil
	}
	var fields []*Field
	w.fieldSource.EachField(func(f *Field) {
		fields = append(fields, f)
	})
	return fields
}

// fieldForce sums the eligible field contributions for one sample. The
// first exclusive field returning a non-zero force wins outright.
func (w *World) fieldForce(fields []*Field, ctx FieldContext, mask uint32) Vector {
	var total Vector
	for _, f := range fields {
		if !f.Enabled || f.CategoryBitMask&mask == 0 {
			continue
		}
		force := f.CalculateForce(ctx)
		if f.Exclusive && !force.IsZero() {
			return force
		}
		total = total.Add(force)
	}
	return total
}

// track records a contact for this step, keeping the richest one per pair.
func (w *World) track(con *Contact) {
	key := pairKey(con.BodyA, con.BodyB)
	if prev, ok := w.currContacts[key]; ok && prev.CollisionImpulse >= con.CollisionImpulse {
		return
	}
	w.currContacts[key] = con
	con.BodyA.touching[con.BodyB.id] = struct{}{}
	con.BodyB.touching[con.BodyA.id] = struct{}{}
}

func (w *World) updateResting() {
	for _, b := range w.bodies {
		if !b.movable() {
			continue
		}
		b.Resting = b.KineticEnergy() < w.RestingThreshold
	}
}

// diffContacts fires begin for pairs new this step and end for pairs gone
// since the previous step, then rolls the sets over.
func (w *World) diffContacts() {
	for key, con := range w.currContacts {
		if _, ok := w.prevContacts[key]; ok {
			continue
		}
		if w.delegate != nil && shouldNotify(con.BodyA, con.BodyB) {
			w.delegate.DidBegin(con)
		}
	}

	for key, pair := range w.prevContacts {
		if _, ok := w.currContacts[key]; ok {
			continue
		}
		delete(pair.a.touching, pair.b.id)
		delete(pair.b.touching, pair.a.id)
		if w.delegate != nil && shouldNotify(pair.a, pair.b) {
			w.delegate.DidEnd(w.endContact(pair))
		}
	}

	next := make(map[uint64]contactPair, len(w.currContacts))
	for key, con := range w.currContacts {
		next[key] = contactPair{a: con.BodyA, b: con.BodyB}
	}
	w.prevContacts = next
}

// endContact synthesizes the zero-impulse contact reported when a pair
// separates: midpoint position, normalized direction between the bodies'
// current world positions.
func (w *World) endContact(pair contactPair) *Contact {
	pa := pair.a.position()
	pb := pair.b.position()
	return &Contact{
		BodyA:         pair.a,
		BodyB:         pair.b,
		ContactPoint:  pa.Lerp(pb, 0.5),
		ContactNormal: pb.Sub(pa).Normalize(),
	}
}
