package kinetic

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Contact is an immutable record of one collision event. A begin and its
// later end are distinct values; only the pair identity carries across
// steps.
type Contact struct {
	BodyA, BodyB     *Body
	ContactPoint     Vector
	ContactNormal    Vector // points from A toward B
	Penetration      float64
	CollisionImpulse float64
}

// ContactDelegate receives begin/end notifications synchronously during
// World.Simulate.
type ContactDelegate interface {
	DidBegin(*Contact)
	DidEnd(*Contact)
}

// pairKey digests the two body identities, order-independently, into the
// key used by the previous/current contact sets.
func pairKey(a, b *Body) uint64 {
	lo, hi := a.id, b.id
	if lo > hi {
		lo, hi = hi, lo
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], lo)
	binary.LittleEndian.PutUint64(buf[8:], hi)
	return xxhash.Sum64(buf[:])
}

// contactPair retains just enough of a tracked pair to synthesize the end
// contact after the bodies separate.
type contactPair struct {
	a, b *Body
}
