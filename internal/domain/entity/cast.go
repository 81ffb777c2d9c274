package entity

import "github.com/younwookim/kinematic/internal/domain/geom"

// CastBufferCapacity is the number of hits kept per resolved move.
const CastBufferCapacity = 4

// CastHit is a single contact reported by a shape cast.
type CastHit struct {
	Normal   geom.Vec
	Distance float64 // along the cast direction
	Collider *Collider
}

// CastBuffer collects the hits of one resolved move. Once full, a new hit
// replaces the last slot so the earliest contacts are preserved.
type CastBuffer struct {
	hits [CastBufferCapacity]CastHit
	n    int
}

// Reset empties the buffer.
func (b *CastBuffer) Reset() {
	b.n = 0
}

// Add records a hit.
func (b *CastBuffer) Add(h CastHit) {
	if b.n < CastBufferCapacity {
		b.hits[b.n] = h
		b.n++
		return
	}
	b.hits[CastBufferCapacity-1] = h
}

// Len returns the number of buffered hits.
func (b *CastBuffer) Len() int {
	return b.n
}

// Hits returns a view of the buffered hits. The slice is only valid until
// the next Add or Reset.
func (b *CastBuffer) Hits() []CastHit {
	return b.hits[:b.n]
}
