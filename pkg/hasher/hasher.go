// Package hasher implements the streaming 64-bit mixer used to compute the
// cached structural hash carried in every term header.
//
// The mix itself is FNV-1a, the same primitive mitchellh/hashstructure (and
// its moby-moby vendor copy) default to for structural hashing (see
// DESIGN.md). Hashes are advisory:
// equality always falls through to structural recursion on a match, never
// trusts the 32-bit cached value alone.
package hasher

import (
	"hash/fnv"
	"math"
)

const (
	offsetBasis uint64 = 14695981039346656037
	prime       uint64 = 1099511628211
)

// Streaming incrementally mixes tag and field values into a 64-bit digest.
// Zero value is ready to use.
type Streaming struct {
	h     uint64
	ready bool
}

// New returns a fresh streaming hasher seeded with the FNV-1a offset basis.
func New() *Streaming {
	return &Streaming{h: offsetBasis, ready: true}
}

func (s *Streaming) mixByte(b byte) {
	s.h ^= uint64(b)
	s.h *= prime
}

func (s *Streaming) mixUint64(v uint64) *Streaming {
	for i := 0; i < 8; i++ {
		s.mixByte(byte(v >> (8 * i)))
	}
	return s
}

// WriteTag mixes in a term's variant tag; always the first value mixed so
// that two terms of different kinds can never collide trivially.
func (s *Streaming) WriteTag(tag uint8) *Streaming { return s.mixUint64(uint64(tag)) }

// WriteUint64 mixes in an arbitrary unsigned integer field.
func (s *Streaming) WriteUint64(v uint64) *Streaming { return s.mixUint64(v) }

// WriteInt64 mixes in a signed integer field.
func (s *Streaming) WriteInt64(v int64) *Streaming { return s.mixUint64(uint64(v)) }

// WriteFloat64 mixes in a floating point field via its IEEE-754 bit pattern.
func (s *Streaming) WriteFloat64(v float64) *Streaming {
	return s.mixUint64(math.Float64bits(v))
}

// WriteBytes mixes in an arbitrary byte string (used for String terms).
func (s *Streaming) WriteBytes(b []byte) *Streaming {
	f := fnv.New64a()
	_, _ = f.Write(b)
	return s.mixUint64(f.Sum64())
}

// WriteHash32 mixes in a child term's already-computed cached hash, the
// mechanism by which composite hashes incorporate their children in a
// fixed order.
func (s *Streaming) WriteHash32(h uint32) *Streaming { return s.mixUint64(uint64(h)) }

// Sum64 returns the full 64-bit digest.
func (s *Streaming) Sum64() uint64 { return s.h }

// Sum32 returns the low 32 bits, used as a term's cached hash slot.
func (s *Streaming) Sum32() uint32 { return uint32(s.h) }
