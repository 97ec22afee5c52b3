package chessmg

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, bit i set meaning square i is a member.
type Bitboard uint64

// bb returns a bitboard with the given square bit set.
func bb(sq Square) Bitboard { return 1 << uint(sq) }

// Has reports whether sq is in the set. Invalid squares are never members.
func (b Bitboard) Has(sq Square) bool {
	if !sq.Valid() {
		return false
	}
	return b&bb(sq) != 0
}

// Set returns b with sq added.
func (b Bitboard) Set(sq Square) Bitboard { return b | bb(sq) }

// Clear returns b with sq removed.
func (b Bitboard) Clear(sq Square) Bitboard { return b &^ bb(sq) }

// Count returns the number of squares in the set.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// Squares lists the members in ascending index order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for b != 0 {
		out = append(out, popLSB(&b))
	}
	return out
}

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *Bitboard) Square {
	idx := bits.TrailingZeros64(uint64(*mask))
	*mask &= *mask - 1
	return Square(idx)
}

// String draws the set as an 8x8 grid, row 0 first, 'x' for members.
func (b Bitboard) String() string {
	var sb strings.Builder
	for sq := Square(0); sq < 64; sq++ {
		if b.Has(sq) {
			sb.WriteByte('x')
		} else {
			sb.WriteByte('.')
		}
		if sq%8 == 7 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
