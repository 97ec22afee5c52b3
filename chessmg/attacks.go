package chessmg

import "math/bits"

// Precomputed attack masks for knights and kings from each square.
var knightAttacks [64]Bitboard
var kingAttacks [64]Bitboard

// Pawn capture masks: pawnAttacks[color][sq] gives the squares a pawn of
// 'color' captures on from 'sq'. White pawns advance towards row 0.
var pawnAttacks [2][64]Bitboard

// Precomputed rays for sliders. For each square and direction, the bitboard of
// squares in that ray (excluding the origin square).
var rays [64][8]Bitboard

var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {1, 2}, {1, -2},
	{-1, 2}, {-1, -2}, {-2, 1}, {-2, -1},
}

var kingOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Ray directions as (rank, file) steps. The first four are rook directions,
// the last four bishop directions.
var rayDirections = [8][2]int{
	{-1, 0}, {1, 0}, {0, 1}, {0, -1},
	{-1, 1}, {-1, -1}, {1, 1}, {1, -1},
}

var rookDirs = [4]int{0, 1, 2, 3}
var bishopDirs = [4]int{4, 5, 6, 7}

func init() {
	initAttackTables()
	initRays()
}

// initAttackTables precomputes attack bitboards for knights, kings, and pawn captures.
func initAttackTables() {
	for sq := Square(0); sq < 64; sq++ {
		knightAttacks[sq] = GenerateKnightAttacks(sq)
		kingAttacks[sq] = GenerateKingAttacks(sq)

		rank := sq.Row()
		file := sq.Col()

		// White pawn captures (towards row 0)
		if rank > 0 {
			if file > 0 {
				pawnAttacks[White][sq] |= bb(Square((rank-1)*8 + file - 1))
			}
			if file < 7 {
				pawnAttacks[White][sq] |= bb(Square((rank-1)*8 + file + 1))
			}
		}

		// Black pawn captures (towards row 7)
		if rank < 7 {
			if file > 0 {
				pawnAttacks[Black][sq] |= bb(Square((rank+1)*8 + file - 1))
			}
			if file < 7 {
				pawnAttacks[Black][sq] |= bb(Square((rank+1)*8 + file + 1))
			}
		}
	}
}

// initRays precomputes directional rays for rook and bishop moves.
func initRays() {
	for sq := Square(0); sq < 64; sq++ {
		for d, dir := range rayDirections {
			var ray Bitboard
			r, f := sq.Row()+dir[0], sq.Col()+dir[1]
			for r >= 0 && r < 8 && f >= 0 && f < 8 {
				ray |= bb(Square(r*8 + f))
				r += dir[0]
				f += dir[1]
			}
			rays[sq][d] = ray
		}
	}
}

// offsetAttacks sets every in-range (rank+dr, file+df) square. Out-of-range
// candidates are discarded; there is no wraparound.
func offsetAttacks(sq Square, offsets *[8][2]int) Bitboard {
	var mask Bitboard
	if !sq.Valid() {
		return mask
	}
	rank := int(sq) / 8
	file := int(sq) % 8
	for _, off := range offsets {
		r := rank + off[0]
		f := file + off[1]
		if r >= 0 && r < 8 && f >= 0 && f < 8 {
			mask |= bb(Square(r*8 + f))
		}
	}
	return mask
}

// GenerateKnightAttacks computes the squares a knight on sq reaches in one move.
func GenerateKnightAttacks(sq Square) Bitboard { return offsetAttacks(sq, &knightOffsets) }

// GenerateKingAttacks computes the squares a king on sq reaches in one move
// (castling excluded).
func GenerateKingAttacks(sq Square) Bitboard { return offsetAttacks(sq, &kingOffsets) }

// KnightAttacks returns the precomputed knight table entry for sq.
func KnightAttacks(sq Square) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return knightAttacks[sq]
}

// KingAttacks returns the precomputed king table entry for sq.
func KingAttacks(sq Square) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return kingAttacks[sq]
}

// PawnAttacks returns the capture squares of a pawn of color c on sq.
func PawnAttacks(c Color, sq Square) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return pawnAttacks[c&1][sq]
}

// ==========================
// Sliding attacks
// ==========================

// slide ORs the rays in dirs, each cut after its first blocker. The blocker
// square itself stays in the result.
func slide(sq Square, occ Bitboard, dirs *[4]int) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		ray := rays[sq][d]
		blockers := ray & occ
		if blockers != 0 {
			var first int
			if rayDirections[d][0]*8+rayDirections[d][1] > 0 {
				first = bits.TrailingZeros64(uint64(blockers))
			} else {
				first = 63 - bits.LeadingZeros64(uint64(blockers))
			}
			ray &^= rays[first][d]
		}
		attacks |= ray
	}
	return attacks
}

// RookAttacks returns rook attack bitboard from sq given current occupancy.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return slide(sq, occ, &rookDirs)
}

// BishopAttacks returns bishop attack bitboard from sq given current occupancy.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	if !sq.Valid() {
		return 0
	}
	return slide(sq, occ, &bishopDirs)
}

// QueenAttacks combines rook and bishop attacks.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}
