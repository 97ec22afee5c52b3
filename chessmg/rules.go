package chessmg

import (
	"fmt"
	"strings"
)

// RuleSet selects how destinations are judged for each piece type.
type RuleSet uint8

const (
	// RulesStandard applies full geometric chess movement: sliders stop at
	// blockers, pawns push and capture by color, own pieces are never a target.
	// Check, castling, en passant and promotion are not considered.
	RulesStandard RuleSet = iota
	// RulesLegacy judges knights and kings by their attack tables only and
	// lets pawns, bishops, rooks and queens move anywhere.
	RulesLegacy
)

func (r RuleSet) String() string {
	if r == RulesLegacy {
		return "legacy"
	}
	return "standard"
}

// ParseRuleSet maps a configuration value onto a RuleSet.
func ParseRuleSet(s string) (RuleSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return RulesStandard, nil
	case "legacy":
		return RulesLegacy, nil
	}
	return RulesStandard, fmt.Errorf("unknown rule set %q", s)
}

const allSquares = ^Bitboard(0)

// pawnHomeRow is the row pawns of each color start on; they advance towards
// row 0 for White and row 7 for Black.
var pawnHomeRow = [2]int{6, 1}
var pawnStep = [2]int{-8, 8}

// destinations returns the move rule result for piece p standing on from.
func (r RuleSet) destinations(b *Board, p Piece, from Square) Bitboard {
	if r == RulesLegacy {
		switch p.Type() {
		case Knight:
			return knightAttacks[from]
		case King:
			return kingAttacks[from]
		case Pawn, Bishop, Rook, Queen:
			return allSquares
		}
		return 0
	}

	c := p.Color()
	own := b.ColorOccupancy(c)
	occ := b.Occupancy()
	switch p.Type() {
	case Pawn:
		return pawnDestinations(b, c, from)
	case Knight:
		return knightAttacks[from] &^ own
	case Bishop:
		return BishopAttacks(from, occ) &^ own
	case Rook:
		return RookAttacks(from, occ) &^ own
	case Queen:
		return QueenAttacks(from, occ) &^ own
	case King:
		return kingAttacks[from] &^ own
	}
	return 0
}

// pawnDestinations covers single and double pushes onto empty squares and
// diagonal captures of enemy pieces.
func pawnDestinations(b *Board, c Color, from Square) Bitboard {
	occ := b.Occupancy()
	targets := pawnAttacks[c][from] & b.ColorOccupancy(c.Other())

	one := from + Square(pawnStep[c])
	if !one.Valid() || occ.Has(one) {
		return targets
	}
	targets = targets.Set(one)
	if from.Row() == pawnHomeRow[c] {
		two := one + Square(pawnStep[c])
		if !occ.Has(two) {
			targets = targets.Set(two)
		}
	}
	return targets
}
