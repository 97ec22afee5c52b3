package chessmg

import (
	"errors"
	"strings"
)

var ErrMoveFormat = errors.New("invalid move: expected coordinate notation such as e2e4")

// Move is a source/destination pair.
type Move struct {
	From Square
	To   Square
}

// String renders the move in coordinate notation, e.g. "e2e4".
func (m Move) String() string { return m.From.String() + m.To.String() }

// ParseMove converts coordinate notation ("e2e4", "e2-e4") into a Move.
func ParseMove(s string) (Move, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if len(s) != 4 {
		return Move{NoSquare, NoSquare}, ErrMoveFormat
	}
	from, ok := ParseSquare(s[:2])
	if !ok {
		return Move{NoSquare, NoSquare}, ErrMoveFormat
	}
	to, ok := ParseSquare(s[2:])
	if !ok {
		return Move{NoSquare, NoSquare}, ErrMoveFormat
	}
	return Move{From: from, To: to}, nil
}

// Evaluator judges move legality. It holds no state besides the rule set and
// never mutates the board it is given.
type Evaluator struct {
	Rules RuleSet
}

// NewEvaluator returns an Evaluator for the given rule set.
func NewEvaluator(rules RuleSet) Evaluator { return Evaluator{Rules: rules} }

// CanMoveFrom reports whether p may be picked up on turn: the piece's color
// must match the side to move. Occupancy of src is not checked. Tags of type
// NoPieceType are empty whatever their color bit.
func (e Evaluator) CanMoveFrom(p Piece, src Square, turn Color) bool {
	if p.Type() == NoPieceType {
		return false
	}
	return p.Color() == turn
}

// CanMoveFromTo reports whether p may move from src to dst. Invalid squares
// and null moves (src == dst) are rejected under every rule set.
func (e Evaluator) CanMoveFromTo(b *Board, p Piece, src, dst Square) bool {
	if !src.Valid() || !dst.Valid() || src == dst {
		return false
	}
	return e.Destinations(b, p, src).Has(dst)
}

// Destinations returns every square p may move to from src. src itself is
// never included.
func (e Evaluator) Destinations(b *Board, p Piece, src Square) Bitboard {
	if !src.Valid() || p.Type() == NoPieceType {
		return 0
	}
	return e.Rules.destinations(b, p, src).Clear(src)
}

// LegalMoves lists every move available to turn on b, ordered by source then
// destination square.
func (e Evaluator) LegalMoves(b *Board, turn Color) []Move {
	moves := make([]Move, 0, 64)
	for _, from := range b.Pieces(turn) {
		targets := e.Destinations(b, b.PieceAt(from), from)
		for targets != 0 {
			moves = append(moves, Move{From: from, To: popLSB(&targets)})
		}
	}
	return moves
}
