// Package crosscheck compares the destinations produced by chessmg's standard
// rules with two independent move generators.
//
// GooseEngineMG's pseudo-legal generator obeys the same piece geometry without
// king safety, so its non-special targets must match exactly. dragontoothmg
// only yields fully legal moves, so each of them must be one of ours; extra
// moves on our side are expected whenever a king is in check or a piece is pinned.
package crosscheck

import (
	"fmt"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/samber/lo"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-rules/chessmg"
)

const (
	RefGoose  = "goosemg"
	RefDragon = "dragontoothmg"
)

// Kind tells which side of the comparison a move is missing from.
type Kind string

const (
	// Missing moves are produced by the reference but not by chessmg.
	Missing Kind = "missing"
	// Extra moves are produced by chessmg but not by the reference.
	Extra Kind = "extra"
)

// Divergence is a single move the two generators disagree on.
type Divergence struct {
	Reference string
	Kind      Kind
	Move      chessmg.Move
	Piece     chessmg.Piece
}

func (d Divergence) String() string {
	return fmt.Sprintf("%s %s: %s (%v)", d.Reference, d.Kind, d.Move, d.Piece)
}

// Report is the outcome of comparing one position.
type Report struct {
	FEN         string
	Ours        int
	Goose       int
	Dragon      int
	Divergences []Divergence
}

// OK reports whether no divergences were found.
func (r *Report) OK() bool { return len(r.Divergences) == 0 }

// moveKey packs a move into an ordered key.
type moveKey int

func keyOf(from, to chessmg.Square) moveKey { return moveKey(int(from)*64 + int(to)) }

func (k moveKey) move() chessmg.Move {
	return chessmg.Move{From: chessmg.Square(k / 64), To: chessmg.Square(k % 64)}
}

// fromA1 converts an a1=0 square index into chessmg's a8=0 layout.
func fromA1(sq int) chessmg.Square { return chessmg.Square(sq ^ 56) }

type moveSet map[moveKey]struct{}

// sorted returns the keys in ascending order.
func (s moveSet) sorted() []moveKey {
	keys := maps.Keys(s)
	slices.Sort(keys)
	return keys
}

func oursFor(b *chessmg.Board, turn chessmg.Color) moveSet {
	ev := chessmg.NewEvaluator(chessmg.RulesStandard)
	set := make(moveSet)
	for _, m := range ev.LegalMoves(b, turn) {
		set[keyOf(m.From, m.To)] = struct{}{}
	}
	return set
}

func gooseFor(fen string) (moveSet, error) {
	gb, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", RefGoose, err)
	}
	set := make(moveSet)
	for _, m := range gb.GeneratePseudoMoves() {
		if m.Flags() != goosemg.FlagNone {
			continue // castling, en passant
		}
		set[keyOf(fromA1(int(m.From())), fromA1(int(m.To())))] = struct{}{}
	}
	return set, nil
}

func dragonFor(fen string) moveSet {
	db := dragontoothmg.ParseFen(fen)
	kings := db.White.Kings | db.Black.Kings
	set := make(moveSet)
	for _, m := range db.GenerateLegalMoves() {
		from, to := int(m.From()), int(m.To())
		if kings&(uint64(1)<<uint(from)) != 0 && (from-to == 2 || to-from == 2) {
			continue // castling
		}
		set[keyOf(fromA1(from), fromA1(to))] = struct{}{}
	}
	return set
}

func (r *Report) add(b *chessmg.Board, ref string, kind Kind, keys []moveKey) {
	slices.Sort(keys)
	for _, k := range keys {
		m := k.move()
		r.Divergences = append(r.Divergences, Divergence{
			Reference: ref,
			Kind:      kind,
			Move:      m,
			Piece:     b.PieceAt(m.From),
		})
	}
}

// Compare parses fen and compares chessmg's standard destinations for the side
// to move with both references. Castling rights and en passant squares in fen
// are dropped before the references see it.
func Compare(fen string) (*Report, error) {
	b, turn, err := chessmg.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	normalized := b.FEN(turn)

	ours := oursFor(b, turn)
	goose, err := gooseFor(normalized)
	if err != nil {
		return nil, err
	}
	dragon := dragonFor(normalized)

	r := &Report{FEN: normalized, Ours: len(ours), Goose: len(goose), Dragon: len(dragon)}
	oursKeys := ours.sorted()

	missing, extra := lo.Difference(goose.sorted(), oursKeys)
	r.add(b, RefGoose, Missing, missing)
	r.add(b, RefGoose, Extra, extra)

	missing, _ = lo.Difference(dragon.sorted(), oursKeys)
	r.add(b, RefDragon, Missing, missing)
	return r, nil
}
