package chessmg_test

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"chess-rules/chessmg"
)

func sq(t *testing.T, name string) chessmg.Square {
	t.Helper()
	s, ok := chessmg.ParseSquare(name)
	if !ok {
		t.Fatalf("bad square %q", name)
	}
	return s
}

func TestCanMoveFrom(t *testing.T) {
	is := is.New(t)
	ev := chessmg.NewEvaluator(chessmg.RulesStandard)
	wp := chessmg.NewPiece(chessmg.White, chessmg.Pawn)
	bk := chessmg.NewPiece(chessmg.Black, chessmg.King)

	is.True(ev.CanMoveFrom(wp, 52, chessmg.White))
	is.True(!ev.CanMoveFrom(wp, 52, chessmg.Black))
	is.True(ev.CanMoveFrom(bk, 4, chessmg.Black))
	is.True(!ev.CanMoveFrom(bk, 4, chessmg.White))
	is.True(!ev.CanMoveFrom(chessmg.NoPiece, 4, chessmg.White))
	// a bare color bit is still an empty tag
	is.True(!ev.CanMoveFrom(chessmg.Piece(0x80), 4, chessmg.Black))
	is.Equal(ev.Destinations(chessmg.NewBoard(), chessmg.Piece(0x80), 4), chessmg.Bitboard(0))
	// source occupancy is not checked
	is.True(ev.CanMoveFrom(wp, 0, chessmg.White))
}

func TestKnightAndKingFromCorner(t *testing.T) {
	king := chessmg.NewPiece(chessmg.White, chessmg.King)
	knight := chessmg.NewPiece(chessmg.White, chessmg.Knight)

	for _, rules := range []chessmg.RuleSet{chessmg.RulesStandard, chessmg.RulesLegacy} {
		t.Run(rules.String(), func(t *testing.T) {
			is := is.New(t)
			ev := chessmg.NewEvaluator(rules)
			b := chessmg.NewBoard()
			is.True(ev.CanMoveFromTo(b, king, 0, 9))
			is.True(!ev.CanMoveFromTo(b, king, 0, 2))
			is.True(ev.CanMoveFromTo(b, knight, 0, 10))
			is.True(!ev.CanMoveFromTo(b, knight, 0, 1))
		})
	}
}

func TestCanMoveFromToRejectsInvalidSquares(t *testing.T) {
	is := is.New(t)
	b := startBoard(t)
	for _, rules := range []chessmg.RuleSet{chessmg.RulesStandard, chessmg.RulesLegacy} {
		ev := chessmg.NewEvaluator(rules)
		rook := chessmg.NewPiece(chessmg.White, chessmg.Rook)
		is.True(!ev.CanMoveFromTo(b, rook, chessmg.NoSquare, 10))
		is.True(!ev.CanMoveFromTo(b, rook, 10, 64))
	}
}

func TestLegacyRulesArePermissive(t *testing.T) {
	is := is.New(t)
	ev := chessmg.NewEvaluator(chessmg.RulesLegacy)
	b := startBoard(t)
	for _, pt := range []chessmg.PieceType{chessmg.Pawn, chessmg.Bishop, chessmg.Rook, chessmg.Queen} {
		p := chessmg.NewPiece(chessmg.White, pt)
		is.True(ev.CanMoveFromTo(b, p, sq(t, "a1"), sq(t, "h8")))
		is.True(ev.CanMoveFromTo(b, p, sq(t, "e2"), sq(t, "e7")))
	}
	// knights ignore occupancy under legacy rules
	is.True(ev.CanMoveFromTo(b, chessmg.NewPiece(chessmg.White, chessmg.Knight), sq(t, "g1"), sq(t, "e2")))
	is.True(!ev.CanMoveFromTo(b, chessmg.Piece(7), sq(t, "e2"), sq(t, "e3")))
}

func TestNullMoveIsNeverLegal(t *testing.T) {
	b := startBoard(t)
	for _, rules := range []chessmg.RuleSet{chessmg.RulesStandard, chessmg.RulesLegacy} {
		t.Run(rules.String(), func(t *testing.T) {
			is := is.New(t)
			ev := chessmg.NewEvaluator(rules)
			for _, name := range []string{"e2", "a1", "d1", "g1", "e1"} {
				from := sq(t, name)
				is.True(!ev.CanMoveFromTo(b, b.PieceAt(from), from, from))
				is.True(!ev.Destinations(b, b.PieceAt(from), from).Has(from))
			}
			for _, m := range ev.LegalMoves(b, chessmg.White) {
				is.True(m.From != m.To)
			}
		})
	}
}

func TestStandardRulesStartPosition(t *testing.T) {
	is := is.New(t)
	ev := chessmg.NewEvaluator(chessmg.RulesStandard)
	b := startBoard(t)

	is.Equal(len(ev.LegalMoves(b, chessmg.White)), 20)
	is.Equal(len(ev.LegalMoves(b, chessmg.Black)), 20)

	wn := b.PieceAt(sq(t, "g1"))
	is.True(ev.CanMoveFromTo(b, wn, sq(t, "g1"), sq(t, "f3")))
	is.True(!ev.CanMoveFromTo(b, wn, sq(t, "g1"), sq(t, "e2"))) // own piece

	wr := b.PieceAt(sq(t, "a1"))
	is.True(!ev.CanMoveFromTo(b, wr, sq(t, "a1"), sq(t, "a3"))) // blocked by a2
	wb := b.PieceAt(sq(t, "c1"))
	is.Equal(ev.Destinations(b, wb, sq(t, "c1")), chessmg.Bitboard(0))
	wq := b.PieceAt(sq(t, "d1"))
	is.Equal(ev.Destinations(b, wq, sq(t, "d1")), chessmg.Bitboard(0))
}

func TestPawnRules(t *testing.T) {
	ev := chessmg.NewEvaluator(chessmg.RulesStandard)
	b, err := chessmg.ParsePlacement("8/3p4/8/2P1p3/3P4/4n3/4P3/8")
	require.NoError(t, err)

	tests := []struct {
		from, to string
		want     bool
	}{
		{"e2", "e3", false}, // blocked by knight
		{"e2", "e4", false}, // cannot jump the blocker
		{"e2", "d3", false}, // no capture target
		{"d4", "d5", true},
		{"d4", "d6", false}, // double step only from the home row
		{"d4", "e5", true},  // capture
		{"d4", "c5", false}, // own piece
		{"d4", "d3", false}, // backwards
		{"c5", "c6", true},
		{"d7", "d6", true},
		{"d7", "d5", true},
		{"d7", "c6", false},
		{"e5", "d4", true}, // black captures downwards
		{"e5", "e4", true},
		{"e5", "e6", false},
	}
	for _, tc := range tests {
		t.Run(tc.from+tc.to, func(t *testing.T) {
			from := sq(t, tc.from)
			p := b.PieceAt(from)
			require.Equal(t, chessmg.Pawn, p.Type())
			require.Equal(t, tc.want, ev.CanMoveFromTo(b, p, from, sq(t, tc.to)))
		})
	}
}

func TestSliderRules(t *testing.T) {
	ev := chessmg.NewEvaluator(chessmg.RulesStandard)
	b, err := chessmg.ParsePlacement("8/8/1p6/8/3Q2P1/8/5n2/8")
	require.NoError(t, err)
	q := b.PieceAt(sq(t, "d4"))
	require.Equal(t, chessmg.Queen, q.Type())

	tests := []struct {
		to   string
		want bool
	}{
		{"d8", true},
		{"a1", true},
		{"h8", true},
		{"b6", true},  // capture on the diagonal
		{"a7", false}, // behind the black pawn
		{"f4", true},
		{"g4", false}, // own pawn
		{"h4", false},
		{"f2", true}, // capture
		{"g1", false},
		{"e6", false}, // not on a line
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, ev.CanMoveFromTo(b, q, sq(t, "d4"), sq(t, tc.to)), tc.to)
	}

	rook := chessmg.NewPiece(chessmg.White, chessmg.Rook)
	require.False(t, ev.CanMoveFromTo(b, rook, sq(t, "d4"), sq(t, "e5")))
	bishop := chessmg.NewPiece(chessmg.White, chessmg.Bishop)
	require.False(t, ev.CanMoveFromTo(b, bishop, sq(t, "d4"), sq(t, "d5")))
}

func TestEvaluatorDoesNotMutateBoard(t *testing.T) {
	is := is.New(t)
	b := startBoard(t)
	before := b.StateString()
	ev := chessmg.NewEvaluator(chessmg.RulesStandard)
	for from := chessmg.Square(0); from < 64; from++ {
		for to := chessmg.Square(0); to < 64; to++ {
			ev.CanMoveFromTo(b, b.PieceAt(from), from, to)
		}
	}
	is.Equal(b.StateString(), before)
}

func TestParseMove(t *testing.T) {
	is := is.New(t)
	m, err := chessmg.ParseMove("e2e4")
	is.NoErr(err)
	is.Equal(m, chessmg.Move{From: 52, To: 36})
	is.Equal(m.String(), "e2e4")

	m, err = chessmg.ParseMove("g8-f6")
	is.NoErr(err)
	is.Equal(m.String(), "g8f6")

	_, err = chessmg.ParseMove("e9e4")
	is.Equal(err, chessmg.ErrMoveFormat)
	_, err = chessmg.ParseMove("e2")
	is.Equal(err, chessmg.ErrMoveFormat)
}

func TestParseRuleSet(t *testing.T) {
	is := is.New(t)
	r, err := chessmg.ParseRuleSet("Legacy")
	is.NoErr(err)
	is.Equal(r, chessmg.RulesLegacy)
	r, err = chessmg.ParseRuleSet("")
	is.NoErr(err)
	is.Equal(r, chessmg.RulesStandard)
	_, err = chessmg.ParseRuleSet("fischer")
	is.True(err != nil)
}
