package engine_test

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"chess-rules/chessmg"
	"chess-rules/engine"
)

func newGame(t *testing.T, opts ...engine.Option) *engine.Game {
	t.Helper()
	g := engine.New(opts...)
	require.NoError(t, g.SetUpBoard())
	return g
}

func move(t *testing.T, s string) chessmg.Move {
	t.Helper()
	m, err := chessmg.ParseMove(s)
	require.NoError(t, err)
	return m
}

func TestSetUpBoard(t *testing.T) {
	is := is.New(t)
	g := newGame(t)
	is.Equal(g.StateString(), "rnbqkbnrpppppppp"+strings.Repeat("0", 32)+"PPPPPPPPRNBQKBNR")
	is.Equal(g.InitialStateString(), g.StateString())
	is.Equal(g.CurrentPlayer().Number(), 0)
	is.Equal(g.CurrentPlayer().Color(), chessmg.White)
	is.Equal(g.FEN(), chessmg.StartPlacement+" w - - 0 1")
	is.Equal(len(g.LegalMoves()), 20)
}

func TestSetUpBoardStrictPlacement(t *testing.T) {
	g := engine.New(engine.WithStartPosition("rnbqkbnr/pppppppp/8/8"), engine.WithStrictPlacement(true))
	err := g.SetUpBoard()
	require.ErrorIs(t, err, chessmg.ErrRankCount)

	// best-effort loading accepts the same string
	g = engine.New(engine.WithStartPosition("rnbqkbnr/pppppppp/8/8"))
	require.NoError(t, g.SetUpBoard())
	require.Equal(t, 16, g.Board().Occupancy().Count())
}

func TestOwnerAt(t *testing.T) {
	is := is.New(t)
	g := newGame(t)
	is.Equal(g.OwnerAt(0, 0), g.PlayerAt(1))
	is.Equal(g.OwnerAt(4, 7), g.PlayerAt(0))
	is.Equal(g.OwnerAt(4, 4), nil)
	is.Equal(g.OwnerAt(-1, 0), nil)
	is.Equal(g.OwnerAt(0, 8), nil)
	is.Equal(g.PlayerAt(2), nil)
}

func TestCanBitMoveHolders(t *testing.T) {
	is := is.New(t)
	g := newGame(t)
	e2 := g.SquareAt(4, 6)
	e4 := g.SquareAt(4, 4)
	pawn := e2.Piece()
	is.Equal(pawn.Type(), chessmg.Pawn)

	is.True(g.CanBitMoveFrom(pawn, e2))
	is.True(!g.CanBitMoveFrom(g.SquareAt(4, 1).Piece(), g.SquareAt(4, 1)))
	is.True(g.CanBitMoveFromTo(pawn, e2, e4))

	// trays and squares of other games are not board squares
	tray := g.Tray(g.PlayerAt(0))
	is.True(!g.CanBitMoveFromTo(pawn, tray, e4))
	is.True(!g.CanBitMoveFromTo(pawn, e2, tray))
	other := newGame(t)
	is.True(!g.CanBitMoveFromTo(pawn, e2, other.SquareAt(4, 4)))
}

func TestMakeMoveTurnsAndErrors(t *testing.T) {
	g := newGame(t)
	require.ErrorIs(t, g.MakeMove(move(t, "e7e5")), engine.ErrNotYourTurn)
	require.ErrorIs(t, g.MakeMove(move(t, "e4e5")), engine.ErrEmptySquare)
	require.ErrorIs(t, g.MakeMove(move(t, "e2e5")), engine.ErrIllegalMove)

	require.NoError(t, g.MakeMove(move(t, "e2e4")))
	require.Equal(t, chessmg.Black, g.CurrentPlayer().Color())
	require.ErrorIs(t, g.MakeMove(move(t, "d2d4")), engine.ErrNotYourTurn)
	require.NoError(t, g.MakeMove(move(t, "d7d5")))
	require.Equal(t, 2, g.Ply())
}

func TestCaptureGoesToTray(t *testing.T) {
	is := is.New(t)
	g := newGame(t)
	for _, m := range []string{"e2e4", "d7d5", "e4d5"} {
		is.NoErr(g.MakeMove(move(t, m)))
	}
	white := g.PlayerAt(0)
	is.Equal(g.Tray(white).Len(), 1)
	is.Equal(g.Tray(white).String(), "p")
	is.Equal(g.Tray(white).Owner(), white)
	is.Equal(g.Tray(g.PlayerAt(1)).Len(), 0)
}

func TestUndoRedo(t *testing.T) {
	is := is.New(t)
	g := newGame(t)
	start := g.StateString()

	is.Equal(g.Undo(), engine.ErrNothingToUndo)
	is.NoErr(g.MakeMove(move(t, "e2e4")))
	is.NoErr(g.MakeMove(move(t, "d7d5")))
	is.NoErr(g.MakeMove(move(t, "e4d5")))
	afterCapture := g.StateString()

	is.NoErr(g.Undo())
	is.Equal(g.Tray(g.PlayerAt(0)).Len(), 0)
	is.Equal(g.CurrentPlayer().Color(), chessmg.White)
	is.NoErr(g.Redo())
	is.Equal(g.StateString(), afterCapture)
	is.Equal(g.Tray(g.PlayerAt(0)).Len(), 1)
	is.Equal(g.Redo(), engine.ErrNothingToRedo)

	is.NoErr(g.Undo())
	is.NoErr(g.Undo())
	is.NoErr(g.Undo())
	is.Equal(g.StateString(), start)

	// a new move discards the redo tail
	is.NoErr(g.MakeMove(move(t, "g1f3")))
	is.Equal(g.Redo(), engine.ErrNothingToRedo)
	is.Equal(g.Ply(), 1)
}

func TestWinnerAndDraw(t *testing.T) {
	is := is.New(t)
	g := newGame(t)
	is.Equal(g.CheckForWinner(), nil)
	is.True(!g.CheckForDraw())

	is.NoErr(g.LoadFEN("8/8/8/8/8/8/5k2/6K1 w - - 0 1"))
	is.True(g.CheckForDraw())
	is.NoErr(g.MakeMove(move(t, "g1f2")))
	is.Equal(g.CheckForWinner(), g.PlayerAt(0))
	is.True(!g.CheckForDraw())
	is.Equal(g.MakeMove(move(t, "f2f3")), engine.ErrGameOver)
}

func TestStateStringRestore(t *testing.T) {
	is := is.New(t)
	g := newGame(t)
	is.NoErr(g.MakeMove(move(t, "b1c3")))
	saved := g.StateString()

	fresh := newGame(t)
	is.NoErr(fresh.RestoreState(saved))
	is.Equal(fresh.StateString(), saved)
	is.True(fresh.RestoreState("short") != nil)

	fresh.SetStateString(saved)
	once := fresh.StateString()
	fresh.SetStateString(once)
	is.Equal(fresh.StateString(), once)
	is.Equal(fresh.InitialStateString(), once)
	is.True(fresh.Board().PieceAt(42).Type() == chessmg.Pawn) // c3 knight collapsed to a pawn
}

func TestForEachSquareAndStop(t *testing.T) {
	is := is.New(t)
	g := newGame(t)
	count := 0
	g.ForEachSquare(func(sq *engine.Square, col, row int) {
		is.Equal(int(sq.Index()), row*8+col)
		is.Equal(sq.Column(), col)
		is.Equal(sq.Row(), row)
		count++
	})
	is.Equal(count, 64)

	g.StopGame()
	is.Equal(g.StateString(), strings.Repeat("0", 64))
	is.True(g.SquareAt(0, 0).Empty())
	is.Equal(g.SquareAt(8, 0), nil)
}

func TestLegacyRules(t *testing.T) {
	is := is.New(t)
	g := newGame(t, engine.WithRules(chessmg.RulesLegacy))
	is.Equal(g.Rules(), chessmg.RulesLegacy)
	// rooks jump under legacy rules
	is.NoErr(g.MakeMove(move(t, "a1a5")))
	// knights still follow the table
	is.True(g.MakeMove(move(t, "b8b6")) != nil)
}

func TestLegacyRulesRejectNullMove(t *testing.T) {
	g := newGame(t, engine.WithRules(chessmg.RulesLegacy))
	before := g.StateString()
	require.ErrorIs(t, g.MakeMove(move(t, "e2e2")), engine.ErrIllegalMove)
	require.ErrorIs(t, g.MakeMove(move(t, "d1d1")), engine.ErrIllegalMove)
	require.Equal(t, chessmg.White, g.CurrentPlayer().Color())
	require.Equal(t, 0, g.Ply())
	require.Equal(t, before, g.StateString())
}
