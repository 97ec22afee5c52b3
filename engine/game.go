package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"chess-rules/chessmg"
)

var (
	ErrNotYourTurn   = errors.New("piece does not belong to the player to move")
	ErrIllegalMove   = errors.New("illegal move")
	ErrEmptySquare   = errors.New("no piece on source square")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrGameOver      = errors.New("game is over")
)

// Game is the turn loop around a chess board. It owns the board, the players
// and the move history. Callers must serialize access.
type Game struct {
	board   *chessmg.Board
	eval    chessmg.Evaluator
	players [2]*Player
	trays   [2]*Tray
	grid    [64]*Square
	turn    chessmg.Color
	hist    history

	startPosition string
	strict        bool
}

// Option configures a Game.
type Option func(*Game)

// WithRules selects the rule set used to judge moves.
func WithRules(r chessmg.RuleSet) Option {
	return func(g *Game) { g.eval = chessmg.NewEvaluator(r) }
}

// WithStartPosition sets the placement string loaded by SetUpBoard.
func WithStartPosition(placement string) Option {
	return func(g *Game) { g.startPosition = placement }
}

// WithStrictPlacement makes SetUpBoard reject malformed placement strings
// instead of skipping what it cannot read.
func WithStrictPlacement(strict bool) Option {
	return func(g *Game) { g.strict = strict }
}

// New creates a game with an empty board. Call SetUpBoard to place pieces.
func New(opts ...Option) *Game {
	g := &Game{
		board:         chessmg.NewBoard(),
		eval:          chessmg.NewEvaluator(chessmg.RulesStandard),
		startPosition: chessmg.StartPlacement,
	}
	for i := range g.players {
		g.players[i] = &Player{number: i}
		g.trays[i] = &Tray{owner: g.players[i]}
	}
	for i := range g.grid {
		g.grid[i] = &Square{game: g, col: i % 8, row: i / 8}
	}
	for _, opt := range opts {
		opt(g)
	}
	g.hist.reset(g.takeSnapshot())
	return g
}

// SetUpBoard clears the game and loads the configured start position with
// White to move.
func (g *Game) SetUpBoard() error {
	if g.strict {
		b, err := chessmg.ParsePlacement(g.startPosition)
		if err != nil {
			return fmt.Errorf("set up board: %w", err)
		}
		g.board = b
	} else {
		g.board = chessmg.NewBoard()
		g.board.LoadPlacement(g.startPosition)
	}
	g.turn = chessmg.White
	for _, t := range g.trays {
		t.pieces = t.pieces[:0]
	}
	g.hist.reset(g.takeSnapshot())
	log.Debug().Str("placement", g.startPosition).Str("rules", g.eval.Rules.String()).
		Msg("board set up")
	return nil
}

// Board exposes the underlying board for read access.
func (g *Game) Board() *chessmg.Board { return g.board }

// Rules returns the active rule set.
func (g *Game) Rules() chessmg.RuleSet { return g.eval.Rules }

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player { return g.players[g.turn] }

// PlayerAt returns the player in seat n, or nil.
func (g *Game) PlayerAt(n int) *Player {
	if n < 0 || n >= len(g.players) {
		return nil
	}
	return g.players[n]
}

// Tray returns the captures made by p.
func (g *Game) Tray(p *Player) *Tray { return g.trays[p.Number()] }

// SquareAt returns the grid square at (col,row), or nil when out of range.
func (g *Game) SquareAt(col, row int) *Square {
	sq, ok := chessmg.SquareAt(col, row)
	if !ok {
		return nil
	}
	return g.grid[sq]
}

// ForEachSquare visits all 64 squares in row-major order.
func (g *Game) ForEachSquare(fn func(sq *Square, col, row int)) {
	for _, s := range g.grid {
		fn(s, s.col, s.row)
	}
}

// OwnerAt returns the owner of the piece at (col,row). It returns nil for
// empty or out-of-range squares.
func (g *Game) OwnerAt(col, row int) *Player {
	sq, ok := chessmg.SquareAt(col, row)
	if !ok {
		return nil
	}
	p := g.board.PieceAt(sq)
	if p == chessmg.NoPiece {
		return nil
	}
	return g.players[p.Color()]
}

// CanBitMoveFrom reports whether p may be picked up from src by the player to move.
func (g *Game) CanBitMoveFrom(p chessmg.Piece, src Holder) bool {
	from, _ := g.squareOf(src)
	return g.eval.CanMoveFrom(p, from, g.turn)
}

// CanBitMoveFromTo reports whether p may move from src to dst. Holders that
// are not squares of this game are rejected.
func (g *Game) CanBitMoveFromTo(p chessmg.Piece, src, dst Holder) bool {
	from, ok := g.squareOf(src)
	if !ok {
		return false
	}
	to, ok := g.squareOf(dst)
	if !ok {
		return false
	}
	return g.eval.CanMoveFromTo(g.board, p, from, to)
}

// Destinations lists the squares the piece on from may move to.
func (g *Game) Destinations(from chessmg.Square) chessmg.Bitboard {
	return g.eval.Destinations(g.board, g.board.PieceAt(from), from)
}

// LegalMoves lists every move available to the player to move.
func (g *Game) LegalMoves() []chessmg.Move {
	return g.eval.LegalMoves(g.board, g.turn)
}

// MakeMove validates m, applies it, moves any captured piece to the mover's
// tray and passes the turn.
func (g *Game) MakeMove(m chessmg.Move) error {
	if g.CheckForWinner() != nil {
		return ErrGameOver
	}
	p := g.board.PieceAt(m.From)
	if p == chessmg.NoPiece {
		log.Debug().Str("move", m.String()).Msg("rejected: empty source square")
		return fmt.Errorf("%w: %v", ErrEmptySquare, m.From)
	}
	if !g.eval.CanMoveFrom(p, m.From, g.turn) {
		log.Debug().Str("move", m.String()).Stringer("turn", g.turn).Msg("rejected: not your turn")
		return fmt.Errorf("%w: %v", ErrNotYourTurn, p)
	}
	if !g.eval.CanMoveFromTo(g.board, p, m.From, m.To) {
		log.Debug().Str("move", m.String()).Stringer("piece", p).Msg("rejected: illegal")
		return fmt.Errorf("%w: %v %v", ErrIllegalMove, p, m)
	}

	mover := g.CurrentPlayer()
	if captured := g.board.MovePiece(m.From, m.To); captured != chessmg.NoPiece {
		g.trays[mover.Number()].add(captured)
		log.Debug().Str("move", m.String()).Stringer("captured", captured).Msg("capture")
	}
	g.endTurn()
	g.hist.push(g.takeSnapshot())
	return nil
}

func (g *Game) endTurn() { g.turn = g.turn.Other() }

// Undo steps back one move.
func (g *Game) Undo() error {
	s, ok := g.hist.undo()
	if !ok {
		return ErrNothingToUndo
	}
	log.Debug().Int("ply", g.hist.ply()).Msg("undo")
	return g.applySnapshot(s)
}

// Redo replays the move most recently undone.
func (g *Game) Redo() error {
	s, ok := g.hist.redo()
	if !ok {
		return ErrNothingToRedo
	}
	log.Debug().Int("ply", g.hist.ply()).Msg("redo")
	return g.applySnapshot(s)
}

// Ply returns the number of moves played since the base position.
func (g *Game) Ply() int { return g.hist.ply() }

// StateString snapshots the board as a 64-character state string.
func (g *Game) StateString() string { return g.board.StateString() }

// InitialStateString returns the state string of the position the history
// starts from.
func (g *Game) InitialStateString() string {
	if s, ok := g.hist.base(); ok {
		return s.State
	}
	return g.StateString()
}

// SetStateString restores ownership only from s (see
// chessmg.Board.SetStateStringLegacy) and restarts the history there.
func (g *Game) SetStateString(s string) {
	g.board.SetStateStringLegacy(s)
	g.hist.reset(g.takeSnapshot())
}

// RestoreState replaces the board with the exact position encoded in s and
// restarts the history there. The turn is kept.
func (g *Game) RestoreState(s string) error {
	b, err := chessmg.DecodeStateString(s)
	if err != nil {
		return fmt.Errorf("restore state: %w", err)
	}
	g.board = b
	g.hist.reset(g.takeSnapshot())
	return nil
}

// LoadFEN replaces the position with a strictly parsed FEN string and
// restarts the history there.
func (g *Game) LoadFEN(fen string) error {
	b, turn, err := chessmg.ParseFEN(fen)
	if err != nil {
		return fmt.Errorf("load fen: %w", err)
	}
	g.board = b
	g.turn = turn
	for _, t := range g.trays {
		t.pieces = t.pieces[:0]
	}
	g.hist.reset(g.takeSnapshot())
	return nil
}

// FEN returns the position as a FEN string with the side to move.
func (g *Game) FEN() string { return g.board.FEN(g.turn) }

// kings returns the squares holding kings of either color.
func (g *Game) kings() []chessmg.Square {
	return lo.Filter(g.board.Occupancy().Squares(), func(sq chessmg.Square, _ int) bool {
		return g.board.PieceAt(sq).Type() == chessmg.King
	})
}

// CheckForWinner returns the player whose opponent has lost their king, or
// nil. Without check detection a captured king is the only decisive event.
func (g *Game) CheckForWinner() *Player {
	var hasKing [2]bool
	for _, sq := range g.kings() {
		hasKing[g.board.PieceAt(sq).Color()] = true
	}
	switch {
	case hasKing[chessmg.White] && !hasKing[chessmg.Black]:
		return g.players[chessmg.White]
	case hasKing[chessmg.Black] && !hasKing[chessmg.White]:
		return g.players[chessmg.Black]
	}
	return nil
}

// CheckForDraw reports a draw when only the two kings remain.
func (g *Game) CheckForDraw() bool {
	return g.board.Occupancy().Count() == 2 && len(g.kings()) == 2
}

// StopGame removes every piece from the board and the trays.
func (g *Game) StopGame() {
	g.board.Clear()
	for _, t := range g.trays {
		t.pieces = nil
	}
	g.hist.reset(g.takeSnapshot())
	log.Debug().Msg("game stopped")
}
