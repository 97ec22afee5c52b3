package engine

import (
	"strings"

	"github.com/samber/lo"

	"chess-rules/chessmg"
)

// Player is one of the two seats. Player 0 plays White, player 1 Black.
type Player struct {
	number int
}

// Number returns the stable seat number, 0 or 1.
func (p *Player) Number() int { return p.number }

// Color maps the seat onto its side.
func (p *Player) Color() chessmg.Color { return chessmg.Color(p.number & 1) }

func (p *Player) String() string { return p.Color().String() }

// Holder is anything a piece can sit in: a board square or an off-board tray.
type Holder interface {
	HolderName() string
}

// Square is a board cell. It is a view onto the game's board; the piece it
// reports is always the board's current piece.
type Square struct {
	game *Game
	col  int
	row  int
}

// Column returns the file of the square, 0 = a.
func (s *Square) Column() int { return s.col }

// Row returns the row of the square, 0 = rank 8.
func (s *Square) Row() int { return s.row }

// Index returns the flat board index row*8+col.
func (s *Square) Index() chessmg.Square { return chessmg.Square(s.row*8 + s.col) }

// Piece returns the occupying piece or chessmg.NoPiece.
func (s *Square) Piece() chessmg.Piece { return s.game.board.PieceAt(s.Index()) }

// Empty reports whether no piece occupies the square.
func (s *Square) Empty() bool { return s.Piece() == chessmg.NoPiece }

func (s *Square) HolderName() string { return s.Index().String() }

// Tray holds the pieces a player has captured.
type Tray struct {
	owner  *Player
	pieces []chessmg.Piece
}

func (t *Tray) HolderName() string { return t.owner.String() + " tray" }

// Owner returns the player who captured the pieces.
func (t *Tray) Owner() *Player { return t.owner }

// Pieces returns a copy of the captured pieces, in capture order.
func (t *Tray) Pieces() []chessmg.Piece { return append([]chessmg.Piece(nil), t.pieces...) }

// Len returns the number of captured pieces.
func (t *Tray) Len() int { return len(t.pieces) }

func (t *Tray) add(p chessmg.Piece) { t.pieces = append(t.pieces, p) }

func (t *Tray) String() string {
	return strings.Join(lo.Map(t.pieces, func(p chessmg.Piece, _ int) string {
		return string(p.Notation())
	}), "")
}

// squareOf narrows a holder to a board square. Trays and foreign holders
// yield false.
func (g *Game) squareOf(h Holder) (chessmg.Square, bool) {
	s, ok := h.(*Square)
	if !ok || s == nil || s.game != g {
		return chessmg.NoSquare, false
	}
	return s.Index(), true
}
