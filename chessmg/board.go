package chessmg

import "strings"

// PieceType is a colorless representation of a chess piece.
type PieceType uint8

const (
	NoPieceType PieceType = 0
	Pawn        PieceType = 1
	Knight      PieceType = 2
	Bishop      PieceType = 3
	Rook        PieceType = 4
	Queen       PieceType = 5
	King        PieceType = 6
)

func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Piece is the game tag of a piece: the type in the low 7 bits and the color in bit 7.
//
//   - tag & 0x7F gives the type in [1..6]
//   - tag & 0x80 != 0 indicates Black
type Piece uint8

const (
	NoPiece Piece = 0

	colorBit Piece = 0x80
	typeMask Piece = 0x7F
)

// NewPiece combines a side and a colorless type into a game tag.
func NewPiece(c Color, pt PieceType) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	p := Piece(pt)
	if c == Black {
		p |= colorBit
	}
	return p
}

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & typeMask) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color {
	if p&colorBit != 0 {
		return Black
	}
	return White
}

// Notation returns the single-character notation for the piece: uppercase for
// White, lowercase for Black, '0' for NoPiece.
func (p Piece) Notation() byte {
	const wpieces = "0PNBRQK"
	const bpieces = "0pnbrqk"
	t := p.Type()
	if t > King {
		return '0'
	}
	if p.Color() == Black {
		return bpieces[t]
	}
	return wpieces[t]
}

func (p Piece) String() string {
	if p == NoPiece {
		return "empty"
	}
	return p.Color().String() + " " + p.Type().String()
}

// Square represents a board position (0-63), row-major with index 0 at the
// top-left corner from White's point of view (a8).
type Square int

const NoSquare Square = -1

// SquareAt maps a (column, row) pair to a square. The second result is false
// when either coordinate lies outside [0,7].
func SquareAt(col, row int) (Square, bool) {
	if col < 0 || col >= 8 || row < 0 || row >= 8 {
		return NoSquare, false
	}
	return Square(row*8 + col), true
}

// Valid reports whether sq addresses one of the 64 board squares.
func (sq Square) Valid() bool { return sq >= 0 && sq < 64 }

// Col returns the column (file) of the square, 0 = a.
func (sq Square) Col() int { return int(sq) % 8 }

// Row returns the row of the square, 0 = rank 8.
func (sq Square) Row() int { return int(sq) / 8 }

// String renders the square in algebraic notation, e.g. 0 -> "a8", 63 -> "h1".
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.Col()), '8' - byte(sq.Row())})
}

// ParseSquare converts algebraic notation ("e4") into a Square.
func ParseSquare(s string) (Square, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return NoSquare, false
	}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, false
	}
	return SquareAt(int(s[0]-'a'), int('8'-s[1]))
}

// Board holds piece placement. Each square holds at most one piece.
type Board struct {
	// Piece placement array for each square (NoPiece when empty)
	pieces [64]Piece

	// Occupancy bitboards for each side, index 0 = white, 1 = black
	occupancy [2]Bitboard
}

// NewBoard returns an empty board.
func NewBoard() *Board { return &Board{} }

// PieceAt returns the piece on a square, NoPiece for empty or invalid squares.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.pieces[sq]
}

// Occupancy returns a bitboard of all occupied squares.
func (b *Board) Occupancy() Bitboard { return b.occupancy[White] | b.occupancy[Black] }

// ColorOccupancy returns the occupancy bitboard for the given color.
func (b *Board) ColorOccupancy(c Color) Bitboard { return b.occupancy[c&1] }

// addPiece places a piece on an empty square and updates occupancy.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	b.pieces[sq] = p
	b.occupancy[p.Color()] = b.occupancy[p.Color()].Set(sq)
}

// removePiece removes a piece from a square and updates occupancy.
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[sq]
	if p == NoPiece {
		return NoPiece
	}
	b.pieces[sq] = NoPiece
	b.occupancy[p.Color()] = b.occupancy[p.Color()].Clear(sq)
	return p
}

// SetPiece sets a piece on a square, replacing any existing piece. Invalid
// squares are ignored.
func (b *Board) SetPiece(sq Square, p Piece) {
	if !sq.Valid() {
		return
	}
	b.removePiece(sq)
	b.addPiece(sq, p)
}

// ClearSquare removes any piece from the given square and returns it.
func (b *Board) ClearSquare(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.removePiece(sq)
}

// MovePiece moves a piece from one square to another. If a piece exists on
// 'to', it is removed and returned.
func (b *Board) MovePiece(from, to Square) (captured Piece) {
	if !from.Valid() || !to.Valid() || from == to {
		return NoPiece
	}
	moving := b.removePiece(from)
	captured = b.removePiece(to)
	b.addPiece(to, moving)
	return captured
}

// Clear empties every square.
func (b *Board) Clear() { *b = Board{} }

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Pieces returns the squares holding pieces of the given color, in row-major order.
func (b *Board) Pieces(c Color) []Square {
	return b.ColorOccupancy(c).Squares()
}

// Validate checks consistency between the piece array and the occupancy bitboards.
func (b *Board) Validate() bool {
	var occ [2]Bitboard
	for sq := Square(0); sq < 64; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			continue
		}
		if p.Type() < Pawn || p.Type() > King {
			return false
		}
		occ[p.Color()] = occ[p.Color()].Set(sq)
	}
	return occ == b.occupancy
}

// String draws the board as eight lines of state-string characters, row 0 first.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq, _ := SquareAt(col, row)
			c := b.pieces[sq].Notation()
			if c == '0' {
				c = '.'
			}
			sb.WriteByte(c)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
