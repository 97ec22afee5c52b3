package chessmg

import (
	"errors"
	"fmt"
	"strings"
)

// StartPlacement is the placement field of the standard initial chess position.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// StateStringLength is the length of every state string: one character per square.
const StateStringLength = 64

var (
	ErrUnknownCharacter = errors.New("invalid placement: unrecognized piece character")
	ErrRankOverflow     = errors.New("invalid placement: too many squares in rank")
	ErrShortRank        = errors.New("invalid placement: rank does not have 8 columns")
	ErrRankCount        = errors.New("invalid placement: incorrect number of ranks")
	ErrSideToMove       = errors.New("invalid FEN: side to move must be 'w' or 'b'")
	ErrStateLength      = errors.New("invalid state string: length must be 64")
	ErrStateCharacter   = errors.New("invalid state string: unrecognized character")
)

// PlacementError reports where strict placement parsing stopped.
type PlacementError struct {
	Pos  int  // byte offset in the input
	Char byte // offending character, 0 when the error is not tied to one
	Err  error
}

func (e *PlacementError) Error() string {
	if e.Char != 0 {
		return fmt.Sprintf("%v (%q at offset %d)", e.Err, e.Char, e.Pos)
	}
	return fmt.Sprintf("%v (at offset %d)", e.Err, e.Pos)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// pieceFromChar converts a placement character to the corresponding Piece.
func pieceFromChar(ch byte) Piece {
	switch ch {
	case 'P':
		return NewPiece(White, Pawn)
	case 'N':
		return NewPiece(White, Knight)
	case 'B':
		return NewPiece(White, Bishop)
	case 'R':
		return NewPiece(White, Rook)
	case 'Q':
		return NewPiece(White, Queen)
	case 'K':
		return NewPiece(White, King)
	case 'p':
		return NewPiece(Black, Pawn)
	case 'n':
		return NewPiece(Black, Knight)
	case 'b':
		return NewPiece(Black, Bishop)
	case 'r':
		return NewPiece(Black, Rook)
	case 'q':
		return NewPiece(Black, Queen)
	case 'k':
		return NewPiece(Black, King)
	default:
		return NoPiece
	}
}

// LoadPlacement decodes a placement string onto the board, filling squares in
// row-major order from index 0. It is a best-effort parse: '/' is ignored,
// digits 1-9 skip that many squares, '0' and any other unrecognized character
// are skipped without advancing, and pieces past the last square are dropped.
// The board is not cleared first.
func (b *Board) LoadPlacement(s string) {
	i := 0
	for k := 0; k < len(s); k++ {
		c := s[k]
		if p := pieceFromChar(c); p != NoPiece {
			if i < 64 {
				b.SetPiece(Square(i), p)
			}
			i++
			continue
		}
		if c >= '1' && c <= '9' {
			i += int(c - '0')
		}
	}
}

// ParsePlacement strictly parses the placement field of a FEN string and
// returns a new Board. Any deviation from eight ranks of eight columns is
// reported as a *PlacementError.
func ParsePlacement(s string) (*Board, error) {
	board := NewBoard()
	row, col := 0, 0
	for k := 0; k < len(s); k++ {
		c := s[k]
		switch {
		case c == '/':
			if col != 8 {
				return nil, &PlacementError{Pos: k, Char: c, Err: ErrShortRank}
			}
			row++
			col = 0
			if row >= 8 {
				return nil, &PlacementError{Pos: k, Char: c, Err: ErrRankCount}
			}
		case c >= '1' && c <= '8':
			col += int(c - '0')
			if col > 8 {
				return nil, &PlacementError{Pos: k, Char: c, Err: ErrRankOverflow}
			}
		default:
			p := pieceFromChar(c)
			if p == NoPiece {
				return nil, &PlacementError{Pos: k, Char: c, Err: ErrUnknownCharacter}
			}
			if col >= 8 {
				return nil, &PlacementError{Pos: k, Char: c, Err: ErrRankOverflow}
			}
			board.SetPiece(Square(row*8+col), p)
			col++
		}
	}
	if row != 7 {
		return nil, &PlacementError{Pos: len(s), Err: ErrRankCount}
	}
	if col != 8 {
		return nil, &PlacementError{Pos: len(s), Err: ErrShortRank}
	}
	return board, nil
}

// ParseFEN parses a FEN string. Only the placement and side-to-move fields are
// interpreted; the side to move defaults to White when absent.
func ParseFEN(fen string) (*Board, Color, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, White, &PlacementError{Err: ErrRankCount}
	}
	board, err := ParsePlacement(fields[0])
	if err != nil {
		return nil, White, err
	}
	turn := White
	if len(fields) > 1 {
		switch fields[1] {
		case "w":
			turn = White
		case "b":
			turn = Black
		default:
			return nil, White, ErrSideToMove
		}
	}
	return board, turn, nil
}

// Placement produces the FEN placement field for the board.
func (b *Board) Placement() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		emptyCount := 0
		for col := 0; col < 8; col++ {
			p := b.pieces[row*8+col]
			if p == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Notation())
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// FEN produces a full FEN string with no castling rights, no en passant square
// and zeroed clocks.
func (b *Board) FEN(turn Color) string {
	side := "w"
	if turn == Black {
		side = "b"
	}
	return b.Placement() + " " + side + " - - 0 1"
}

// StateString encodes the board as exactly 64 characters, one per square in
// row-major order: PNBRQK for White, pnbrqk for Black and '0' for empty.
func (b *Board) StateString() string {
	var sb strings.Builder
	sb.Grow(StateStringLength)
	for sq := 0; sq < 64; sq++ {
		sb.WriteByte(b.pieces[sq].Notation())
	}
	return sb.String()
}

// DecodeStateString is the exact inverse of StateString.
func DecodeStateString(s string) (*Board, error) {
	if len(s) != StateStringLength {
		return nil, fmt.Errorf("%w: got %d", ErrStateLength, len(s))
	}
	board := NewBoard()
	for sq := 0; sq < 64; sq++ {
		c := s[sq]
		if c == '0' {
			continue
		}
		p := pieceFromChar(c)
		if p == NoPiece {
			return nil, fmt.Errorf("%w: %q at square %v", ErrStateCharacter, c, Square(sq))
		}
		board.SetPiece(Square(sq), p)
	}
	return board, nil
}

// ownerFromChar maps a legacy state character to the side it denotes.
func ownerFromChar(c byte) (Color, bool) {
	switch {
	case c == '1':
		return White, true
	case c == '2':
		return Black, true
	case c >= 'A' && c <= 'Z':
		return White, true
	case c >= 'a' && c <= 'z':
		return Black, true
	}
	return White, false
}

// SetStateStringLegacy restores ownership only: every square whose character
// denotes a player ('1' or uppercase for White, '2' or lowercase for Black)
// receives a Pawn of that player, every other square is cleared. Piece types
// are not recovered. Kept for compatibility with older snapshots; use
// DecodeStateString for an exact restore.
func (b *Board) SetStateStringLegacy(s string) {
	for sq := 0; sq < 64; sq++ {
		b.removePiece(Square(sq))
		if sq >= len(s) {
			continue
		}
		if owner, ok := ownerFromChar(s[sq]); ok {
			b.addPiece(Square(sq), NewPiece(owner, Pawn))
		}
	}
}
