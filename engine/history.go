package engine

import (
	"chess-rules/chessmg"
)

// snapshot captures the information needed to restore a position.
type snapshot struct {
	State string
	Turn  chessmg.Color
	Trays [2][]chessmg.Piece
}

// history is a stack of snapshots with a cursor; entries past the cursor are
// redo candidates.
type history struct {
	stack  []snapshot
	cursor int
}

// reset rebuilds the stack so that it only contains s.
func (h *history) reset(s snapshot) {
	h.stack = append(h.stack[:0], s)
	h.cursor = 0
}

// push records s after the cursor, discarding any redo tail.
func (h *history) push(s snapshot) {
	if len(h.stack) == 0 {
		h.reset(s)
		return
	}
	h.stack = append(h.stack[:h.cursor+1], s)
	h.cursor++
}

func (h *history) undo() (snapshot, bool) {
	if h.cursor == 0 {
		return snapshot{}, false
	}
	h.cursor--
	return h.stack[h.cursor], true
}

func (h *history) redo() (snapshot, bool) {
	if h.cursor+1 >= len(h.stack) {
		return snapshot{}, false
	}
	h.cursor++
	return h.stack[h.cursor], true
}

func (h *history) base() (snapshot, bool) {
	if len(h.stack) == 0 {
		return snapshot{}, false
	}
	return h.stack[0], true
}

// ply returns the number of moves between the base position and the cursor.
func (h *history) ply() int { return h.cursor }

func (g *Game) takeSnapshot() snapshot {
	s := snapshot{State: g.board.StateString(), Turn: g.turn}
	for i, t := range g.trays {
		s.Trays[i] = t.Pieces()
	}
	return s
}

func (g *Game) applySnapshot(s snapshot) error {
	b, err := chessmg.DecodeStateString(s.State)
	if err != nil {
		return err
	}
	g.board = b
	g.turn = s.Turn
	for i, t := range g.trays {
		t.pieces = append(t.pieces[:0], s.Trays[i]...)
	}
	return nil
}
