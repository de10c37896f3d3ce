package search

import "github.com/kestrelchess/core/pkg/board"

// History is the history heuristic table: history[side][from][to] holds the square of the
// greatest depth at which a quiet move has produced a beta cutoff. Reset at the start of
// each root search, per spec.
type History struct {
	table [board.NumColors][board.NumSquares][board.NumSquares]int
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Get(side board.Color, from, to board.Square) int {
	return h.table[side][from][to]
}

// Record updates the cutoff weight for a move, keeping the larger of the existing and new value.
func (h *History) Record(side board.Color, from, to board.Square, depth int) {
	if v := depth * depth; v > h.table[side][from][to] {
		h.table[side][from][to] = v
	}
}
