// Package search contains the depth-bounded negamax/quiescence search and its supporting
// transposition, history and move-ordering structures. Iterative deepening and time-control
// live one layer up, in searchctl.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kestrelchess/core/pkg/board"
)

// ErrHalted indicates the search was halted (the controller's abort flag was set).
var ErrHalted = errors.New("search halted")

// PV is the principal variation produced by one iteration of iterative deepening.
type PV struct {
	Depth int
	Moves []board.Move
	Score board.Score
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table utilization [0;1]
}

func (p PV) String() string {
	pv := board.FormatMoves(p.Moves, func(m board.Move) string { return m.String() })
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v", p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), pv)
}

// Context bundles the state shared by every node of one depth-bounded search: the transposition
// and PV-move caches (which persist across a whole game, per spec), the history table (reset at
// the start of each root search) and the evaluator used at the leaves.
type Context struct {
	TT      TranspositionTable
	PV      PVTable
	History *History
	Eval    Evaluator
	Aborted func() bool
}

// Evaluator is a static position evaluator, returning a side-to-move-relative centipawn score.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) board.Score
}

// Search runs a single depth-bounded negamax search from the current position of b (an
// exclusively-owned, forked board) and returns the node count, the side-to-move-relative
// score, and the principal variation.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, board.Score, []board.Move, error)
}
