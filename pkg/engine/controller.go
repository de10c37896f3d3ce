package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/board/fen"
	"github.com/kestrelchess/core/pkg/book"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/kestrelchess/core/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Controller sits on top of an Engine and arbitrates book-vs-search and the game clock: it
// follows book as long as the current position has a recorded move, and falls back to the
// engine's search for the rest of the game once a book lookup misses.
type Controller struct {
	engine *Engine
	book   book.Source
	rnd    *rand.Rand

	mu           sync.Mutex
	computerSide board.Color
	tc           searchctl.TimeControl
	haveTC       bool
	remaining    map[board.Color]time.Duration
	usingBook    bool
}

// NewController wires an Engine to an opening book (may be nil) and a random source used for
// book move selection.
func NewController(engine *Engine, src book.Source, seed int64) *Controller {
	return &Controller{
		engine:       engine,
		book:         src,
		rnd:          rand.New(rand.NewSource(seed)),
		computerSide: board.Black,
		remaining:    map[board.Color]time.Duration{},
		usingBook:    true,
	}
}

// NewGame resets to the standard starting position and re-arms the book.
func (c *Controller) NewGame(ctx context.Context) error {
	return c.LoadFEN(ctx, fen.Initial)
}

// LoadFEN resets to the given position and re-arms the book.
func (c *Controller) LoadFEN(ctx context.Context, position string) error {
	c.mu.Lock()
	c.usingBook = true
	c.mu.Unlock()

	return c.engine.Reset(ctx, position)
}

// ProcessMove applies a move, usually the opponent's.
func (c *Controller) ProcessMove(ctx context.Context, move string) error {
	return c.engine.Move(ctx, move)
}

// Undo takes back the last move played.
func (c *Controller) Undo(ctx context.Context) error {
	return c.engine.TakeBack(ctx)
}

// SetComputerSide sets which color the engine plays.
func (c *Controller) SetComputerSide(side board.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.computerSide = side
}

// SetTimeControl sets the game clock. Subsequent Update calls decrement it.
func (c *Controller) SetTimeControl(tc searchctl.TimeControl) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tc = tc
	c.haveTC = true
	c.remaining[board.White] = tc.White
	c.remaining[board.Black] = tc.Black
}

// Update advances the game clock by elapsed, the caller's tick interval (spec: a ~60Hz caller).
// It only decrements the side to move's remaining time; it does not itself adjudicate a time
// forfeit (the caller observes Remaining and calls Halt/Adjudicate as it sees fit).
func (c *Controller) Update(elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.haveTC {
		return
	}

	turn := c.engine.Board().Turn()
	c.remaining[turn] -= elapsed
}

// Remaining returns the clock remaining for the given color.
func (c *Controller) Remaining(side board.Color) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.remaining[side]
}

// BestMove selects the computer's move for the current position: a book move if one is still
// available (and the book has not yet missed this game), otherwise a search. Per spec, once the
// book misses, it is never consulted again for the rest of the game.
//
// On a book hit, the returned channel carries a single synthetic zero-node PV and is then
// closed; the caller applies the move the same way as for a searched PV. On a miss, the search
// proceeds exactly as Engine.Analyze's.
func (c *Controller) BestMove(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	c.mu.Lock()
	usingBook := c.usingBook
	side := c.computerSide
	c.mu.Unlock()

	if usingBook && c.book != nil {
		b := c.engine.Board()
		if b.Turn() == side {
			if m, ok := c.book.Find(b.Hash(), book.Weighted, c.rnd); ok {
				out := make(chan search.PV, 1)
				out <- search.PV{Moves: []board.Move{m}}
				close(out)
				logw.Infof(ctx, "Book move: %v", m)
				return out, nil
			}

			c.mu.Lock()
			c.usingBook = false
			c.mu.Unlock()
			logw.Infof(ctx, "Book exhausted, searching from now on")
		}
	}

	if _, ok := opt.TimeControl.V(); !ok && c.haveTC {
		opt.TimeControl = lang.Some(c.tc)
	}
	return c.engine.Analyze(ctx, opt)
}
