package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"go.uber.org/atomic"
)

// maxDepth is the iterative deepening cap of spec §4.7.
const maxDepth = 30

// Iterative is a search harness for iterative deepening search (spec §4.7): depth 1 to maxDepth,
// breaking early on a forced mate found within the full-width search, or when the soft time
// limit has elapsed.
type Iterative struct {
	Root search.Search
}

func (i *Iterative) Launch(ctx context.Context, b *board.Board, env Environment, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init:    iox.NewAsyncCloser(),
		quit:    iox.NewAsyncCloser(),
		aborted: atomic.NewBool(false),
	}
	go h.process(ctx, i.Root, b, env, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser
	aborted    *atomic.Bool

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root search.Search, b *board.Board, env Environment, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	sctx := &search.Context{
		TT:      env.TT,
		PV:      env.PV,
		History: search.NewHistory(),
		Eval:    env.Eval,
		Aborted: h.aborted.Load,
	}
	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, b.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	limit := maxDepth
	if v, ok := opt.DepthLimit.V(); ok && v > 0 && int(v) < limit {
		limit = int(v)
	}

	begin := time.Now()
	for depth := 1; depth <= limit && !h.quit.IsClosed(); depth++ {
		start := time.Now()

		nodes, score, moves, err := root.Search(wctx, sctx, b, depth)
		if err != nil {
			if err == search.ErrHalted {
				return // Halt was called.
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", b, depth, err)
			return
		}

		pv := search.PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
		}
		if env.TT != nil {
			pv.Hash = env.TT.Used()
		}

		logw.Debugf(ctx, "Searched %v: %v", b.Position(), pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		if score.IsMate() {
			return // halt: forced mate found within the full-width search. Exact result.
		}
		if useSoft && soft < time.Since(begin) {
			return // halt: exceeded soft time limit. Do not start new search.
		}
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	if h.aborted.CAS(false, true) {
		h.quit.Close()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
