package search

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
)

// Negamax implements the negamax/alpha-beta search of spec §4.7: at depth 0 it consults the
// transposition cache and falls back to quiescence; otherwise it tries null-move pruning
// (depth >= 5, side to move not in check), orders moves by PV hint / capture value / history,
// and recurses. Beta cutoffs are fail-soft: the returned score is the one that caused the
// cutoff, not a ±∞ sentinel (spec §9's resolution of that Open Question).
type Negamax struct{}

func (Negamax) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, board.Score, []board.Move, error) {
	r := &run{sctx: sctx, b: b}
	score, pv := r.negamax(ctx, depth, board.NegInf, board.Inf)
	if r.aborted(ctx) {
		return r.nodes, 0, nil, ErrHalted
	}
	return r.nodes, score, pv, nil
}

type run struct {
	sctx  *Context
	b     *board.Board
	nodes uint64
}

func (r *run) aborted(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		return true
	}
	return r.sctx.Aborted != nil && r.sctx.Aborted()
}

func (r *run) negamax(ctx context.Context, depth int, alpha, beta board.Score) (board.Score, []board.Move) {
	if r.aborted(ctx) {
		return 0, nil
	}

	if depth == 0 {
		if score, ok := r.sctx.TT.Read(r.b.Hash()); ok {
			return score, nil
		}
		score, qnodes := quiescence(ctx, r, alpha, beta)
		r.nodes += qnodes
		r.sctx.TT.Write(r.b.Hash(), score)
		return score, nil
	}

	turn := r.b.Turn()
	moves := board.LegalMoves(r.b.Position(), turn)
	if len(moves) == 0 || r.b.Result().IsTerminal() {
		return terminalScore(r.b, moves, depth), nil
	}

	r.nodes++

	if depth >= 5 && !r.b.Position().IsChecked(turn) {
		r.b.PushNull()
		score, _ := r.negamax(ctx, depth-1-2, -beta, -beta+1)
		r.b.PopNull()
		if -score >= beta {
			return beta, nil
		}
	}

	pvMove, havePV := r.sctx.PV.Read(r.b.Hash())
	list := board.NewMoveList(moves, orderingFn(turn, r.sctx.History, pvMove, havePV))

	var pv []board.Move
	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		r.b.PushMove(m)
		score, rem := r.negamax(ctx, depth-1, -beta, -alpha)
		score = -score
		r.b.PopMove()

		if score > alpha {
			alpha = score
			pv = append([]board.Move{m}, rem...)
			r.sctx.PV.Write(r.b.Hash(), m)
		}
		if alpha >= beta {
			if m.Capture == board.NoPiece {
				r.sctx.History.Record(turn, m.From, m.To, depth)
			}
			return alpha, pv
		}
	}

	return alpha, pv
}

// terminalScore evaluates a position with no legal moves, or one already flagged terminal by the
// board's draw rules (repetition, insufficient material): checkmate for the side to move, biased
// by the remaining depth so that faster mates score higher up the tree; stalemate/other draws
// score zero.
func terminalScore(b *board.Board, moves []board.Move, depth int) board.Score {
	if len(moves) == 0 {
		if b.Position().IsChecked(b.Turn()) {
			return board.NegInf - board.Score(depth)
		}
		return 0
	}
	return 0 // repetition / insufficient material / other adjudicated draw.
}
