package search

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/eval"
)

// deltaMargin is the extra cushion (roughly a pawn) added on top of the captured piece's value
// before a quiescence move is pruned as hopeless, per spec §4.7 step 4.
const deltaMargin = board.Score(105)

// quiescence runs the capture-only (including en passant and capturing promotions) search of
// spec §4.7, rooted at r.b's current
// position. It shares r.b with the caller (pushing and popping moves, never forking), and
// returns the side-to-move-relative score plus the node count it consumed.
func quiescence(ctx context.Context, r *run, alpha, beta board.Score) (board.Score, uint64) {
	var nodes uint64
	if r.aborted(ctx) {
		return 0, nodes
	}

	nodes++

	static := r.sctx.Eval.Evaluate(ctx, r.b)
	if static > alpha {
		alpha = static
	}
	if alpha >= beta {
		return alpha, nodes
	}

	turn := r.b.Turn()
	moves := board.TacticalMoves(r.b.Position(), turn)

	pvMove, havePV := r.sctx.PV.Read(r.b.Hash())
	list := board.NewMoveList(moves, orderingFn(turn, r.sctx.History, pvMove, havePV))

	for {
		m, ok := list.Next()
		if !ok {
			break
		}

		if static+victimValue(m)+deltaMargin <= alpha {
			continue // delta pruning: even winning the piece can't raise alpha.
		}

		r.b.PushMove(m)
		score, sub := quiescence(ctx, r, -beta, -alpha)
		score = -score
		nodes += sub
		r.b.PopMove()

		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	return alpha, nodes
}

func victimValue(m board.Move) board.Score {
	v := eval.NominalValue(m.Capture)
	if promo, ok := m.Flag.PromotionPiece(); ok {
		v += eval.NominalValue(promo) - eval.NominalValue(board.Pawn)
	}
	return v
}
