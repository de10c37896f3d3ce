package search

import (
	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/eval"
)

// orderingFn scores a candidate move for ordering: victim-minus-attacker for captures and
// promotions, plus the history-table weight for quiet moves, plus a large bonus for the PV hint
// so it is always searched first, per spec's "10*victim - attacker" approximation.
func orderingFn(side board.Color, hist *History, pvMove board.Move, havePV bool) board.MovePriorityFn {
	return func(m board.Move) board.MovePriority {
		if havePV && pvMove.Equals(m) {
			return board.MovePriority(1 << 14)
		}

		var score int
		if m.Capture != board.NoPiece {
			score += 10*int(eval.NominalValue(m.Capture)) - int(eval.NominalValue(m.Piece))
		}
		if promo, ok := m.Flag.PromotionPiece(); ok {
			score += int(eval.NominalValue(promo))
		}
		if score == 0 {
			score = hist.Get(side, m.From, m.To)
		}
		return board.MovePriority(score)
	}
}
