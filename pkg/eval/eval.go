// Package eval contains position evaluation logic and utilities.
package eval

import (
	"context"

	"github.com/kestrelchess/core/pkg/board"
)

// Evaluator is a static position evaluator, returning a side-to-move-relative centipawn score.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) Score
}

// Full is the term-by-term evaluator: material, phase-scaled piece-square tables, pawn
// structure, piece placement terms, central occupancy and an endgame king-driving term.
type Full struct {
	Noise Random
}

func (f Full) Evaluate(ctx context.Context, b *board.Board) Score {
	if b.Result().Outcome == board.Draw {
		return 0
	}

	pos := b.Position()
	phase := GamePhase(pos)

	score := material(pos) +
		pieceSquareScore(pos, phase) +
		pawnStructure(pos, phase) +
		pieceTerms(pos, phase) +
		centralOccupancy(pos, phase) +
		kingToCorner(pos, phase)

	return Unit(b.Turn())*score + f.Noise.Evaluate(ctx, b)
}

// GamePhase returns φ ∈ [0,1]: 0.96 in the starting position (all material and all four castling
// rights), falling to 0 with bare kings; each pawn adds 0.005.
func GamePhase(pos *board.Position) float64 {
	var s float64
	for c := board.ZeroColor; c < board.NumColors; c++ {
		s += float64(pos.Piece(c, board.Queen).PopCount()) * 10
		s += float64(pos.Piece(c, board.Rook).PopCount()) * 5
		s += float64(pos.Piece(c, board.Bishop).PopCount()) * 4
		s += float64(pos.Piece(c, board.Knight).PopCount()) * 3
		s += float64(pos.Piece(c, board.Pawn).PopCount()) * 0.5
	}
	for _, right := range castlingRights {
		if pos.Castling().IsAllowed(right) {
			s += 5
		}
	}
	if s >= 100 {
		return 1
	}
	return s / 100
}

var castlingRights = []board.Castling{
	board.WhiteKingSideCastle, board.WhiteQueenSideCastle,
	board.BlackKingSideCastle, board.BlackQueenSideCastle,
}

func material(pos *board.Position) Score {
	var score Score
	for p := board.Pawn; p <= board.King; p++ {
		score += Score(pos.Piece(board.White, p).PopCount()-pos.Piece(board.Black, p).PopCount()) * NominalValue(p)
	}
	return score
}

// NominalValue is the absolute material value of a piece, in centipawns.
func NominalValue(p board.Piece) Score {
	switch p {
	case board.Pawn:
		return 105
	case board.Knight:
		return 320
	case board.Bishop:
		return 350
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 10000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of a move, used for capture ordering.
func NominalValueGain(m board.Move) Score {
	var gain Score
	if m.Capture != board.NoPiece {
		gain += NominalValue(m.Capture)
	}
	if promo, ok := m.Flag.PromotionPiece(); ok {
		gain += NominalValue(promo) - NominalValue(board.Pawn)
	}
	return gain
}
