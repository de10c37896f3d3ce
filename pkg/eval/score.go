package eval

import "github.com/kestrelchess/core/pkg/board"

// Score is an alias of board.Score: a centipawn score, positive favors White. Kept here so
// evaluator code reads naturally as eval.Score without importing board for every signature.
type Score = board.Score

const (
	Inf      = board.Inf
	NegInf   = board.NegInf
	MinScore = board.MinScore
	MaxScore = board.MaxScore
)

// Unit returns the signed unit for the color: 1 for White and -1 for Black, used to flip a
// White-relative Score into the side-to-move's perspective.
func Unit(c board.Color) Score {
	if c == board.White {
		return 1
	}
	return -1
}
