package eval

import "github.com/kestrelchess/core/pkg/board"

// kingToCorner drives the stronger side's king toward the opponent's king and the opponent's
// king toward the edge/corner, active only in the endgame and only when material favors a side.
func kingToCorner(pos *board.Position, phase float64) Score {
	balance := material(pos)
	if balance == 0 {
		return 0
	}

	strong, weak := board.White, board.Black
	if balance < 0 {
		strong, weak = board.Black, board.White
	}

	weakSq := pos.Piece(weak, board.King).LastPopSquare()
	strongSq := pos.Piece(strong, board.King).LastPopSquare()

	cmd := centerManhattanDistance(weakSq)
	dist := squareDistance(weakSq, strongSq)

	score := Score(float64(cmd*10+(14-dist)*4) * (1 - phase))
	if strong == board.Black {
		score = -score
	}
	return score
}

// centerManhattanDistance is the weak king's distance from the board center; higher means
// closer to the edge/corner.
func centerManhattanDistance(sq board.Square) int {
	f, r := int(sq.File()), int(sq.Rank())
	df, dr := fileDistanceFromCenter(f), fileDistanceFromCenter(r)
	return df + dr
}

func fileDistanceFromCenter(v int) int {
	if v < 4 {
		return 3 - v
	}
	return v - 4
}

func squareDistance(a, b board.Square) int {
	fa, ra := int(a.File()), int(a.Rank())
	fb, rb := int(b.File()), int(b.Rank())
	return abs(fa-fb) + abs(ra-rb)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
