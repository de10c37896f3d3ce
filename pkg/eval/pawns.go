package eval

import "github.com/kestrelchess/core/pkg/board"

// pawnStructure sums the doubled/passed/isolated/connected pawn terms of the term table.
func pawnStructure(pos *board.Position, phase float64) Score {
	var score Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		unit := Score(1)
		if c == board.Black {
			unit = -1
		}

		own := pos.Piece(c, board.Pawn)
		enemy := pos.Piece(c.Opponent(), board.Pawn)

		score += unit * Score(float64(-30*countDoubledFiles(own)))
		score += unit * Score(float64(110*countPassed(c, own, enemy))*(1-phase))
		score += unit * Score(float64(-35*countIsolated(own))*phase)
		score += unit * Score(float64(6*countConnected(own))*phase)
	}
	return score
}

func countDoubledFiles(pawns board.Bitboard) int {
	n := 0
	for f := board.ZeroFile; f < board.NumFiles; f++ {
		if (pawns & board.BitFile(f)).PopCount() >= 2 {
			n++
		}
	}
	return n
}

func countIsolated(pawns board.Bitboard) int {
	n := 0
	for _, sq := range pawns.ToSquares() {
		if pawns&adjacentFiles(sq.File()) == 0 {
			n++
		}
	}
	return n
}

func countConnected(pawns board.Bitboard) int {
	n := 0
	for _, sq := range pawns.ToSquares() {
		f := sq.File()
		if f < board.NumFiles-1 && pawns.IsSet(board.NewSquare(f+1, sq.Rank())) {
			n++
		}
	}
	return n
}

// countPassed counts, and adds an extra count for those on the 7th relative rank (so that the
// +110-per-7th-rank-pawn bonus in the term table falls out of the same multiplier).
func countPassed(c board.Color, own, enemy board.Bitboard) int {
	n := 0
	for _, sq := range own.ToSquares() {
		if isPassed(c, sq, enemy) {
			n++
			if isSeventhRank(c, sq) {
				n++
			}
		}
	}
	return n
}

func isPassed(c board.Color, sq board.Square, enemy board.Bitboard) bool {
	front := enemy & (board.BitFile(sq.File()) | adjacentFiles(sq.File()))
	for _, esq := range front.ToSquares() {
		if isAhead(c, sq, esq) {
			return false
		}
	}
	return true
}

func isAhead(c board.Color, sq, other board.Square) bool {
	if c == board.White {
		return other.Rank() > sq.Rank()
	}
	return other.Rank() < sq.Rank()
}

func isSeventhRank(c board.Color, sq board.Square) bool {
	if c == board.White {
		return sq.Rank() == board.Rank7
	}
	return sq.Rank() == board.Rank2
}

func adjacentFiles(f board.File) board.Bitboard {
	var bb board.Bitboard
	if f > board.ZeroFile {
		bb |= board.BitFile(f - 1)
	}
	if f < board.NumFiles-1 {
		bb |= board.BitFile(f + 1)
	}
	return bb
}
