package eval

import "github.com/kestrelchess/core/pkg/board"

var wideCenterSquares = func() board.Bitboard {
	var bb board.Bitboard
	for f := board.FileF; f <= board.FileC; f++ {
		for r := board.Rank3; r <= board.Rank6; r++ {
			bb |= board.BitMask(board.NewSquare(f, r))
		}
	}
	return bb
}()

// pieceTerms sums pawn-defended pieces, attacked squares, knight outpost, knights-and-few-pawns,
// bishop pair and rook-open-file.
func pieceTerms(pos *board.Position, phase float64) Score {
	var score Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		unit := Score(1)
		if c == board.Black {
			unit = -1
		}
		enemy := c.Opponent()

		pawnDefended := board.PawnCaptureboard(c, pos.Piece(c, board.Pawn)) & pos.Color(c) &^ pos.Piece(c, board.Pawn)
		score += unit * Score(float64(11*pawnDefended.PopCount())*phase)

		attacked := attackedSquares(pos, c)
		attackedCenter := (attacked & wideCenterSquares).PopCount()
		attackedOther := attacked.PopCount() - attackedCenter
		score += unit * Score(float64(2*attackedOther+3*attackedCenter)*phase)

		knights := pos.Piece(c, board.Knight)
		pawns := pos.Piece(c, board.Pawn)
		knightCount := knights.PopCount()
		pawnCount := pawns.PopCount()
		for _, sq := range knights.ToSquares() {
			if isOutpost(pos, c, enemy, sq) {
				score += unit * 40
			}
			if board.PawnCaptureboard(c, pos.Piece(c, board.Pawn)).IsSet(sq) {
				score += unit * 20
			}
			if sq.Rank() == homeRank(c) {
				score += unit * -25
			}
		}
		if penalty := 14 - pawnCount*knightCount; penalty > 0 {
			score += unit * Score(-penalty)
		}

		bishops := pos.Piece(c, board.Bishop)
		if bishops.PopCount() >= 2 {
			score += unit * 70
		}
		for _, sq := range bishops.ToSquares() {
			if sq.Rank() == homeRank(c) {
				score += unit * -25
			}
		}

		rooks := pos.Piece(c, board.Rook)
		nonRook := pos.Occupied() &^ pos.Piece(board.White, board.Rook) &^ pos.Piece(board.Black, board.Rook)
		for _, sq := range rooks.ToSquares() {
			if nonRook&board.BitFile(sq.File()) == 0 {
				score += unit * 39
			}
		}
		if rooks.PopCount() >= 2 {
			if sharesLine(rooks) {
				score += unit * 50
			}
		}
	}
	return score
}

func sharesLine(rooks board.Bitboard) bool {
	for f := board.ZeroFile; f < board.NumFiles; f++ {
		if (rooks & board.BitFile(f)).PopCount() >= 2 {
			return true
		}
	}
	for r := board.Rank1; r <= board.Rank8; r++ {
		if (rooks & board.BitRank(r)).PopCount() >= 2 {
			return true
		}
	}
	return false
}

func homeRank(c board.Color) board.Rank {
	if c == board.White {
		return board.Rank1
	}
	return board.Rank8
}

// isOutpost reports whether a knight has no enemy pawn that could ever attack its square, i.e.
// no enemy pawn on an adjacent file that is not already past it.
func isOutpost(pos *board.Position, c, enemy board.Color, sq board.Square) bool {
	enemyPawns := pos.Piece(enemy, board.Pawn) & adjacentFiles(sq.File())
	for _, esq := range enemyPawns.ToSquares() {
		if isAhead(c, sq, esq) {
			return false
		}
	}
	return true
}

// attackedSquares returns every square attacked by at least one of the given side's pieces.
func attackedSquares(pos *board.Position, c board.Color) board.Bitboard {
	var bb board.Bitboard
	bb |= board.PawnCaptureboard(c, pos.Piece(c, board.Pawn))
	for _, sq := range pos.Piece(c, board.Knight).ToSquares() {
		bb |= board.KnightAttackboard(sq)
	}
	for _, sq := range pos.Piece(c, board.Bishop).ToSquares() {
		bb |= board.BishopAttackboard(pos.Rotated(), sq)
	}
	for _, sq := range pos.Piece(c, board.Rook).ToSquares() {
		bb |= board.RookAttackboard(pos.Rotated(), sq)
	}
	for _, sq := range pos.Piece(c, board.Queen).ToSquares() {
		bb |= board.QueenAttackboard(pos.Rotated(), sq)
	}
	for _, sq := range pos.Piece(c, board.King).ToSquares() {
		bb |= board.KingAttackboard(sq)
	}
	return bb
}

// centralOccupancy rewards friendly pieces (not pawns) occupying the central 4x4.
func centralOccupancy(pos *board.Position, phase float64) Score {
	var score Score
	for c := board.ZeroColor; c < board.NumColors; c++ {
		unit := Score(1)
		if c == board.Black {
			unit = -1
		}
		n := (pos.Color(c) &^ pos.Piece(c, board.Pawn) & wideCenterSquares).PopCount()
		score += unit * Score(float64(8*n)*phase)
	}
	return score
}
