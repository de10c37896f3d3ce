package board

import "math/rand"

// ZobristHash is a position hash based on piece-squares, castling rights, en-passant file and
// side to move. It is intended for transposition-table keying and 3-fold repetition detection.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

// ZobristTable is a pseudo-randomized table for computing a position hash. Constructed once at
// process start (or engine reset) and treated as immutable shared data thereafter.
type ZobristTable struct {
	pieces    [NumColors][NumPieces][NumSquares]ZobristHash
	castling  [NumCastling]ZobristHash
	enpassant [NumSquares]ZobristHash
	turn      [NumColors]ZobristHash
}

func NewZobristTable(seed int64) *ZobristTable {
	ret := &ZobristTable{}

	r := rand.New(rand.NewSource(seed))

	for c := ZeroColor; c < NumColors; c++ {
		for p := Pawn; p <= King; p++ {
			for sq := ZeroSquare; sq < NumSquares; sq++ {
				ret.pieces[c][p][sq] = ZobristHash(r.Uint64())
			}
		}
		ret.turn[c] = ZobristHash(r.Uint64())
	}
	for i := ZeroCastling; i < NumCastling; i++ {
		ret.castling[i] = ZobristHash(r.Uint64())
	}
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if sq.Rank() == Rank3 || sq.Rank() == Rank6 {
			ret.enpassant[sq] = ZobristHash(r.Uint64())
		}
	}
	return ret
}

// TurnHash returns the side-to-move component of the hash, for null-move pruning (spec §4.7:
// "implementations MUST still XOR side-to-move into Zobrist and push/pop a frame").
func (z *ZobristTable) TurnHash(c Color) ZobristHash {
	return z.turn[c]
}

// Hash computes the zobrist hash for the given position and side to move, from scratch.
func (z *ZobristTable) Hash(pos *Position, turn Color) ZobristHash {
	var hash ZobristHash

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if c, p, ok := pos.Square(sq); ok {
			hash ^= z.pieces[c][p][sq]
		}
	}
	hash ^= z.castling[pos.Castling()]
	if ep, ok := pos.EnPassant(); ok {
		hash ^= z.enpassant[ep]
	}
	hash ^= z.turn[turn]

	return hash
}

// Move computes the hash of the position after turn plays the (legal) move m, incrementally.
// Cheaper than recomputing Hash on the successor position directly. pos must be the position
// BEFORE the move is applied.
func (z *ZobristTable) Move(h ZobristHash, pos *Position, turn Color, m Move) ZobristHash {
	hash := h

	// (1) Undo the existing meta-status (castling rights, en-passant file, side to move).

	hash ^= z.castling[pos.Castling()]
	if ep, ok := pos.EnPassant(); ok {
		hash ^= z.enpassant[ep]
	}
	hash ^= z.turn[turn]

	// (2) Update the hash for the moved/captured/promoted pieces.

	hash ^= z.pieces[turn][m.Piece][m.From]

	switch m.Flag {
	case EnPassantFlag:
		hash ^= z.pieces[turn][Pawn][m.To]
		hash ^= z.pieces[turn.Opponent()][Pawn][enPassantCaptureSquare(turn, m.To)]

	case CastlingKingside, CastlingQueenside:
		hash ^= z.pieces[turn][King][m.To]
		from, to := CastlingRookSquares(turn, m.Flag)
		hash ^= z.pieces[turn][Rook][from]
		hash ^= z.pieces[turn][Rook][to]

	default:
		if m.Capture != NoPiece {
			hash ^= z.pieces[turn.Opponent()][m.Capture][m.To]
		}
		if promo, ok := m.Flag.PromotionPiece(); ok {
			hash ^= z.pieces[turn][promo][m.To]
		} else {
			hash ^= z.pieces[turn][m.Piece][m.To]
		}
	}

	// (3) Apply the new meta-status.

	hash ^= z.castling[updateCastlingRights(pos.Castling(), m)]
	if m.Flag == DoublePush {
		hash ^= z.enpassant[Square((int(m.From)+int(m.To))/2)]
	}
	hash ^= z.turn[turn.Opponent()]

	return hash
}
