package board

// LegalMoves generates all legal moves for the side to move, per spec §4.4: king, pawn, knight
// and slider rules applied against the masks bundle of §4.3.
func LegalMoves(pos *Position, turn Color) []Move {
	return generateMoves(pos, turn, true)
}

// TacticalMoves generates the quiescence-search subset: captures (including capturing
// promotions) and en passant only. Pawn pushes (including promoting pushes), castling and quiet
// king moves are skipped (spec §4.4's generate_moves(quiets=false)).
func TacticalMoves(pos *Position, turn Color) []Move {
	return generateMoves(pos, turn, false)
}

var sliders = []struct {
	piece  Piece
	attack func(RotatedBitboard, Square) Bitboard
}{
	{Bishop, BishopAttackboard},
	{Rook, RookAttackboard},
	{Queen, QueenAttackboard},
}

func generateMoves(pos *Position, turn Color, quiets bool) []Move {
	masks := ComputeMasks(pos, turn)

	enemy := turn.Opponent()
	own := pos.Color(turn)
	foe := pos.Color(enemy)

	var moves []Move

	kingSq := pos.Piece(turn, King).LastPopSquare()
	kingTargets := KingAttackboard(kingSq) &^ own &^ masks.ThreatMap
	if !quiets {
		kingTargets &= foe
	}
	for bb := kingTargets; bb != 0; {
		to := bb.LastPopSquare()
		bb ^= BitMask(to)
		moves = append(moves, makeMove(pos, turn, enemy, kingSq, to, King, NoFlag))
	}

	if quiets && !masks.InCheck() {
		moves = append(moves, generateCastling(pos, turn, masks)...)
	}

	if masks.CheckMask == EmptyBitboard {
		return moves // double check: only king moves are legal.
	}

	for bb := pos.Piece(turn, Knight); bb != 0; {
		from := bb.LastPopSquare()
		bb ^= BitMask(from)

		if masks.IsPinnedHV(from) || masks.IsPinnedD12(from) {
			continue // a pinned knight has zero legal moves.
		}
		targets := KnightAttackboard(from) &^ own & masks.CheckMask
		if !quiets {
			targets &= foe
		}
		for t := targets; t != 0; {
			to := t.LastPopSquare()
			t ^= BitMask(to)
			moves = append(moves, makeMove(pos, turn, enemy, from, to, Knight, NoFlag))
		}
	}

	for _, s := range sliders {
		for bb := pos.Piece(turn, s.piece); bb != 0; {
			from := bb.LastPopSquare()
			bb ^= BitMask(from)

			pinMask := ^Bitboard(0)
			if masks.IsPinnedHV(from) {
				pinMask = masks.PinHV
			} else if masks.IsPinnedD12(from) {
				pinMask = masks.PinD12
			}

			targets := s.attack(pos.rotated, from) &^ own & masks.CheckMask & pinMask
			if !quiets {
				targets &= foe
			}
			for t := targets; t != 0; {
				to := t.LastPopSquare()
				t ^= BitMask(to)
				moves = append(moves, makeMove(pos, turn, enemy, from, to, s.piece, NoFlag))
			}
		}
	}

	moves = append(moves, generatePawnMoves(pos, turn, enemy, masks, quiets)...)

	return moves
}

func generateCastling(pos *Position, turn Color, masks Masks) []Move {
	occ := pos.Occupied()

	var moves []Move
	if turn == White {
		if pos.Castling().IsAllowed(WhiteKingSideCastle) &&
			occ&(BitMask(F1)|BitMask(G1)) == 0 &&
			!masks.ThreatMap.IsSet(E1) && !masks.ThreatMap.IsSet(F1) && !masks.ThreatMap.IsSet(G1) {
			moves = append(moves, Move{From: E1, To: G1, Flag: CastlingKingside, Piece: King})
		}
		if pos.Castling().IsAllowed(WhiteQueenSideCastle) &&
			occ&(BitMask(D1)|BitMask(C1)|BitMask(B1)) == 0 &&
			!masks.ThreatMap.IsSet(E1) && !masks.ThreatMap.IsSet(D1) && !masks.ThreatMap.IsSet(C1) {
			moves = append(moves, Move{From: E1, To: C1, Flag: CastlingQueenside, Piece: King})
		}
		return moves
	}

	if pos.Castling().IsAllowed(BlackKingSideCastle) &&
		occ&(BitMask(F8)|BitMask(G8)) == 0 &&
		!masks.ThreatMap.IsSet(E8) && !masks.ThreatMap.IsSet(F8) && !masks.ThreatMap.IsSet(G8) {
		moves = append(moves, Move{From: E8, To: G8, Flag: CastlingKingside, Piece: King})
	}
	if pos.Castling().IsAllowed(BlackQueenSideCastle) &&
		occ&(BitMask(D8)|BitMask(C8)|BitMask(B8)) == 0 &&
		!masks.ThreatMap.IsSet(E8) && !masks.ThreatMap.IsSet(D8) && !masks.ThreatMap.IsSet(C8) {
		moves = append(moves, Move{From: E8, To: C8, Flag: CastlingQueenside, Piece: King})
	}
	return moves
}

func generatePawnMoves(pos *Position, turn, enemy Color, masks Masks, quiets bool) []Move {
	var moves []Move

	foe := pos.Color(enemy)
	occ := pos.Occupied()
	promoRank := PawnPromotionRank(turn)

	for bb := pos.Piece(turn, Pawn); bb != 0; {
		from := bb.LastPopSquare()
		bb ^= BitMask(from)

		pinnedHV := masks.IsPinnedHV(from)
		pinnedD12 := masks.IsPinnedD12(from)

		// Captures: a pawn pinned along a rank/file can never capture diagonally.
		if !pinnedHV {
			captures := PawnCaptureboard(turn, BitMask(from)) & foe & masks.CheckMask
			if pinnedD12 {
				captures &= masks.PinD12
			}
			for t := captures; t != 0; {
				to := t.LastPopSquare()
				t ^= BitMask(to)
				moves = append(moves, pawnMove(pos, turn, enemy, from, to, NoFlag, promoRank))
			}
		}

		// En passant: legality hinges on the discovered-check simulation, not the pin masks.
		if ep, ok := pos.EnPassant(); ok {
			if PawnCaptureboard(turn, BitMask(from))&BitMask(ep) != 0 && legalEnPassant(pos, turn, from, ep) {
				moves = append(moves, Move{From: from, To: ep, Flag: EnPassantFlag, Piece: Pawn, Capture: Pawn})
			}
		}

		if !quiets || pinnedD12 {
			continue // pushes are quiet moves; a pawn pinned diagonally cannot push.
		}

		pushTo := PawnPushSquare(turn, from)
		if occ.IsSet(pushTo) {
			continue
		}
		if (!pinnedHV || masks.PinHV.IsSet(pushTo)) && masks.CheckMask.IsSet(pushTo) {
			moves = append(moves, pawnMove(pos, turn, enemy, from, pushTo, NoFlag, promoRank))
		}

		if BitMask(from)&PawnHomeRank(turn) != 0 {
			jumpTo := PawnPushSquare(turn, pushTo)
			if !occ.IsSet(jumpTo) && (!pinnedHV || masks.PinHV.IsSet(jumpTo)) && masks.CheckMask.IsSet(jumpTo) {
				moves = append(moves, Move{From: from, To: jumpTo, Flag: DoublePush, Piece: Pawn})
			}
		}
	}

	return moves
}

// pawnMove builds a pawn push or capture move, emitting the queen-only promotion flag when the
// destination is on the back rank (spec §4.4/§9: under-promotions are not generated).
func pawnMove(pos *Position, turn, enemy Color, from, to Square, flag MoveFlag, promoRank Bitboard) Move {
	capture := NoPiece
	if pos.Color(enemy).IsSet(to) {
		capture = pieceAt(pos, enemy, to)
	}
	if BitMask(to)&promoRank != 0 {
		flag = PromotionQueen
	}
	return Move{From: from, To: to, Flag: flag, Piece: Pawn, Capture: capture}
}

func makeMove(pos *Position, turn, enemy Color, from, to Square, piece Piece, flag MoveFlag) Move {
	capture := NoPiece
	if pos.Color(enemy).IsSet(to) {
		capture = pieceAt(pos, enemy, to)
	}
	return Move{From: from, To: to, Flag: flag, Piece: piece, Capture: capture}
}

func pieceAt(pos *Position, c Color, sq Square) Piece {
	for p := Pawn; p <= King; p++ {
		if pos.pieces[c][p].IsSet(sq) {
			return p
		}
	}
	return NoPiece
}

// legalEnPassant verifies that capturing en passant does not expose the king to a discovered
// attack, per spec §4.4: temporarily remove both pawns, place the mover on the ep square, and
// recompute whether the king is attacked.
func legalEnPassant(pos *Position, turn Color, from, ep Square) bool {
	capturedSq := enPassantCaptureSquare(turn, ep)

	tmp := *pos
	tmp.xor(from, turn, Pawn)
	tmp.xor(capturedSq, turn.Opponent(), Pawn)
	tmp.xor(ep, turn, Pawn)

	return !tmp.IsChecked(turn)
}
