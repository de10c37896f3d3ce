package board

import (
	"fmt"
	"strings"
)

// MoveFlag disambiguates the special-case moves that make/unmake must treat differently from
// a plain piece relocation. It is also the third field of the 16-bit wire encoding.
type MoveFlag uint8

const (
	NoFlag MoveFlag = iota
	PromotionRook
	PromotionKnight
	PromotionBishop
	PromotionQueen
	CastlingKingside
	CastlingQueenside
	EnPassantFlag
	DoublePush
)

const numMoveFlags = DoublePush + 1

func (f MoveFlag) PromotionPiece() (Piece, bool) {
	switch f {
	case PromotionRook:
		return Rook, true
	case PromotionKnight:
		return Knight, true
	case PromotionBishop:
		return Bishop, true
	case PromotionQueen:
		return Queen, true
	default:
		return NoPiece, false
	}
}

func promotionFlag(p Piece) (MoveFlag, bool) {
	switch p {
	case Rook:
		return PromotionRook, true
	case Knight:
		return PromotionKnight, true
	case Bishop:
		return PromotionBishop, true
	case Queen:
		return PromotionQueen, true
	default:
		return NoFlag, false
	}
}

// Move represents a not-necessarily-legal move along with contextual metadata used for move
// ordering and make/unmake. Only From, To and Flag are part of the 16-bit wire encoding; Piece,
// Capture and Score are populated by the generator as a convenience for search and evaluation
// and are not required to round-trip through Encode/Decode.
type Move struct {
	From, To Square
	Flag     MoveFlag

	Piece   Piece // the moving piece.
	Capture Piece // the captured piece, if any (NoPiece otherwise).
	Score   Score // move-ordering score, not a position evaluation.
}

// IsNull reports whether this is the null move (used by null-move pruning): flag None,
// from=0, to=0.
func (m Move) IsNull() bool {
	return m.Flag == NoFlag && m.From == ZeroSquare && m.To == ZeroSquare
}

// NullMove returns the sentinel null move.
func NullMove() Move {
	return Move{}
}

// Encode packs the move into the 16-bit wire format: from | (to << 6) | (flag << 12).
func (m Move) Encode() uint16 {
	return uint16(m.From) | uint16(m.To)<<6 | uint16(m.Flag)<<12
}

// DecodeMove unpacks a 16-bit wire-format move. Only From/To/Flag are recovered; the caller
// must re-derive Piece/Capture from the position the move is applied to.
func DecodeMove(e uint16) Move {
	return Move{
		From: Square(e & 0x3f),
		To:   Square((e >> 6) & 0x3f),
		Flag: MoveFlag((e >> 12) & 0xf),
	}
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or "a7a8q".
// The parsed move carries only From/To/Flag (for promotions); castling, en passant and
// double-push flags are inferred by the generator/board, not by this syntactic parse.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion: '%v'", str)
		}
		flag, _ := promotionFlag(promo)
		return Move{From: from, To: to, Flag: flag}, nil
	}

	return Move{From: from, To: to}, nil
}

// Equals compares the squares and promotion flag only, ignoring ordering metadata. Suitable
// for matching a candidate move (e.g. parsed from UCI input) against a generated move.
func (m Move) Equals(o Move) bool {
	mp, _ := m.Flag.PromotionPiece()
	op, _ := o.Flag.PromotionPiece()
	return m.From == o.From && m.To == o.To && mp == op
}

// FormatMoves renders a move sequence space-separated, using fn to format each move.
func FormatMoves(moves []Move, fn func(Move) string) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = fn(m)
	}
	return strings.Join(parts, " ")
}

// PrintMoves renders a move sequence in dash notation (e.g. "d2-d4 e2-e4"), the format used by
// CLI/console output.
func PrintMoves(moves []Move) string {
	return FormatMoves(moves, func(m Move) string {
		if p, ok := m.Flag.PromotionPiece(); ok {
			return strings.ToLower(fmt.Sprintf("%v-%v%v", m.From, m.To, p))
		}
		return strings.ToLower(fmt.Sprintf("%v-%v", m.From, m.To))
	})
}

func (m Move) String() string {
	if p, ok := m.Flag.PromotionPiece(); ok {
		return fmt.Sprintf("%v%v%v", m.From, m.To, p)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}
