// Package board contains the chess board representation, move generation and game-history
// bookkeeping.
package board

import "fmt"

// repetitionLimit is the occurrence count (current position plus 2 earlier identical ones) at
// which a position is an automatic draw. Per spec §9's resolved open question, threefold
// repetition is automatic here, not a claimable draw; the fifty-move/halfmove-clock rule is
// deliberately NOT enforced (the source this spec distills from ignores it entirely).
const repetitionLimit = 3

// node is one entry of the make/unmake history stack (spec §3's move-history frame): a full
// position snapshot plus the incrementally maintained Zobrist key. The stack is a singly-linked
// list rather than an array so that Board.Fork can share history cheaply between search and the
// game-playing board.
type node struct {
	pos  *Position
	hash ZobristHash

	next Move // the move played from this node, if any (zero value if this is the current node).
	prev *node
}

// Board represents a chess board, its history and the game-level metadata needed to adjudicate
// draws. Not thread-safe; the search owns a forked Board exclusively while it runs (spec §5).
type Board struct {
	zt          *ZobristTable
	repetitions map[ZobristHash]int

	fullmoves int
	turn      Color
	result    Result
	current   *node
}

func NewBoard(zt *ZobristTable, pos *Position, turn Color, fullmoves int) *Board {
	current := &node{
		pos:  pos,
		hash: zt.Hash(pos, turn),
	}

	return &Board{
		zt:          zt,
		repetitions: map[ZobristHash]int{current.hash: 1},
		fullmoves:   fullmoves,
		turn:        turn,
		current:     current,
	}
}

// Fork branches off a new board sharing the past-position history. The shared history must not
// be mutated via PopMove on the original board while the fork is in use, as the forward "next"
// links would then go stale.
func (b *Board) Fork() *Board {
	fork := &Board{
		zt:          b.zt,
		repetitions: make(map[ZobristHash]int, len(b.repetitions)),
		fullmoves:   b.fullmoves,
		turn:        b.turn,
		result:      b.result,
		current: &node{
			pos:  b.current.pos,
			hash: b.current.hash,
			prev: b.current.prev,
		},
	}
	for k, v := range b.repetitions {
		fork.repetitions[k] = v
	}
	return fork
}

func (b *Board) Position() *Position {
	return b.current.pos
}

func (b *Board) Turn() Color {
	return b.turn
}

func (b *Board) FullMoves() int {
	return b.fullmoves
}

func (b *Board) Result() Result {
	return b.result
}

// Hash returns the current Zobrist key.
func (b *Board) Hash() ZobristHash {
	return b.current.hash
}

// PushMove applies a (pseudo-)legal move, assumed to come from LegalMoves for the current
// position and side to move. Returns false (leaving the board unchanged) if the game is
// already decided.
func (b *Board) PushMove(m Move) bool {
	if b.result.IsTerminal() {
		return false
	}

	next := b.current.pos.Move(b.turn, m)
	hash := b.zt.Move(b.current.hash, b.current.pos, b.turn, m)

	n := &node{pos: next, hash: hash, prev: b.current}
	b.current.next = m
	b.current = n

	b.turn = b.turn.Opponent()
	b.repetitions[hash]++
	if b.turn == White {
		b.fullmoves++
	}

	switch {
	case b.repetitions[hash] >= repetitionLimit:
		b.result = Result{Outcome: Draw, Reason: Repetition}
	case next.HasInsufficientMaterial():
		b.result = Result{Outcome: Draw, Reason: InsufficientMaterial}
	}

	return true
}

// PushNull applies a null move: the turn passes without any piece moving, used by null-move
// pruning (spec §4.7). The Zobrist side-to-move component is still flipped, any en-passant
// square is cleared (from the position and the hash), and a history frame is still pushed, so
// PopNull can undo it symmetrically with PopMove.
func (b *Board) PushNull() {
	pos := b.current.pos
	hash := b.current.hash ^ b.zt.TurnHash(b.turn) ^ b.zt.TurnHash(b.turn.Opponent())
	if ep, ok := pos.EnPassant(); ok {
		cleared := *pos
		cleared.enpassant = ZeroSquare
		pos = &cleared
		hash ^= b.zt.enpassant[ep]
	}

	n := &node{pos: pos, hash: hash, prev: b.current}
	b.current.next = NullMove()
	b.current = n
	b.turn = b.turn.Opponent()
}

// PopNull undoes a PushNull.
func (b *Board) PopNull() {
	b.turn = b.turn.Opponent()
	b.current = b.current.prev
	b.current.next = Move{}
}

// PopMove undoes the last move. Per spec §4.5/§7, this is a silent no-op on an empty stack.
func (b *Board) PopMove() (Move, bool) {
	if b.current.prev == nil {
		return Move{}, false
	}

	b.turn = b.turn.Opponent()
	b.repetitions[b.current.hash]--
	b.result = Result{} // a legal move existed to make, so the prior position was non-terminal.
	if b.turn == Black {
		b.fullmoves--
	}

	b.current = b.current.prev
	m := b.current.next
	b.current.next = Move{}
	return m, true
}

// AdjudicateNoLegalMoves adjudicates the position assuming the generator returned no legal
// moves: checkmate if the side to move is in check, stalemate otherwise (spec §4.4).
func (b *Board) AdjudicateNoLegalMoves() Result {
	result := Result{Outcome: Draw, Reason: Stalemate}
	if b.Position().IsChecked(b.Turn()) {
		result = Result{Outcome: Loss(b.Turn()), Reason: Checkmate}
	}
	b.Adjudicate(result)
	return result
}

// Adjudicate forces the given result (e.g. time forfeit, per spec §6).
func (b *Board) Adjudicate(result Result) {
	b.result = result
}

// LastMove returns the last move played, if any.
func (b *Board) LastMove() (Move, bool) {
	if b.current.prev != nil {
		return b.current.prev.next, true
	}
	return Move{}, false
}

// HasCastled reports whether the given color has castled at any point in this game's history.
func (b *Board) HasCastled(c Color) bool {
	t := b.turn.Opponent()
	cur := b.current.prev

	for cur != nil {
		if t == c && (cur.next.Flag == CastlingKingside || cur.next.Flag == CastlingQueenside) {
			return true
		}
		t = t.Opponent()
		cur = cur.prev
	}
	return false
}

func (b *Board) String() string {
	return fmt.Sprintf("board{pos=%v, turn=%v, hash=%x (seen %v), fullmoves=%v, result=%v}",
		b.current.pos, b.turn, b.current.hash, b.repetitions[b.current.hash], b.fullmoves, b.result)
}
