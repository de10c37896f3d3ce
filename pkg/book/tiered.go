package book

import (
	"math/rand"

	"github.com/kestrelchess/core/pkg/board"
)

// Source is the subset of Book's read interface Tiered needs, so tests can substitute fakes.
type Source interface {
	Find(hash board.ZobristHash, mode Mode, rnd *rand.Rand) (board.Move, bool)
}

// Tiered composes a primary ("master") book and a fallback ("lichess") book: the master is
// consulted first, and the fallback is only asked when the master has no entry for the position.
type Tiered struct {
	Master, Lichess Source
}

func (t Tiered) Find(hash board.ZobristHash, mode Mode, rnd *rand.Rand) (board.Move, bool) {
	if t.Master != nil {
		if m, ok := t.Master.Find(hash, mode, rnd); ok {
			return m, true
		}
	}
	if t.Lichess != nil {
		return t.Lichess.Find(hash, mode, rnd)
	}
	return board.Move{}, false
}
