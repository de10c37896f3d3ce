package search

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/seekerror/logw"
)

// TranspositionTable caches leaf (depth-0/quiescence) evaluations keyed by Zobrist hash. Per
// spec, entries carry the score only -- no depth, bound or best-move tag -- and a write always
// overwrites whatever was there (last-writer-wins); a hash collision can therefore serve a stale
// score for a different position, which is an accepted (and intentional) source of search noise.
// Must be thread-safe.
type TranspositionTable interface {
	Read(hash board.ZobristHash) (board.Score, bool)
	Write(hash board.ZobristHash, score board.Score)

	// Size returns the size of the table in bytes.
	Size() uint64
	// Used returns the utilization as a fraction [0;1].
	Used() float64
}

type TranspositionTableFactory func(ctx context.Context, size uint64) TranspositionTable

type entry struct {
	hash  board.ZobristHash
	score board.Score
}

// table is a fixed-size, lock-free transposition table addressed by the low bits of the hash.
type table struct {
	slots []unsafe.Pointer // *entry
	mask  uint64
	used  uint64
}

func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	n := uint64(1 << (63 - 4 - bits.LeadingZeros64(size)))

	logw.Infof(ctx, "Allocating %vMB TT with %v entries", size>>20, n)

	return &table{
		slots: make([]unsafe.Pointer, n),
		mask:  n - 1,
	}
}

func (t *table) Size() uint64 {
	return uint64(len(t.slots)) << 4
}

func (t *table) Used() float64 {
	return float64(t.used) / float64(len(t.slots))
}

func (t *table) Read(hash board.ZobristHash) (board.Score, bool) {
	key := uint64(hash) & t.mask
	ptr := (*entry)(atomic.LoadPointer(&t.slots[key]))
	if ptr != nil && ptr.hash == hash {
		return ptr.score, true
	}
	return 0, false
}

func (t *table) Write(hash board.ZobristHash, score board.Score) {
	key := uint64(hash) & t.mask
	if atomic.SwapPointer(&t.slots[key], unsafe.Pointer(&entry{hash: hash, score: score})) == nil {
		t.used++
	}
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// NoTranspositionTable is a Nop implementation, used when hashing is disabled.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(board.ZobristHash) (board.Score, bool) { return 0, false }
func (NoTranspositionTable) Write(board.ZobristHash, board.Score)       {}
func (NoTranspositionTable) Size() uint64                               { return 0 }
func (NoTranspositionTable) Used() float64                              { return 0 }

// PVTable is a move-ordering hint cache: the best move found for a position the last time it was
// searched. Unlike the transposition table it is never required to be invalidated -- a stale hit
// simply fails Equals against the legal move list and is ignored, per spec.
type PVTable interface {
	Read(hash board.ZobristHash) (board.Move, bool)
	Write(hash board.ZobristHash, move board.Move)
}

// pvTable is a simple fixed-size, racy-but-harmless (worst case: a torn read is just a miss)
// move cache.
type pvTable struct {
	slots []pvEntry
	mask  uint64
}

type pvEntry struct {
	hash board.ZobristHash
	move board.Move
}

func NewPVTable(size uint64) PVTable {
	n := uint64(1 << (63 - 4 - bits.LeadingZeros64(size)))
	return &pvTable{slots: make([]pvEntry, n), mask: n - 1}
}

func (t *pvTable) Read(hash board.ZobristHash) (board.Move, bool) {
	e := t.slots[uint64(hash)&t.mask]
	if e.hash != hash {
		return board.Move{}, false
	}
	return e.move, true
}

func (t *pvTable) Write(hash board.ZobristHash, move board.Move) {
	t.slots[uint64(hash)&t.mask] = pvEntry{hash: hash, move: move}
}
