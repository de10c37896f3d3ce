// Package book implements an opening book keyed by Zobrist hash: a position maps to the moves
// played from it in some reference game collection, each with an occurrence count.
package book

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/kestrelchess/core/pkg/board"
)

// Mode selects how a book move is chosen among the candidates recorded for a position.
type Mode int

const (
	// First returns an arbitrary (map-iteration-order) candidate. It is not deterministic: the
	// candidate returned may differ between calls on the same Book value.
	First Mode = iota
	// Random returns a uniformly random candidate, ignoring counts.
	Random
	// Weighted returns a candidate with probability proportional to its recorded count.
	Weighted
)

// Book is an in-memory opening book: Zobrist hash to recorded moves and their play counts.
type Book struct {
	moves map[board.ZobristHash]map[board.Move]uint32
}

// New returns an empty book.
func New() *Book {
	return &Book{moves: map[board.ZobristHash]map[board.Move]uint32{}}
}

// Insert records one additional occurrence of move at the given position.
func (b *Book) Insert(hash board.ZobristHash, m board.Move) {
	if b.moves[hash] == nil {
		b.moves[hash] = map[board.Move]uint32{}
	}
	b.moves[hash][m]++
}

// All returns every candidate move recorded for the position, with counts. Returns false if the
// position is not in the book.
func (b *Book) All(hash board.ZobristHash) (map[board.Move]uint32, bool) {
	moves, ok := b.moves[hash]
	return moves, ok
}

// Find selects one move for the position per mode. Returns false if the position is not in the
// book; once false is returned for a game's current position, the caller should not consult the
// book again for the rest of that game (spec: the book is never re-consulted after a miss).
func (b *Book) Find(hash board.ZobristHash, mode Mode, rnd *rand.Rand) (board.Move, bool) {
	moves, ok := b.moves[hash]
	if !ok || len(moves) == 0 {
		return board.Move{}, false
	}

	switch mode {
	case Random:
		n := rnd.Intn(len(moves))
		for m := range moves {
			if n == 0 {
				return m, true
			}
			n--
		}

	case Weighted:
		var total uint32
		for _, count := range moves {
			total += count
		}
		target := rnd.Float64() * float64(total)
		var cum float64
		for m, count := range moves {
			cum += float64(count)
			if cum >= target {
				return m, true
			}
		}
		// Fall-through: floating point rounding left a sliver unaccounted for. Return any move.
		fallthrough

	default: // First
		for m := range moves {
			return m, true
		}
	}

	return board.Move{}, false
}

// Decode parses the book's text format: one line per position, "<zobrist>#<move>:<count>#...",
// where <move> is the move's 16-bit Encode() value in decimal.
//
// Example: "123456789#2065:14#2081:3"
func Decode(r io.Reader) (*Book, error) {
	b := New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, "#")
		hash, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid book hash '%v': %v", fields[0], err)
		}

		moves := map[board.Move]uint32{}
		for _, field := range fields[1:] {
			parts := strings.SplitN(field, ":", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("invalid book entry '%v'", field)
			}

			encoded, err := strconv.ParseUint(parts[0], 10, 16)
			if err != nil {
				return nil, fmt.Errorf("invalid book move '%v': %v", parts[0], err)
			}
			count, err := strconv.ParseUint(parts[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid book count '%v': %v", parts[1], err)
			}

			moves[board.DecodeMove(uint16(encoded))] = uint32(count)
		}
		b.moves[board.ZobristHash(hash)] = moves
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

// Encode writes the book in the text format Decode reads.
func (b *Book) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for hash, moves := range b.moves {
		if _, err := fmt.Fprintf(bw, "%v", uint64(hash)); err != nil {
			return err
		}
		for m, count := range moves {
			if _, err := fmt.Fprintf(bw, "#%v:%v", m.Encode(), count); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
