package book_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	e2e4, err := board.ParseMove("e2e4")
	require.NoError(t, err)
	d2d4, err := board.ParseMove("d2d4")
	require.NoError(t, err)

	in := "1#" + itoa(e2e4.Encode()) + ":10#" + itoa(d2d4.Encode()) + ":3\n"

	b, err := book.Decode(bytes.NewBufferString(in))
	require.NoError(t, err)

	moves, ok := b.All(board.ZobristHash(1))
	require.True(t, ok)
	assert.Equal(t, uint32(10), moves[e2e4])
	assert.Equal(t, uint32(3), moves[d2d4])

	var out bytes.Buffer
	require.NoError(t, b.Encode(&out))

	reparsed, err := book.Decode(&out)
	require.NoError(t, err)
	again, ok := reparsed.All(board.ZobristHash(1))
	require.True(t, ok)
	assert.Equal(t, moves, again)
}

func TestFindMiss(t *testing.T) {
	b := book.New()
	_, ok := b.Find(board.ZobristHash(42), book.First, rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}

func TestFindWeightedFavorsHigherCount(t *testing.T) {
	e2e4, _ := board.ParseMove("e2e4")
	a2a4, _ := board.ParseMove("a2a4")

	b := book.New()
	for i := 0; i < 99; i++ {
		b.Insert(board.ZobristHash(7), e2e4)
	}
	b.Insert(board.ZobristHash(7), a2a4)

	counts := map[board.Move]int{}
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		m, ok := b.Find(board.ZobristHash(7), book.Weighted, rnd)
		require.True(t, ok)
		counts[m]++
	}
	assert.Greater(t, counts[e2e4], counts[a2a4])
}

func TestTieredPrefersMaster(t *testing.T) {
	e2e4, _ := board.ParseMove("e2e4")
	d2d4, _ := board.ParseMove("d2d4")

	master := book.New()
	master.Insert(board.ZobristHash(1), e2e4)

	lichess := book.New()
	lichess.Insert(board.ZobristHash(1), d2d4)
	lichess.Insert(board.ZobristHash(2), d2d4)

	tiered := book.Tiered{Master: master, Lichess: lichess}
	rnd := rand.New(rand.NewSource(3))

	m, ok := tiered.Find(board.ZobristHash(1), book.First, rnd)
	require.True(t, ok)
	assert.Equal(t, e2e4, m)

	m, ok = tiered.Find(board.ZobristHash(2), book.First, rnd)
	require.True(t, ok)
	assert.Equal(t, d2d4, m)

	_, ok = tiered.Find(board.ZobristHash(3), book.First, rnd)
	assert.False(t, ok)
}

func itoa(v uint16) string {
	if v == 0 {
		return "0"
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	return string(digits)
}
