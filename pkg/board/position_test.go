package board_test

import (
	"testing"

	"github.com/kestrelchess/core/pkg/board"
	"github.com/kestrelchess/core/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegalMovesStartingPosition(t *testing.T) {
	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	moves := board.LegalMoves(pos, turn)
	assert.Len(t, moves, 20)

	var pawn, knight int
	for _, m := range moves {
		switch m.Piece {
		case board.Pawn:
			pawn++
		case board.Knight:
			knight++
		}
		assert.Equal(t, board.NoPiece, m.Capture)
		assert.Contains(t, []board.MoveFlag{board.NoFlag, board.DoublePush}, m.Flag)
	}
	assert.Equal(t, 16, pawn)
	assert.Equal(t, 4, knight)
}

func TestLegalMovesPromotion(t *testing.T) {
	pos, err := board.NewPosition([]board.Placement{
		{Square: board.D7, Color: board.White, Piece: board.Pawn},
		{Square: board.E1, Color: board.White, Piece: board.King},
		{Square: board.H8, Color: board.Black, Piece: board.King},
	}, 0, board.ZeroSquare)
	require.NoError(t, err)

	var promotions int
	for _, m := range board.LegalMoves(pos, board.White) {
		if m.From != board.D7 {
			continue
		}
		promotions++
		assert.Equal(t, board.PromotionQueen, m.Flag, "only queen promotions are generated")
	}
	assert.Equal(t, 1, promotions)
}

func TestLegalMovesEnPassantPin(t *testing.T) {
	// Capturing en passant would expose the king on c5 to the rook on h5; spec's pinned-en-passant
	// edge case.
	pos, turn, _, _, err := fen.Decode("8/8/8/2k5/2pP4/8/B7/4K3 b - d3 0 3")
	require.NoError(t, err)

	for _, m := range board.LegalMoves(pos, turn) {
		assert.False(t, m.Flag == board.EnPassantFlag, "en passant must not be legal here")
	}
}

func TestPerftStartingPosition(t *testing.T) {
	tests := []struct {
		depth int
		nodes int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}

	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	for _, tt := range tests {
		assert.Equal(t, tt.nodes, perft(pos, turn, tt.depth), "depth=%v", tt.depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	tests := []struct {
		depth int
		nodes int64
	}{
		{1, 48},
		{2, 2039},
	}

	pos, turn, _, _, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	for _, tt := range tests {
		assert.Equal(t, tt.nodes, perft(pos, turn, tt.depth), "depth=%v", tt.depth)
	}
}

func perft(pos *board.Position, turn board.Color, depth int) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range board.LegalMoves(pos, turn) {
		nodes += perft(pos.Move(turn, m), turn.Opponent(), depth-1)
	}
	return nodes
}
