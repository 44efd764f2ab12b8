package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runPerftCases checks the exact leaf-count witnesses this repo's move
// generation is expected to reproduce, matching the four canonical
// perft positions (starting position, Kiwipete, an en-passant-rich
// endgame, and a promotion-heavy middlegame).
func runPerftCases(t *testing.T, fen string, cases []struct {
	depth    int
	expected uint64
}) {
	pos, err := ParseFEN(fen)
	require.NoError(t, err, "ParseFEN(%q)", fen)
	for _, tc := range cases {
		t.Run("", func(t *testing.T) {
			got := Perft(pos, tc.depth)
			assert.Equal(t, tc.expected, got, "perft(%d)", tc.depth)
			assert.True(t, pos.Validate(), "position invariants broken after perft(%d)", tc.depth)
		})
	}
}

func TestPerftStartingPosition(t *testing.T) {
	runPerftCases(t, FENStartPos, []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	})
}

func TestPerftKiwipete(t *testing.T) {
	runPerftCases(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []struct {
		depth    int
		expected uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	})
}

func TestPerftEndgame(t *testing.T) {
	runPerftCases(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []struct {
		depth    int
		expected uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	})
}

func TestPerftPromotionHeavy(t *testing.T) {
	runPerftCases(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []struct {
		depth    int
		expected uint64
	}{
		{1, 6},
		{2, 264},
		{3, 9467},
	})
}

func TestPerftEnPassantPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	require.NoError(t, err)
	for _, m := range pos.GenerateLegalMoves() {
		assert.False(t, m.IsEnPassant(), "en-passant move %v should be illegal (horizontal pin)", m)
	}
}
