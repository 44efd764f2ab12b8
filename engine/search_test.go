package engine

import (
	"testing"

	"goosecore/board"
)

func TestFindBestMovePicksTheOnlyLegalMove(t *testing.T) {
	// White king on a1 is boxed in by its own pawn and the black king on a3,
	// which blocks the pawn and covers b2; the only legal move is Kb1.
	pos, err := board.ParseFEN("8/8/8/8/8/k7/P7/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	legal := pos.GenerateLegalMoves()
	if len(legal) != 1 {
		t.Fatalf("setup error: want exactly 1 legal move, got %d", len(legal))
	}

	s := NewSearcher(4)
	m, _ := s.FindBestMove(pos, Limits{Depth: 3})
	if m != legal[0] {
		t.Errorf("FindBestMove = %v, want the only legal move %v", m, legal[0])
	}
}

func TestFindBestMoveFindsMateInOne(t *testing.T) {
	// Black king on h8, white queen on h6 and rook on a7: Ra8 is mate.
	pos, err := board.ParseFEN("7k/R7/7Q/8/8/8/8/6K1 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	s := NewSearcher(4)
	m, score := s.FindBestMove(pos, Limits{Depth: 4})

	ok, undo := pos.MakeMove(m)
	if !ok {
		t.Fatalf("FindBestMove returned illegal move %v", m)
	}
	if !pos.InCheckmate() {
		t.Errorf("move %v found by search did not deliver checkmate", m)
	}
	pos.UnmakeMove(m, undo)

	if score < MateScore-MaxPly {
		t.Errorf("mate-in-one score %d should be within MaxPly of MateScore", score)
	}
}
