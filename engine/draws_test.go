package engine

import (
	"testing"

	"goosecore/board"
)

func TestInsufficientMaterialBareKings(t *testing.T) {
	pos, err := board.ParseFEN("8/8/8/4k3/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !InsufficientMaterial(pos) {
		t.Errorf("king vs king should be insufficient material")
	}
}

func TestInsufficientMaterialKingAndMinorVsKing(t *testing.T) {
	pos, err := board.ParseFEN("8/8/8/4k3/8/8/8/4KN2 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !InsufficientMaterial(pos) {
		t.Errorf("king+knight vs king should be insufficient material")
	}
}

func TestSufficientMaterialKingPawnVsKing(t *testing.T) {
	pos, err := board.ParseFEN("8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if InsufficientMaterial(pos) {
		t.Errorf("king+pawn vs king should not be insufficient material")
	}
}

func TestFiftyMoveRuleTriggersAtHundredHalfmoves(t *testing.T) {
	pos, err := board.ParseFEN("8/8/8/4k3/8/8/4P3/4K3 w - - 100 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	rep := NewRepetitionTracker()
	rep.Push(pos.Hash(), pos.HalfmoveClock())
	if !IsDraw(pos, rep, 0) {
		t.Errorf("halfmove clock 100 should be a draw")
	}
}

func TestFiftyMoveRuleNotYetAtHalfway(t *testing.T) {
	pos, err := board.ParseFEN("8/8/8/4k3/8/8/4P3/4K3 w - - 50 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	rep := NewRepetitionTracker()
	rep.Push(pos.Hash(), pos.HalfmoveClock())
	if IsDraw(pos, rep, 0) {
		t.Errorf("halfmove clock 50 should not yet be a draw")
	}
}

// TestThreefoldRepetitionViaKingShuffle replays Ke1-e2, Ke8-e7, Ke2-e1,
// Ke7-e8 twice from the start position, which returns to the original
// position three times total and must be flagged as a repetition draw.
func TestThreefoldRepetitionViaKingShuffle(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	rep := NewRepetitionTracker()
	rep.Push(pos.Hash(), pos.HalfmoveClock())

	moves := []string{"e1e2", "e8e7", "e2e1", "e7e8", "e1e2", "e8e7", "e2e1", "e7e8"}
	for _, ms := range moves {
		m, err := pos.ParseMove(ms)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", ms, err)
		}
		if ok, _ := pos.MakeMove(m); !ok {
			t.Fatalf("MakeMove(%q) rejected as illegal", ms)
		}
		rep.Push(pos.Hash(), pos.HalfmoveClock())
	}

	if !IsDraw(pos, rep, 0) {
		t.Errorf("position repeated three times should be a draw")
	}
}
