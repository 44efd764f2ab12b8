package coordinator

import (
	"testing"

	"goosecore/board"
)

func TestPlayTracksHistoryForLearnedBook(t *testing.T) {
	dir := t.TempDir()
	c, err := New(Options{LearnedBookDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	pos, err := board.ParseFEN(board.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	c.SetPosition(pos)
	startHash := c.Position().Hash()

	e2e4 := board.NewMove(board.Square(12), board.Square(28))
	if ok, _ := c.Play(e2e4); !ok {
		t.Fatalf("Play(e2e4) rejected as illegal")
	}

	if err := c.RecordGameResult(1); err != nil {
		t.Fatalf("RecordGameResult: %v", err)
	}

	entries, err := c.learned.ProbeAll(startHash)
	if err != nil {
		t.Fatalf("ProbeAll: %v", err)
	}
	if len(entries) != 1 || entries[0].Move != e2e4 {
		t.Fatalf("ProbeAll = %+v, want one entry for %v", entries, e2e4)
	}
	if entries[0].Weight == 0 {
		t.Errorf("expected a White win to credit e2e4 with positive weight")
	}
}

func TestRecordGameResultIsNoopWithoutLearnedBook(t *testing.T) {
	c, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	pos, err := board.ParseFEN(board.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	c.SetPosition(pos)

	e2e4 := board.NewMove(board.Square(12), board.Square(28))
	if ok, _ := c.Play(e2e4); !ok {
		t.Fatalf("Play(e2e4) rejected as illegal")
	}
	if err := c.RecordGameResult(1); err != nil {
		t.Errorf("RecordGameResult without a learned book should be a no-op, got %v", err)
	}
}
