package book

import (
	"testing"

	"goosecore/board"
)

func TestLearnedStoreRecordResultAccumulatesWeight(t *testing.T) {
	store, err := OpenLearnedStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenLearnedStore: %v", err)
	}
	defer store.Close()

	const hash = uint64(0xC0FFEE)
	m := board.NewMove(board.Square(12), board.Square(28))

	if err := store.RecordResult(hash, m, 50); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if err := store.RecordResult(hash, m, 30); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}

	entries, err := store.ProbeAll(hash)
	if err != nil {
		t.Fatalf("ProbeAll: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ProbeAll returned %d entries, want 1", len(entries))
	}
	if entries[0].Move != m {
		t.Errorf("entry move = %v, want %v", entries[0].Move, m)
	}
	if entries[0].Weight != 80 {
		t.Errorf("entry weight = %d, want 80", entries[0].Weight)
	}
}

func TestLearnedStoreRecordResultClampsAtZero(t *testing.T) {
	store, err := OpenLearnedStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenLearnedStore: %v", err)
	}
	defer store.Close()

	const hash = uint64(0xBEEF)
	m := board.NewMove(board.Square(8), board.Square(16))

	if err := store.RecordResult(hash, m, -10); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}

	entries, err := store.ProbeAll(hash)
	if err != nil {
		t.Fatalf("ProbeAll: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ProbeAll returned %d entries, want 1", len(entries))
	}
	if entries[0].Weight != 0 {
		t.Errorf("entry weight = %d, want 0 (clamped)", entries[0].Weight)
	}
}
