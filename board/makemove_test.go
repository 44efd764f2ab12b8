package board

import "testing"

// walk plays every move in moves from the starting position, unmaking as it
// goes, checking Validate() holds at every step -- the dense piece array
// and the bitboards must never drift apart.
func walk(t *testing.T, pos *Position, depth int) {
	if depth == 0 {
		return
	}
	for _, m := range pos.GenerateLegalMoves() {
		hashBefore := pos.Hash()
		ok, undo := pos.MakeMove(m)
		if !ok {
			continue
		}
		if !pos.Validate() {
			t.Fatalf("invariant broken after making %v", m)
		}
		if got := pos.ComputeZobrist(); got != pos.Hash() {
			t.Fatalf("incremental zobrist %x diverged from recomputed %x after %v", pos.Hash(), got, m)
		}
		walk(t, pos, depth-1)
		pos.UnmakeMove(m, undo)
		if pos.Hash() != hashBefore {
			t.Fatalf("zobrist hash not restored after unmaking %v: got %x want %x", m, pos.Hash(), hashBefore)
		}
		if !pos.Validate() {
			t.Fatalf("invariant broken after unmaking %v", m)
		}
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	pos, err := ParseFEN(FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	walk(t, pos, 3)
}

func TestMakeUnmakeRoundTripKiwipete(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	walk(t, pos, 2)
}

func TestCastlingUpdatesRookAndRights(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewCastle(4, 6) // e1g1
	ok, undo := pos.MakeMove(m)
	if !ok {
		t.Fatalf("expected e1g1 castle to be legal")
	}
	if pos.PieceAt(6) != WhiteKing || pos.PieceAt(5) != WhiteRook {
		t.Fatalf("castle did not relocate king/rook correctly")
	}
	if pos.CastlingRightsMask()&(CastlingWhiteK|CastlingWhiteQ) != 0 {
		t.Fatalf("castling still grants white rights after castling")
	}
	pos.UnmakeMove(m, undo)
	if pos.PieceAt(4) != WhiteKing || pos.PieceAt(7) != WhiteRook {
		t.Fatalf("unmake did not restore king/rook squares")
	}
	if pos.CastlingRightsMask()&(CastlingWhiteK|CastlingWhiteQ) != CastlingWhiteK|CastlingWhiteQ {
		t.Fatalf("unmake did not restore castling rights")
	}
}

func TestEnPassantCaptureAndUnmake(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewEnPassant(27, 20) // d4 takes e3
	ok, undo := pos.MakeMove(m)
	if !ok {
		t.Fatalf("expected en-passant capture to be legal")
	}
	if pos.PieceAt(28) != NoPiece {
		t.Fatalf("captured pawn square e4 still occupied after en-passant")
	}
	pos.UnmakeMove(m, undo)
	if pos.PieceAt(28) != WhitePawn {
		t.Fatalf("unmake did not restore captured pawn")
	}
	if pos.PieceAt(27) != BlackPawn {
		t.Fatalf("unmake did not restore capturing pawn")
	}
}
