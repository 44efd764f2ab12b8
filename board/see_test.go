package board

import "testing"

func TestSEEWinningPawnTakesUndefendedKnight(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewMove(Square(sqOf(4, 3)), Square(sqOf(3, 4))) // e4xd5
	see := pos.SEE(m)
	if see != SeePieceValue[PieceTypeKnight] {
		t.Errorf("SEE(pawn takes undefended knight) = %d, want %d", see, SeePieceValue[PieceTypeKnight])
	}
}

func TestSEELosingQueenTakesDefendedPawn(t *testing.T) {
	// White queen on d1 takes a pawn on d5 defended by a black knight on f6.
	pos, err := ParseFEN("4k3/8/5n2/3p4/8/8/8/3QK3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewMove(Square(sqOf(3, 0)), Square(sqOf(3, 4))) // d1xd5
	see := pos.SEE(m)
	if see >= 0 {
		t.Errorf("SEE(queen takes pawn defended by knight) = %d, want negative", see)
	}
}

func TestSEERookTakesUndefendedRook(t *testing.T) {
	// Rook takes rook with no further attackers: nothing recaptures, so
	// the exchange wins the full rook.
	pos, err := ParseFEN("4k3/8/8/8/3r4/8/8/3RK3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewMove(Square(sqOf(3, 0)), Square(sqOf(3, 3))) // d1xd4
	if see := pos.SEE(m); see != SeePieceValue[PieceTypeRook] {
		t.Errorf("SEE(rook takes undefended rook) = %d, want %d", see, SeePieceValue[PieceTypeRook])
	}
}
