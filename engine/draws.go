package engine

import "goosecore/board"

// InsufficientMaterial reports draws no sequence of legal moves can escape:
// king vs king, king+minor vs king, and king+bishop vs king+bishop with
// same-colored bishops.
func InsufficientMaterial(p *board.Position) bool {
	white := p.Bitboards(board.White)
	black := p.Bitboards(board.Black)

	if white.Pawns|black.Pawns|white.Rooks|black.Rooks|white.Queens|black.Queens != 0 {
		return false
	}

	whiteMinors := popcount(white.Knights) + popcount(white.Bishops)
	blackMinors := popcount(black.Knights) + popcount(black.Bishops)

	if whiteMinors == 0 && blackMinors == 0 {
		return true
	}
	if whiteMinors+blackMinors == 1 {
		return true
	}
	if whiteMinors == 1 && blackMinors == 1 && popcount(white.Knights) == 0 && popcount(black.Knights) == 0 {
		wsq := trailingZeros(white.Bishops)
		bsq := trailingZeros(black.Bishops)
		return squareColor(wsq) == squareColor(bsq)
	}
	return false
}

func squareColor(sq int) int { return (sq + sq/8) & 1 }

// IsDraw combines the 50-move rule, threefold repetition and insufficient
// material into the single draw predicate negamax consults at every
// non-root node, before probing the transposition table or searching moves.
func IsDraw(p *board.Position, rep *RepetitionTracker, rootIndex int) bool {
	if p.HalfmoveClock() >= 100 {
		return true
	}
	if InsufficientMaterial(p) {
		return true
	}
	return rep.IsDraw(rootIndex)
}
