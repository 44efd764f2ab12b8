package board

// SeePieceValue holds the piece values used for Static Exchange Evaluation,
// indexed by PieceType. They are kept separate from the evaluator's own
// material weights (engine/material.go), which also carry a distinct
// endgame set -- SEE only needs a stable ordering of exchange value, not a
// tuned positional score.
var SeePieceValue = [7]int{
	PieceTypeNone:   0,
	PieceTypePawn:   100,
	PieceTypeKnight: 320,
	PieceTypeBishop: 330,
	PieceTypeRook:   500,
	PieceTypeQueen:  900,
	PieceTypeKing:   20000,
}

// SEE evaluates the material outcome of the exchange sequence on m.To(),
// assuming m is played first, via the classic gain-array algorithm: walk
// the "swap list" of increasingly valuable attackers and fold it backward
// so that either side may stop the exchange as soon as it is unprofitable.
func (p *Position) SEE(m Move) int {
	from, to := m.From(), m.To()
	target := p.pieces[to]
	if m.IsEnPassant() {
		target = PieceFromType(p.sideToMove.Opposite(), PieceTypePawn)
	}

	var gain [32]int
	depth := 0
	attacker := p.pieces[from]
	occ := p.AllOccupancy()
	side := p.sideToMove

	gain[0] = SeePieceValue[target.Type()]
	occ &^= bb(from)
	attackers := p.AttacksTo(to, occ)
	side = side.Opposite()

	for {
		depth++
		gain[depth] = SeePieceValue[attacker.Type()] - gain[depth-1]
		if max(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		sideAttackers := attackers & p.occupancy[side]
		if sideAttackers == 0 {
			break
		}
		nextSq, nextPiece := leastValuableAttacker(p, sideAttackers)
		occ &^= bb(nextSq)
		// Re-expose sliders behind the piece that just moved.
		attackers |= (RookAttacks(to, occ) & (p.rooks[White] | p.rooks[Black] | p.queens[White] | p.queens[Black])) |
			(BishopAttacks(to, occ) & (p.bishops[White] | p.bishops[Black] | p.queens[White] | p.queens[Black]))
		attackers &= occ

		attacker = nextPiece
		side = side.Opposite()
	}

	// The top entry is the speculative value of a recapture that never
	// happened (no attacker left, or pruned), so folding starts below it.
	for depth--; depth > 0; depth-- {
		gain[depth-1] = -max(-gain[depth-1], gain[depth])
	}
	return gain[0]
}

func leastValuableAttacker(p *Position, set uint64) (Square, Piece) {
	best := Square(NoSquare)
	bestVal := 1 << 30
	s := set
	for s != 0 {
		sq := Square(popLSB(&s))
		v := SeePieceValue[p.pieces[sq].Type()]
		if v < bestVal {
			bestVal = v
			best = sq
		}
	}
	return best, p.pieces[best]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
