package engine

import (
	"time"

	"goosecore/board"
)

// TimeHandler turns a remaining-clock-time budget into a per-move
// allocation: a phase-scaled moves-to-go estimate, an overhead reservation,
// and a panic mode near flag-fall, stateless and Position-driven.
type TimeHandler struct {
	Remaining time.Duration
	Increment time.Duration
}

const (
	moveOverhead  = 30 * time.Millisecond
	minMoveTime   = 5 * time.Millisecond
	maxFraction   = 0.7
	panicThresh   = 1000 * time.Millisecond
	panicFraction = 0.90
)

// AllocateMoveTime estimates how long to think about the current move.
// With an increment it scales the moves-to-go estimate by remaining
// material (fewer pieces on the board implies fewer moves left in the
// game); without one it allots a flat 1/40 of the remaining time.
func (th TimeHandler) AllocateMoveTime(p *board.Position) time.Duration {
	movesLeft := estimateMovesRemaining(gamePhase(p))
	rem, inc := th.Remaining, th.Increment

	var moveTime time.Duration
	switch {
	case inc > 0 && rem < panicThresh:
		moveTime = time.Duration(float64(inc) * panicFraction)
	case inc > 0:
		moveTime = rem/time.Duration(movesLeft) + inc
	default:
		moveTime = rem / 40
	}

	if moveTime < minMoveTime {
		moveTime = minMoveTime
	}
	if cap := time.Duration(float64(rem) * maxFraction); moveTime > cap {
		moveTime = cap
	}
	if moveTime > rem-moveOverhead {
		moveTime = rem - moveOverhead
	}
	if moveTime < minMoveTime {
		moveTime = minMoveTime
	}
	return moveTime
}

// estimateMovesRemaining linearly interpolates between 20 (deep endgame)
// and 45 (opening/middlegame) moves-to-go by remaining phase.
func estimateMovesRemaining(phase int) int {
	return (phase*25)/24 + 20
}

// gamePhase returns the same [0,24] non-pawn-material phase counter the
// evaluator tapers on.
func gamePhase(p *board.Position) int {
	phase := 0
	for c := board.White; c <= board.Black; c++ {
		bbs := p.Bitboards(c)
		phase += phaseWeight[board.PieceTypeKnight] * popcount(bbs.Knights)
		phase += phaseWeight[board.PieceTypeBishop] * popcount(bbs.Bishops)
		phase += phaseWeight[board.PieceTypeRook] * popcount(bbs.Rooks)
		phase += phaseWeight[board.PieceTypeQueen] * popcount(bbs.Queens)
	}
	if phase > 24 {
		phase = 24
	}
	return phase
}
