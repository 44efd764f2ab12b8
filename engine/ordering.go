package engine

import "goosecore/board"

// Move-ordering score bands: TT move > winning captures > killers >
// countermove > history > losing captures, in that order.
const (
	scoreTT        = 1_000_000
	scorePromotion = 900_000
	scoreGoodCap   = 800_000
	scoreKiller1   = 700_000
	scoreKiller0   = 690_000
	scoreCounter   = 680_000
	scoreBadCap    = -100_000
)

const historyMax = 16000

// OrderingState holds the search-local heuristic tables: killer moves per
// ply, a from/to history table, and a countermove table keyed by the
// previous move. One instance is owned per search lifetime rather than
// living behind bare package-level globals.
type OrderingState struct {
	killers [MaxPly + 1][2]board.Move
	history [2][64][64]int
	counter [2][64][64]board.Move
}

func NewOrderingState() *OrderingState { return &OrderingState{} }

func (o *OrderingState) ResetEphemeral() {
	o.killers = [MaxPly + 1][2]board.Move{}
}

func (o *OrderingState) RecordKiller(ply int, m board.Move) {
	if o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

func (o *OrderingState) IsKiller(ply int, m board.Move) (first bool, second bool) {
	return o.killers[ply][0] == m, o.killers[ply][1] == m
}

func (o *OrderingState) RecordCounter(side board.Color, prev board.Move, m board.Move) {
	if prev == board.NullMove {
		return
	}
	o.counter[side][prev.From()][prev.To()] = m
}

func (o *OrderingState) CounterMove(side board.Color, prev board.Move) board.Move {
	if prev == board.NullMove {
		return board.NullMove
	}
	return o.counter[side][prev.From()][prev.To()]
}

func (o *OrderingState) BumpHistory(side board.Color, m board.Move, bonus int) {
	h := &o.history[side][m.From()][m.To()]
	*h += bonus - (*h)*abs(bonus)/historyMax
	if *h > historyMax {
		*h = historyMax
	}
	if *h < -historyMax {
		*h = -historyMax
	}
}

func (o *OrderingState) AgeHistory() {
	for c := 0; c < 2; c++ {
		for f := 0; f < 64; f++ {
			for t := 0; t < 64; t++ {
				o.history[c][f][t] /= 8
			}
		}
	}
}

func (o *OrderingState) ClearHistory() {
	o.history = [2][64][64]int{}
	o.counter = [2][64][64]board.Move{}
}

// ScoreMoves assigns an ordering score to each move so the caller can sort
// descending. ttMove, when present, is placed first; captures are scored
// by SEE in winning/losing bands, quiets via killer/countermove/history.
func (o *OrderingState) ScoreMoves(p *board.Position, moves []board.Move, ttMove board.Move, ply int, prevMove board.Move) []int {
	scores := make([]int, len(moves))
	side := p.SideToMove()
	counter := o.CounterMove(side, prevMove)

	for i, m := range moves {
		switch {
		case m == ttMove:
			scores[i] = scoreTT
		case p.PieceAt(m.To()) != board.NoPiece || m.IsEnPassant():
			see := p.SEE(m)
			if see >= 0 {
				scores[i] = scoreGoodCap + see
			} else {
				scores[i] = scoreBadCap + see
			}
			if m.IsPromotion() {
				scores[i] += scorePromotion
			}
		case m.IsPromotion():
			scores[i] = scorePromotion
		default:
			if first, second := o.IsKiller(ply, m); first {
				scores[i] = scoreKiller1
			} else if second {
				scores[i] = scoreKiller0
			} else if counter != board.NullMove && m == counter {
				scores[i] = scoreCounter
			} else {
				scores[i] = o.history[side][m.From()][m.To()]
			}
		}
	}
	return scores
}

// PickBest selects the highest-scoring move remaining at or after idx and
// swaps it into place, an in-place partial selection sort that's cheap for
// the common case where a cutoff happens on one of the first few moves and
// the rest are never looked at.
func PickBest(moves []board.Move, scores []int, idx int) {
	best := idx
	for i := idx + 1; i < len(moves); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	if best != idx {
		moves[idx], moves[best] = moves[best], moves[idx]
		scores[idx], scores[best] = scores[best], scores[idx]
	}
}
