package engine

import (
	"time"

	"goosecore/board"
	"goosecore/logging"
)

// Pruning/reduction margins, indexed by depth.
var (
	futilityMargins = [9]int{0, 100, 160, 220, 280, 340, 400, 460, 520}
	rfpMargins      = [9]int{0, 120, 240, 360, 480, 600, 720, 840, 960}
	razoringMargins = [4]int{0, 200, 300, 400}
	lmpMargins      = [9]int{0, 4, 7, 12, 19, 28, 39, 52, 67} // 3 + depth^2
)

// PVLine is a triangular principal-variation table: pv[ply] holds the
// continuation from that ply, and length[ply] its size.
type PVLine struct {
	moves  [MaxPly + 1][MaxPly + 1]board.Move
	length [MaxPly + 1]int
}

func (pv *PVLine) update(ply int, m board.Move, child *PVLine) {
	pv.moves[ply][0] = m
	copy(pv.moves[ply][1:], child.moves[ply+1][:child.length[ply+1]])
	pv.length[ply] = child.length[ply+1] + 1
}

// Line returns the best line found at the root.
func (pv *PVLine) Line() []board.Move {
	return append([]board.Move(nil), pv.moves[0][:pv.length[0]]...)
}

// Limits bounds a search: whichever of Depth/MoveTime fires first stops it.
type Limits struct {
	Depth      int
	MoveTime   time.Duration
	Remaining  time.Duration
	Increment  time.Duration
	NodesEvery int // defaulted to 1024 but not consulted: the clock is checked every 1024 nodes
}

// Searcher owns everything a single search needs beyond the position
// itself: the transposition table, move-ordering heuristics, repetition
// history and time control, kept as an explicit struct so a Coordinator
// can hold its own Searcher rather than reaching into bare package-level
// globals.
type Searcher struct {
	TT    *TranspositionTable
	Order *OrderingState
	Rep   *RepetitionTracker
	Log   logging.Sink

	nodes     uint64
	deadline  time.Time
	useTime   bool
	stopped   bool
	rootIndex int
	rootDepth int
	cuts      cutStats
}

// NewSearcher constructs a Searcher with a fresh TT of the given size and
// empty heuristic tables.
func NewSearcher(ttSizeMB int) *Searcher {
	return &Searcher{
		TT:    NewTranspositionTable(ttSizeMB),
		Order: NewOrderingState(),
		Rep:   NewRepetitionTracker(),
		Log:   logging.Nop(),
	}
}

// NewGame resets everything that must not leak between games: TT contents,
// heuristic tables and repetition history.
func (s *Searcher) NewGame() {
	s.TT.Clear()
	s.Order.ClearHistory()
	s.Rep.Reset()
}

// FindBestMove runs iterative deepening from the current position and
// returns the best move found plus its score. It never returns a move
// that wasn't confirmed legal at the root.
func (s *Searcher) FindBestMove(p *board.Position, limits Limits) (board.Move, int) {
	s.nodes = 0
	s.stopped = false
	s.rootIndex = len(s.Rep.hashes)
	s.Order.ResetEphemeral()
	s.cuts = nil

	if limits.MoveTime > 0 {
		s.useTime = true
		s.deadline = time.Now().Add(limits.MoveTime)
	} else if limits.Remaining > 0 {
		s.useTime = true
		s.deadline = time.Now().Add(computeMoveTime(p, limits))
	} else {
		s.useTime = false
	}
	if limits.NodesEvery <= 0 {
		limits.NodesEvery = 1024
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	rootMoves := p.GenerateLegalMoves()
	if len(rootMoves) == 0 {
		return board.NullMove, 0
	}

	bestMove := rootMoves[0]
	bestScore := -InfScore
	alpha, beta := -InfScore, InfScore
	window := 25

	for depth := 1; depth <= maxDepth; depth++ {
		s.rootDepth = depth
		var pv PVLine

		if depth >= 4 {
			alpha = bestScore - window
			beta = bestScore + window
		} else {
			alpha, beta = -InfScore, InfScore
		}

		var score int
		for {
			score = s.negamax(p, alpha, beta, depth, 0, &pv, board.NullMove, false, board.NullMove)
			if s.stopped {
				break
			}
			if score <= alpha {
				alpha = max(-InfScore, alpha-window)
				window *= 2
				continue
			}
			if score >= beta {
				beta = min(InfScore, beta+window)
				window *= 2
				continue
			}
			break
		}

		if s.stopped && depth > 1 {
			break
		}

		bestScore = score
		if pv.length[0] > 0 {
			bestMove = pv.moves[0][0]
		}
		window = 25

		s.Log.Info("search depth complete", "depth", depth, "score", bestScore, "nodes", s.nodes, "move", bestMove.String())

		if isMateScore(bestScore) {
			break
		}
	}

	return bestMove, bestScore
}

func computeMoveTime(p *board.Position, limits Limits) time.Duration {
	th := TimeHandler{Remaining: limits.Remaining, Increment: limits.Increment}
	return th.AllocateMoveTime(p)
}

func (s *Searcher) timeUp() bool {
	if !s.useTime {
		return false
	}
	if s.nodes%1024 != 0 {
		return false
	}
	if time.Now().After(s.deadline) {
		s.stopped = true
	}
	return s.stopped
}

// negamax implements the search procedure: TT probe, leaf/quiescence
// dispatch, null-move pruning, reverse-futility/razoring, futility
// flagging, legal move generation and ordering, PVS main loop with
// LMP/LMR/check-extension, and depth-preferred TT storage.
func (s *Searcher) negamax(p *board.Position, alpha, beta, depth, ply int, pv *PVLine, prevMove board.Move, didNull bool, excluded board.Move) int {
	pv.length[ply] = 0
	s.nodes++

	if s.timeUp() {
		return 0
	}

	pvNode := beta-alpha > 1
	inCheck := p.InCheck(p.SideToMove())
	if inCheck {
		depth++
	}

	if ply > 0 {
		if IsDraw(p, s.Rep, s.rootIndex) {
			return DrawScore
		}
		if s.Rep.UpcomingRepetition(ply, s.rootIndex) {
			alpha = max(alpha, DrawScore)
			if alpha >= beta {
				return alpha
			}
		}
		alpha = max(alpha, -MateScore+ply)
		beta = min(beta, MateScore-ply)
		if alpha >= beta {
			return alpha
		}
	}

	if depth <= 0 {
		return s.quiescence(p, alpha, beta, ply, 0)
	}
	if ply >= MaxPly {
		return Evaluate(p)
	}

	hash := p.Hash()
	var ttMove board.Move
	if excluded == board.NullMove {
		if entry, ok := s.TT.Probe(hash); ok {
			ttMove = entry.Move
			if int(entry.Depth) >= depth && !pvNode {
				score := AdjustedScore(int(entry.Score), ply)
				switch entry.Bound {
				case BoundExact:
					s.bumpCut("tt_exact")
					return score
				case BoundLower:
					if score >= beta {
						s.bumpCut("tt_lower")
						return score
					}
				case BoundUpper:
					if score <= alpha {
						s.bumpCut("tt_upper")
						return score
					}
				}
			}
		}
	}

	staticEval := Evaluate(p)

	// Reverse futility / static null-move pruning.
	if !pvNode && !inCheck && depth <= 7 && excluded == board.NullMove {
		if staticEval-rfpMargins[depth] >= beta && !isMateScore(beta) {
			s.bumpCut("rfp")
			return staticEval - rfpMargins[depth]
		}
	}

	// Razoring: a hopeless-looking node drops straight to quiescence.
	if !pvNode && !inCheck && depth <= 3 && excluded == board.NullMove {
		margin := razoringMargins[depth]
		if staticEval+margin < beta {
			score := s.quiescence(p, alpha, beta, ply, 0)
			if score < beta {
				s.bumpCut("razor")
				return score
			}
		}
	}

	// Null-move pruning.
	if !pvNode && !inCheck && !didNull && depth >= 3 && excluded == board.NullMove && hasNonPawnMaterial(p) {
		if staticEval >= beta {
			r := 3 + depth/3
			undo := p.MakeNullMove()
			var childPV PVLine
			s.Rep.Push(p.Hash(), p.HalfmoveClock())
			score := -s.negamax(p, -beta, -beta+1, depth-r-1, ply+1, &childPV, board.NullMove, true, board.NullMove)
			s.Rep.Pop()
			p.UnmakeNullMove(undo)
			if s.stopped {
				return 0
			}
			if score >= beta {
				if isMateScore(score) {
					score = beta
				}
				s.bumpCut("null_move")
				return score
			}
		}
	}

	futile := !pvNode && !inCheck && depth <= 3 && staticEval+futilityMargins[depth] <= alpha

	// Internal iterative deepening: no TT move to seed ordering with.
	if ttMove == board.NullMove && depth >= 5 && excluded == board.NullMove {
		var iidPV PVLine
		s.negamax(p, alpha, beta, depth-2, ply, &iidPV, prevMove, didNull, board.NullMove)
		if iidPV.length[ply] > 0 {
			ttMove = iidPV.moves[ply][0]
		}
	}

	moves := p.GenerateLegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return DrawScore
	}

	scores := s.Order.ScoreMoves(p, moves, ttMove, ply, prevMove)

	bestScore := -InfScore
	bestMove := board.NullMove
	bound := BoundUpper
	quietsTried := make([]board.Move, 0, len(moves))

	for i := range moves {
		PickBest(moves, scores, i)
		m := moves[i]
		if m == excluded {
			continue
		}

		isCapture := p.PieceAt(m.To()) != board.NoPiece || m.IsEnPassant()
		isQuiet := !isCapture && !m.IsPromotion()

		if !pvNode && !inCheck && i >= 3 && depth <= 3 && isQuiet {
			if i >= lmpMargins[depth] {
				continue
			}
		}
		if futile && isQuiet && i > 0 {
			continue
		}

		ok, undo := p.MakeMove(m)
		if !ok {
			continue
		}
		s.Rep.Push(p.Hash(), p.HalfmoveClock())

		var childPV PVLine
		var score int
		newDepth := depth - 1

		if i == 0 {
			score = -s.negamax(p, -beta, -alpha, newDepth, ply+1, &childPV, m, false, board.NullMove)
		} else {
			reduction := 0
			if isQuiet && depth >= 3 && i >= 3 {
				reduction = 1
				if depth >= 6 {
					reduction++
				}
				if i >= 6 {
					reduction++
				}
				if depth >= 8 && i >= 10 {
					reduction++
				}
				reduction = min(reduction, newDepth-1)
				if reduction < 0 {
					reduction = 0
				}
			}
			score = -s.negamax(p, -alpha-1, -alpha, newDepth-reduction, ply+1, &childPV, m, false, board.NullMove)
			if score > alpha && reduction > 0 {
				score = -s.negamax(p, -alpha-1, -alpha, newDepth, ply+1, &childPV, m, false, board.NullMove)
			}
			if score > alpha && score < beta {
				score = -s.negamax(p, -beta, -alpha, newDepth, ply+1, &childPV, m, false, board.NullMove)
			}
		}

		s.Rep.Pop()
		p.UnmakeMove(m, undo)

		if s.stopped {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				bound = BoundExact
				pv.update(ply, m, &childPV)
			}
		}
		if isQuiet {
			quietsTried = append(quietsTried, m)
		}

		if alpha >= beta {
			bound = BoundLower
			s.bumpCut("beta")
			if isQuiet {
				s.Order.RecordKiller(ply, m)
				s.Order.RecordCounter(p.SideToMove(), prevMove, m)
				s.Order.BumpHistory(p.SideToMove(), m, depth*depth)
				for _, qm := range quietsTried[:len(quietsTried)-1] {
					s.Order.BumpHistory(p.SideToMove(), qm, -depth*depth)
				}
			}
			break
		}
	}

	if excluded == board.NullMove {
		s.TT.Store(hash, depth, ply, bestMove, bestScore, bound)
	}
	return bestScore
}

// quiescence implements the quiescence search: stand-pat cutoff,
// SEE-pruned, delta-pruned and per-capture-futility-pruned captures, plus
// full evasion search when in check. qsDepth counts recursion within this
// quiescence call chain (reset to 0 at every entry from negamax), separate
// from ply: it's what gates the qsDepth-0 checking-move widening below.
func (s *Searcher) quiescence(p *board.Position, alpha, beta, ply, qsDepth int) int {
	s.nodes++
	if s.timeUp() {
		return 0
	}
	if ply >= MaxPly {
		return Evaluate(p)
	}

	inCheck := p.InCheck(p.SideToMove())
	standPat := Evaluate(p)

	if !inCheck {
		if standPat >= beta {
			return standPat
		}
		const deltaMargin = 900
		if standPat+deltaMargin < alpha {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var moves []board.Move
	if inCheck {
		moves = p.GenerateLegalMoves()
	} else {
		moves = p.GenerateCaptures()
		if qsDepth == 0 {
			moves = append(moves, quietChecksOnly(p)...)
		}
	}
	scores := s.Order.ScoreMoves(p, moves, board.NullMove, ply, board.NullMove)

	best := standPat
	if inCheck {
		best = -MateScore + ply
	}
	for i := range moves {
		PickBest(moves, scores, i)
		m := moves[i]
		isCapture := p.PieceAt(m.To()) != board.NoPiece || m.IsEnPassant()

		if !inCheck {
			if isCapture && !m.IsPromotion() && p.SEE(m) < 0 {
				continue
			}
			if isCapture && !m.IsPromotion() {
				capturedValue := pieceValueMG[capturedPieceType(p, m)]
				if standPat+capturedValue+200 < alpha {
					continue
				}
			}
		}

		ok, undo := p.MakeMove(m)
		if !ok {
			continue
		}
		score := -s.quiescence(p, -beta, -alpha, ply+1, qsDepth+1)
		p.UnmakeMove(m, undo)

		if s.stopped {
			return 0
		}
		if score > best {
			best = score
			if score > alpha {
				alpha = score
			}
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// capturedPieceType reports the type of piece m captures, resolving the
// en-passant case where the captured pawn doesn't sit on m.To().
func capturedPieceType(p *board.Position, m board.Move) board.PieceType {
	if m.IsEnPassant() {
		return board.PieceTypePawn
	}
	return p.PieceAt(m.To()).Type()
}

// quietChecksOnly returns the legal non-capture, non-promotion moves that
// give check, widening quiescence beyond plain captures at qsDepth 0.
func quietChecksOnly(p *board.Position) []board.Move {
	var checks []board.Move
	for _, m := range p.GenerateLegalMoves() {
		if p.PieceAt(m.To()) != board.NoPiece || m.IsEnPassant() || m.IsPromotion() {
			continue
		}
		ok, undo := p.MakeMove(m)
		if !ok {
			continue
		}
		if p.InCheck(p.SideToMove()) {
			checks = append(checks, m)
		}
		p.UnmakeMove(m, undo)
	}
	return checks
}

func hasNonPawnMaterial(p *board.Position) bool {
	c := p.SideToMove()
	bbs := p.Bitboards(c)
	return bbs.Knights|bbs.Bishops|bbs.Rooks|bbs.Queens != 0
}
