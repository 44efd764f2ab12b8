package board

// checkState bundles the information needed to legally filter moves without
// a make/attack-test/unmake round trip per candidate: whether the side to
// move is in check, whether it is double check (only king moves are legal),
// the mask of squares that block or capture a single checker, and the
// per-square pin line for the mover's own pinned pieces.
type checkState struct {
	inCheck     bool
	doubleCheck bool
	checkMask   uint64
	pinned      uint64
	pinLine     [64]uint64
}

const fullBoard = ^uint64(0)

func (p *Position) computeCheckState(side Color) checkState {
	us, them := side, side.Opposite()
	ks := p.KingSquare(us)
	occ := p.AllOccupancy()

	var cs checkState
	if ks == NoSquare {
		cs.checkMask = fullBoard
		return cs
	}

	checkers := (pawnAttacks[us][ks] & p.pawns[them]) |
		(knightAttacks[ks] & p.knights[them]) |
		(RookAttacks(ks, occ) & (p.rooks[them] | p.queens[them])) |
		(BishopAttacks(ks, occ) & (p.bishops[them] | p.queens[them]))

	cs.inCheck = checkers != 0
	cs.doubleCheck = cs.inCheck && (checkers&(checkers-1)) != 0

	if !cs.inCheck {
		cs.checkMask = fullBoard
	} else if !cs.doubleCheck {
		checkerSq := Square(popLSB(&checkers))
		cs.checkMask = bb(checkerSq) | Between(ks, checkerSq)
	}

	cs.pinned, cs.pinLine = p.PinnedPieces(us)
	return cs
}

func (cs *checkState) allowed(from, to Square) bool {
	if cs.doubleCheck {
		return false
	}
	toBB := bb(to)
	if cs.pinned&bb(from) != 0 && cs.pinLine[from]&toBB == 0 {
		return false
	}
	return cs.checkMask&toBB != 0
}

// GenFilter selects which pseudo-legal moves to emit.
type GenFilter int

const (
	GenAll GenFilter = iota
	GenCaptures
	GenQuiets
)

// GenerateLegalMoves returns every legal move for the side to move.
func (p *Position) GenerateLegalMoves() []Move {
	return p.generateInto(make([]Move, 0, 48), GenAll)
}

// GenerateCaptures returns every legal capture (including capturing
// promotions and en-passant) for the side to move, for use in quiescence
// search. Promotions by a straight pawn push are not included.
func (p *Position) GenerateCaptures() []Move {
	return p.generateInto(make([]Move, 0, 24), GenCaptures)
}

// GenerateMovesInto appends legal moves to dst[:0] and returns the result,
// letting callers reuse a scratch slice across nodes to avoid allocation.
func (p *Position) GenerateMovesInto(dst []Move) []Move {
	return p.generateInto(dst[:0], GenAll)
}

func (p *Position) generateInto(dst []Move, filter GenFilter) []Move {
	side := p.sideToMove
	us, them := side, side.Opposite()
	ownOcc, oppOcc := p.occupancy[us], p.occupancy[them]
	occ := ownOcc | oppOcc
	cs := p.computeCheckState(side)

	dst = p.genPawnMoves(dst, side, occ, oppOcc, &cs, filter)
	dst = p.genPieceMoves(dst, p.knights[us], func(sq Square) uint64 { return knightAttacks[sq] }, ownOcc, &cs, filter)
	dst = p.genPieceMoves(dst, p.bishops[us], func(sq Square) uint64 { return BishopAttacks(sq, occ) }, ownOcc, &cs, filter)
	dst = p.genPieceMoves(dst, p.rooks[us], func(sq Square) uint64 { return RookAttacks(sq, occ) }, ownOcc, &cs, filter)
	dst = p.genPieceMoves(dst, p.queens[us], func(sq Square) uint64 { return QueenAttacks(sq, occ) }, ownOcc, &cs, filter)
	dst = p.genKingMoves(dst, side, ownOcc, oppOcc, occ, &cs, filter)
	return dst
}

// genPieceMoves handles knights, bishops, rooks and queens uniformly: their
// legality rule (not double-checked, respects pin line, lands in the check
// mask) is identical, and only the attack function differs.
func (p *Position) genPieceMoves(dst []Move, pieces uint64, attacksFrom func(Square) uint64, ownOcc uint64, cs *checkState, filter GenFilter) []Move {
	if cs.doubleCheck {
		return dst
	}
	for pieces != 0 {
		from := Square(popLSB(&pieces))
		targets := attacksFrom(from) &^ ownOcc
		for targets != 0 {
			to := Square(popLSB(&targets))
			if !cs.allowed(from, to) {
				continue
			}
			isCapture := p.pieces[to] != NoPiece
			if filter == GenCaptures && !isCapture {
				continue
			}
			if filter == GenQuiets && isCapture {
				continue
			}
			dst = append(dst, NewMove(from, to))
		}
	}
	return dst
}

func (p *Position) genPawnMoves(dst []Move, side Color, occ, oppOcc uint64, cs *checkState, filter GenFilter) []Move {
	if cs.doubleCheck {
		return dst
	}
	us := side
	pawns := p.pawns[us]
	forward := 8
	startRank, promoRank := 1, 7
	if us == Black {
		forward = -8
		startRank, promoRank = 6, 0
	}

	for bbSet := pawns; bbSet != 0; {
		from := Square(popLSB(&bbSet))
		pinMask := cs.pinLine[from]
		isPinned := cs.pinned&bb(from) != 0

		emit := func(to Square) bool {
			if isPinned && pinMask&bb(to) == 0 {
				return false
			}
			return cs.checkMask&bb(to) != 0
		}

		one := Square(int(from) + forward)
		if one >= 0 && one < 64 && occ&bb(one) == 0 {
			if int(one)/8 == promoRank {
				if filter != GenCaptures && emit(one) {
					dst = append(dst,
						NewPromotion(from, one, PromoQueen), NewPromotion(from, one, PromoRook),
						NewPromotion(from, one, PromoBishop), NewPromotion(from, one, PromoKnight))
				}
			} else {
				if filter != GenCaptures && emit(one) {
					dst = append(dst, NewMove(from, one))
				}
				if from.Rank() == startRank {
					two := Square(int(from) + 2*forward)
					if occ&bb(two) == 0 && filter != GenCaptures && emit(two) {
						dst = append(dst, NewMove(from, two))
					}
				}
			}
		}

		caps := pawnAttacks[us][from] & oppOcc
		for caps != 0 {
			to := Square(popLSB(&caps))
			if !emit(to) {
				continue
			}
			if filter == GenQuiets {
				continue
			}
			if int(to)/8 == promoRank {
				dst = append(dst,
					NewPromotion(from, to, PromoQueen), NewPromotion(from, to, PromoRook),
					NewPromotion(from, to, PromoBishop), NewPromotion(from, to, PromoKnight))
			} else {
				dst = append(dst, NewMove(from, to))
			}
		}

		if p.enPassantSquare != NoSquare && filter != GenQuiets {
			ep := p.enPassantSquare
			if pawnAttacks[us][from]&bb(ep) != 0 {
				if p.epLegal(from, ep, us) {
					dst = append(dst, NewEnPassant(from, ep))
				}
			}
		}
	}
	return dst
}

// epLegal simulates the en-passant capture's effect on occupancy and
// re-tests king safety directly, since the standard pin logic doesn't
// account for the captured pawn also vacating the mask (the classic
// horizontal-pin-through-two-pawns edge case).
func (p *Position) epLegal(from, ep Square, us Color) bool {
	capSq := ep - 8
	if us == Black {
		capSq = ep + 8
	}
	ks := p.KingSquare(us)
	if ks == NoSquare {
		return true
	}
	occ := p.AllOccupancy()
	occ &^= bb(from)
	occ &^= bb(capSq)
	occ |= bb(ep)
	return !p.isSquareAttackedWithOcc(ks, us.Opposite(), occ)
}

func (p *Position) genKingMoves(dst []Move, side Color, ownOcc, oppOcc, occ uint64, cs *checkState, filter GenFilter) []Move {
	us := side
	from := p.KingSquare(us)
	if from == NoSquare {
		return dst
	}
	occWithoutKing := occ &^ bb(from)
	targets := kingAttacks[from] &^ ownOcc
	for targets != 0 {
		to := Square(popLSB(&targets))
		isCapture := p.pieces[to] != NoPiece
		if filter == GenCaptures && !isCapture {
			continue
		}
		if filter == GenQuiets && isCapture {
			continue
		}
		if p.isSquareAttackedWithOcc(to, us.Opposite(), occWithoutKing) {
			continue
		}
		dst = append(dst, NewMove(from, to))
	}

	if filter == GenCaptures || cs.inCheck {
		return dst
	}
	dst = p.genCastles(dst, us, occ)
	return dst
}

func (p *Position) genCastles(dst []Move, us Color, occ uint64) []Move {
	them := us.Opposite()
	if us == White {
		if p.castlingRights&CastlingWhiteK != 0 && occ&0x60 == 0 &&
			!p.IsSquareAttacked(4, them) && !p.IsSquareAttacked(5, them) && !p.IsSquareAttacked(6, them) {
			dst = append(dst, NewCastle(4, 6))
		}
		if p.castlingRights&CastlingWhiteQ != 0 && occ&0xE == 0 &&
			!p.IsSquareAttacked(4, them) && !p.IsSquareAttacked(3, them) && !p.IsSquareAttacked(2, them) {
			dst = append(dst, NewCastle(4, 2))
		}
	} else {
		if p.castlingRights&CastlingBlackK != 0 && occ&0x6000000000000000 == 0 &&
			!p.IsSquareAttacked(60, them) && !p.IsSquareAttacked(61, them) && !p.IsSquareAttacked(62, them) {
			dst = append(dst, NewCastle(60, 62))
		}
		if p.castlingRights&CastlingBlackQ != 0 && occ&0xE00000000000000 == 0 &&
			!p.IsSquareAttacked(60, them) && !p.IsSquareAttacked(59, them) && !p.IsSquareAttacked(58, them) {
			dst = append(dst, NewCastle(60, 58))
		}
	}
	return dst
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	return len(p.generateInto(make([]Move, 0, 8), GenAll)) > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (p *Position) InCheckmate() bool {
	return p.InCheck(p.sideToMove) && !p.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (p *Position) InStalemate() bool {
	return !p.InCheck(p.sideToMove) && !p.HasLegalMoves()
}

// Perft counts leaf nodes at the given depth by make/unmake; the last ply
// is counted from the legal move list without making the moves.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		ok, undo := p.MakeMove(m)
		if !ok {
			continue
		}
		nodes += Perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// PerftDivide returns the per-root-move leaf count at depth, for debugging
// move generation against a reference perft tool.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range p.GenerateLegalMoves() {
		ok, undo := p.MakeMove(m)
		if !ok {
			continue
		}
		out[m] = Perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return out
}
