package board

// Undo captures everything needed to reverse MakeMove without recomputing
// derived state: castling rights, en-passant square, halfmove clock and the
// captured piece (if any) are restored by copy, since recomputing
// zobrist/derived fields on unmake is both slower and a needless second
// source of truth.
type Undo struct {
	move            Move
	captured        Piece
	castlingRights  CastlingRights
	enPassantSquare Square
	halfmoveClock   int
	zobristKey      uint64
}

// castleRightsLost maps a square to the castling-rights bits that must be
// cleared when a piece moves from or to it (king start squares clear both
// rights for that side; rook start squares clear the corresponding side).
func castleRightsLost(sq Square) CastlingRights {
	switch sq {
	case 4: // e1
		return CastlingWhiteK | CastlingWhiteQ
	case 60: // e8
		return CastlingBlackK | CastlingBlackQ
	case 7: // h1
		return CastlingWhiteK
	case 0: // a1
		return CastlingWhiteQ
	case 63: // h8
		return CastlingBlackK
	case 56: // a8
		return CastlingBlackQ
	default:
		return 0
	}
}

// MakeMove applies m and returns false, restoring the board, if it leaves
// the mover's own king in check (i.e. m was not actually legal). The seven
// steps are: snapshot undo state, move the piece (handling
// capture/EP/castle/promotion), update castling rights, update the
// en-passant square, update clocks, toggle side to move, then verify the
// mover's king is safe.
func (p *Position) MakeMove(m Move) (ok bool, undo Undo) {
	undo = Undo{
		move:            m,
		castlingRights:  p.castlingRights,
		enPassantSquare: p.enPassantSquare,
		halfmoveClock:   p.halfmoveClock,
		zobristKey:      p.zobristKey,
	}

	from, to := m.From(), m.To()
	us := p.sideToMove
	moving := p.pieces[from]

	// Clear old EP hash term before recomputing it.
	if p.enPassantSquare != NoSquare {
		p.zobristKey ^= zobristEnPassant[p.enPassantSquare.File()]
	}
	newEP := NoSquare

	isCaptureOrPawnMove := typeOf(moving) == 1

	switch m.Kind() {
	case KindEnPassant:
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		undo.captured = p.removePiece(capSq)
		p.removePiece(from)
		p.addPiece(to, moving)
		isCaptureOrPawnMove = true

	case KindCastle:
		undo.captured = NoPiece
		p.removePiece(from)
		p.addPiece(to, moving)
		var rookFrom, rookTo Square
		switch to {
		case 6: // e1g1
			rookFrom, rookTo = 7, 5
		case 2: // e1c1
			rookFrom, rookTo = 0, 3
		case 62: // e8g8
			rookFrom, rookTo = 63, 61
		case 58: // e8c8
			rookFrom, rookTo = 56, 59
		}
		rook := p.removePiece(rookFrom)
		p.addPiece(rookTo, rook)

	case KindPromotion:
		undo.captured = p.removePiece(to)
		p.removePiece(from)
		p.addPiece(to, PieceFromType(us, m.PromotionPieceType()))
		isCaptureOrPawnMove = true

	default: // KindNormal
		undo.captured = p.removePiece(to)
		p.removePiece(from)
		p.addPiece(to, moving)
		if undo.captured != NoPiece {
			isCaptureOrPawnMove = true
		}
		if typeOf(moving) == 1 && abs(int(to)-int(from)) == 16 {
			newEP = (from + to) / 2
		}
	}

	// Castling rights: clear whatever the from/to squares invalidate.
	p.zobristKey ^= zobristCastle[p.castlingRights]
	p.castlingRights &^= castleRightsLost(from) | castleRightsLost(to)
	p.zobristKey ^= zobristCastle[p.castlingRights]

	p.enPassantSquare = newEP
	if newEP != NoSquare {
		p.zobristKey ^= zobristEnPassant[newEP.File()]
	}

	if isCaptureOrPawnMove {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if us == Black {
		p.fullmoveNumber++
	}

	p.sideToMove = us.Opposite()
	p.zobristKey ^= zobristSide

	if p.InCheck(us) {
		p.UnmakeMove(m, undo)
		return false, undo
	}
	return true, undo
}

// UnmakeMove restores the position to exactly the state before MakeMove(m)
// was called, using the snapshot in undo rather than recomputing derived
// fields.
func (p *Position) UnmakeMove(m Move, undo Undo) {
	p.sideToMove = p.sideToMove.Opposite()
	us := p.sideToMove
	from, to := m.From(), m.To()

	switch m.Kind() {
	case KindEnPassant:
		moving := p.removePiece(to)
		p.addPiece(from, moving)
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		p.addPiece(capSq, undo.captured)

	case KindCastle:
		king := p.removePiece(to)
		p.addPiece(from, king)
		var rookFrom, rookTo Square
		switch to {
		case 6:
			rookFrom, rookTo = 7, 5
		case 2:
			rookFrom, rookTo = 0, 3
		case 62:
			rookFrom, rookTo = 63, 61
		case 58:
			rookFrom, rookTo = 56, 59
		}
		rook := p.removePiece(rookTo)
		p.addPiece(rookFrom, rook)

	case KindPromotion:
		p.removePiece(to)
		p.addPiece(from, PieceFromType(us, PieceTypePawn))
		if undo.captured != NoPiece {
			p.addPiece(to, undo.captured)
		}

	default:
		moving := p.removePiece(to)
		p.addPiece(from, moving)
		if undo.captured != NoPiece {
			p.addPiece(to, undo.captured)
		}
	}

	p.castlingRights = undo.castlingRights
	p.enPassantSquare = undo.enPassantSquare
	p.halfmoveClock = undo.halfmoveClock
	if us == Black {
		p.fullmoveNumber--
	}
	p.zobristKey = undo.zobristKey
}

// MakeNullMove toggles side to move and clears the en-passant square,
// without moving any piece, for null-move pruning in search.
func (p *Position) MakeNullMove() Undo {
	undo := Undo{
		enPassantSquare: p.enPassantSquare,
		halfmoveClock:   p.halfmoveClock,
		zobristKey:      p.zobristKey,
	}
	if p.enPassantSquare != NoSquare {
		p.zobristKey ^= zobristEnPassant[p.enPassantSquare.File()]
		p.enPassantSquare = NoSquare
	}
	p.sideToMove = p.sideToMove.Opposite()
	p.zobristKey ^= zobristSide
	p.halfmoveClock++
	return undo
}

// UnmakeNullMove reverses MakeNullMove.
func (p *Position) UnmakeNullMove(undo Undo) {
	p.sideToMove = p.sideToMove.Opposite()
	p.enPassantSquare = undo.enPassantSquare
	p.halfmoveClock = undo.halfmoveClock
	p.zobristKey = undo.zobristKey
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
