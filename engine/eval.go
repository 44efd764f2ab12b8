package engine

import "goosecore/board"

// fileMask/adjacentFileMask/passedMask are precomputed once for the pawn
// structure terms below. rankBelowMask/rankAboveMask back the backward-pawn
// check (no friendly pawn on an adjacent file behind this one).
var fileMask [8]uint64
var adjacentFileMask [8]uint64
var whitePassedMask [64]uint64
var blackPassedMask [64]uint64
var rankBelowMask [8]uint64
var rankAboveMask [8]uint64

func init() {
	for f := 0; f < 8; f++ {
		var m uint64
		for r := 0; r < 8; r++ {
			m |= uint64(1) << uint(r*8+f)
		}
		fileMask[f] = m
	}
	for f := 0; f < 8; f++ {
		var m uint64
		if f > 0 {
			m |= fileMask[f-1]
		}
		if f < 7 {
			m |= fileMask[f+1]
		}
		adjacentFileMask[f] = m
	}
	for r := 0; r < 8; r++ {
		var below, above uint64
		for rr := 0; rr < r; rr++ {
			below |= uint64(0xFF) << uint(rr*8)
		}
		for rr := r + 1; rr < 8; rr++ {
			above |= uint64(0xFF) << uint(rr*8)
		}
		rankBelowMask[r] = below
		rankAboveMask[r] = above
	}
	for sq := 0; sq < 64; sq++ {
		f, r := sq&7, sq>>3
		var wm, bm uint64
		for rr := r + 1; rr < 8; rr++ {
			wm |= uint64(1) << uint(rr*8+f)
			if f > 0 {
				wm |= uint64(1) << uint(rr*8+f-1)
			}
			if f < 7 {
				wm |= uint64(1) << uint(rr*8+f+1)
			}
		}
		for rr := r - 1; rr >= 0; rr-- {
			bm |= uint64(1) << uint(rr*8+f)
			if f > 0 {
				bm |= uint64(1) << uint(rr*8+f-1)
			}
			if f < 7 {
				bm |= uint64(1) << uint(rr*8+f+1)
			}
		}
		whitePassedMask[sq] = wm
		blackPassedMask[sq] = bm
	}
}

// Evaluate returns a tapered static score in centipawns from the
// perspective of the side to move: material, PST, pawn structure, king
// safety, mobility, development, rook-file bonuses, bishop pair and knight
// outposts.
//
// Material and the piece-square tables already carry their own dedicated
// middlegame/endgame weights (pieceValueMG/EG, pstPawnMG/EG, pstKingMG/EG)
// rather than going through the generic halve/amplify recipe below. Every
// other term is computed
// once at full ("middlegame") weight and then tapered explicitly: pawn
// structure and rook-file terms are amplified ×1.5 in the endgame blend,
// while king safety, mobility, development, bishop pair and knight
// outposts are halved.
func Evaluate(p *board.Position) int {
	mg, eg := 0, 0
	phase := 0

	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		bbs := p.Bitboards(c)

		mg += sign * evalPieceSet(bbs.Pawns, board.PieceTypePawn, c, true)
		eg += sign * evalPieceSet(bbs.Pawns, board.PieceTypePawn, c, false)
		mg += sign * evalPieceSet(bbs.Knights, board.PieceTypeKnight, c, true)
		eg += sign * evalPieceSet(bbs.Knights, board.PieceTypeKnight, c, false)
		mg += sign * evalPieceSet(bbs.Bishops, board.PieceTypeBishop, c, true)
		eg += sign * evalPieceSet(bbs.Bishops, board.PieceTypeBishop, c, false)
		mg += sign * evalPieceSet(bbs.Rooks, board.PieceTypeRook, c, true)
		eg += sign * evalPieceSet(bbs.Rooks, board.PieceTypeRook, c, false)
		mg += sign * evalPieceSet(bbs.Queens, board.PieceTypeQueen, c, true)
		eg += sign * evalPieceSet(bbs.Queens, board.PieceTypeQueen, c, false)
		mg += sign * evalPieceSet(bbs.Kings, board.PieceTypeKing, c, true)
		eg += sign * evalPieceSet(bbs.Kings, board.PieceTypeKing, c, false)

		phase += phaseWeight[board.PieceTypeKnight] * popcount(bbs.Knights)
		phase += phaseWeight[board.PieceTypeBishop] * popcount(bbs.Bishops)
		phase += phaseWeight[board.PieceTypeRook] * popcount(bbs.Rooks)
		phase += phaseWeight[board.PieceTypeQueen] * popcount(bbs.Queens)

		pawnStructure := evalPawnStructure(p, c)
		mg += sign * pawnStructure
		eg += sign * pawnStructure * 3 / 2

		kingSafety := evalKingSafety(p, c)
		mg += sign * kingSafety
		eg += sign * kingSafety / 2

		mobility := evalMobility(p, c)
		mg += sign * mobility
		eg += sign * mobility / 2

		development := evalDevelopment(p, c)
		mg += sign * development
		eg += sign * development / 2

		rookFiles := evalRookFiles(p, c)
		mg += sign * rookFiles
		eg += sign * rookFiles * 3 / 2

		bishopPair := 0
		if popcount(bbs.Bishops) >= 2 {
			bishopPair = 30
		}
		mg += sign * bishopPair
		eg += sign * bishopPair / 2

		knightOutposts := evalKnightOutposts(p, c)
		mg += sign * knightOutposts
		eg += sign * knightOutposts / 2
	}

	if phase > 24 {
		phase = 24
	}
	scaledPhase := (phase*256 + 12) / 24
	score := (mg*scaledPhase + eg*(256-scaledPhase)) / 256

	if p.SideToMove() == board.Black {
		score = -score
	}
	return score
}

func evalPieceSet(bbs uint64, pt board.PieceType, c board.Color, mg bool) int {
	total := 0
	value := pieceValueEG[pt]
	if mg {
		value = pieceValueMG[pt]
	}
	set := bbs
	for set != 0 {
		sq := board.Square(popLSBLocal(&set))
		total += value + pstValue(pt, c, sq, mg)
	}
	return total
}

func popLSBLocal(m *uint64) int {
	sq := trailingZeros(*m)
	*m &= *m - 1
	return sq
}

// evalPawnStructure scores doubled, isolated, passed, backward, and
// pawn-chain terms for one side at full ("middlegame") weight; Evaluate
// amplifies this ×1.5 for the endgame blend.
func evalPawnStructure(p *board.Position, c board.Color) int {
	pawns := p.Bitboards(c).Pawns
	oppPawns := p.Bitboards(c.Opposite()).Pawns
	score := 0

	for f := 0; f < 8; f++ {
		count := popcount(pawns & fileMask[f])
		if count > 1 {
			score -= 10 * (count - 1)
		}
		if count > 0 && pawns&adjacentFileMask[f] == 0 {
			score -= 15 * count
		}
	}

	set := pawns
	for set != 0 {
		sq := board.Square(popLSBLocal(&set))
		f, r := sq.File(), sq.Rank()

		passedMask := whitePassedMask[sq]
		behindMask := adjacentFileMask[f] & rankBelowMask[r]
		if c == board.Black {
			passedMask = blackPassedMask[sq]
			behindMask = adjacentFileMask[f] & rankAboveMask[r]
		}
		passed := passedMask&oppPawns == 0

		if passed {
			rank := r
			if c == board.Black {
				rank = 7 - rank
			}
			score += 20 + rank*rank
		} else if pawns&behindMask == 0 {
			score -= 12
		}

		if board.PawnAttacks(c.Opposite(), sq)&pawns != 0 {
			score += 5
		}
	}
	return score
}

// evalKingSafety scores the pawn shield in front of the king plus an
// open-file-near-king penalty, at full weight; Evaluate halves this for
// the endgame blend since kings want activity rather than shelter once
// material thins out.
func evalKingSafety(p *board.Position, c board.Color) int {
	ks := p.KingSquare(c)
	if ks == board.NoSquare {
		return 0
	}
	pawns := p.Bitboards(c).Pawns
	oppPawns := p.Bitboards(c.Opposite()).Pawns
	kf, kr := ks.File(), ks.Rank()
	dir := 1
	if c == board.Black {
		dir = -1
	}

	score := 0
	for _, f := range [3]int{kf - 1, kf, kf + 1} {
		if f < 0 || f > 7 {
			continue
		}
		r1, r2 := kr+dir, kr+2*dir
		switch {
		case r1 >= 0 && r1 <= 7 && pawns&(uint64(1)<<uint(r1*8+f)) != 0:
			score += 10
		case r2 >= 0 && r2 <= 7 && pawns&(uint64(1)<<uint(r2*8+f)) != 0:
			score += 5
		}
		if pawns&fileMask[f] == 0 && oppPawns&fileMask[f] == 0 {
			score -= 20
		}
	}
	return score
}

// evalMobility awards a flat 2 centipawns per attacked, non-own-occupied
// destination square for knights, bishops, rooks and queens, at full
// weight; Evaluate halves this for the endgame blend.
func evalMobility(p *board.Position, c board.Color) int {
	occ := p.AllOccupancy()
	own := p.ColorOccupancy(c)
	bbs := p.Bitboards(c)
	total := 0

	set := bbs.Knights
	for set != 0 {
		sq := board.Square(popLSBLocal(&set))
		total += popcount(board.KnightAttacks(sq) &^ own)
	}
	set = bbs.Bishops
	for set != 0 {
		sq := board.Square(popLSBLocal(&set))
		total += popcount(board.BishopAttacks(sq, occ) &^ own)
	}
	set = bbs.Rooks
	for set != 0 {
		sq := board.Square(popLSBLocal(&set))
		total += popcount(board.RookAttacks(sq, occ) &^ own)
	}
	set = bbs.Queens
	for set != 0 {
		sq := board.Square(popLSBLocal(&set))
		total += popcount(board.QueenAttacks(sq, occ) &^ own)
	}
	return total * 2
}

// developmentHomeSquares returns this color's starting squares for
// knights, bishops, rooks and the queen, plus the two castled king
// squares and the two central pawn squares development rewards, all as
// bitboards indexed by piece role.
func developmentHomeSquares(c board.Color) (knight, bishop, rook, queen, castledKing, centerPawns uint64) {
	if c == board.White {
		knight = uint64(1)<<1 | uint64(1)<<6
		bishop = uint64(1)<<2 | uint64(1)<<5
		rook = uint64(1)<<0 | uint64(1)<<7
		queen = uint64(1) << 3
		castledKing = uint64(1)<<6 | uint64(1)<<2
		centerPawns = uint64(1)<<27 | uint64(1)<<28 // d4, e4
		return
	}
	knight = uint64(1)<<57 | uint64(1)<<62
	bishop = uint64(1)<<58 | uint64(1)<<61
	rook = uint64(1)<<56 | uint64(1)<<63
	queen = uint64(1) << 59
	castledKing = uint64(1)<<62 | uint64(1)<<58
	centerPawns = uint64(1)<<35 | uint64(1)<<36 // d5, e5
	return
}

// evalDevelopment scores minor/rook home-square penalties, an early queen
// sortie penalty, a castling bonus, and a central-pawn bonus, at full
// weight; Evaluate halves this for the endgame blend as a positional term.
func evalDevelopment(p *board.Position, c board.Color) int {
	knightHome, bishopHome, rookHome, queenHome, castledKing, centerPawns := developmentHomeSquares(c)
	bbs := p.Bitboards(c)

	knightsHome := popcount(bbs.Knights & knightHome)
	bishopsHome := popcount(bbs.Bishops & bishopHome)
	rooksHome := popcount(bbs.Rooks & rookHome)

	score := -20*knightsHome - 15*bishopsHome - 5*rooksHome

	developedMinors := popcount(bbs.Knights|bbs.Bishops) - knightsHome - bishopsHome
	if bbs.Queens != 0 && bbs.Queens&queenHome == 0 && developedMinors < 2 {
		score -= 30
	}

	if ks := p.KingSquare(c); ks != board.NoSquare && (uint64(1)<<uint(ks))&castledKing != 0 {
		score += 40
	}

	score += 50 * popcount(bbs.Pawns&centerPawns)
	return score
}

// evalRookFiles scores a rook on an open or semi-open file plus a bonus
// for standing on the relative seventh rank, at full weight; Evaluate
// amplifies this ×1.5 for the endgame blend, where rook activity along
// open files matters even more.
func evalRookFiles(p *board.Position, c board.Color) int {
	own := p.Bitboards(c).Pawns
	opp := p.Bitboards(c.Opposite()).Pawns
	rooks := p.Bitboards(c).Rooks
	seventhRank := 6
	if c == board.Black {
		seventhRank = 1
	}
	score := 0
	set := rooks
	for set != 0 {
		sq := board.Square(popLSBLocal(&set))
		f := sq.File()
		if own&fileMask[f] == 0 {
			if opp&fileMask[f] == 0 {
				score += 25
			} else {
				score += 15
			}
		}
		if sq.Rank() == seventhRank {
			score += 20
		}
	}
	return score
}

// evalKnightOutposts bonuses a knight defended by a pawn and immune to
// enemy pawn challenge, worth more on the central files, at full weight;
// Evaluate halves this for the endgame blend as a positional term.
func evalKnightOutposts(p *board.Position, c board.Color) int {
	knights := p.Bitboards(c).Knights
	ownPawns := p.Bitboards(c).Pawns
	oppPawns := p.Bitboards(c.Opposite()).Pawns
	score := 0
	set := knights
	for set != 0 {
		sq := board.Square(popLSBLocal(&set))
		challengeMask := whitePassedMask[sq]
		if c == board.Black {
			challengeMask = blackPassedMask[sq]
		}
		rank := sq.Rank()
		if c == board.Black {
			rank = 7 - rank
		}
		onOutpostRank := rank >= 3 && rank <= 5

		defended := board.PawnAttacks(c.Opposite(), sq)&ownPawns != 0
		safe := challengeMask&oppPawns == 0
		if defended && safe && onOutpostRank {
			f := sq.File()
			bonus := 25
			if f >= 2 && f <= 5 {
				bonus += 10
			}
			score += bonus
		}
	}
	return score
}
