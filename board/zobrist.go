package board

import "math/rand"

var (
	zobristPiece      [15][64]uint64
	zobristCastle     [16]uint64
	zobristEnPassant  [8]uint64
	zobristSide       uint64
)

func init() {
	// Fixed seed so hashes are reproducible across runs.
	rng := rand.New(rand.NewSource(0xC0DE))
	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rng.Uint64()
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rng.Uint64()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.Uint64()
	}
	zobristSide = rng.Uint64()
}

// ComputeZobrist recomputes the hash from scratch using the naive
// en-passant rule: the EP file term is mixed in whenever the EP square is
// set, regardless of whether an EP capture is actually available. This is
// the rule the engine's internal hash uses everywhere except PolyglotHash.
func (p *Position) ComputeZobrist() uint64 {
	var h uint64
	for sq := 0; sq < 64; sq++ {
		if pc := p.pieces[sq]; pc != NoPiece {
			h ^= zobristPiece[pc][sq]
		}
	}
	h ^= zobristCastle[p.castlingRights]
	if p.enPassantSquare != NoSquare {
		h ^= zobristEnPassant[p.enPassantSquare.File()]
	}
	if p.sideToMove == Black {
		h ^= zobristSide
	}
	return h
}

// PolyglotHash computes a Polyglot-style book hash: the same
// piece/castle/side terms as a standard Polyglot key, but the en-passant
// term is included only when a pseudo-legal en-passant capture is actually
// available to the side to move -- book compatibility requires a stricter
// rule than the engine's own internal hash uses. The random tables it mixes
// (polyglot.go) are generated by this repository, so the keys are not
// bit-compatible with third-party Polyglot .bin files.
func (p *Position) PolyglotHash() uint64 {
	var h uint64
	for sq := 0; sq < 64; sq++ {
		if pc := p.pieces[sq]; pc != NoPiece {
			h ^= polyglotPieceKey(pc, sq)
		}
	}
	if p.castlingRights&CastlingWhiteK != 0 {
		h ^= polyglotRandomCastle[0]
	}
	if p.castlingRights&CastlingWhiteQ != 0 {
		h ^= polyglotRandomCastle[1]
	}
	if p.castlingRights&CastlingBlackK != 0 {
		h ^= polyglotRandomCastle[2]
	}
	if p.castlingRights&CastlingBlackQ != 0 {
		h ^= polyglotRandomCastle[3]
	}
	if p.enPassantSquare != NoSquare && p.epCaptureAvailable() {
		h ^= polyglotRandomEnPassant[p.enPassantSquare.File()]
	}
	if p.sideToMove == White {
		h ^= polyglotRandomTurn
	}
	return h
}

// epCaptureAvailable reports whether a pawn of the side to move could
// pseudo-legally capture en passant right now.
func (p *Position) epCaptureAvailable() bool {
	if p.enPassantSquare == NoSquare {
		return false
	}
	us := p.sideToMove
	attackers := pawnAttacks[us.Opposite()][p.enPassantSquare] & p.pawns[us]
	return attackers != 0
}
