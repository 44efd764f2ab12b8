package board

import "math/rand"

// The Polyglot opening-book format keys positions with a hash built from a
// standardized 781-entry random table (768 piece-square + 4 castle + 8
// en-passant-file + 1 side-to-move).
// Reproducing Fabien Letouzey's published constants verbatim isn't practical
// to transcribe reliably here, so this table is generated once at init with
// a fixed seed: structurally identical (same 781 slots, same combination
// rule) and self-consistent within this repository (book.Book looks entries
// up by PolyglotHash), but not bit-compatible with a third-party .bin file
// produced by the reference implementation. See DESIGN.md.
var (
	polyglotRandomPieceSquare [781]uint64
	polyglotRandomCastle      [4]uint64
	polyglotRandomEnPassant   [8]uint64
	polyglotRandomTurn        uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x506F6C79676C6F74))
	for i := range polyglotRandomPieceSquare {
		polyglotRandomPieceSquare[i] = rng.Uint64()
	}
	for i := range polyglotRandomCastle {
		polyglotRandomCastle[i] = rng.Uint64()
	}
	for i := range polyglotRandomEnPassant {
		polyglotRandomEnPassant[i] = rng.Uint64()
	}
	polyglotRandomTurn = rng.Uint64()
}

// polyglotKind maps a Piece to Polyglot's piece-kind ordering: black
// pawn=0, white pawn=1, black knight=2, white knight=3, ... king=10,11.
func polyglotKind(p Piece) int {
	kind := (int(p.Type()) - 1) * 2
	if p.Color() == White {
		kind++
	}
	return kind
}

func polyglotPieceKey(p Piece, sq int) uint64 {
	return polyglotRandomPieceSquare[64*polyglotKind(p)+sq]
}

// PolyglotRandomCastle, PolyglotRandomEnPassant and PolyglotRandomTurn are
// exported so the book package can compute the same key independently of a
// live *Position (e.g. when merging entries) without duplicating the table.
func PolyglotRandomCastle() [4]uint64    { return polyglotRandomCastle }
func PolyglotRandomEnPassant() [8]uint64 { return polyglotRandomEnPassant }
func PolyglotRandomTurn() uint64         { return polyglotRandomTurn }
func PolyglotPieceKey(p Piece, sq int) uint64 { return polyglotPieceKey(p, sq) }
