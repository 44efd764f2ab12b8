// Package book implements opening-book lookup: an in-memory Polyglot reader
// plus an optional persistent learned-book store backed by Badger for moves
// the engine accumulates weight for as it plays.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"goosecore/board"
)

// Entry is one candidate move at a position, with its book weight.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// Book is an in-memory Polyglot-format opening book, keyed by the
// PolyglotHash of the positions it was built from.
type Book struct {
	entries map[uint64][]Entry
}

// New returns an empty book.
func New() *Book {
	return &Book{entries: make(map[uint64][]Entry)}
}

// LoadPolyglot reads a Polyglot .bin file from disk.
func LoadPolyglot(filename string) (*Book, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPolyglotReader(f)
}

// LoadPolyglotReader reads 16-byte Polyglot entries from r until EOF: an
// 8-byte big-endian position key, 2-byte move, 2-byte weight, and 4 bytes of
// learn data this reader ignores.
func LoadPolyglotReader(r io.Reader) (*Book, error) {
	b := New()
	var raw [16]byte
	for {
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		key := binary.BigEndian.Uint64(raw[0:8])
		moveData := binary.BigEndian.Uint16(raw[8:10])
		weight := binary.BigEndian.Uint16(raw[10:12])

		m, ok := decodePolyglotMove(moveData)
		if !ok {
			continue
		}
		b.entries[key] = append(b.entries[key], Entry{Move: m, Weight: weight})
	}
	return b, nil
}

// decodePolyglotMove converts Polyglot's 16-bit move encoding (to: bits
// 0-5, from: bits 6-11, promo: bits 12-14) into a board.Move. Polyglot
// encodes castling as king-takes-own-rook; since board.Move's castle kind
// is encoded by king destination, the to-square is remapped to the king's
// actual landing square before building the move.
func decodePolyglotMove(data uint16) (board.Move, bool) {
	toFile := int(data & 7)
	toRank := int((data >> 3) & 7)
	fromFile := int((data >> 6) & 7)
	fromRank := int((data >> 9) & 7)
	promo := int((data >> 12) & 7)

	from := board.Square(fromRank*8 + fromFile)
	to := board.Square(toRank*8 + toFile)
	if from == 4 && to == 7 {
		return board.NewCastle(from, 6), true // e1-h1 -> e1g1
	}
	if from == 4 && to == 0 {
		return board.NewCastle(from, 2), true // e1-a1 -> e1c1
	}
	if from == 60 && to == 63 {
		return board.NewCastle(from, 62), true // e8-h8 -> e8g8
	}
	if from == 60 && to == 56 {
		return board.NewCastle(from, 58), true // e8-a8 -> e8c8
	}

	if promo > 0 {
		promoCodes := [5]int{0, board.PromoKnight, board.PromoBishop, board.PromoRook, board.PromoQueen}
		if promo < 1 || promo > 4 {
			return board.NullMove, false
		}
		return board.NewPromotion(from, to, promoCodes[promo]), true
	}
	return board.NewMove(from, to), true
}

// Probe returns a single move chosen by weighted random selection among the
// book entries for pos, with flags recovered against the legal move list.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	if b == nil {
		return board.NullMove, false
	}
	entries := b.entries[pos.PolyglotHash()]
	if len(entries) == 0 {
		return board.NullMove, false
	}

	total := uint32(0)
	for _, e := range entries {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return verifyAndConvert(pos, entries[0].Move)
	}

	r := uint32(rand.Int63n(int64(total)))
	cumulative := uint32(0)
	for _, e := range entries {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return verifyAndConvert(pos, e.Move)
		}
	}
	return verifyAndConvert(pos, entries[len(entries)-1].Move)
}

// ProbeAll returns every book entry for pos, sorted by descending weight.
func (b *Book) ProbeAll(pos *board.Position) []Entry {
	if b == nil {
		return nil
	}
	entries := b.entries[pos.PolyglotHash()]
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out
}

// verifyAndConvert matches a Polyglot-decoded move against the legal move
// list so castling/en-passant/promotion flags are exactly right rather than
// guessed, the way board.ParseMove recovers flags from UCI text.
func verifyAndConvert(pos *board.Position, m board.Move) (board.Move, bool) {
	from, to := m.From(), m.To()
	for _, lm := range pos.GenerateLegalMoves() {
		if lm.From() != from || lm.To() != to {
			continue
		}
		if m.IsPromotion() != lm.IsPromotion() {
			continue
		}
		if m.IsPromotion() && m.PromotionCode() != lm.PromotionCode() {
			continue
		}
		return lm, true
	}
	return board.NullMove, false
}

// Size reports the number of distinct positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
