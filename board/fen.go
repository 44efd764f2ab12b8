package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the standard starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceFromChar = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

var charFromPiece = map[Piece]byte{
	WhitePawn: 'P', WhiteKnight: 'N', WhiteBishop: 'B', WhiteRook: 'R', WhiteQueen: 'Q', WhiteKing: 'K',
	BlackPawn: 'p', BlackKnight: 'n', BlackBishop: 'b', BlackRook: 'r', BlackQueen: 'q', BlackKing: 'k',
}

// ErrInvalidFEN is wrapped with a specific reason by ParseFEN on malformed input.
var ErrInvalidFEN = errors.New("board: invalid FEN")

// ParseFEN parses the six standard FEN fields into a Position: piece
// placement, side to move, castling availability, en-passant target,
// halfmove clock, fullmove number.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: expected 6 fields, got %d", ErrInvalidFEN, len(fields))
	}

	p := &Position{enPassantSquare: NoSquare}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc, ok := pieceFromChar[ch]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece char %q", ErrInvalidFEN, ch)
			}
			if file > 7 {
				return nil, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, rank+1)
			}
			p.SetPiece(Square(sqOf(file, rank)), pc)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d files, want 8", ErrInvalidFEN, rank+1, file)
		}
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.castlingRights |= CastlingWhiteK
			case 'Q':
				p.castlingRights |= CastlingWhiteQ
			case 'k':
				p.castlingRights |= CastlingBlackK
			case 'q':
				p.castlingRights |= CastlingBlackQ
			default:
				return nil, fmt.Errorf("%w: bad castling char %q", ErrInvalidFEN, ch)
			}
		}
	}

	if fields[3] != "-" {
		if len(fields[3]) != 2 {
			return nil, fmt.Errorf("%w: bad en-passant square %q", ErrInvalidFEN, fields[3])
		}
		file := int(fields[3][0] - 'a')
		rank := int(fields[3][1] - '1')
		if file < 0 || file > 7 || rank < 0 || rank > 7 {
			return nil, fmt.Errorf("%w: en-passant square out of range %q", ErrInvalidFEN, fields[3])
		}
		p.enPassantSquare = Square(sqOf(file, rank))
	}

	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 {
		return nil, fmt.Errorf("%w: bad halfmove clock %q", ErrInvalidFEN, fields[4])
	}
	p.halfmoveClock = half

	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		return nil, fmt.Errorf("%w: bad fullmove number %q", ErrInvalidFEN, fields[5])
	}
	p.fullmoveNumber = full

	p.zobristKey = p.ComputeZobrist()
	return p, nil
}

// ToFEN renders the position back to the six-field FEN string.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.pieces[sqOf(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(charFromPiece[pc])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.castlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.castlingRights&CastlingWhiteK != 0 {
			sb.WriteByte('K')
		}
		if p.castlingRights&CastlingWhiteQ != 0 {
			sb.WriteByte('Q')
		}
		if p.castlingRights&CastlingBlackK != 0 {
			sb.WriteByte('k')
		}
		if p.castlingRights&CastlingBlackQ != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.enPassantSquare.String())

	fmt.Fprintf(&sb, " %d %d", p.halfmoveClock, p.fullmoveNumber)
	return sb.String()
}

// ParseMove converts a long-algebraic move string ("e2e4", "e7e8q", "0000")
// into a Move by cross-checking it against the legal move list, so that
// castling/en-passant/promotion flags are always recovered correctly rather
// than guessed from the text alone.
func (p *Position) ParseMove(text string) (Move, error) {
	if text == "0000" {
		return NullMove, nil
	}
	if len(text) < 4 || len(text) > 5 {
		return 0, fmt.Errorf("%w: malformed move text %q", ErrInvalidFEN, text)
	}
	from, err := parseSquare(text[0:2])
	if err != nil {
		return 0, err
	}
	to, err := parseSquare(text[2:4])
	if err != nil {
		return 0, err
	}
	var promo PieceType
	if len(text) == 5 {
		switch text[4] {
		case 'n':
			promo = PieceTypeKnight
		case 'b':
			promo = PieceTypeBishop
		case 'r':
			promo = PieceTypeRook
		case 'q':
			promo = PieceTypeQueen
		default:
			return 0, fmt.Errorf("%w: bad promotion char %q", ErrInvalidFEN, text[4:])
		}
	}

	for _, m := range p.GenerateLegalMoves() {
		if m.From() != from || m.To() != to {
			continue
		}
		if promo != PieceTypeNone && (!m.IsPromotion() || m.PromotionPieceType() != promo) {
			continue
		}
		if promo == PieceTypeNone && m.IsPromotion() {
			continue
		}
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q is not a legal move", ErrInvalidFEN, text)
}

func parseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: bad square %q", ErrInvalidFEN, s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("%w: bad square %q", ErrInvalidFEN, s)
	}
	return Square(sqOf(file, rank)), nil
}
