package board

// Move is a move encoded in 16 bits: from (bits 0-5), to (bits 6-11),
// promotion piece (bits 12-13, meaningful only when Kind()==Promotion), and
// a special-move kind (bits 14-15). The moved/captured piece is derived
// from the Position at apply time instead of stored redundantly in the
// move itself.
type Move uint16

const (
	moveFromShift  = 0
	moveToShift    = 6
	movePromoShift = 12
	moveKindShift  = 14
	moveFromMask   = 0x3F
	moveToMask     = 0x3F
	movePromoMask  = 0x3
	moveKindMask   = 0x3
)

// Special-move kinds.
const (
	KindNormal Move = iota
	KindPromotion
	KindEnPassant
	KindCastle
)

// Promotion piece codes, valid only when Kind()==KindPromotion.
const (
	PromoKnight = 0
	PromoBishop = 1
	PromoRook   = 2
	PromoQueen  = 3
)

// NullMove is the encoded null move (from==to==a1, kind normal), used only
// as a sentinel; the engine's actual null-move search does not pass this
// through move-application code.
const NullMove Move = 0

// NewMove builds a normal (non-special) move.
func NewMove(from, to Square) Move {
	return Move(from&moveFromMask)<<moveFromShift | Move(to&moveToMask)<<moveToShift
}

// NewPromotion builds a promotion move; promo is one of the Promo* constants.
func NewPromotion(from, to Square, promo int) Move {
	return NewMove(from, to) | Move(promo&movePromoMask)<<movePromoShift | KindPromotion<<moveKindShift
}

// NewEnPassant builds an en-passant capture move.
func NewEnPassant(from, to Square) Move {
	return NewMove(from, to) | KindEnPassant<<moveKindShift
}

// NewCastle builds a castling move (from/to are the king's squares).
func NewCastle(from, to Square) Move {
	return NewMove(from, to) | KindCastle<<moveKindShift
}

func (m Move) From() Square { return Square((m >> moveFromShift) & moveFromMask) }
func (m Move) To() Square   { return Square((m >> moveToShift) & moveToMask) }
func (m Move) Kind() Move   { return (m >> moveKindShift) & moveKindMask }
func (m Move) PromotionCode() int { return int((m >> movePromoShift) & movePromoMask) }

// IsPromotion, IsEnPassant, IsCastle are convenience predicates over Kind().
func (m Move) IsPromotion() bool { return m.Kind() == KindPromotion }
func (m Move) IsEnPassant() bool { return m.Kind() == KindEnPassant }
func (m Move) IsCastle() bool    { return m.Kind() == KindCastle }

// PromotionPieceType maps the 2-bit promotion code to a PieceType.
func (m Move) PromotionPieceType() PieceType {
	if !m.IsPromotion() {
		return PieceTypeNone
	}
	switch m.PromotionCode() {
	case PromoKnight:
		return PieceTypeKnight
	case PromoBishop:
		return PieceTypeBishop
	case PromoRook:
		return PieceTypeRook
	default:
		return PieceTypeQueen
	}
}

var promoChar = [4]byte{'n', 'b', 'r', 'q'}

// String renders long algebraic notation: "e2e4", "e7e8q", or "0000" for
// the null move.
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(promoChar[m.PromotionCode()])
	}
	return s
}
