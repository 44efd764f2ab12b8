package engine

import "goosecore/board"

// pieceValueMG/EG hold the middlegame/endgame material weights used by the
// tapered evaluator.
var pieceValueMG = [7]int{
	board.PieceTypeNone:   0,
	board.PieceTypePawn:   100,
	board.PieceTypeKnight: 320,
	board.PieceTypeBishop: 330,
	board.PieceTypeRook:   500,
	board.PieceTypeQueen:  900,
	board.PieceTypeKing:   0,
}

var pieceValueEG = [7]int{
	board.PieceTypeNone:   0,
	board.PieceTypePawn:   120,
	board.PieceTypeKnight: 300,
	board.PieceTypeBishop: 320,
	board.PieceTypeRook:   520,
	board.PieceTypeQueen:  920,
	board.PieceTypeKing:   0,
}

// phaseWeight contributes to the game-phase counter used for tapering;
// pawns and kings don't count. Total starting phase is 24 (clamped to
// [0,24], scaled to [0,256]).
var phaseWeight = [7]int{
	board.PieceTypeKnight: 1,
	board.PieceTypeBishop: 1,
	board.PieceTypeRook:   2,
	board.PieceTypeQueen:  4,
}
