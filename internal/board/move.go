package board

import "fmt"

// Move describes a single ply with named fields rather than a packed
// integer. Two moves are the same ply iff every field matches, so plain
// struct equality works and promotions to different pieces stay distinct.
type Move struct {
	From      Square
	To        Square
	Piece     Piece
	Promotion PieceType // NoPieceType unless the move promotes

	Capture    bool
	DoublePush bool
	EnPassant  bool
	Castling   bool
}

// NoMove is the zero Move; no legal move has From == To.
var NoMove = Move{Promotion: NoPieceType}

// IsNone returns true for the absent-move sentinel.
func (m Move) IsNone() bool {
	return m.From == m.To
}

// NewMove creates a normal move (quiet or capture).
func NewMove(pc Piece, from, to Square, capture bool) Move {
	return Move{From: from, To: to, Piece: pc, Promotion: NoPieceType, Capture: capture}
}

// NewDoublePush creates a two-square pawn advance.
func NewDoublePush(pc Piece, from, to Square) Move {
	return Move{From: from, To: to, Piece: pc, Promotion: NoPieceType, DoublePush: true}
}

// NewPromotion creates a promotion move.
func NewPromotion(pc Piece, from, to Square, promo PieceType, capture bool) Move {
	return Move{From: from, To: to, Piece: pc, Promotion: promo, Capture: capture}
}

// NewEnPassant creates an en passant capture.
func NewEnPassant(pc Piece, from, to Square) Move {
	return Move{From: from, To: to, Piece: pc, Promotion: NoPieceType, Capture: true, EnPassant: true}
}

// NewCastling creates a castling move (the king's movement).
func NewCastling(pc Piece, from, to Square) Move {
	return Move{From: from, To: to, Piece: pc, Promotion: NoPieceType, Castling: true}
}

// IsPromotion returns true if this move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceType
}

// String returns the UCI coordinate form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}

	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(m.Promotion.Char())
	}
	return s
}

// ParseMove resolves a 4-or-5-character coordinate string against the
// position's legal moves. This is the boundary format spoken by UCI
// engines; flags (capture, castling, en passant) are recovered from the
// generated move rather than trusted from the caller.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	promo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
	}

	m, ok := pos.GenerateLegalMoves().Search(from, to, promo)
	if !ok {
		return NoMove, fmt.Errorf("no legal move %s in position", s)
	}
	return m, nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Search finds the move matching source, target and promotion piece
// (NoPieceType for none). Used to resolve coordinate strings reported by
// an external engine into fully flagged moves.
func (ml *MoveList) Search(from, to Square, promo PieceType) (Move, bool) {
	for i := 0; i < ml.count; i++ {
		m := ml.moves[i]
		if m.From == from && m.To == to && m.Promotion == promo {
			return m, true
		}
	}
	return NoMove, false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
