package board

// MoveFlag selects which kinds of moves Make will apply.
type MoveFlag uint8

const (
	// AllMoves applies any pseudo-legal move.
	AllMoves MoveFlag = iota
	// CapturesOnly rejects quiet moves without touching the position.
	CapturesOnly
)

// MakeMove applies a pseudo-legal move and reports whether the result is
// legal. Shorthand for Make(m, AllMoves).
func (p *Position) MakeMove(m Move) bool {
	return p.Make(m, AllMoves)
}

// Make applies a pseudo-legal move to the position, updating every piece
// of derived state: bitboards, occupancy, castling rights, en passant
// target, move clocks, side to move and both Zobrist hashes. The hash
// updates are incremental XORs equivalent to recomputing from scratch.
//
// The return value is the legality verdict: false means the mover's king
// is attacked in the resulting position (or the move was rejected by the
// flag / did not match the board). Illegality is an expected outcome,
// not an error. A position left behind by a false verdict from an
// applied move is inconsistent; callers are expected to operate on a
// disposable copy and discard it.
func (p *Position) Make(m Move, flag MoveFlag) bool {
	if flag == CapturesOnly && !m.Capture {
		return false
	}

	us := p.SideToMove
	them := us.Other()
	from, to := m.From, m.To
	pt := m.Piece.Type()

	// The move must name the piece actually standing on its source
	// square; anything else is a bug in the caller, not a chess matter.
	if m.Piece.Color() != us || p.PieceAt(from) != m.Piece {
		return false
	}

	// Retire the old castling-rights and en passant hash contributions.
	p.hashCastling()
	if p.EnPassant != NoSquare {
		p.hashEnPassant(p.EnPassant.File())
	}
	p.EnPassant = NoSquare

	// Captures. The captured piece is read off the board rather than
	// trusted from the move's flags.
	captured := NoPiece
	if m.EnPassant {
		var capturedSq Square
		if us == White {
			capturedSq = to - 8
		} else {
			capturedSq = to + 8
		}
		captured = p.removePiece(capturedSq)
		p.hashPiece(them, Pawn, capturedSq)
	} else if victim := p.PieceAt(to); victim != NoPiece {
		captured = victim
		p.removePiece(to)
		p.hashPiece(them, victim.Type(), to)
	}

	// Move the piece.
	p.movePiece(m.Piece, from, to)
	p.hashPiece(us, pt, from)
	p.hashPiece(us, pt, to)

	// Promotion: the pawn that just arrived becomes the promoted piece.
	if m.IsPromotion() {
		bb := SquareBB(to)
		p.Pieces[us][Pawn] &^= bb
		p.Pieces[us][m.Promotion] |= bb
		p.hashPiece(us, Pawn, to)
		p.hashPiece(us, m.Promotion, to)
	}

	// Castling: relocate the rook next to the king.
	if m.Castling {
		var rookFrom, rookTo Square
		if to > from {
			// Kingside
			rookFrom = NewSquare(7, from.Rank())
			rookTo = NewSquare(5, from.Rank())
		} else {
			// Queenside
			rookFrom = NewSquare(0, from.Rank())
			rookTo = NewSquare(3, from.Rank())
		}
		p.movePiece(NewPiece(Rook, us), rookFrom, rookTo)
		p.hashPiece(us, Rook, rookFrom)
		p.hashPiece(us, Rook, rookTo)
	}

	// Castling rights only ever shrink: moving the king clears both of
	// that side's bits, moving a rook off (or capturing one on) a corner
	// clears the matching bit.
	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}
	p.hashCastling()

	// A double push exposes the passed-over square to en passant.
	if m.DoublePush {
		epSquare := Square((int(from) + int(to)) / 2)
		p.EnPassant = epSquare
		p.hashEnPassant(epSquare.File())
	}

	// Halfmove clock resets on pawn moves and captures.
	if pt == Pawn || captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	// Fullmove counter advances after Black's move.
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.hashSideToMove()

	// Legality: the side that just moved must not have left its own
	// king attacked.
	kingSq := p.Pieces[us][King].LSB()
	if kingSq != NoSquare && p.IsSquareAttacked(kingSq, them) {
		return false
	}
	return true
}
