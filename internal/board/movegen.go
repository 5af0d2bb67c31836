package board

// GenerateLegalMoves generates all legal moves for the side to move.
// Legality is established by simulation: each pseudo-legal candidate is
// applied to a throwaway copy of the position and kept only if the
// mover's king survives (see Make).
func (p *Position) GenerateLegalMoves() *MoveList {
	pseudo := NewMoveList()
	p.generateAllMoves(pseudo, p.SideToMove)

	legal := NewMoveList()
	for i := 0; i < pseudo.Len(); i++ {
		if p.IsLegal(pseudo.Get(i)) {
			legal.Add(pseudo.Get(i))
		}
	}
	return legal
}

// GeneratePseudoLegalMoves generates all pseudo-legal moves for the side
// to move. Moves may leave the mover's own king in check.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml, p.SideToMove)
	return ml
}

// GeneratePieceMoves generates the pseudo-legal moves of a single piece
// variant (all knights, all rooks of one color, ...). Used to resolve an
// external engine's coordinate move without generating everything.
func (p *Position) GeneratePieceMoves(pc Piece, ml *MoveList) {
	us := pc.Color()
	switch pc.Type() {
	case Pawn:
		p.generatePawnMoves(ml, us)
	case Knight:
		p.generateKnightMoves(ml, us)
	case Bishop:
		p.generateBishopMoves(ml, us)
	case Rook:
		p.generateRookMoves(ml, us)
	case Queen:
		p.generateQueenMoves(ml, us)
	case King:
		p.generateKingMoves(ml, us)
		p.generateCastlingMoves(ml, us)
	}
}

// IsLegal returns true if the move does not leave the mover's own king
// in check. The trial runs on a copy; the receiver is never mutated.
func (p *Position) IsLegal(m Move) bool {
	trial := *p
	return trial.MakeMove(m)
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// generateAllMoves generates all pseudo-legal moves for one side.
func (p *Position) generateAllMoves(ml *MoveList, us Color) {
	p.generatePawnMoves(ml, us)
	p.generateKnightMoves(ml, us)
	p.generateBishopMoves(ml, us)
	p.generateRookMoves(ml, us)
	p.generateQueenMoves(ml, us)
	p.generateKingMoves(ml, us)
	p.generateCastlingMoves(ml, us)
}

// generatePawnMoves generates pushes, double pushes, captures,
// promotions and en passant for one side's pawns, set-wise.
func (p *Position) generatePawnMoves(ml *MoveList, us Color) {
	pawn := NewPiece(Pawn, us)
	pawns := p.Pieces[us][Pawn]
	enemies := p.Occupied[us.Other()]
	empty := ^p.AllOccupied

	var push1, push2, attackL, attackR Bitboard
	var promotionRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promotionRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promotionRank = Rank1
		pushDir = -8
	}

	// Single pushes (non-promotion)
	nonPromo := push1 &^ promotionRank
	for nonPromo != 0 {
		to := nonPromo.PopLSB()
		from := Square(int(to) - pushDir)
		ml.Add(NewMove(pawn, from, to, false))
	}

	// Double pushes
	for push2 != 0 {
		to := push2.PopLSB()
		from := Square(int(to) - 2*pushDir)
		ml.Add(NewDoublePush(pawn, from, to))
	}

	// Captures (non-promotion)
	nonPromoL := attackL &^ promotionRank
	for nonPromoL != 0 {
		to := nonPromoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		ml.Add(NewMove(pawn, from, to, true))
	}

	nonPromoR := attackR &^ promotionRank
	for nonPromoR != 0 {
		to := nonPromoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		ml.Add(NewMove(pawn, from, to, true))
	}

	// Promotions
	promoPush := push1 & promotionRank
	for promoPush != 0 {
		to := promoPush.PopLSB()
		from := Square(int(to) - pushDir)
		addPromotions(ml, pawn, from, to, false)
	}

	promoL := attackL & promotionRank
	for promoL != 0 {
		to := promoL.PopLSB()
		from := Square(int(to) - pushDir + 1)
		addPromotions(ml, pawn, from, to, true)
	}

	promoR := attackR & promotionRank
	for promoR != 0 {
		to := promoR.PopLSB()
		from := Square(int(to) - pushDir - 1)
		addPromotions(ml, pawn, from, to, true)
	}

	// En passant
	if p.EnPassant != NoSquare {
		epBB := SquareBB(p.EnPassant)
		var epAttackers Bitboard
		if us == White {
			epAttackers = (epBB.SouthWest() | epBB.SouthEast()) & pawns
		} else {
			epAttackers = (epBB.NorthWest() | epBB.NorthEast()) & pawns
		}
		for epAttackers != 0 {
			from := epAttackers.PopLSB()
			ml.Add(NewEnPassant(pawn, from, p.EnPassant))
		}
	}
}

// addPromotions adds one move per promotable piece type.
func addPromotions(ml *MoveList, pawn Piece, from, to Square, capture bool) {
	ml.Add(NewPromotion(pawn, from, to, Queen, capture))
	ml.Add(NewPromotion(pawn, from, to, Rook, capture))
	ml.Add(NewPromotion(pawn, from, to, Bishop, capture))
	ml.Add(NewPromotion(pawn, from, to, Knight, capture))
}

func (p *Position) generateKnightMoves(ml *MoveList, us Color) {
	p.addLeaperMoves(ml, NewPiece(Knight, us), p.Pieces[us][Knight], KnightAttacks)
}

func (p *Position) generateKingMoves(ml *MoveList, us Color) {
	p.addLeaperMoves(ml, NewPiece(King, us), p.Pieces[us][King], KingAttacks)
}

// addLeaperMoves turns attack-table lookups into moves, masking out own
// pieces and flagging captures against enemy occupancy.
func (p *Position) addLeaperMoves(ml *MoveList, pc Piece, pieces Bitboard, table func(Square) Bitboard) {
	us := pc.Color()
	for pieces != 0 {
		from := pieces.PopLSB()
		attacks := table(from) &^ p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(pc, from, to, !p.IsEmpty(to)))
		}
	}
}

func (p *Position) generateBishopMoves(ml *MoveList, us Color) {
	p.addSliderMoves(ml, NewPiece(Bishop, us), p.Pieces[us][Bishop], BishopAttacks)
}

func (p *Position) generateRookMoves(ml *MoveList, us Color) {
	p.addSliderMoves(ml, NewPiece(Rook, us), p.Pieces[us][Rook], RookAttacks)
}

func (p *Position) generateQueenMoves(ml *MoveList, us Color) {
	p.addSliderMoves(ml, NewPiece(Queen, us), p.Pieces[us][Queen], QueenAttacks)
}

func (p *Position) addSliderMoves(ml *MoveList, pc Piece, pieces Bitboard, table func(Square, Bitboard) Bitboard) {
	us := pc.Color()
	for pieces != 0 {
		from := pieces.PopLSB()
		attacks := table(from, p.AllOccupied) &^ p.Occupied[us]
		for attacks != 0 {
			to := attacks.PopLSB()
			ml.Add(NewMove(pc, from, to, !p.IsEmpty(to)))
		}
	}
}

// generateCastlingMoves generates castling for one side: the right must
// still be held, the squares between king and rook empty, and the king's
// square plus every square it crosses (destination included) unattacked.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	them := us.Other()
	king := NewPiece(King, us)

	if us == White {
		// Kingside (O-O): f1, g1 empty; e1, f1, g1 safe
		if p.CastlingRights&WhiteKingSideCastle != 0 {
			if p.AllOccupied&(SquareBB(F1)|SquareBB(G1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(F1, them) && !p.IsSquareAttacked(G1, them) {
					ml.Add(NewCastling(king, E1, G1))
				}
			}
		}

		// Queenside (O-O-O): b1, c1, d1 empty; e1, d1, c1 safe
		if p.CastlingRights&WhiteQueenSideCastle != 0 {
			if p.AllOccupied&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 {
				if !p.IsSquareAttacked(E1, them) && !p.IsSquareAttacked(D1, them) && !p.IsSquareAttacked(C1, them) {
					ml.Add(NewCastling(king, E1, C1))
				}
			}
		}
	} else {
		if p.CastlingRights&BlackKingSideCastle != 0 {
			if p.AllOccupied&(SquareBB(F8)|SquareBB(G8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(F8, them) && !p.IsSquareAttacked(G8, them) {
					ml.Add(NewCastling(king, E8, G8))
				}
			}
		}

		if p.CastlingRights&BlackQueenSideCastle != 0 {
			if p.AllOccupied&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 {
				if !p.IsSquareAttacked(E8, them) && !p.IsSquareAttacked(D8, them) && !p.IsSquareAttacked(C8, them) {
					ml.Add(NewCastling(king, E8, C8))
				}
			}
		}
	}
}

// Perft counts leaf nodes of the legal move tree to the given depth.
// The standard way to validate the generator/executor pipeline.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	ml := p.GeneratePseudoLegalMoves()
	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		next := *p
		if !next.MakeMove(ml.Get(i)) {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += Perft(&next, depth-1)
		}
	}
	return nodes
}

// PerftDivide returns per-root-move node counts at the given depth.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}

	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		next := *p
		if !next.MakeMove(m) {
			continue
		}
		result[m] = Perft(&next, depth-1)
	}
	return result
}
