package board

// Magic bitboard implementation for sliding piece attacks.
//
// For each square the relevant occupancy (blockers on the attack rays,
// board edges excluded) is hashed with a fixed multiplier into a
// per-square table of precomputed attack sets:
//
//	attacks = table[sq][((occ & mask[sq]) * magic[sq]) >> (64 - bits)]
//
// The magic constants below are the well-known multipliers validated to
// be collision free over every relevant occupancy subset of their
// square. Finding them is an offline search; only the resulting numbers
// are kept here.

// Magic holds the hashing data for a single square.
type Magic struct {
	Mask  Bitboard // Relevant occupancy mask (excludes edges)
	Magic uint64   // Magic multiplier
	Shift uint8    // Bits to shift right (64 - popcount(Mask))
}

var (
	bishopMagics [64]Magic
	rookMagics   [64]Magic

	// Per-square attack tables, sized 1 << popcount(mask).
	bishopAttackTable [64][]Bitboard
	rookAttackTable   [64][]Bitboard
)

var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

func initMagics() {
	for sq := A1; sq <= H8; sq++ {
		bishopMagics[sq], bishopAttackTable[sq] =
			buildMagic(sq, bishopMagicNumbers[sq], bishopMask(sq), bishopAttacksSlow)
		rookMagics[sq], rookAttackTable[sq] =
			buildMagic(sq, rookMagicNumbers[sq], rookMask(sq), rookAttacksSlow)
	}
}

// buildMagic enumerates every occupancy subset of the mask and stores its
// ray-cast attack set at the magic-hashed index.
func buildMagic(sq Square, magic uint64, mask Bitboard, slow func(Square, Bitboard) Bitboard) (Magic, []Bitboard) {
	bits := mask.PopCount()
	shift := uint8(64 - bits)
	table := make([]Bitboard, 1<<bits)

	for i := 0; i < len(table); i++ {
		occ := indexToOccupancy(i, bits, mask)
		idx := (uint64(occ) * magic) >> shift
		table[idx] = slow(sq, occ)
	}

	return Magic{Mask: mask, Magic: magic, Shift: shift}, table
}

// bishopMask returns the relevant occupancy mask for a bishop at square.
// Edge squares never affect the result and are excluded.
func bishopMask(sq Square) Bitboard {
	return bishopAttacksSlow(sq, 0) &^ (Rank1 | Rank8 | FileA | FileH)
}

// rookMask returns the relevant occupancy mask for a rook at square.
func rookMask(sq Square) Bitboard {
	file := sq.File()
	rank := sq.Rank()

	var mask Bitboard
	for f := 1; f < 7; f++ {
		if f != file {
			mask |= SquareBB(NewSquare(f, rank))
		}
	}
	for r := 1; r < 7; r++ {
		if r != rank {
			mask |= SquareBB(NewSquare(file, r))
		}
	}
	return mask
}

// indexToOccupancy converts a subset index to an occupancy bitboard by
// distributing the index bits over the set bits of the mask.
func indexToOccupancy(index, bits int, mask Bitboard) Bitboard {
	var occ Bitboard
	for i := 0; i < bits; i++ {
		sq := mask.PopLSB()
		if index&(1<<i) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}

var (
	bishopDirs = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	rookDirs   = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
)

// bishopAttacksSlow computes bishop attacks by ray casting (initialization only).
func bishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return castRays(sq, occupied, bishopDirs)
}

// rookAttacksSlow computes rook attacks by ray casting (initialization only).
func rookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return castRays(sq, occupied, rookDirs)
}

func castRays(sq Square, occupied Bitboard, dirs [4][2]int) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			s := NewSquare(f, r)
			attacks |= SquareBB(s)
			if occupied&SquareBB(s) != 0 {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return attacks
}

// getBishopAttacks returns bishop attacks using magic bitboards.
func getBishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return bishopAttackTable[sq][idx]
}

// getRookAttacks returns rook attacks using magic bitboards.
func getRookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return rookAttackTable[sq][idx]
}
