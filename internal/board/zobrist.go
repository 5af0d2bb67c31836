package board

// Zobrist hashing with two independent table sets.
//
// Every position carries two 64-bit fingerprints, Key and Lock, derived
// the same way from two independently seeded random tables. Repetition
// detection compares the (Key, Lock) pair; a collision would have to hit
// 128 bits at once, which makes a false repetition practically
// impossible where a single 64-bit hash would merely make it unlikely.

type zobristTable struct {
	piece      [2][6][64]uint64 // [Color][PieceType][Square]
	enPassant  [8]uint64        // One per file
	castling   [16]uint64       // All 16 castling-rights combinations
	sideToMove uint64           // XOR when black to move
}

var (
	zobristKey  zobristTable
	zobristLock zobristTable
)

func init() {
	zobristKey.fill(newPRNG(0x98F107A2BEEF1234))
	zobristLock.fill(newPRNG(0xD6E01C33A7B45986))
}

// Simple PRNG for reproducible Zobrist keys (xorshift64*).
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func (t *zobristTable) fill(rng *prng) {
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				t.piece[c][pt][sq] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		t.enPassant[file] = rng.next()
	}
	for i := 0; i < 16; i++ {
		t.castling[i] = rng.next()
	}
	t.sideToMove = rng.next()
}

// hash folds a position's contents into a single accumulator. The result
// depends only on piece placement, castling rights, en passant file and
// side to move, never on the move history that produced them.
func (t *zobristTable) hash(p *Position) uint64 {
	var h uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				h ^= t.piece[c][pt][sq]
			}
		}
	}

	if p.SideToMove == Black {
		h ^= t.sideToMove
	}

	h ^= t.castling[p.CastlingRights]

	if p.EnPassant != NoSquare {
		h ^= t.enPassant[p.EnPassant.File()]
	}

	return h
}

// ComputeKey recomputes the primary Zobrist hash from scratch.
func (p *Position) ComputeKey() uint64 {
	return zobristKey.hash(p)
}

// ComputeLock recomputes the secondary Zobrist hash from scratch.
func (p *Position) ComputeLock() uint64 {
	return zobristLock.hash(p)
}

// Incremental update helpers. Each XORs the matching entry into both
// accumulators so Key and Lock can never drift apart.

func (p *Position) hashPiece(c Color, pt PieceType, sq Square) {
	p.Key ^= zobristKey.piece[c][pt][sq]
	p.Lock ^= zobristLock.piece[c][pt][sq]
}

func (p *Position) hashCastling() {
	p.Key ^= zobristKey.castling[p.CastlingRights]
	p.Lock ^= zobristLock.castling[p.CastlingRights]
}

func (p *Position) hashEnPassant(file int) {
	p.Key ^= zobristKey.enPassant[file]
	p.Lock ^= zobristLock.enPassant[file]
}

func (p *Position) hashSideToMove() {
	p.Key ^= zobristKey.sideToMove
	p.Lock ^= zobristLock.sideToMove
}
