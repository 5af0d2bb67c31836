package board

import "testing"

// playUCI applies a sequence of coordinate moves, failing the test if any
// of them is not legal in the position it is applied to.
func playUCI(t *testing.T, pos *Position, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := ParseMove(s, pos)
		if err != nil {
			t.Fatalf("resolving %s: %v", s, err)
		}
		if !pos.MakeMove(m) {
			t.Fatalf("move %s reported illegal", s)
		}
	}
}

// checkHashes verifies the incrementally maintained pair against a full
// recomputation.
func checkHashes(t *testing.T, pos *Position, context string) {
	t.Helper()
	if pos.Key != pos.ComputeKey() {
		t.Errorf("%s: key drifted: incremental %016x, recomputed %016x", context, pos.Key, pos.ComputeKey())
	}
	if pos.Lock != pos.ComputeLock() {
		t.Errorf("%s: lock drifted: incremental %016x, recomputed %016x", context, pos.Lock, pos.ComputeLock())
	}
}

func TestZobristDeterminism(t *testing.T) {
	a, err := ParseFEN(TrickyFEN)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseFEN(TrickyFEN)
	if err != nil {
		t.Fatal(err)
	}

	if a.Key != b.Key || a.Lock != b.Lock {
		t.Errorf("same FEN hashed differently: (%016x,%016x) vs (%016x,%016x)",
			a.Key, a.Lock, b.Key, b.Lock)
	}
}

func TestZobristKeyAndLockIndependent(t *testing.T) {
	pos := NewPosition()
	if pos.Key == pos.Lock {
		t.Errorf("key and lock coincide for start position: %016x", pos.Key)
	}
}

func TestZobristIncrementalMatchesRecompute(t *testing.T) {
	pos := NewPosition()
	checkHashes(t, pos, "start")

	// Berlin defense mainline: castling, captures and a queen trade.
	moves := []string{
		"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "g8f6", "e1g1", "f6e4",
		"d2d4", "e4d6", "b5c6", "d7c6", "d4e5", "d6f5", "d1d8", "e8d8",
	}
	for _, s := range moves {
		playUCI(t, pos, s)
		checkHashes(t, pos, s)
	}
}

func TestZobristIncrementalPromotionAndEnPassant(t *testing.T) {
	pos, err := ParseFEN("rnbqkb1r/pp1p1pPp/8/2p1pP2/1P1P4/3P3P/P1P1P3/RNBQKBNR w KQkq e6 0 1")
	if err != nil {
		t.Fatal(err)
	}
	checkHashes(t, pos, "initial")

	ep, err := ParseMove("f5e6", pos)
	if err != nil {
		t.Fatal(err)
	}
	if !ep.EnPassant {
		t.Errorf("f5e6 not flagged as en passant")
	}

	promo, err := ParseMove("g7h8q", pos)
	if err != nil {
		t.Fatal(err)
	}
	if promo.Promotion != Queen || !promo.Capture {
		t.Errorf("g7h8q flags wrong: %+v", promo)
	}

	epPos := pos.Copy()
	if !epPos.MakeMove(ep) {
		t.Fatalf("en passant capture reported illegal")
	}
	checkHashes(t, epPos, "after f5e6")

	promoPos := pos.Copy()
	if !promoPos.MakeMove(promo) {
		t.Fatalf("capture-promotion reported illegal")
	}
	checkHashes(t, promoPos, "after g7h8q")
	if promoPos.Pieces[White][Pawn].IsSet(H8) {
		t.Errorf("pawn survived promotion on h8")
	}
	if !promoPos.Pieces[White][Queen].IsSet(H8) {
		t.Errorf("no queen on h8 after promotion")
	}
}

func TestZobristTranspositionConverges(t *testing.T) {
	// 1.Nf3 Nf6 2.Ng1 Ng8 returns to the start position by a different
	// path; the hash pair must match the original exactly.
	pos := NewPosition()
	start := *pos
	playUCI(t, pos, "g1f3", "g8f6", "f3g1", "f6g8")

	if pos.Key != start.Key || pos.Lock != start.Lock {
		t.Errorf("transposition back to start does not converge: (%016x,%016x) vs (%016x,%016x)",
			pos.Key, pos.Lock, start.Key, start.Lock)
	}
}

func TestZobristSensitiveToNonPieceState(t *testing.T) {
	base, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	variants := []string{
		"4k3/8/8/8/8/8/8/4K2R b K - 0 1",  // side to move
		"4k3/8/8/8/8/8/8/4K2R w - - 0 1",  // castling rights
		"4k3/8/8/8/8/8/8/4K2R w K e6 0 1", // en passant file
	}
	for _, fen := range variants {
		v, err := ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		if v.Key == base.Key && v.Lock == base.Lock {
			t.Errorf("hash pair blind to state change in %q", fen)
		}
	}
}
