package board

import "testing"

func TestBitboardSetClear(t *testing.T) {
	var bb Bitboard

	bb = bb.Set(E4)
	if !bb.IsSet(E4) {
		t.Errorf("expected e4 to be set")
	}
	if bb.IsSet(E5) {
		t.Errorf("expected e5 to be clear")
	}

	bb = bb.Clear(E4)
	if !bb.Empty() {
		t.Errorf("expected empty bitboard after clear, got %v", bb)
	}
}

func TestBitboardPopCount(t *testing.T) {
	tests := []struct {
		bb   Bitboard
		want int
	}{
		{Empty, 0},
		{Universe, 64},
		{Rank1, 8},
		{FileA | FileH, 16},
		{SquareBB(A1) | SquareBB(H8), 2},
	}

	for _, tc := range tests {
		if got := tc.bb.PopCount(); got != tc.want {
			t.Errorf("PopCount(%#x) = %d, want %d", uint64(tc.bb), got, tc.want)
		}
	}
}

func TestBitboardLSB(t *testing.T) {
	if got := Empty.LSB(); got != NoSquare {
		t.Errorf("LSB of empty board = %v, want NoSquare", got)
	}

	bb := SquareBB(C3) | SquareBB(F7)
	if got := bb.LSB(); got != C3 {
		t.Errorf("LSB = %v, want c3", got)
	}

	sq := bb.PopLSB()
	if sq != C3 || bb != SquareBB(F7) {
		t.Errorf("PopLSB: got %v leaving %#x", sq, uint64(bb))
	}
}

func TestBitboardShiftsRespectEdges(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want Bitboard
	}{
		{"north off board", SquareBB(E8).North(), Empty},
		{"south off board", SquareBB(E1).South(), Empty},
		{"east wraps", SquareBB(H4).East(), Empty},
		{"west wraps", SquareBB(A4).West(), Empty},
		{"northeast wraps", SquareBB(H4).NorthEast(), Empty},
		{"northwest wraps", SquareBB(A4).NorthWest(), Empty},
		{"southeast wraps", SquareBB(H4).SouthEast(), Empty},
		{"southwest wraps", SquareBB(A4).SouthWest(), Empty},
		{"plain northeast", SquareBB(E4).NorthEast(), SquareBB(F5)},
		{"plain southwest", SquareBB(E4).SouthWest(), SquareBB(D3)},
	}

	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %#x, want %#x", tc.name, uint64(tc.got), uint64(tc.want))
		}
	}
}

func TestSquareParseRoundTrip(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		parsed, err := ParseSquare(sq.String())
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", sq.String(), err)
		}
		if parsed != sq {
			t.Errorf("round trip %v -> %q -> %v", sq, sq.String(), parsed)
		}
	}

	for _, bad := range []string{"", "e", "e9", "i4", "4e", "e4 "} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q): expected error", bad)
		}
	}
}
