package comm

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// fakeEngine writes a shell script that speaks just enough UCI to
// exercise the client: handshake, readiness and a canned bestmove.
func fakeEngine(t *testing.T, bestmoveLines string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine is a shell script")
	}

	script := `#!/bin/sh
while read line; do
	case "$line" in
	uci)
		echo "id name FakeFish 0.1"
		echo "id author nobody"
		echo "uciok"
		;;
	isready)
		echo "readyok"
		;;
	go*)
		` + bestmoveLines + `
		;;
	quit)
		exit 0
		;;
	esac
done
`

	path := filepath.Join(t.TempDir(), "fake-engine")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEngineHandshakeAndBestMove(t *testing.T) {
	path := fakeEngine(t, `echo "info depth 1 score cp 30"
		echo "bestmove e2e4"`)

	e, err := Start(path)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer e.Quit()

	if e.Name() != "FakeFish 0.1" {
		t.Errorf("name = %q, want engine's id name", e.Name())
	}

	if err := e.NewGame(); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if err := e.SetPosition("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}

	move, err := e.BestMove(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if move != "e2e4" {
		t.Errorf("bestmove = %q, want e2e4", move)
	}
}

func TestEngineBestMoveSkipsInfoLines(t *testing.T) {
	path := fakeEngine(t, `echo "info depth 1 nodes 20"
		echo "info depth 2 nodes 400"
		echo "bestmove g8f6 ponder e2e4"`)

	e, err := Start(path)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer e.Quit()

	move, err := e.BestMove(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("BestMove: %v", err)
	}
	if move != "g8f6" {
		t.Errorf("bestmove = %q, want g8f6 (ponder stripped)", move)
	}
}

func TestEngineTimeout(t *testing.T) {
	// This engine never answers "go".
	path := fakeEngine(t, `:`)

	e, err := Start(path)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer e.Quit()

	// The grace period dominates the budget here; keep the budget tiny.
	start := time.Now()
	_, err = e.BestMove(1 * time.Millisecond)
	if err != ErrTimeout {
		t.Fatalf("BestMove error = %v, want ErrTimeout (after %v)", err, time.Since(start))
	}
}

func TestStartRejectsMissingBinary(t *testing.T) {
	if _, err := Start(filepath.Join(t.TempDir(), "no-such-engine")); err == nil {
		t.Errorf("Start succeeded for a missing binary")
	}
}
