// Package comm drives external UCI chess engines over their standard
// streams: process startup, the uci/isready handshakes and move
// requests with a time budget.
package comm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// ErrTimeout reports an engine that failed to move within its budget.
var ErrTimeout = errors.New("engine exceeded its time budget")

// Engine is a running UCI engine subprocess.
type Engine struct {
	path string
	name string // From "id name", falls back to the binary path

	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string
}

// handshakeTimeout bounds the uci and isready exchanges. Engines that
// take longer than this to identify themselves are broken.
const handshakeTimeout = 10 * time.Second

// Start launches the engine binary and completes the UCI handshake.
func Start(path string) (*Engine, error) {
	cmd := exec.Command(path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("engine %s: %w", path, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("engine %s: %w", path, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting engine %s: %w", path, err)
	}

	e := &Engine{
		path:  path,
		name:  path,
		cmd:   cmd,
		stdin: stdin,
		lines: make(chan string, 64),
	}

	// One reader goroutine owns stdout for the engine's lifetime; the
	// closed channel is how consumers learn the engine died.
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			e.lines <- strings.TrimSpace(scanner.Text())
		}
		close(e.lines)
	}()

	if err := e.handshake(); err != nil {
		e.Quit()
		return nil, err
	}
	return e, nil
}

// Name returns the engine's self-reported name.
func (e *Engine) Name() string {
	return e.name
}

// handshake sends "uci", collects the identification block until
// "uciok", then synchronizes with isready/readyok.
func (e *Engine) handshake() error {
	if err := e.send("uci"); err != nil {
		return err
	}

	deadline := time.After(handshakeTimeout)
	for {
		select {
		case line, ok := <-e.lines:
			if !ok {
				return fmt.Errorf("engine %s closed its output during handshake", e.path)
			}
			if name, found := strings.CutPrefix(line, "id name "); found {
				e.name = name
			}
			if line == "uciok" {
				return e.Sync()
			}
		case <-deadline:
			return fmt.Errorf("engine %s: no uciok within %v", e.path, handshakeTimeout)
		}
	}
}

// Sync sends "isready" and blocks until the engine answers "readyok".
func (e *Engine) Sync() error {
	if err := e.send("isready"); err != nil {
		return err
	}

	deadline := time.After(handshakeTimeout)
	for {
		select {
		case line, ok := <-e.lines:
			if !ok {
				return fmt.Errorf("engine %s closed its output waiting for readyok", e.name)
			}
			if line == "readyok" {
				return nil
			}
		case <-deadline:
			return fmt.Errorf("engine %s: no readyok within %v", e.name, handshakeTimeout)
		}
	}
}

// NewGame tells the engine to discard state from any previous game.
func (e *Engine) NewGame() error {
	if err := e.send("ucinewgame"); err != nil {
		return err
	}
	return e.Sync()
}

// SetPosition hands the engine the position to move from.
func (e *Engine) SetPosition(fen string) error {
	return e.send("position fen " + fen)
}

// BestMove asks the engine to think for the given budget and returns
// its chosen move in coordinate notation ("e2e4", "e7e8q", or "0000"
// when the engine has no move). The wait allows a grace period beyond
// the budget before the engine is declared out of time.
func (e *Engine) BestMove(movetime time.Duration) (string, error) {
	if err := e.send(fmt.Sprintf("go movetime %d", movetime.Milliseconds())); err != nil {
		return "", err
	}

	// Grace covers engine-side bookkeeping around the search itself.
	deadline := time.After(movetime + 2*time.Second)
	for {
		select {
		case line, ok := <-e.lines:
			if !ok {
				return "", fmt.Errorf("engine %s died while searching", e.name)
			}
			if rest, found := strings.CutPrefix(line, "bestmove"); found {
				fields := strings.Fields(rest)
				if len(fields) == 0 {
					return "", fmt.Errorf("engine %s: empty bestmove", e.name)
				}
				return fields[0], nil
			}
			// "info ..." lines stream past here; nothing to do.
		case <-deadline:
			return "", ErrTimeout
		}
	}
}

// Quit asks the engine to exit and reaps the process. Safe to call
// after a failed handshake.
func (e *Engine) Quit() error {
	_ = e.send("quit")
	e.stdin.Close()

	done := make(chan error, 1)
	go func() { done <- e.cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		_ = e.cmd.Process.Kill()
		return <-done
	}
}

func (e *Engine) send(command string) error {
	if _, err := io.WriteString(e.stdin, command+"\n"); err != nil {
		return fmt.Errorf("writing to engine %s: %w", e.name, err)
	}
	return nil
}
