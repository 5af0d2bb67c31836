// Command enginematch plays two external UCI engines against each
// other and adjudicates the games: checkmate, the draw rules, time
// forfeits and illegal-move forfeits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/michabay05/chess-engine-gui/internal/board"
	"github.com/michabay05/chess-engine-gui/internal/comm"
	"github.com/michabay05/chess-engine-gui/internal/game"
)

// maxPlies stops games between engines that neither win nor run the
// fifty-move clock down, e.g. by resetting it with pointless captures.
const maxPlies = 1024

func main() {
	engineA := flag.String("a", "", "path to the first engine (white in odd games)")
	engineB := flag.String("b", "", "path to the second engine")
	fen := flag.String("fen", board.StartFEN, "starting position")
	movetime := flag.Duration("movetime", 100*time.Millisecond, "time budget per move")
	games := flag.Int("games", 1, "number of games; colors alternate between games")
	verbose := flag.Bool("v", false, "print every move as it is played")
	flag.Parse()

	if *engineA == "" || *engineB == "" {
		fmt.Fprintln(os.Stderr, "both -a and -b engine paths are required")
		os.Exit(2)
	}

	a, err := comm.Start(*engineA)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.Quit()

	b, err := comm.Start(*engineB)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer b.Quit()

	fmt.Printf("%s vs %s, %d game(s), %v per move\n", a.Name(), b.Name(), *games, *movetime)

	var aScore, bScore float64
	for i := 0; i < *games; i++ {
		white, black := a, b
		if i%2 == 1 {
			white, black = b, a
		}

		g, err := playGame(white, black, *fen, *movetime, *verbose)
		if err != nil {
			fmt.Fprintf(os.Stderr, "game %d aborted: %v\n", i+1, err)
			os.Exit(1)
		}

		state := g.State()
		fmt.Printf("game %d: %s (%d plies)\n", i+1, state, g.MoveCount())

		switch state.Winner() {
		case board.White:
			if white == a {
				aScore++
			} else {
				bScore++
			}
		case board.Black:
			if black == a {
				aScore++
			} else {
				bScore++
			}
		default:
			aScore += 0.5
			bScore += 0.5
		}
	}

	fmt.Printf("final score: %s %.1f - %.1f %s\n", a.Name(), aScore, bScore, b.Name())
}

// playGame runs a single game to a terminal state. Engine failures that
// are the engine's fault (timeout, illegal move) end the game by
// forfeit; transport failures abort the match.
func playGame(white, black *comm.Engine, fen string, movetime time.Duration, verbose bool) (*game.Game, error) {
	g, err := game.FromFEN(fen)
	if err != nil {
		return nil, err
	}
	g.SetPlayers(white.Name(), black.Name())

	if err := white.NewGame(); err != nil {
		return nil, err
	}
	if err := black.NewGame(); err != nil {
		return nil, err
	}

	for !g.State().Over() && g.MoveCount() < maxPlies {
		side := g.Position().SideToMove
		eng := white
		if side == board.Black {
			eng = black
		}

		if err := eng.SetPosition(g.CurrentFEN()); err != nil {
			return nil, err
		}

		moveStr, err := eng.BestMove(movetime)
		if errors.Is(err, comm.ErrTimeout) {
			g.Forfeit(side)
			break
		}
		if err != nil {
			return nil, err
		}

		if err := g.MakeMoveUCI(moveStr); err != nil {
			// The game saw legal moves the engine did not play; its
			// answer is wrong, not the transport.
			g.ForfeitIllegal(side)
			break
		}

		if verbose {
			fmt.Printf("  %3d. %s plays %s\n", g.MoveCount(), eng.Name(), moveStr)
		}
	}

	return g, nil
}
