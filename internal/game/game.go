// Package game tracks a full game on top of the position core: the
// move history, repetition bookkeeping and the terminal-state rules
// that the position itself does not know about.
package game

import (
	"fmt"

	"github.com/michabay05/chess-engine-gui/internal/board"
)

// State describes the status of a game.
type State int

const (
	Ongoing State = iota
	WhiteWinByCheckmate
	BlackWinByCheckmate
	WhiteLostOnTime
	BlackLostOnTime
	WhiteIllegalMove
	BlackIllegalMove
	DrawByStalemate
	DrawByFiftyMoveRule
	DrawByThreefoldRepetition
	DrawByInsufficientMaterial
)

// String returns a human readable description of the state.
func (s State) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case WhiteWinByCheckmate:
		return "white wins by checkmate"
	case BlackWinByCheckmate:
		return "black wins by checkmate"
	case WhiteLostOnTime:
		return "black wins on time"
	case BlackLostOnTime:
		return "white wins on time"
	case WhiteIllegalMove:
		return "black wins by illegal white move"
	case BlackIllegalMove:
		return "white wins by illegal black move"
	case DrawByStalemate:
		return "draw by stalemate"
	case DrawByFiftyMoveRule:
		return "draw by fifty-move rule"
	case DrawByThreefoldRepetition:
		return "draw by threefold repetition"
	case DrawByInsufficientMaterial:
		return "draw by insufficient material"
	}
	return "unknown"
}

// Over returns true once the game has reached any terminal state.
func (s State) Over() bool {
	return s != Ongoing
}

// Draw returns true for the drawn terminal states.
func (s State) Draw() bool {
	switch s {
	case DrawByStalemate, DrawByFiftyMoveRule, DrawByThreefoldRepetition, DrawByInsufficientMaterial:
		return true
	}
	return false
}

// Winner returns the winning color, or board.NoColor for ongoing games
// and draws.
func (s State) Winner() board.Color {
	switch s {
	case WhiteWinByCheckmate, BlackLostOnTime, BlackIllegalMove:
		return board.White
	case BlackWinByCheckmate, WhiteLostOnTime, WhiteIllegalMove:
		return board.Black
	}
	return board.NoColor
}

// Game holds a position together with the full history that produced
// it. The history stores every position since the start (the initial
// one included), which is what repetition detection walks.
type Game struct {
	startFEN string
	state    State

	boards []*board.Position // boards[0] is the initial position
	moves  []board.Move      // moves[i] transformed boards[i] into boards[i+1]

	whiteName string
	blackName string
}

// New starts a game from the standard starting position.
func New() *Game {
	g, _ := FromFEN(board.StartFEN)
	return g
}

// FromFEN starts a game from an arbitrary position. The initial
// position counts as its own first occurrence for repetition purposes.
func FromFEN(fen string) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("starting position: %w", err)
	}
	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("starting position: %w", err)
	}

	g := &Game{
		startFEN: fen,
		boards:   []*board.Position{pos},
	}
	g.state = g.evaluateState()
	return g, nil
}

// SetPlayers records the participants' names for reporting.
func (g *Game) SetPlayers(white, black string) {
	g.whiteName = white
	g.blackName = black
}

// PlayerName returns the recorded name of one side.
func (g *Game) PlayerName(c board.Color) string {
	if c == board.White {
		return g.whiteName
	}
	return g.blackName
}

// Position returns the current position. Callers must not mutate it;
// use MakeMove to advance the game.
func (g *Game) Position() *board.Position {
	return g.boards[len(g.boards)-1]
}

// StartFEN returns the FEN the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// CurrentFEN returns the FEN of the current position.
func (g *Game) CurrentFEN() string {
	return g.Position().ToFEN()
}

// State returns the current game state.
func (g *Game) State() State {
	return g.state
}

// MoveCount returns the number of plies played.
func (g *Game) MoveCount() int {
	return len(g.moves)
}

// MoveAt returns the i-th ply and the position it was played from.
func (g *Game) MoveAt(i int) (*board.Position, board.Move) {
	return g.boards[i], g.moves[i]
}

// Moves returns the plies played so far.
func (g *Game) Moves() []board.Move {
	return g.moves
}

// MakeMove plays a move. Illegal moves (including any move after the
// game has ended) are rejected with an error and leave the game
// untouched; the history only ever contains legal positions.
func (g *Game) MakeMove(m board.Move) error {
	if g.state.Over() {
		return fmt.Errorf("game is over: %s", g.state)
	}

	next := g.Position().Copy()
	if !next.MakeMove(m) {
		return fmt.Errorf("illegal move %s", m)
	}

	g.boards = append(g.boards, next)
	g.moves = append(g.moves, m)
	g.state = g.evaluateState()
	return nil
}

// MakeMoveUCI resolves a coordinate string against the current position
// and plays it.
func (g *Game) MakeMoveUCI(s string) error {
	if g.state.Over() {
		return fmt.Errorf("game is over: %s", g.state)
	}

	m, err := board.ParseMove(s, g.Position())
	if err != nil {
		return err
	}
	return g.MakeMove(m)
}

// Forfeit ends the game against the given side for running out of
// time. No-op once the game is already over.
func (g *Game) Forfeit(c board.Color) {
	if g.state.Over() {
		return
	}
	if c == board.White {
		g.state = WhiteLostOnTime
	} else {
		g.state = BlackLostOnTime
	}
}

// ForfeitIllegal ends the game against a side that produced an illegal
// move (an engine bug, from the game's point of view).
func (g *Game) ForfeitIllegal(c board.Color) {
	if g.state.Over() {
		return
	}
	if c == board.White {
		g.state = WhiteIllegalMove
	} else {
		g.state = BlackIllegalMove
	}
}

// evaluateState classifies the current position. The checks run in a
// fixed order, so a position that is simultaneously a fifty-move draw
// and a stalemate reports the fifty-move rule.
func (g *Game) evaluateState() State {
	pos := g.Position()

	if pos.HalfMoveClock >= 100 {
		return DrawByFiftyMoveRule
	}

	if insufficientMaterial(pos) {
		return DrawByInsufficientMaterial
	}

	if !pos.HasLegalMoves() {
		if pos.InCheck() {
			if pos.SideToMove == board.White {
				return BlackWinByCheckmate
			}
			return WhiteWinByCheckmate
		}
		return DrawByStalemate
	}

	if g.repetitions(pos) >= 3 {
		return DrawByThreefoldRepetition
	}

	return Ongoing
}

// repetitions counts how many positions in the history share the
// current position's hash pair, the current position included.
func (g *Game) repetitions(pos *board.Position) int {
	count := 0
	for _, b := range g.boards {
		if b.Key == pos.Key && b.Lock == pos.Lock {
			count++
		}
	}
	return count
}

// insufficientMaterial reports whether neither side can possibly
// deliver mate: bare kings, a single minor piece, knight versus knight,
// or bishops confined to one square color.
func insufficientMaterial(p *board.Position) bool {
	// Any pawn, rook or queen keeps mate possible.
	for c := board.White; c <= board.Black; c++ {
		if p.Pieces[c][board.Pawn] != 0 ||
			p.Pieces[c][board.Rook] != 0 ||
			p.Pieces[c][board.Queen] != 0 {
			return false
		}
	}

	knights := p.Pieces[board.White][board.Knight] | p.Pieces[board.Black][board.Knight]
	bishops := p.Pieces[board.White][board.Bishop] | p.Pieces[board.Black][board.Bishop]
	minors := knights.PopCount() + bishops.PopCount()

	switch {
	case minors <= 1:
		// K vs K, or king and one minor piece vs king.
		return true
	case minors == 2 && knights.PopCount() == 2 &&
		p.Pieces[board.White][board.Knight].PopCount() == 1:
		// One knight each: no forced mate exists.
		return true
	case knights == 0 && sameColorSquares(bishops):
		// Only bishops, all on one square color. Covers KB vs KB and
		// the pathological many-bishop endings of the same parity.
		return true
	}

	return false
}

// sameColorSquares reports whether every set square has the same
// square-color parity ((rank+file) mod 2).
func sameColorSquares(bb board.Bitboard) bool {
	const lightSquares = board.Bitboard(0x55AA55AA55AA55AA)
	return bb&lightSquares == 0 || bb&^lightSquares == 0
}
