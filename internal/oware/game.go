package oware

import "github.com/cryptokrok/mancala.oware-AI-engine/internal/engine"

// Game adapts Board to engine.Game. Undo is a full-state snapshot stack
// rather than delta tracking: Board is fourteen ints, cheap enough to
// copy wholesale, and a snapshot can never drift out of sync the way a
// hand-rolled inverse of the capture-chain in sow could.
type Game struct {
	board       Board
	history     []Board
	cursorStack []int
}

// New returns a Game positioned at the standard Oware Abapa starting
// position.
func New() *Game { return &Game{board: NewBoard()} }

// NewFromBoard wraps an already-constructed Board in a Game with empty
// history, for callers such as cmd/enginectl's stdin mode that compute a
// single move for an arbitrary position rather than playing from the
// opening.
func NewFromBoard(b Board) *Game { return &Game{board: b} }

// Board exposes the current position, for callers such as internal/api
// that need to render it without going through the engine.Game surface.
func (g *Game) Board() Board { return g.board }

func (g *Game) HasEnded() bool { return g.board.HasEnded() }
func (g *Game) Outcome() int   { return g.board.Outcome() }
func (g *Game) Score() int     { return g.board.Score() }
func (g *Game) Turn() int      { return g.board.turn }
func (g *Game) Length() int    { return len(g.history) }
func (g *Game) Hash() uint64   { return g.board.Hash() }

// Make plays move, which must be one of LegalMoves' current results.
func (g *Game) Make(move engine.Move) {
	g.history = append(g.history, g.board)
	g.board.sow(int(move))
	g.cursorStack = append(g.cursorStack, 0)
}

// Unmake reverts the last Make.
func (g *Game) Unmake() {
	last := len(g.history) - 1
	g.board = g.history[last]
	g.history = g.history[:last]
	g.cursorStack = g.cursorStack[:len(g.cursorStack)-1]
}

func (g *Game) cursor() int {
	if len(g.cursorStack) == 0 {
		return 0
	}
	return g.cursorStack[len(g.cursorStack)-1]
}

func (g *Game) setCursor(c int) {
	if len(g.cursorStack) == 0 {
		return
	}
	g.cursorStack[len(g.cursorStack)-1] = c
}

// NextMove enumerates the current side's legal houses in ascending
// order, one per call, returning engine.NullMove once exhausted.
func (g *Game) NextMove() engine.Move {
	moves := g.board.LegalHouses()
	c := g.cursor()
	if c >= len(moves) {
		return engine.NullMove
	}
	g.setCursor(c + 1)
	return engine.Move(moves[c])
}

func (g *Game) GetCursor() engine.Cursor  { return g.cursor() }
func (g *Game) SetCursor(c engine.Cursor) { g.setCursor(c.(int)) }
func (g *Game) ResetCursor()              { g.setCursor(0) }

// LegalMoves returns every house the current side may sow from. It only
// reads board state, so it never disturbs the NextMove cursor.
func (g *Game) LegalMoves() []engine.Move {
	houses := g.board.LegalHouses()
	moves := make([]engine.Move, len(houses))
	for i, h := range houses {
		moves[i] = engine.Move(h)
	}
	return moves
}

// EnsureCapacity preallocates the undo history for a search expected to
// reach roughly n plies deep.
func (g *Game) EnsureCapacity(n int) {
	if cap(g.history) < n {
		grown := make([]Board, len(g.history), n)
		copy(grown, g.history)
		g.history = grown
	}
	if cap(g.cursorStack) < n {
		grown := make([]int, len(g.cursorStack), n)
		copy(grown, g.cursorStack)
		g.cursorStack = grown
	}
}

var _ engine.Game = (*Game)(nil)
