package engine

// Turn multiplier returned by Game.Turn: the side to move contributes this
// sign when converting an absolute score to a side-to-move score.
const (
	South = 1
	North = -1
)

// Cursor is an opaque save point for a Game's move enumerator. It lets the
// engine call LegalMoves at the root without disturbing NextMove's
// per-node enumeration state.
type Cursor interface{}

// Game is the capability the engine searches over. Implementations own move
// generation, legality, terminal detection, static evaluation and hashing;
// the engine never inspects a Game's internals directly.
//
// Make/Unmake follow strict stack discipline: Unmake must undo exactly the
// most recent unmatched Make. The engine relies on this to keep the game
// object balanced across a call to ComputeBestMove even when the search
// aborts partway through.
type Game interface {
	// HasEnded reports whether the current position is terminal.
	HasEnded() bool

	// Outcome returns the absolute result of a terminal position, or
	// DrawScore if the position is drawn. Undefined if !HasEnded().
	Outcome() int

	// Score returns a static heuristic evaluation of the current
	// position from an absolute (not side-to-move) perspective.
	Score() int

	// Turn returns South or North depending on which side is to move.
	Turn() int

	// Length returns the number of plies played since the game began.
	Length() int

	// Hash returns a fingerprint of the current position. Collisions are
	// tolerated but should be rare.
	Hash() uint64

	// Make plays move, mutating the position in place.
	Make(move Move)

	// Unmake undoes the most recent unmatched Make.
	Unmake()

	// NextMove advances the game's internal move enumerator and returns
	// the next candidate move, or NullMove once exhausted. Consecutive
	// calls without an intervening ResetCursor must not repeat a move.
	NextMove() Move

	// GetCursor snapshots the enumerator's current position.
	GetCursor() Cursor

	// SetCursor restores an enumerator position previously returned by
	// GetCursor.
	SetCursor(c Cursor)

	// ResetCursor rewinds the enumerator to the start of the current
	// position's move list.
	ResetCursor()

	// LegalMoves materializes every legal move for the current position.
	// Used only at the search root; must not disturb the NextMove cursor.
	LegalMoves() []Move

	// EnsureCapacity grows the game's internal move stack so that at
	// least n plies of Make can be issued without reallocating.
	EnsureCapacity(n int)
}
