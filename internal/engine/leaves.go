package engine

// Leaves is a precomputed endgame tablebase. When Find reports a hit for a
// game's current position, the search treats it as if the position were
// terminal, using Score in place of Game.Outcome; the search does not
// consult CacheFlag.
type Leaves interface {
	// Find looks up game's current position and reports whether the
	// tablebase resolves it.
	Find(game Game) bool

	// Score returns the last found position's absolute score.
	Score() int

	// CacheFlag returns the last found position's bound classification.
	// Tablebase hits are ordinarily FlagExact.
	CacheFlag() Flag
}

// nullLeaves is the default Leaves installed when none is configured.
type nullLeaves struct{}

func (nullLeaves) Find(Game) bool  { return false }
func (nullLeaves) Score() int      { return 0 }
func (nullLeaves) CacheFlag() Flag { return FlagEmpty }

var _ Leaves = nullLeaves{}
