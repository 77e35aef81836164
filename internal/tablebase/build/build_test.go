package build

import (
	"path/filepath"
	"testing"

	"github.com/cryptokrok/mancala.oware-AI-engine/internal/engine"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/oware"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/tablebase"
)

// oneMoveFromEnding is a hand-built near-terminal board: South holds a
// single seed, North holds none. Whatever South plays, North is left
// with no legal move on its next turn.
func oneMoveFromEnding() oware.Board {
	b := oware.NewBoard()
	// Zero every house, then give South exactly one seed to work with.
	houses := b.Houses()
	for i := range houses {
		houses[i] = 0
	}
	houses[0] = 1
	return oware.BoardFromParts(houses, [2]int{20, 20}, engine.South)
}

func TestGenerateIncludesRootAndIsBoundedByPlies(t *testing.T) {
	root := oneMoveFromEnding()
	positions := Generate(root, 1)

	found := false
	for _, b := range positions {
		if b.Hash() == root.Hash() {
			found = true
		}
	}
	if !found {
		t.Fatal("Generate did not include the root position")
	}
	if len(positions) < 2 {
		t.Fatalf("Generate(root, 1) produced %d positions, want at least 2 (root plus one move)", len(positions))
	}
}

func TestGenerateStopsAtTerminalPositions(t *testing.T) {
	terminal := oware.BoardFromParts([12]int{}, [2]int{30, 18}, engine.South)
	positions := Generate(terminal, 5)
	if len(positions) != 1 {
		t.Fatalf("Generate from a terminal root produced %d positions, want 1", len(positions))
	}
}

func TestSolveMatchesOutcomeAtATerminalPosition(t *testing.T) {
	terminal := oware.BoardFromParts([12]int{}, [2]int{30, 18}, engine.South)
	got := Solve(terminal, map[uint64]int{})
	if want := terminal.Outcome(); got != want {
		t.Fatalf("Solve(terminal) = %d, want Outcome() = %d", got, want)
	}
}

func TestSolveOneMoveFromEndingFavorsTheOnlyPossibleOutcome(t *testing.T) {
	root := oneMoveFromEnding()
	got := Solve(root, map[uint64]int{})

	// The only move sows South's single seed into house 1 (South's own
	// side), which leaves North to move with no seeds, ending the game at
	// once with the stores exactly as they started plus whatever ended up
	// uncaptured.
	child := root.Play(0)
	want := Solve(child, map[uint64]int{}) // no choice at the root, so the two must agree
	if got != want {
		t.Fatalf("Solve(root) = %d, want %d (the forced continuation's value)", got, want)
	}
}

func TestPopulateWritesEveryGeneratedPosition(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tablebase")
	store, err := tablebase.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	root := oneMoveFromEnding()
	written, err := Populate(store, root, 3)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if written == 0 {
		t.Fatal("Populate wrote zero positions")
	}

	if !store.Find(hashProbe(root.Hash())) {
		t.Fatal("Populate did not write the root position")
	}
	if got := store.CacheFlag(); got != engine.FlagExact {
		t.Fatalf("CacheFlag() = %v, want FlagExact", got)
	}
}

type hashProbe uint64

func (h hashProbe) HasEnded() bool            { return false }
func (h hashProbe) Outcome() int              { return 0 }
func (h hashProbe) Score() int                { return 0 }
func (h hashProbe) Turn() int                 { return engine.South }
func (h hashProbe) Length() int               { return 0 }
func (h hashProbe) Hash() uint64              { return uint64(h) }
func (h hashProbe) Make(engine.Move)          {}
func (h hashProbe) Unmake()                   {}
func (h hashProbe) NextMove() engine.Move     { return engine.NullMove }
func (h hashProbe) GetCursor() engine.Cursor  { return nil }
func (h hashProbe) SetCursor(engine.Cursor)   {}
func (h hashProbe) ResetCursor()              {}
func (h hashProbe) LegalMoves() []engine.Move { return nil }
func (h hashProbe) EnsureCapacity(int)        {}
