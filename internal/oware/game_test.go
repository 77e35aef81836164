package oware

import (
	"testing"

	"github.com/cryptokrok/mancala.oware-AI-engine/internal/engine"
)

func TestGameLegalMovesFromStartingPosition(t *testing.T) {
	g := New()
	moves := g.LegalMoves()
	if len(moves) != HousesPerSide {
		t.Fatalf("LegalMoves() = %d moves, want %d", len(moves), HousesPerSide)
	}
	for i, m := range moves {
		if m != engine.Move(i) {
			t.Fatalf("LegalMoves()[%d] = %v, want %v", i, m, engine.Move(i))
		}
	}
}

func TestGameMakeUnmakeRoundTrips(t *testing.T) {
	g := New()
	before := g.board
	beforeHash := g.Hash()

	g.Make(engine.Move(2))
	if g.Length() != 1 {
		t.Fatalf("Length() after one Make = %d, want 1", g.Length())
	}
	if g.Turn() != engine.North {
		t.Fatalf("Turn() after South moves = %d, want North", g.Turn())
	}

	g.Unmake()
	if g.Length() != 0 {
		t.Fatalf("Length() after Unmake = %d, want 0", g.Length())
	}
	if g.board != before {
		t.Fatal("Unmake did not restore the exact prior board")
	}
	if g.Hash() != beforeHash {
		t.Fatal("Hash() changed across a Make/Unmake round trip")
	}
}

func TestGameNextMoveExhaustsThenReturnsNullMove(t *testing.T) {
	g := New()
	g.Make(engine.Move(0)) // gives North a turn with all six houses non-empty

	seen := map[engine.Move]bool{}
	for {
		m := g.NextMove()
		if m == engine.NullMove {
			break
		}
		if seen[m] {
			t.Fatalf("NextMove repeated move %v without an intervening ResetCursor", m)
		}
		seen[m] = true
	}
	if len(seen) != HousesPerSide {
		t.Fatalf("NextMove produced %d distinct moves, want %d", len(seen), HousesPerSide)
	}
	if g.NextMove() != engine.NullMove {
		t.Fatal("NextMove kept producing moves past exhaustion")
	}
}

func TestGameResetCursorReplaysTheSameMoves(t *testing.T) {
	g := New()
	g.Make(engine.Move(1))

	first := g.NextMove()
	g.ResetCursor()
	second := g.NextMove()
	if first != second {
		t.Fatalf("ResetCursor did not rewind the enumerator: %v then %v", first, second)
	}
}

func TestGameGetSetCursorRestoresPosition(t *testing.T) {
	g := New()
	g.Make(engine.Move(1))

	g.NextMove()
	saved := g.GetCursor()
	skipped := g.NextMove()

	g.SetCursor(saved)
	replayed := g.NextMove()
	if replayed != skipped {
		t.Fatalf("SetCursor did not restore the saved position: got %v, want %v", replayed, skipped)
	}
}

func TestGameHashChangesAcrossAMove(t *testing.T) {
	g := New()
	h0 := g.Hash()
	g.Make(engine.Move(2))
	h1 := g.Hash()
	if h0 == h1 {
		t.Fatal("Hash() did not change after a move that alters the board")
	}
}

func TestGameHashAgreesForIdenticalMoveSequences(t *testing.T) {
	a := New()
	a.Make(engine.Move(0))
	a.Make(engine.Move(6))

	b := New()
	b.Make(engine.Move(0))
	b.Make(engine.Move(6))

	if a.Hash() != b.Hash() {
		t.Fatal("Hash() disagreed for two Games that replayed the identical move sequence")
	}
}

func TestGameEnsureCapacityPreservesHistory(t *testing.T) {
	g := New()
	g.Make(engine.Move(0))
	g.EnsureCapacity(64)
	if g.Length() != 1 {
		t.Fatalf("Length() after EnsureCapacity = %d, want 1", g.Length())
	}
	g.Unmake()
	if g.Length() != 0 {
		t.Fatalf("Length() after Unmake following EnsureCapacity = %d, want 0", g.Length())
	}
}

func TestGameImplementsEngineGame(t *testing.T) {
	var _ engine.Game = New()
}

func TestGameHasEndedReflectsStarvation(t *testing.T) {
	g := New()
	g.board = Board{turn: engine.South} // South's row is empty, North's is untouched
	if !g.HasEnded() {
		t.Fatal("HasEnded() = false with the side to move fully starved")
	}
}
