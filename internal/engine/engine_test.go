package engine

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"
)

func TestComputeBestMove_TwoPlyForcedLoss(t *testing.T) {
	root := leaf(0)
	root.with(Move(1), terminalNode(-math.MaxInt32))

	e := New()
	e.SetDepth(2)

	game := newTreeGame(root, South)
	move := e.ComputeBestMove(context.Background(), game)
	if move != Move(1) {
		t.Fatalf("bestMove = %v, want %v", move, Move(1))
	}

	score := e.ComputeBestScore(context.Background(), newTreeGame(root, South))
	if score != -math.MaxInt32 {
		t.Fatalf("ComputeBestScore = %d, want %d (forced loss for the side to move)", score, -math.MaxInt32)
	}
}

func TestComputeBestMove_DrawWithContempt(t *testing.T) {
	root := leaf(0)
	root.with(Move(1), terminalNode(DrawScore))

	e := New()
	e.SetDepth(2)
	e.SetContempt(-50)

	score := e.ComputeBestScore(context.Background(), newTreeGame(root, North))
	if score != 50 {
		t.Fatalf("ComputeBestScore = %d, want 50 (contempt makes the forced draw unattractive)", score)
	}
}

func TestComputeBestMove_ReordersRootByHashMove(t *testing.T) {
	root := leaf(0)
	root.with(Move(1), chainToLeaf(2, 10))
	root.with(Move(2), chainToLeaf(2, 20))
	root.with(Move(3), chainToLeaf(2, 5))

	game := newTreeGame(root, South)
	rootHash := game.Hash()

	cache := newFakeCache()
	cache.seed(rootHash, fakeCacheEntry{move: Move(3), score: 0, depth: 0, flag: FlagExact})

	e := New()
	e.SetDepth(2)
	e.SetCache(cache)

	e.ComputeBestMove(context.Background(), game)

	if len(game.madeAtRoot) == 0 || game.madeAtRoot[0] != Move(3) {
		t.Fatalf("first root move tried = %v, want the cached hash move %v", game.madeAtRoot, Move(3))
	}
}

func TestComputeBestMove_TimeoutPreservesLastCompletedDepth(t *testing.T) {
	root := leaf(0)
	root.with(Move(1), straightChain(12))

	game := newTreeGame(root, South)
	game.beforeScore = func(depth int) {
		switch depth {
		case 4:
			time.Sleep(time.Millisecond)
		case 6:
			time.Sleep(100 * time.Millisecond)
		}
	}

	e := New()
	if err := e.SetMoveTime(15 * time.Millisecond); err != nil {
		t.Fatalf("SetMoveTime: %v", err)
	}

	e.ComputeBestMove(context.Background(), game)

	if got := e.ScoreDepth(); got != 4 {
		t.Fatalf("ScoreDepth() = %d, want 4 (depth 6 was aborted mid-flight)", got)
	}
}

func TestComputeBestMove_AbortDuringMinDepthStillCompletes(t *testing.T) {
	root := leaf(0)
	root.with(Move(1), chainToLeaf(2, 10))
	root.with(Move(2), chainToLeaf(2, 20))
	root.with(Move(3), chainToLeaf(2, 5))

	game := newTreeGame(root, South)
	game.beforeScore = func(int) { time.Sleep(3 * time.Millisecond) }

	e := New()
	if err := e.SetMoveTime(time.Hour); err != nil {
		t.Fatalf("SetMoveTime: %v", err)
	}

	go e.AbortComputation()

	move := e.ComputeBestMove(context.Background(), game)

	switch move {
	case Move(1), Move(2), Move(3):
	default:
		t.Fatalf("bestMove = %v, want one of the three legal root moves", move)
	}
	if got := e.ScoreDepth(); got != MinDepth {
		t.Fatalf("ScoreDepth() = %d, want %d (only the always-completed shallow pass)", got, MinDepth)
	}
}

func TestComputeBestMove_MatchesNaiveMinimax(t *testing.T) {
	counter := 0
	root := buildFullTree(5, &counter)

	game := newTreeGame(root, South)
	want := referenceMinimax(root, South, 0)

	e := New()
	e.SetDepth(4)
	if err := e.SetMoveTime(2 * time.Second); err != nil {
		t.Fatalf("SetMoveTime: %v", err)
	}

	got := e.ComputeBestScore(context.Background(), game)
	if got != want {
		t.Fatalf("ComputeBestScore = %d, want %d (naive full-window minimax)", got, want)
	}
}

func TestComputeBestMove_TerminalRootReturnsNullMove(t *testing.T) {
	root := terminalNode(math.MaxInt32)
	e := New()
	move := e.ComputeBestMove(context.Background(), newTreeGame(root, South))
	if move != NullMove {
		t.Fatalf("bestMove = %v, want NullMove for an already-ended game", move)
	}
}

func TestComputeBestMove_GameStackReturnsToRoot(t *testing.T) {
	counter := 0
	root := buildFullTree(5, &counter)
	game := newTreeGame(root, South)

	e := New()
	e.SetDepth(4)
	e.ComputeBestMove(context.Background(), game)

	if game.Length() != 0 {
		t.Fatalf("game.Length() = %d after ComputeBestMove, want 0 (every Make must be Unmade)", game.Length())
	}
}

func TestSetDepth_ClampsAndRounds(t *testing.T) {
	e := New()

	e.SetDepth(1)
	if got := e.Depth(); got != MinDepth {
		t.Fatalf("SetDepth(1) -> Depth() = %d, want %d", got, MinDepth)
	}

	e.SetDepth(3)
	if got := e.Depth(); got != 4 {
		t.Fatalf("SetDepth(3) -> Depth() = %d, want 4 (rounded up to even)", got)
	}

	e.SetDepth(10_000)
	if got := e.Depth(); got != MaxDepth {
		t.Fatalf("SetDepth(10000) -> Depth() = %d, want %d", got, MaxDepth)
	}
}

func TestSetMoveTime_RejectsNonPositive(t *testing.T) {
	e := New()
	before := e.MoveTime()

	if err := e.SetMoveTime(0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("SetMoveTime(0) error = %v, want ErrInvalidArgument", err)
	}
	if got := e.MoveTime(); got != before {
		t.Fatalf("MoveTime() = %s after a rejected SetMoveTime, want unchanged %s", got, before)
	}
}

func TestSetInfinity_RejectsNonPositive(t *testing.T) {
	e := New()
	if err := e.SetInfinity(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("SetInfinity(-1) error = %v, want ErrInvalidArgument", err)
	}
	if err := e.SetInfinity(1000); err != nil {
		t.Fatalf("SetInfinity(1000): %v", err)
	}
	if got := e.Infinity(); got != 1000 {
		t.Fatalf("Infinity() = %d, want 1000", got)
	}
}

func TestAbortComputation_IdleIsNoop(t *testing.T) {
	e := New()
	e.AbortComputation()
	e.AbortComputation()
}

func TestGetPonderMove_UsesExactCacheEntry(t *testing.T) {
	root := leaf(0)
	game := newTreeGame(root, South)

	cache := newFakeCache()
	cache.seed(game.Hash(), fakeCacheEntry{move: Move(7), flag: FlagExact})

	e := New()
	e.SetCache(cache)

	if got := e.GetPonderMove(game); got != Move(7) {
		t.Fatalf("GetPonderMove() = %v, want %v", got, Move(7))
	}

	cache.seed(game.Hash(), fakeCacheEntry{move: Move(7), flag: FlagLower})
	if got := e.GetPonderMove(game); got != NullMove {
		t.Fatalf("GetPonderMove() = %v, want NullMove for a non-exact entry", got)
	}
}

func TestConsumers_NotifiedAndDetachable(t *testing.T) {
	counter := 0
	root := buildFullTree(5, &counter)
	game := newTreeGame(root, South)

	var calls atomic.Int32
	consumer := ConsumerFunc(func(Report) { calls.Add(1) })

	e := New()
	e.SetDepth(4)
	e.AttachConsumer(&consumer)

	e.ComputeBestMove(context.Background(), game)
	afterAttach := calls.Load()
	if afterAttach == 0 {
		t.Fatal("consumer was never notified during a multi-iteration search")
	}

	e.DetachConsumer(&consumer)

	game2 := newTreeGame(root, South)
	e.ComputeBestMove(context.Background(), game2)
	if got := calls.Load(); got != afterAttach {
		t.Fatalf("consumer notified %d more times after DetachConsumer", got-afterAttach)
	}
}
