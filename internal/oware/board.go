// Package oware implements Oware Abapa, a Mancala-family sowing game,
// as an engine.Game. The board layout and rule shape follow the teacher's
// own Board value type (backend/board.go): a small fixed-size array
// wrapped by a struct with a cheap Clone, generalized here from a stone
// grid to a ring of seed-counting houses.
package oware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cryptokrok/mancala.oware-AI-engine/internal/engine"
)

const (
	// Houses is the number of sowing houses on the board, six per side.
	Houses = 12
	// HousesPerSide is the number of houses each player owns.
	HousesPerSide = 6
	// SeedsPerHouse is the number of seeds each house starts with.
	SeedsPerHouse = 4
	// TotalSeeds is the number of seeds in play at all times: none are
	// ever created or destroyed, only moved between houses and stores.
	TotalSeeds = Houses * SeedsPerHouse
	// WinScore is the absolute outcome value of a decisive game, chosen
	// to match engine.New's default Infinity so a forced win is also
	// recognized by the root driver's early "already decisive" cutoff.
	WinScore = 1<<31 - 1
)

// Board is the Oware position: twelve houses in a ring (0-5 belong to
// South, 6-11 to North) and two stores holding each side's captured
// seeds. Board is a plain value type; copying it copies the whole
// position, which is what Game uses for its undo history.
type Board struct {
	houses [Houses]int
	stores [2]int
	turn   int
}

// NewBoard returns the starting position: four seeds in every house,
// empty stores, South to move.
func NewBoard() Board {
	b := Board{turn: engine.South}
	for i := range b.houses {
		b.houses[i] = SeedsPerHouse
	}
	return b
}

// BoardFromParts builds a Board directly from its house counts, store
// totals, and side to move, for callers such as internal/tablebase/build
// that need to construct positions outside of NewBoard's fixed start.
// It performs no legality checking.
func BoardFromParts(houses [Houses]int, stores [2]int, turn int) Board {
	return Board{houses: houses, stores: stores, turn: turn}
}

// ParseBoard parses the FEN-like position string cmd/enginectl reads from
// stdin, one per line: twelve comma-separated house counts, a "|", the
// two comma-separated store totals, a "|", and "S" or "N" for the side
// to move, e.g. "4,4,4,4,4,4,4,4,4,4,4,4|0,0|S" for the opening position.
func ParseBoard(s string) (Board, error) {
	fields := strings.Split(s, "|")
	if len(fields) != 3 {
		return Board{}, fmt.Errorf("oware: malformed position %q: want houses|stores|turn", s)
	}

	houseFields := strings.Split(fields[0], ",")
	if len(houseFields) != Houses {
		return Board{}, fmt.Errorf("oware: malformed position %q: want %d houses, got %d", s, Houses, len(houseFields))
	}
	var houses [Houses]int
	for i, f := range houseFields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Board{}, fmt.Errorf("oware: malformed position %q: house %d: %w", s, i, err)
		}
		houses[i] = n
	}

	storeFields := strings.Split(fields[1], ",")
	if len(storeFields) != 2 {
		return Board{}, fmt.Errorf("oware: malformed position %q: want 2 stores, got %d", s, len(storeFields))
	}
	var stores [2]int
	for i, f := range storeFields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Board{}, fmt.Errorf("oware: malformed position %q: store %d: %w", s, i, err)
		}
		stores[i] = n
	}

	var turn int
	switch strings.TrimSpace(fields[2]) {
	case "S":
		turn = engine.South
	case "N":
		turn = engine.North
	default:
		return Board{}, fmt.Errorf("oware: malformed position %q: turn must be S or N", s)
	}

	return BoardFromParts(houses, stores, turn), nil
}

// String renders b in the same format ParseBoard accepts.
func (b Board) String() string {
	houseFields := make([]string, Houses)
	for i, n := range b.houses {
		houseFields[i] = strconv.Itoa(n)
	}
	turn := "S"
	if b.turn == engine.North {
		turn = "N"
	}
	return fmt.Sprintf("%s|%d,%d|%s", strings.Join(houseFields, ","), b.stores[0], b.stores[1], turn)
}

// Houses returns a copy of the twelve house seed counts.
func (b Board) Houses() [Houses]int { return b.houses }

// Stores returns a copy of the two store totals, South first.
func (b Board) Stores() [2]int { return b.stores }

// Turn returns engine.South or engine.North.
func (b Board) Turn() int { return b.turn }

func sideStart(turn int) int {
	if turn == engine.South {
		return 0
	}
	return HousesPerSide
}

func onSouthSide(house int) bool { return house < HousesPerSide }

func belongsToOpponent(house, mover int) bool {
	if mover == engine.South {
		return !onSouthSide(house)
	}
	return onSouthSide(house)
}

func storeIndex(turn int) int {
	if turn == engine.South {
		return 0
	}
	return 1
}

func opponent(turn int) int { return -turn }

// LegalHouses returns the indices of the current side's non-empty houses,
// in ascending order.
func (b Board) LegalHouses() []int {
	start := sideStart(b.turn)
	var out []int
	for i := 0; i < HousesPerSide; i++ {
		h := start + i
		if b.houses[h] > 0 {
			out = append(out, h)
		}
	}
	return out
}

// HasEnded reports whether the side to move has no legal house to sow
// from.
func (b Board) HasEnded() bool { return len(b.LegalHouses()) == 0 }

// Outcome returns the absolute result of a finished game: WinScore if
// South holds a majority of the board's seeds, -WinScore if North does,
// or engine.DrawScore on an exact split. Undefined if !HasEnded().
func (b Board) Outcome() int {
	south, north := b.stores[0], b.stores[1]
	remaining := 0
	for _, seeds := range b.houses {
		remaining += seeds
	}
	if b.turn == engine.South {
		north += remaining
	} else {
		south += remaining
	}
	switch {
	case south > north:
		return WinScore
	case north > south:
		return -WinScore
	default:
		return engine.DrawScore
	}
}

// Score returns a static, absolute (South-positive) evaluation of a
// non-terminal position: captured-seed differential dominates, with a
// smaller term for material still on each side and a capture-threat
// term for houses sitting at one or two seeds.
func (b Board) Score() int {
	score := (b.stores[0] - b.stores[1]) * 100

	for i := 0; i < HousesPerSide; i++ {
		score += b.houses[i]
		if b.houses[i] == 1 || b.houses[i] == 2 {
			score -= 3
		}
	}
	for i := HousesPerSide; i < Houses; i++ {
		score -= b.houses[i]
		if b.houses[i] == 1 || b.houses[i] == 2 {
			score += 3
		}
	}
	return score
}

// Play returns the board that results from sowing house, leaving b
// itself unmodified. It is the pure-function counterpart to Game.Make,
// used by callers such as internal/tablebase/build that want to explore
// a position tree without maintaining an undo stack.
func (b Board) Play(house int) Board {
	next := b
	next.sow(house)
	return next
}

// sow plays house: it picks up every seed there, distributes them one by
// one into consecutive houses going around the ring (wrapping into the
// originating house if there are enough seeds to lap it), applies the
// capture-chain rule, and hands the turn to the opponent.
func (b *Board) sow(house int) {
	seeds := b.houses[house]
	b.houses[house] = 0

	idx := house
	for seeds > 0 {
		idx = (idx + 1) % Houses
		b.houses[idx]++
		seeds--
	}

	mover := b.turn
	for belongsToOpponent(idx, mover) && (b.houses[idx] == 2 || b.houses[idx] == 3) {
		b.stores[storeIndex(mover)] += b.houses[idx]
		b.houses[idx] = 0
		idx = (idx - 1 + Houses) % Houses
	}

	b.turn = opponent(mover)
}
