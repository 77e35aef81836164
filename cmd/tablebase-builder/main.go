// Command tablebase-builder generates an Oware endgame tablebase offline:
// it enumerates every position reachable from a root within a bounded
// ply count, solves each one exactly, and bulk-writes the results into a
// Badger database that cmd/enginectl's -tablebase flag can later open
// read-only. It plays the same role the teacher's ai-trainer command
// plays for its own AI (a standalone binary that prepares something the
// main server only ever reads), generalized from a heuristic-tuning loop
// to a one-shot solve.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cryptokrok/mancala.oware-AI-engine/internal/oware"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/tablebase"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/tablebase/build"
)

func main() {
	dbPath := flag.String("tablebase", "", "path to write the generated Badger tablebase (required)")
	rootPos := flag.String("root", "", "FEN-like root position (houses|stores|turn); defaults to the opening position")
	maxPlies := flag.Int("max-plies", 8, "maximum plies to explore from the root")
	flag.Parse()

	logger := log.New(os.Stderr, "tablebase-builder: ", log.LstdFlags)

	if *dbPath == "" {
		logger.Fatal("-tablebase is required")
	}

	root := oware.NewBoard()
	if *rootPos != "" {
		parsed, err := oware.ParseBoard(*rootPos)
		if err != nil {
			logger.Fatalf("parsing -root: %v", err)
		}
		root = parsed
	}

	store, err := tablebase.Open(*dbPath)
	if err != nil {
		logger.Fatalf("opening %s: %v", *dbPath, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Printf("closing store: %v", err)
		}
	}()

	logger.Printf("generating from root %s within %d plies", root, *maxPlies)
	start := time.Now()
	written, err := build.Populate(store, root, *maxPlies)
	if err != nil {
		logger.Fatalf("populate: %v", err)
	}
	logger.Printf("wrote %d positions to %s in %s", written, *dbPath, time.Since(start))
	fmt.Printf("%d positions written\n", written)
}
