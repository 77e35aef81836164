// Command enginectl serves an Oware session over HTTP and WebSocket, or
// drives it from the command line, wiring internal/engine, internal/oware,
// internal/ttcache, and (optionally) internal/tablebase together the way
// the teacher's own backend/main.go wires its Gomoku controller, hubs, and
// router.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cryptokrok/mancala.oware-AI-engine/internal/api"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/oware"
)

// fileConfig is the on-disk shape loaded by -config: an api.Config plus the
// two settings that live outside it: the tablebase's path (api.Config itself
// only carries the on/off flag shared with the HTTP config endpoint) and the
// transposition-table file path.
type fileConfig struct {
	api.Config
	TablebasePath string `json:"tablebase_path"`
	TTFilePath    string `json:"tt_file_path"`
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	depth := flag.Int("depth", 12, "maximum search depth (even; rounded up)")
	moveTimeMs := flag.Int("move-time-ms", 1000, "per-move search time budget")
	contempt := flag.Int("contempt", 0, "score assigned to a drawn position")
	ttSlots := flag.Int64("tt-slots", 1<<20, "transposition table slot count (rounded up to a power of two)")
	ttBuckets := flag.Int("tt-buckets", 4, "transposition table associativity")
	tablebasePath := flag.String("tablebase", "", "path to a Badger-backed endgame tablebase; empty disables it")
	ttFile := flag.String("tt-file", "", "path to load/save the transposition table across restarts; empty disables persistence")
	configPath := flag.String("config", "", "path to a JSON config file (overrides the flags above entirely when set)")
	serve := flag.Bool("serve", false, "run the HTTP/WebSocket server instead of reading positions from stdin")
	selfPlay := flag.Bool("self-play", false, "play a self-play loop instead of reading positions from stdin (ignored when -serve is set)")
	flag.Parse()

	config := api.DefaultConfig()
	config.Depth = *depth
	config.MoveTimeMs = *moveTimeMs
	config.Contempt = *contempt
	config.TTSlots = *ttSlots
	config.TTBuckets = *ttBuckets
	config.TablebaseOn = *tablebasePath != ""
	tbPath := *tablebasePath
	ttFilePath := *ttFile

	if *configPath != "" {
		loaded, path, ttPath, err := loadConfigFile(*configPath)
		if err != nil {
			log.Fatalf("enginectl: %v", err)
		}
		config = loaded
		tbPath = path
		ttFilePath = ttPath
	}

	session, err := api.NewSession(config, tbPath)
	if err != nil {
		log.Fatalf("enginectl: %v", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("enginectl: closing session: %v", err)
		}
	}()

	if ttFilePath != "" {
		if err := session.Cache().LoadFile(ttFilePath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Printf("enginectl: no transposition table file at %s yet, starting empty", ttFilePath)
			} else {
				log.Printf("enginectl: loading transposition table: %v", err)
			}
		}
		defer func() {
			if err := session.Cache().SaveFile(ttFilePath); err != nil {
				log.Printf("enginectl: saving transposition table: %v", err)
			}
		}()
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	session.Engine().AttachConsumer(api.NewLoggingConsumer(logger))

	if *serve {
		runServer(*addr, session, config)
		return
	}

	if *selfPlay {
		runSelfPlay(session)
		return
	}
	runStdin(session)
}

// loadConfigFile decodes path into an api.Config plus tablebase and
// transposition-table file paths, following the teacher's own
// tagged-struct config style but read from disk instead of
// environment/flags.
func loadConfigFile(path string) (api.Config, string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return api.Config{}, "", "", fmt.Errorf("loading config file: %w", err)
	}
	defer f.Close()

	fc := fileConfig{Config: api.DefaultConfig()}
	if err := json.NewDecoder(f).Decode(&fc); err != nil {
		return api.Config{}, "", "", fmt.Errorf("parsing config file %s: %w", path, err)
	}
	fc.Config.TablebaseOn = fc.Config.TablebaseOn && fc.TablebasePath != ""
	return fc.Config, fc.TablebasePath, fc.TTFilePath, nil
}

// runServer attaches a WebSocket search-progress broadcaster on top of the
// logging consumer every mode gets, then serves the HTTP surface until an
// interrupt or the server itself fails, following the teacher's own
// listen/signal/shutdown sequence in backend/main.go.
func runServer(addr string, session *api.Session, config api.Config) {
	hub := api.NewHub()
	session.Engine().AttachConsumer(api.NewSearchConsumer(hub))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

	configs := api.NewConfigStore(config)
	router := api.NewRouter(session, hub, configs)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("enginectl listening on %s", addr)
	var runErr error
	select {
	case <-sigCtx.Done():
		log.Printf("enginectl: shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			log.Printf("enginectl: server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("enginectl: graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("enginectl: forced close failed: %v", closeErr)
		}
	}

	cancel()
	session.Abort()
	if runErr != nil {
		log.Printf("enginectl: exiting after server error: %v", runErr)
	}
}

// runStdin reads one FEN-like Oware position per line from stdin, computes
// the engine's best move for it, and prints the move's house index.
func runStdin(session *api.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		board, err := oware.ParseBoard(line)
		if err != nil {
			log.Printf("enginectl: %v", err)
			continue
		}
		game := oware.NewFromBoard(board)
		move := session.Engine().ComputeBestMove(context.Background(), game)
		fmt.Println(int(move))
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("enginectl: reading stdin: %v", err)
	}
}

// runSelfPlay drives session's own game from the opening position to
// completion, printing every move the engine makes, then the final
// outcome.
func runSelfPlay(session *api.Session) {
	for {
		status := session.Status()
		if status.Ended {
			fmt.Printf("game over: outcome=%d\n", status.Outcome)
			return
		}
		move, err := session.ComputeMove(context.Background())
		if err != nil {
			log.Fatalf("enginectl: %v", err)
		}
		fmt.Printf("move=%d houses=%v stores=%v\n", move, session.Status().Houses, session.Status().Stores)
	}
}
