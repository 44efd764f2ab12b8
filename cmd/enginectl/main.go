// enginectl is a minimal UCI-style stdin/stdout driver over the
// coordinator package.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"goosecore/board"
	"goosecore/coordinator"
	"goosecore/engine"
	"goosecore/logging"
)

func atoi(s string) int { v, _ := strconv.Atoi(s); return v }

func main() {
	bookPath := flag.String("book", "", "Path to a Polyglot .bin opening book")
	ttSizeMB := flag.Int("tt", 0, "Transposition table size in MB (0 = derive from system memory)")
	debug := flag.Bool("debug", false, "Log search and probe advisories to stderr")
	flag.Parse()

	opts := coordinator.Options{BookPath: *bookPath, TTSizeMB: *ttSizeMB}
	if *debug {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		opts.Log = logging.New(logger)
	}

	coord, err := coordinator.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "coordinator.New: %v\n", err)
		os.Exit(1)
	}
	defer coord.Close()

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("id name goosecore")
	fmt.Println("id author the engine's developers")
	fmt.Println("uciok")

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, " ")
		switch parts[0] {
		case "quit":
			return
		case "uci":
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			coord.SetPosition(board.NewEmpty())
		case "position":
			handlePosition(coord, parts[1:])
		case "go":
			handleGo(coord, parts[1:])
		case "result":
			handleResult(coord, parts[1:])
		}
	}
}

func handlePosition(coord *coordinator.Coordinator, args []string) {
	if len(args) == 0 {
		return
	}
	var pos *board.Position
	var rest []string

	switch args[0] {
	case "startpos":
		p, _ := board.ParseFEN(board.FENStartPos)
		pos = p
		rest = args[1:]
	case "fen":
		idx := 1
		for idx < len(args) && args[idx] != "moves" {
			idx++
		}
		fen := strings.Join(args[1:idx], " ")
		p, err := board.ParseFEN(fen)
		if err != nil {
			return
		}
		pos = p
		rest = args[idx:]
	default:
		return
	}

	coord.SetPosition(pos)
	if len(rest) > 0 && rest[0] == "moves" {
		for _, uci := range rest[1:] {
			m, err := pos.ParseMove(uci)
			if err != nil {
				break
			}
			coord.Play(m)
		}
	}
}

// handleResult reports a finished game's outcome (non-standard UCI
// extension: "result 1-0" / "result 0-1" / "result 1/2-1/2") so the moves
// played since the last "position" command get credited into the learned
// book, if one is configured.
func handleResult(coord *coordinator.Coordinator, args []string) {
	if len(args) == 0 {
		return
	}
	var score float64
	switch args[0] {
	case "1-0":
		score = 1
	case "0-1":
		score = -1
	case "1/2-1/2":
		score = 0
	default:
		return
	}
	if err := coord.RecordGameResult(score); err != nil {
		fmt.Fprintf(os.Stderr, "RecordGameResult: %v\n", err)
	}
}

func handleGo(coord *coordinator.Coordinator, args []string) {
	var limits engine.Limits
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				limits.Depth = atoi(args[i+1])
			}
		case "movetime":
			if i+1 < len(args) {
				limits.MoveTime = time.Duration(atoi(args[i+1])) * time.Millisecond
			}
		case "wtime", "btime":
			if i+1 < len(args) {
				limits.Remaining = time.Duration(atoi(args[i+1])) * time.Millisecond
			}
		case "winc", "binc":
			if i+1 < len(args) {
				limits.Increment = time.Duration(atoi(args[i+1])) * time.Millisecond
			}
		}
	}

	move, score := coord.BestMove(limits)
	fmt.Printf("info score cp %d\n", score)
	if move == board.NullMove {
		fmt.Println("bestmove (none)")
		return
	}
	fmt.Printf("bestmove %s\n", move.String())
}
