// Command gomokucore is a self-play bench driver: it plays the engine
// against itself on an empty board until a terminal position or a move
// cap, printing each move and the search stats that produced it. There
// is no UCI-style protocol or external interface here (§6: "no network
// protocol, file format, or CLI within the core's scope") — this is
// just a harness for exercising and profiling the core.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/pkg/profile"

	"github.com/gomokucore/engine"
	"github.com/gomokucore/engine/internal/config"
	"github.com/gomokucore/engine/internal/logging"
	"github.com/gomokucore/engine/internal/util"
)

func main() {
	configFile := flag.String("config", "./config/config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "log level (critical|error|warning|notice|info|debug)")
	size := flag.Int("size", 19, "board side length N")
	winLen := flag.Int("win", 5, "win length W")
	capWin := flag.Int("captures", 5, "capture pairs needed to win C")
	depth := flag.Int("depth", 8, "search depth limit per move")
	movetimeMs := flag.Int64("movetimems", 0, "per-move time limit in milliseconds (0 = depth only)")
	workers := flag.Int("workers", 0, "Lazy SMP worker count (0 = config default)")
	maxMoves := flag.Int("maxmoves", 200, "maximum plies to self-play before stopping")
	cpuProfile := flag.Bool("profile", false, "enable CPU profiling to ./prof/")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.ProfilePath("./prof")).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()
	if *logLvl != "" {
		config.LogLevel = *logLvl
	}
	logging.SetLevelName(config.LogLevel)
	log := logging.GetLog()

	state := gomoku.NewState(*size, *winLen, *capWin)
	engine := gomoku.NewEngine(*size)

	limits := gomoku.Limits{Depth: *depth, Workers: *workers, TimeLimitMs: *movetimeMs}

	for ply := 0; ply < *maxMoves; ply++ {
		if done, winner := state.Terminal(); done {
			fmt.Printf("game over after %d plies, winner=%v\n", ply, winner)
			break
		}
		res := engine.Search(state, limits)
		if !res.HasBestMove {
			fmt.Println("no legal move, stopping")
			break
		}
		r, c := res.BestMove[0], res.BestMove[1]
		if err := state.Make(r, c); err != nil {
			log.Errorf("self-play produced an illegal move (%d,%d): %v", r, c, err)
			break
		}
		nps := util.Nps(res.Nodes, time.Duration(res.ElapsedMs)*time.Millisecond)
		fmt.Printf("ply %3d: %v plays (%2d,%2d) score=%7d depth=%2d nodes=%8d elapsed=%4dms nps=%d\n",
			ply, state.SideToMove().Opponent(), r, c, res.Score, res.DepthReached, res.Nodes, res.ElapsedMs, nps)
	}

	fmt.Println(engine.TTStats())
}
