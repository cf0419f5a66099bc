package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"chess-evaluator/engine"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Mixed middlegame and endgame positions.
var benchFENs = []string{
	engine.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"8/8/4k3/3pP3/3K4/8/8/8 w - d6 0 1",
}

func main() {
	repeat := flag.Int("repeat", 200000, "evaluations per worker")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel evaluation workers")
	fen := flag.String("fen", "", "single FEN to benchmark (default: built-in set)")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *repeat <= 0 || *workers <= 0 {
		log.Fatal().Int("repeat", *repeat).Int("workers", *workers).Msg("repeat and workers must be positive")
	}

	fens := benchFENs
	if *fen != "" {
		fens = []string{*fen}
	}
	boards := make([]dragontoothmg.Board, 0, len(fens))
	for _, f := range fens {
		b, err := engine.ParseFEN(f)
		if err != nil {
			log.Fatal().Err(err).Msg("parse bench position")
		}
		boards = append(boards, b)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("create CPU profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	ev := engine.NewEvaluator(engine.DefaultConfig())
	checksums := make([]int, *workers)

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			// Each worker evaluates its own copies of the positions.
			local := make([]dragontoothmg.Board, len(boards))
			copy(local, boards)
			positions := make([]*engine.BoardPosition, len(local))
			for i := range local {
				positions[i] = engine.NewBoardPosition(&local[i])
			}
			sum := 0
			for i := 0; i < *repeat; i++ {
				sum += ev.Evaluate(positions[i%len(positions)])
			}
			checksums[w] = sum
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	total := *repeat * *workers
	for w := 1; w < len(checksums); w++ {
		if checksums[w] != checksums[0] {
			log.Fatal().Int("worker", w).Int("sum", checksums[w]).Int("want", checksums[0]).Msg("nondeterministic evaluation")
		}
	}
	log.Info().
		Int("evals", total).
		Int("workers", *workers).
		Dur("elapsed", elapsed).
		Float64("evals_per_sec", float64(total)/elapsed.Seconds()).
		Int("checksum", checksums[0]).
		Msg("bench done")
}
