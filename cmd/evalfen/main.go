package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"chess-evaluator/engine"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	errAsymmetric = errors.New("mirrored position scored differently")
	errKingCount  = errors.New("position needs exactly one king per side")
)

type options struct {
	trace    bool
	symmetry bool
}

// splitLabel separates a trailing game-result label ("<fen> [0.5]") from the FEN.
func splitLabel(line string) (fen, label string, err error) {
	parts := strings.Split(line, "[")
	switch len(parts) {
	case 1:
		return strings.TrimSpace(line), "", nil
	case 2:
		label = strings.TrimSuffix(strings.TrimSpace(parts[1]), "]")
		if _, err := strconv.ParseFloat(label, 64); err != nil {
			return "", "", fmt.Errorf("result label %q: %w", label, err)
		}
		return strings.TrimSpace(parts[0]), label, nil
	}
	return "", "", fmt.Errorf("%w: %q", engine.ErrInvalidFEN, line)
}

// evalLine scores one FEN line and writes "<score> <fen> [label]" (plus the
// trace) to w.
func evalLine(w io.Writer, ev *engine.Evaluator, line string, opt options) error {
	fen, label, err := splitLabel(line)
	if err != nil {
		return err
	}
	board, err := engine.ParseFEN(fen)
	if err != nil {
		return err
	}
	if !engine.HasBothKings(&board) {
		return fmt.Errorf("%w: %q", errKingCount, fen)
	}
	score, tr := ev.Trace(engine.NewBoardPosition(&board))
	if label != "" {
		fmt.Fprintf(w, "%d\t%s\t%s\n", score, fen, label)
	} else {
		fmt.Fprintf(w, "%d\t%s\n", score, fen)
	}
	if opt.trace {
		fmt.Fprint(w, tr.String())
	}
	if opt.symmetry {
		// The mirror carries no castling or en passant state, so compare it
		// against the stripped original rather than the printed score.
		stripped := engine.StripState(&board)
		mirrored := engine.MirrorBoard(&stripped)
		want := ev.Evaluate(engine.NewBoardPosition(&stripped))
		if ms := ev.Evaluate(engine.NewBoardPosition(&mirrored)); ms != want {
			return fmt.Errorf("%w: %d vs %d", errAsymmetric, want, ms)
		}
	}
	return nil
}

func main() {
	fen := flag.String("fen", "", "FEN to evaluate (\"startpos\" allowed); reads FENs from stdin when empty")
	configPath := flag.String("config", "", "optional JSON evaluator config")
	trace := flag.Bool("trace", false, "print the per-term breakdown")
	symmetry := flag.Bool("symmetry", false, "also evaluate the color-mirrored position and fail on mismatch")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = engine.LoadConfig(*configPath); err != nil {
			log.Fatal().Err(err).Str("config", *configPath).Msg("load config")
		}
	}
	log.Debug().Interface("config", cfg).Msg("evaluator ready")

	ev := engine.NewEvaluator(cfg)
	opt := options{trace: *trace, symmetry: *symmetry}
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *fen != "" {
		if err := evalLine(out, ev, *fen, opt); err != nil {
			out.Flush()
			log.Fatal().Err(err).Msg("evaluate")
		}
		return
	}

	failures := 0
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := evalLine(out, ev, line, opt); err != nil {
			failures++
			log.Error().Err(err).Str("fen", line).Msg("evaluate")
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal().Err(err).Msg("read stdin")
	}
	if failures > 0 {
		out.Flush()
		log.Fatal().Int("failures", failures).Msg("some positions failed")
	}
}
