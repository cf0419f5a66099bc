package engine

import (
	"math/bits"
	"sync"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var testFENs = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b KQ - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"6k1/5ppp/8/1P6/8/8/5PPP/6K1 b - - 0 40",
	"4k3/8/8/8/8/8/8/4K3 w - - 0 1",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
}

var allTerms = Config{TempoOnlyWhenNotInCheck: true, LegalMobility: true, Space: true, KingOpenFile: true}

func mustParse(t testing.TB, fen string) dragontoothmg.Board {
	t.Helper()
	b, err := ParseFEN(fen)
	require.NoError(t, err)
	return b
}

func evalFEN(t testing.TB, ev *Evaluator, fen string) (int, Trace) {
	t.Helper()
	b := mustParse(t, fen)
	return ev.Trace(NewBoardPosition(&b))
}

// randomPositions plays random legal moves from the start position.
func randomPositions(t testing.TB, seed uint64, games, plies int) []dragontoothmg.Board {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var out []dragontoothmg.Board
	for g := 0; g < games; g++ {
		b := mustParse(t, StartFEN)
		for ply := 0; ply < plies; ply++ {
			moves := b.GenerateLegalMoves()
			if len(moves) == 0 {
				break
			}
			b.Apply(moves[rng.Intn(len(moves))])
			out = append(out, b)
		}
	}
	return out
}

func TestStartPositionScoresTempo(t *testing.T) {
	b := mustParse(t, StartFEN)
	require.Equal(t, TempoBonus, Evaluate(&b))

	_, tr := evalFEN(t, NewEvaluator(DefaultConfig()), StartFEN)
	require.Zero(t, tr.WhiteRelative())
	require.Zero(t, tr.Material)
	require.Zero(t, tr.PSQTMG)
	require.Zero(t, tr.PSQTEG)
}

func TestMirrorSymmetry(t *testing.T) {
	boards := randomPositions(t, 42, 20, 60)
	for _, fen := range testFENs {
		boards = append(boards, mustParse(t, fen))
	}
	for _, cfg := range []Config{DefaultConfig(), allTerms} {
		ev := NewEvaluator(cfg)
		for i := range boards {
			// Round-trip through MirrorBoard so both sides lack castling and
			// en passant state, which the mirror does not carry.
			orig := MirrorBoard(&boards[i])
			orig = MirrorBoard(&orig)
			mirrored := MirrorBoard(&orig)

			want := ev.Evaluate(NewBoardPosition(&orig))
			got := ev.Evaluate(NewBoardPosition(&mirrored))
			require.Equal(t, want, got, "config %+v position %d", cfg, i)
		}
	}
}

func TestDeterminism(t *testing.T) {
	ev := NewEvaluator(allTerms)
	for _, fen := range testFENs {
		b := mustParse(t, fen)
		before := b
		first := ev.Evaluate(NewBoardPosition(&b))
		for i := 0; i < 10; i++ {
			require.Equal(t, first, ev.Evaluate(NewBoardPosition(&b)), fen)
		}
		require.Equal(t, before, b, "evaluation mutated the board")
	}
}

func TestMaterialMonotonicity(t *testing.T) {
	ev := NewEvaluator(DefaultConfig())
	cases := []struct {
		kind        PieceKind
		with, empty string
	}{
		{Pawn, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", "4k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{Knight, "4k3/8/8/8/8/2N5/8/4K3 w - - 0 1", "4k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{Bishop, "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", "4k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{Rook, "4k3/pppp4/8/8/8/8/8/R3K3 w - - 0 1", "4k3/pppp4/8/8/8/8/8/4K3 w - - 0 1"},
		{Queen, "3qk3/8/8/8/8/8/8/4K3 b - - 0 1", "4k3/8/8/8/8/8/8/4K3 b - - 0 1"},
	}
	for _, tc := range cases {
		withScore, withTr := evalFEN(t, ev, tc.with)
		emptyScore, emptyTr := evalFEN(t, ev, tc.empty)
		require.Equal(t, PieceValue(tc.kind), absInt(withTr.Material-emptyTr.Material), tc.kind.String())
		require.Greater(t, withScore, emptyScore, "%s: removing the piece must hurt its owner", tc.kind)
	}
}

func TestPassedPawnBonus(t *testing.T) {
	// e-file pawns: e4 (rank 3) is not past the midline yet.
	require.Zero(t, passedPawnBonus(28, White, 0, 10))

	prev := 0
	for rank := PassedPawnMinRank; rank <= 6; rank++ {
		sq := rank*8 + 4
		bonus := passedPawnBonus(sq, White, 0, 10)
		require.Positive(t, bonus)
		require.Greater(t, bonus, prev, "rank %d", rank)
		prev = bonus

		// Same pawn from black's side.
		require.Equal(t, bonus, passedPawnBonus(sq^56, Black, 0, 10))
	}

	// Fewer pieces on the board make the same pawn worth more.
	require.Greater(t, passedPawnBonus(48+4, White, 0, 4), passedPawnBonus(48+4, White, 0, 20))
	require.Greater(t, passedPawnBonus(48+4, White, 0, 20), passedPawnBonus(48+4, White, 0, 32))

	// Any enemy pawn on the file blocks the bonus, even behind the pawn.
	require.Zero(t, passedPawnBonus(40+4, White, onlyFile[4]&0x000000000000ff00, 10))
	require.Positive(t, passedPawnBonus(40+4, White, onlyFile[3], 10))
}

func TestPassedPawnInEvaluation(t *testing.T) {
	ev := NewEvaluator(DefaultConfig())
	_, tr := evalFEN(t, ev, "4k3/8/4P3/8/8/8/8/4K3 w - - 0 1")
	require.Equal(t, 5*PassedPawnScale/3, tr.PassedPawns)

	_, blocked := evalFEN(t, ev, "4k3/4p3/4P3/8/8/8/8/4K3 w - - 0 1")
	require.Zero(t, blocked.PassedPawns)
}

func TestBishopPairBonus(t *testing.T) {
	_, tr := evalFEN(t, NewEvaluator(DefaultConfig()), "2b1k3/8/8/8/8/8/8/2B1KB2 w - - 0 1")
	require.Equal(t, BishopPairBonus, tr.BishopPair)
}

func TestSliderMobility(t *testing.T) {
	ev := NewEvaluator(DefaultConfig())
	// Rook a1: a2-a8 plus b1-d1; e1 holds its own king.
	_, tr := evalFEN(t, ev, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.Equal(t, 10*MobilityWeight(Rook), tr.Mobility)

	// Knights and kings never contribute mobility.
	_, tr = evalFEN(t, ev, "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1")
	require.Zero(t, tr.Mobility)
}

func TestTaperEndpoints(t *testing.T) {
	ev := NewEvaluator(DefaultConfig())
	_, start := evalFEN(t, ev, StartFEN)
	require.InDelta(t, TaperScale, start.Phase, 16)

	_, bare := evalFEN(t, ev, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.LessOrEqual(t, bare.Phase, 0)
}

func TestTempoGating(t *testing.T) {
	const inCheck = "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1"
	plain, _ := evalFEN(t, NewEvaluator(DefaultConfig()), inCheck)
	gated, tr := evalFEN(t, NewEvaluator(Config{TempoOnlyWhenNotInCheck: true}), inCheck)
	require.Equal(t, TempoBonus, plain-gated)
	require.Zero(t, tr.Tempo)

	quiet, _ := evalFEN(t, NewEvaluator(Config{TempoOnlyWhenNotInCheck: true}), StartFEN)
	require.Equal(t, TempoBonus, quiet)
}

func TestSpaceTerm(t *testing.T) {
	ev := NewEvaluator(Config{Space: true})
	_, tr := evalFEN(t, ev, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	// e4 takes d5 and f5 away from black.
	require.Equal(t, 2*SpaceWeight, tr.Space)

	_, tr = evalFEN(t, ev, "4k3/8/8/8/8/8/3P4/4K3 w - - 0 1")
	require.Equal(t, -SpaceWeight, tr.Space)

	// Too much material imbalance switches the term off.
	_, tr = evalFEN(t, ev, "4k3/8/8/8/8/8/3P4/Q3K3 w - - 0 1")
	require.Zero(t, tr.Space)
}

func TestKingOpenFile(t *testing.T) {
	ev := NewEvaluator(Config{KingOpenFile: true})
	_, tr := evalFEN(t, ev, "4k3/4p3/8/8/8/8/8/4K3 w - - 0 1")
	require.Equal(t, KingSemiOpenFileMG, tr.KingFilesMG)

	_, tr = evalFEN(t, ev, "4k3/8/8/8/8/8/8/3K4 w - - 0 1")
	require.Zero(t, tr.KingFilesMG) // both open

	_, tr = evalFEN(t, ev, "4k3/8/8/8/8/8/3P4/4K3 w - - 0 1")
	require.Zero(t, tr.KingFilesMG)

	_, tr = evalFEN(t, ev, "4k3/8/8/8/8/8/4P3/3K4 w - - 0 1")
	require.Equal(t, KingOpenFileMG-KingSemiOpenFileMG, tr.KingFilesMG)
}

func TestLegalMobility(t *testing.T) {
	ev := NewEvaluator(Config{LegalMobility: true})
	_, tr := evalFEN(t, ev, StartFEN)
	require.Zero(t, tr.LegalMobility)

	// Black to move with 20 replies, white would have 30 moves.
	b := mustParse(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	before := b
	_, tr = ev.Trace(NewBoardPosition(&b))
	require.Equal(t, (30>>LegalMobilityShift)-(20>>LegalMobilityShift), tr.LegalMobility)
	require.Equal(t, before, b, "counting moves left the board modified")
}

func TestLegalMobilityEnPassantLeavesBoard(t *testing.T) {
	ev := NewEvaluator(Config{LegalMobility: true})
	b := mustParse(t, "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	before := b
	p := NewBoardPosition(&b)

	first := ev.Evaluate(p)
	require.Equal(t, first, ev.Evaluate(p))
	require.Equal(t, before.White.Pawns, b.White.Pawns)
	require.Equal(t, before, b)

	// Random games pass through plenty of en passant squares.
	for _, rb := range randomPositions(t, 5, 20, 40) {
		rb := rb
		snapshot := rb
		p := NewBoardPosition(&rb)
		require.Equal(t, ev.Evaluate(p), ev.Evaluate(p))
		require.Equal(t, snapshot, rb)
	}
}

// flakyProber fails while the side to move is flipped.
type flakyProber struct {
	*BoardPosition
	flipped bool
	undone  int
}

func (p *flakyProber) LegalMoveCount() int {
	if p.flipped {
		panic("move generation failed")
	}
	return 20
}

func (p *flakyProber) FlipSideToMove() func() {
	p.flipped = true
	return func() {
		p.flipped = false
		p.undone++
	}
}

func TestLegalMobilityFlipAlwaysUndone(t *testing.T) {
	b := mustParse(t, StartFEN)
	p := &flakyProber{BoardPosition: NewBoardPosition(&b)}
	ev := NewEvaluator(Config{LegalMobility: true})

	require.Panics(t, func() { ev.Evaluate(p) })
	require.False(t, p.flipped)
	require.Equal(t, 1, p.undone)
}

func TestLegalMobilityNeedsProber(t *testing.T) {
	b := mustParse(t, StartFEN)
	// Hide the MoveProber methods behind a plain Position.
	var p Position = struct{ Position }{NewBoardPosition(&b)}
	_, tr := NewEvaluator(Config{LegalMobility: true}).Trace(p)
	require.Zero(t, tr.LegalMobility)
}

func TestBoundedRange(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig(), allTerms} {
		ev := NewEvaluator(cfg)
		for _, b := range randomPositions(t, 99, 20, 120) {
			b := b
			p := NewBoardPosition(&b)
			material := 0
			for c := White; c <= Black; c++ {
				for k := Pawn; k <= King; k++ {
					material += PieceValue(k) * bits.OnesCount64(p.Pieces(k, c))
				}
			}
			score := ev.Evaluate(p)
			require.LessOrEqual(t, absInt(score), material+2000)
		}
	}
}

func TestTraceMatchesScore(t *testing.T) {
	ev := NewEvaluator(allTerms)
	for _, fen := range testFENs {
		b := mustParse(t, fen)
		score, tr := ev.Trace(NewBoardPosition(&b))
		require.Equal(t, ev.Evaluate(NewBoardPosition(&b)), score)
		require.Equal(t, score, tr.Score)

		sign := 1
		if !tr.WhiteToMove {
			sign = -1
		}
		require.Equal(t, score, sign*tr.WhiteRelative()+tr.Tempo, fen)
		require.Contains(t, tr.String(), "Final score:")
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	ev := NewEvaluator(DefaultConfig())
	want := make([]int, len(testFENs))
	for i, fen := range testFENs {
		want[i], _ = evalFEN(t, ev, fen)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(testFENs))
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, fen := range testFENs {
				b, err := ParseFEN(fen)
				if err != nil {
					errs <- err.Error()
					return
				}
				if got := ev.Evaluate(NewBoardPosition(&b)); got != want[i] {
					errs <- fen
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Errorf("concurrent evaluation mismatch: %s", e)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	board := mustParse(b, testFENs[1])
	p := NewBoardPosition(&board)
	ev := NewEvaluator(DefaultConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ev.Evaluate(p)
	}
}

func BenchmarkEvaluateAllTerms(b *testing.B) {
	board := mustParse(b, testFENs[1])
	p := NewBoardPosition(&board)
	ev := NewEvaluator(allTerms)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ev.Evaluate(p)
	}
}
