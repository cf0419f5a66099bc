package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// Evaluator scores positions. It holds no per-call state and may be shared
// between goroutines as long as each call gets its own Position.
type Evaluator struct {
	cfg Config
	psq *PieceSquareTable
}

// NewEvaluator returns an evaluator using the process-wide tables.
func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg, psq: Tables()}
}

var defaultEvaluator = NewEvaluator(DefaultConfig())

// Evaluate scores b from the side to move's perspective with the default config.
func Evaluate(b *dragontoothmg.Board) int {
	return defaultEvaluator.Evaluate(NewBoardPosition(b))
}

// Config returns the evaluator's configuration.
func (e *Evaluator) Config() Config { return e.cfg }

// Evaluate returns the score of p from the side to move's perspective.
func (e *Evaluator) Evaluate(p Position) int {
	return e.evaluate(p, nil)
}

// Trace evaluates p and also returns the white-relative term breakdown.
func (e *Evaluator) Trace(p Position) (int, Trace) {
	var tr Trace
	score := e.evaluate(p, &tr)
	return score, tr
}

// terms is the running white-relative accumulator for one call.
type terms struct {
	material    int
	mobility    int
	bishopPair  int
	passedPawns int
	psqtMG      int
	psqtEG      int

	space         int
	legalMobility int
	kingFilesMG   int

	// Sum of material of both colors; drives the taper.
	phaseMaterial int
}

func (t *terms) add(o *terms, sign int) {
	t.material += sign * o.material
	t.mobility += sign * o.mobility
	t.bishopPair += sign * o.bishopPair
	t.passedPawns += sign * o.passedPawns
	t.psqtMG += sign * o.psqtMG
	t.psqtEG += sign * o.psqtEG
	t.phaseMaterial += o.phaseMaterial
}

func (t *terms) generic() int {
	return t.material + t.mobility + t.bishopPair + t.passedPawns + t.space + t.legalMobility
}

func (e *Evaluator) evaluate(p Position, tr *Trace) int {
	var total terms

	occupancy := p.AllPieces()
	pieceCount := bits.OnesCount64(occupancy)

	var colorPieces [2]uint64
	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			colorPieces[c] |= p.Pieces(k, c)
		}
	}

	for c := White; c <= Black; c++ {
		side := e.scoreSide(p, c, occupancy, colorPieces[c], pieceCount)
		total.add(&side, c.Sign())
	}

	if e.cfg.Space && absInt(total.material) < SpaceMaterialGate {
		total.space = spaceScore(p)
	}
	if e.cfg.KingOpenFile {
		total.kingFilesMG = kingFilesScore(p)
	}
	if e.cfg.LegalMobility {
		if mp, ok := p.(MoveProber); ok {
			total.legalMobility = legalMobilityScore(mp, p.WhiteToMove())
		}
	}

	phase := total.phaseMaterial/PhaseDivisor - PhaseOffset
	mg := total.psqtMG + total.kingFilesMG
	eg := total.psqtEG
	blended := (mg*phase + eg*(TaperScale-phase)) / TaperScale

	score := total.generic() + blended
	if !p.WhiteToMove() {
		score = -score
	}

	tempo := 0
	if !e.cfg.TempoOnlyWhenNotInCheck || !p.InCheck() {
		tempo = TempoBonus
	}
	score += tempo

	if tr != nil {
		tr.fill(&total, phase, blended, tempo, score, p.WhiteToMove())
	}
	return score
}

// scoreSide accumulates one color's terms without applying its sign.
func (e *Evaluator) scoreSide(p Position, c Color, occupancy, own uint64, pieceCount int) (t terms) {
	if bits.OnesCount64(p.Pieces(Bishop, c)) >= 2 {
		t.bishopPair += BishopPairBonus
	}
	enemyPawns := p.Pieces(Pawn, c.Other())

	for k := Pawn; k <= King; k++ {
		for x := p.Pieces(k, c); x != 0; x &= x - 1 {
			sq := bits.TrailingZeros64(x)

			t.material += pieceValue[k]
			t.phaseMaterial += pieceValue[k]

			if k.IsSlider() {
				t.mobility += mobilityWeight[k] * bits.OnesCount64(p.Attacks(k, sq, occupancy, c)&^own)
			}

			t.psqtMG += e.psq.At(Middlegame, k, sq, c)
			t.psqtEG += e.psq.At(Endgame, k, sq, c)

			if k == Pawn {
				t.passedPawns += passedPawnBonus(sq, c, enemyPawns, pieceCount)
			}
		}
	}
	return t
}

// passedPawnBonus scores a pawn past the midline whose file holds no enemy pawn.
func passedPawnBonus(sq int, c Color, enemyPawns uint64, pieceCount int) int {
	rank := relativeRank(sq, c)
	if rank < PassedPawnMinRank || onlyFile[sq&7]&enemyPawns != 0 {
		return 0
	}
	return rank * PassedPawnScale / pieceCount
}

// spaceScore counts squares in each side's space zone that are not held by
// its own pawns nor attacked by enemy pawns.
func spaceScore(p Position) int {
	var count [2]int
	for c := White; c <= Black; c++ {
		ownPawns := p.Pieces(Pawn, c)
		enemyAttacks := pawnAttacks(p.Pieces(Pawn, c.Other()), c.Other())
		count[c] = bits.OnesCount64(spaceZone[c] &^ ownPawns &^ enemyAttacks)
	}
	return (count[White] - count[Black]) * SpaceWeight
}

// kingFilesScore penalises kings on files without an own pawn.
func kingFilesScore(p Position) (score int) {
	for c := White; c <= Black; c++ {
		kings := p.Pieces(King, c)
		if kings == 0 {
			continue
		}
		file := onlyFile[bits.TrailingZeros64(kings)&7]
		penalty := 0
		switch {
		case file&p.Pieces(Pawn, c) != 0:
		case file&p.Pieces(Pawn, c.Other()) == 0:
			penalty = KingOpenFileMG
		default:
			penalty = KingSemiOpenFileMG
		}
		score += c.Sign() * penalty
	}
	return score
}

// legalMobilityScore compares legal move counts of both sides. The opponent's
// count is taken with the side to move flipped, restored before returning.
func legalMobilityScore(mp MoveProber, whiteToMove bool) int {
	mover := mp.LegalMoveCount() >> LegalMobilityShift
	other := opponentMoveCount(mp) >> LegalMobilityShift
	if whiteToMove {
		return mover - other
	}
	return other - mover
}

func opponentMoveCount(mp MoveProber) int {
	undo := mp.FlipSideToMove()
	defer undo()
	return mp.LegalMoveCount()
}
