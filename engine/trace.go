package engine

import (
	"fmt"
	"strings"
)

// Trace is a white-relative breakdown of one evaluation. Score is the final
// side-to-move result, tempo included.
type Trace struct {
	Material      int
	Mobility      int
	BishopPair    int
	PassedPawns   int
	Space         int
	LegalMobility int

	PSQTMG      int
	PSQTEG      int
	KingFilesMG int

	PhaseMaterial int
	Phase         int
	Tapered       int

	WhiteToMove bool
	Tempo       int
	Score       int
}

func (tr *Trace) fill(t *terms, phase, tapered, tempo, score int, whiteToMove bool) {
	*tr = Trace{
		Material:      t.material,
		Mobility:      t.mobility,
		BishopPair:    t.bishopPair,
		PassedPawns:   t.passedPawns,
		Space:         t.space,
		LegalMobility: t.legalMobility,
		PSQTMG:        t.psqtMG,
		PSQTEG:        t.psqtEG,
		KingFilesMG:   t.kingFilesMG,
		PhaseMaterial: t.phaseMaterial,
		Phase:         phase,
		Tapered:       tapered,
		WhiteToMove:   whiteToMove,
		Tempo:         tempo,
		Score:         score,
	}
}

// WhiteRelative returns the score before side-to-move negation and tempo.
func (tr Trace) WhiteRelative() int {
	return tr.Material + tr.Mobility + tr.BishopPair + tr.PassedPawns +
		tr.Space + tr.LegalMobility + tr.Tapered
}

func (tr Trace) String() string {
	var b strings.Builder
	b.WriteString("################### TERMS (white relative) ###################\n")
	fmt.Fprintf(&b, "Material:\t%d\n", tr.Material)
	fmt.Fprintf(&b, "Mobility:\t%d\n", tr.Mobility)
	fmt.Fprintf(&b, "Bishop pair:\t%d\n", tr.BishopPair)
	fmt.Fprintf(&b, "Passed pawns:\t%d\n", tr.PassedPawns)
	fmt.Fprintf(&b, "Space:\t\t%d\n", tr.Space)
	fmt.Fprintf(&b, "Legal moves:\t%d\n", tr.LegalMobility)
	b.WriteString("################### TAPERED ###################\n")
	fmt.Fprintf(&b, "PSQT:\t\t%d : %d\n", tr.PSQTMG, tr.PSQTEG)
	fmt.Fprintf(&b, "King files MG:\t%d\n", tr.KingFilesMG)
	fmt.Fprintf(&b, "Phase:\t\t%d (material %d)\n", tr.Phase, tr.PhaseMaterial)
	fmt.Fprintf(&b, "Tapered:\t%d\n", tr.Tapered)
	b.WriteString("################### FINAL ###################\n")
	fmt.Fprintf(&b, "White relative:\t%d\n", tr.WhiteRelative())
	fmt.Fprintf(&b, "White to move:\t%t\n", tr.WhiteToMove)
	fmt.Fprintf(&b, "Tempo:\t\t%d\n", tr.Tempo)
	fmt.Fprintf(&b, "Final score:\t%d\n", tr.Score)
	return b.String()
}
