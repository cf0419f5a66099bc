package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// Material values double as the phase counter input, so the king carries a
// large value that cancels between colors but keeps the taper in range.
var pieceValue = [KindCount]int{
	Pawn: 126, Knight: 781, Bishop: 781, Rook: 1276, Queen: 2538, King: 40000,
}

// Per attacked square not occupied by an own piece.
var mobilityWeight = [KindCount]int{
	Bishop: 5, Rook: 3, Queen: 2,
}

const (
	BishopPairBonus = 40
	TempoBonus      = 15

	// Passed pawn bonus is rank * PassedPawnScale / pieceCount.
	PassedPawnScale   = 224
	PassedPawnMinRank = 4

	// phase = materialSum/PhaseDivisor - PhaseOffset, blended on a TaperScale grid.
	PhaseDivisor = 75
	PhaseOffset  = 1067
	TaperScale   = 256

	SpaceWeight       = 2
	SpaceMaterialGate = 2000

	LegalMobilityShift = 2

	KingSemiOpenFileMG = -12
	KingOpenFileMG     = -24
)

// PieceValue returns the material value of a piece kind.
func PieceValue(k PieceKind) int { return pieceValue[k] }

// MobilityWeight returns the per-square mobility weight (zero for non-sliders).
func MobilityWeight(k PieceKind) int { return mobilityWeight[k] }

// Config toggles the optional terms. The zero value is the canonical evaluator.
type Config struct {
	// Only award the tempo bonus when the side to move is not in check.
	TempoOnlyWhenNotInCheck bool `json:"tempo_only_when_not_in_check"`
	// Legal-move-count mobility for both sides; needs a MoveProber position.
	LegalMobility bool `json:"legal_mobility"`
	// Safe squares in the own half of the center files.
	Space bool `json:"space"`
	// Penalise kings standing on open or semi-open files.
	KingOpenFile bool `json:"king_open_file"`
}

// DefaultConfig returns the canonical configuration.
func DefaultConfig() Config { return Config{} }

// LoadConfig reads a JSON config file. Missing fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as indented JSON, replacing path atomically.
func SaveConfig(path string, cfg Config) error {
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
