package engine

import "math/bits"

// pawnAttacks shifts pawns diagonally by 7 or 9 bits, which wraps across the
// board edge. A target that lands on the a-file came from the h-file and vice
// versa, so these masks clear the wrapped targets.
const (
	fileAMask uint64 = 0x0101010101010101
	fileHMask uint64 = 0x8080808080808080
)

var onlyFile = [8]uint64{
	0x0101010101010101, 0x0202020202020202, 0x0404040404040404, 0x0808080808080808,
	0x1010101010101010, 0x2020202020202020, 0x4040404040404040, 0x8080808080808080,
}

// c2-f4 for white; black uses the vertical mirror.
var spaceZone = [2]uint64{
	White: 0x000000003c3c3c00,
	Black: 0x003c3c3c00000000,
}

// Non-slider attack masks, filled by initAttackMasks.
var (
	knightMasks [64]uint64
	kingMasks   [64]uint64
)

func init() {
	initAttackMasks()
}

func initAttackMasks() {
	knightSteps := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps := [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	for sq := 0; sq < 64; sq++ {
		knightMasks[sq] = stepMask(sq, knightSteps[:])
		kingMasks[sq] = stepMask(sq, kingSteps[:])
	}
}

func stepMask(sq int, steps [][2]int) (mask uint64) {
	file, rank := sq&7, sq>>3
	for _, s := range steps {
		f, r := file+s[0], rank+s[1]
		if f < 0 || f > 7 || r < 0 || r > 7 {
			continue
		}
		mask |= 1 << uint(r*8+f)
	}
	return mask
}

// pawnAttacks returns every square attacked by the given pawns.
func pawnAttacks(pawns uint64, c Color) uint64 {
	if c == White {
		return (pawns<<9)&^fileAMask | (pawns<<7)&^fileHMask
	}
	return (pawns>>7)&^fileAMask | (pawns>>9)&^fileHMask
}

// relativeRank is the 0-based rank seen from c's own side.
func relativeRank(sq int, c Color) int {
	if c == Black {
		return 7 - sq>>3
	}
	return sq >> 3
}

// mirrorVertical flips a bitboard rank-wise (a1 <-> a8).
func mirrorVertical(bb uint64) uint64 {
	return bits.ReverseBytes64(bb)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
