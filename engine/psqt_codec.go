package engine

//go:generate go run ../cmd/packpsqt -in ../data/psqt.json -out psqt_packed.go

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Folded tables cover one file-mirrored half of the board: 8 ranks x 4 files.
const (
	SquaresPerTable    = 32
	BytesPerConstant   = 12
	ConstantsPerTable  = 3
	PackedTableCount   = PhaseCount * KindCount
	PackedConstantsLen = PackedTableCount * ConstantsPerTable

	// Stored bytes are half of the runtime weight.
	QuantizationFactor = 2
)

var (
	ErrValueOutOfRange = errors.New("value outside signed byte range")
	ErrConstantCount   = errors.New("unexpected packed constant count")
	ErrTableShape      = errors.New("malformed piece-square table source")
)

// PackedConstant is a 96-bit literal carrying 12 signed bytes, byte 0 in the
// lowest bits of Lo and byte 11 in the highest bits of Hi.
type PackedConstant struct {
	Lo uint64
	Hi uint32
}

// Byte returns the i-th stored byte reinterpreted as signed.
func (c PackedConstant) Byte(i int) int8 {
	if i < 8 {
		return int8(c.Lo >> (8 * uint(i)))
	}
	return int8(c.Hi >> (8 * uint(i-8)))
}

func (c *PackedConstant) setByte(i int, v int8) {
	if i < 8 {
		shift := 8 * uint(i)
		c.Lo = c.Lo&^(0xff<<shift) | uint64(uint8(v))<<shift
		return
	}
	shift := 8 * uint(i-8)
	c.Hi = c.Hi&^(0xff<<shift) | uint32(uint8(v))<<shift
}

// Pack stores 32 signed-byte values into three constants. The trailing four
// bytes of the last constant are left zero.
func Pack(vals [SquaresPerTable]int) (out [ConstantsPerTable]PackedConstant, err error) {
	for i, v := range vals {
		if v < -128 || v > 127 {
			return out, fmt.Errorf("index %d value %d: %w", i, v, ErrValueOutOfRange)
		}
		out[i/BytesPerConstant].setByte(i%BytesPerConstant, int8(v))
	}
	return out, nil
}

// Unpack is the inverse of Pack; padding bytes are ignored.
func Unpack(c [ConstantsPerTable]PackedConstant) (vals [SquaresPerTable]int8) {
	for i := range vals {
		vals[i] = c[i/BytesPerConstant].Byte(i % BytesPerConstant)
	}
	return vals
}

// RawTables holds the stored (pre-quantization) weights, indexed
// [phase][kind][rank*4+foldedFile].
type RawTables [PhaseCount][KindCount][SquaresPerTable]int

// PackTables packs every table, phase-major then kind, three constants each.
func PackTables(raw *RawTables) ([]PackedConstant, error) {
	packed := make([]PackedConstant, 0, PackedConstantsLen)
	for ph := Middlegame; ph <= Endgame; ph++ {
		for k := Pawn; k <= King; k++ {
			group, err := Pack(raw[ph][k])
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", ph, k, err)
			}
			packed = append(packed, group[:]...)
		}
	}
	return packed, nil
}

// ReadRawTables parses the JSON authoring format:
//
//	{"mg": {"pawn": [32 ints], ...}, "eg": {...}}
func ReadRawTables(r io.Reader) (*RawTables, error) {
	var doc map[string]map[string][]int
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableShape, err)
	}
	raw := new(RawTables)
	for ph := Middlegame; ph <= Endgame; ph++ {
		byKind, ok := doc[ph.String()]
		if !ok {
			return nil, fmt.Errorf("%w: missing phase %q", ErrTableShape, ph)
		}
		for k := Pawn; k <= King; k++ {
			vals, ok := byKind[k.String()]
			if !ok {
				return nil, fmt.Errorf("%w: missing %s %s", ErrTableShape, ph, k)
			}
			if len(vals) != SquaresPerTable {
				return nil, fmt.Errorf("%w: %s %s has %d entries", ErrTableShape, ph, k, len(vals))
			}
			copy(raw[ph][k][:], vals)
		}
	}
	return raw, nil
}

// LoadRawTables reads the JSON authoring file at path.
func LoadRawTables(path string) (*RawTables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRawTables(f)
}

// PieceSquareTable holds runtime weights, indexed [phase][kind][rank*4+foldedFile].
type PieceSquareTable [PhaseCount][KindCount][SquaresPerTable]int

// DecodeTables expands packed constants into runtime weights.
func DecodeTables(packed []PackedConstant) (*PieceSquareTable, error) {
	if len(packed) != PackedConstantsLen {
		return nil, fmt.Errorf("got %d, want %d: %w", len(packed), PackedConstantsLen, ErrConstantCount)
	}
	t := new(PieceSquareTable)
	for i := 0; i < PackedTableCount; i++ {
		var group [ConstantsPerTable]PackedConstant
		copy(group[:], packed[i*ConstantsPerTable:])
		ph, k := Phase(i/KindCount), PieceKind(i%KindCount)
		for sq, v := range Unpack(group) {
			t[ph][k][sq] = int(v) * QuantizationFactor
		}
	}
	return t, nil
}

// At returns the weight of a piece of color c on square sq (0 = a1).
func (t *PieceSquareTable) At(ph Phase, k PieceKind, sq int, c Color) int {
	return t[ph][k][foldedIndex(sq, c)]
}

// foldedIndex maps a square to its white-relative, file-folded table slot.
func foldedIndex(sq int, c Color) int {
	if c == Black {
		sq ^= 56
	}
	file := sq & 7
	return (sq>>3)*4 + min(file, 7-file)
}

var (
	tablesOnce sync.Once
	psqt       *PieceSquareTable
)

// Tables returns the process-wide tables, decoding them on first use.
func Tables() *PieceSquareTable {
	tablesOnce.Do(func() {
		t, err := DecodeTables(packedPSQT[:])
		if err != nil {
			panic(fmt.Sprintf("engine: packed piece-square tables: %v", err))
		}
		psqt = t
	})
	return psqt
}
