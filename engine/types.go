package engine

// PieceKind enumerates the six piece kinds in table order.
type PieceKind uint8

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

const KindCount = 6

var kindNames = [KindCount]string{"pawn", "knight", "bishop", "rook", "queen", "king"}

func (k PieceKind) String() string {
	if int(k) < KindCount {
		return kindNames[k]
	}
	return "unknown"
}

// IsSlider reports whether the piece moves along rays.
func (k PieceKind) IsSlider() bool {
	return k == Bishop || k == Rook || k == Queen
}

// Color is the owner of a piece.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

// Sign is +1 for white and -1 for black.
func (c Color) Sign() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Phase selects the middlegame or endgame half of a tapered weight.
type Phase uint8

const (
	Middlegame Phase = iota
	Endgame
)

const PhaseCount = 2

func (p Phase) String() string {
	if p == Middlegame {
		return "mg"
	}
	return "eg"
}
