package engine

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid FEN")

// ParseFEN parses a FEN string, or "startpos". The underlying parser panics on
// malformed input; that panic is returned as ErrInvalidFEN.
func ParseFEN(fen string) (b dragontoothmg.Board, err error) {
	fen = strings.TrimSpace(fen)
	if fen == "startpos" {
		fen = StartFEN
	}
	fields := strings.Fields(fen)
	if len(fields) < 4 || strings.Count(fields[0], "/") != 7 {
		return b, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
	}
	if len(fields) == 4 {
		fen += " 0 1"
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %q: %v", ErrInvalidFEN, fen, r)
		}
	}()
	return dragontoothmg.ParseFen(fen), nil
}

// Position is the read-only view the evaluator needs from a board.
type Position interface {
	AllPieces() uint64
	Pieces(k PieceKind, c Color) uint64
	// Attacks returns the squares a piece of kind k on sq attacks given the
	// occupancy, including squares held by either color.
	Attacks(k PieceKind, sq int, occupancy uint64, c Color) uint64
	WhiteToMove() bool
	InCheck() bool
}

// MoveProber is implemented by positions that can count legal moves and
// temporarily hand the move to the other side. The returned undo must be
// called exactly once and restores the original side to move.
type MoveProber interface {
	LegalMoveCount() int
	FlipSideToMove() (undo func())
}

// BoardPosition adapts a dragontoothmg board to Position and MoveProber.
// b is the caller's board except while a FlipSideToMove is outstanding.
type BoardPosition struct {
	b *dragontoothmg.Board
}

// NewBoardPosition wraps b. The board is never mutated.
func NewBoardPosition(b *dragontoothmg.Board) *BoardPosition {
	return &BoardPosition{b: b}
}

func (p *BoardPosition) side(c Color) *dragontoothmg.Bitboards {
	if c == White {
		return &p.b.White
	}
	return &p.b.Black
}

func (p *BoardPosition) AllPieces() uint64 { return p.b.White.All | p.b.Black.All }

func (p *BoardPosition) Pieces(k PieceKind, c Color) uint64 {
	return kindBitboard(p.side(c), k)
}

func (p *BoardPosition) Attacks(k PieceKind, sq int, occupancy uint64, c Color) uint64 {
	switch k {
	case Pawn:
		return pawnAttacks(uint64(1)<<uint(sq), c)
	case Knight:
		return knightMasks[sq]
	case Bishop:
		return dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occupancy)
	case Rook:
		return dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occupancy)
	case Queen:
		return dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occupancy) |
			dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occupancy)
	case King:
		return kingMasks[sq]
	}
	return 0
}

func (p *BoardPosition) WhiteToMove() bool { return p.b.Wtomove }

func (p *BoardPosition) InCheck() bool { return p.b.OurKingInCheck() }

// LegalMoveCount generates moves on a copy; move generation applies and
// unapplies candidate moves on the board it runs on.
func (p *BoardPosition) LegalMoveCount() int {
	scratch := *p.b
	return len(scratch.GenerateLegalMoves())
}

// FlipSideToMove hands the move to the other side on a scratch board that
// keeps only the piece placement. Castling and en passant belong to the
// real side to move and are dropped, so counts taken while flipped are
// approximate.
func (p *BoardPosition) FlipSideToMove() (undo func()) {
	prev := p.b
	flipped := StripState(prev)
	flipped.Wtomove = !prev.Wtomove
	p.b = &flipped
	return func() { p.b = prev }
}

// StripState keeps only b's piece placement and side to move.
func StripState(b *dragontoothmg.Board) dragontoothmg.Board {
	return dragontoothmg.Board{Wtomove: b.Wtomove, White: b.White, Black: b.Black}
}

// HasBothKings reports whether each side has exactly one king, which move
// generation and check detection require.
func HasBothKings(b *dragontoothmg.Board) bool {
	return bits.OnesCount64(b.White.Kings) == 1 && bits.OnesCount64(b.Black.Kings) == 1
}

func kindBitboard(bb *dragontoothmg.Bitboards, k PieceKind) uint64 {
	switch k {
	case Pawn:
		return bb.Pawns
	case Knight:
		return bb.Knights
	case Bishop:
		return bb.Bishops
	case Rook:
		return bb.Rooks
	case Queen:
		return bb.Queens
	case King:
		return bb.Kings
	}
	return 0
}

// MirrorBoard returns b reflected vertically with colors and side to move
// swapped. Castling rights and en passant are not carried over.
func MirrorBoard(b *dragontoothmg.Board) dragontoothmg.Board {
	return dragontoothmg.Board{
		Wtomove: !b.Wtomove,
		White:   mirrorSide(&b.Black),
		Black:   mirrorSide(&b.White),
	}
}

func mirrorSide(bb *dragontoothmg.Bitboards) dragontoothmg.Bitboards {
	return dragontoothmg.Bitboards{
		Pawns:   mirrorVertical(bb.Pawns),
		Bishops: mirrorVertical(bb.Bishops),
		Knights: mirrorVertical(bb.Knights),
		Rooks:   mirrorVertical(bb.Rooks),
		Queens:  mirrorVertical(bb.Queens),
		Kings:   mirrorVertical(bb.Kings),
		All:     mirrorVertical(bb.All),
	}
}
