package kuba

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrGridLength   = errors.New("grid must contain exactly 49 characters")
	ErrInvalidToken = errors.New("invalid grid token")
)

func token(cell Cell) byte {
	switch cell {
	case White:
		return 'W'
	case Black:
		return 'B'
	case Red:
		return 'R'
	default:
		return ' '
	}
}

func parseToken(b byte) (Cell, bool) {
	switch b {
	case ' ':
		return Empty, true
	case 'W':
		return White, true
	case 'B':
		return Black, true
	case 'R':
		return Red, true
	default:
		return Empty, false
	}
}

// Encode renders the board and its previous state as two 49-character row-major strings.
// A board with no previous state encodes it as 49 blanks.
func Encode(board Board) (string, string) {
	return encodeGrid(&board.grid), encodeGrid(&board.previous)
}

func encodeGrid(g *grid) string {
	var sb strings.Builder
	sb.Grow(squares)
	for _, cell := range g {
		sb.WriteByte(token(cell))
	}
	return sb.String()
}

// Decode is the inverse of Encode.
func Decode(gridString, previousString string) (Board, error) {
	var board Board

	current, err := decodeGrid(gridString)
	if err != nil {
		return Board{}, fmt.Errorf("failed to decode grid: %w", err)
	}

	previous, err := decodeGrid(previousString)
	if err != nil {
		return Board{}, fmt.Errorf("failed to decode previous grid: %w", err)
	}

	board.grid = current
	// an all-empty board is unreachable, so it can only mean "no move yet"
	if previous != (grid{}) {
		board.previous = previous
		board.hasPrevious = true
	}

	return board, nil
}

func decodeGrid(s string) (grid, error) {
	var g grid

	if len(s) != squares {
		return g, fmt.Errorf("%w: got %d", ErrGridLength, len(s))
	}

	for i := 0; i < squares; i++ {
		cell, ok := parseToken(s[i])
		if !ok {
			return g, fmt.Errorf("%w: %q at %d", ErrInvalidToken, s[i], i)
		}
		g[i] = cell
	}

	return g, nil
}
