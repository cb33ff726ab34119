package kuba

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Size    = 7
	squares = Size * Size

	// TotalMarbles is the number of marbles on the initial board: 8 white, 8 black and 13 red.
	TotalMarbles = 29
)

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrOffBoard         = errors.New("coordinates are off the board")
	ErrEmptyOrigin      = errors.New("origin square is empty")
)

// Cell is the content of a single square.
type Cell uint8

const (
	Empty Cell = iota
	White
	Black
	Red
)

func (that Cell) String() string {
	switch that {
	case White:
		return "White"
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
		return "Empty"
	}
}

// Direction is the way a marble is pushed.
type Direction uint8

const (
	Forward Direction = iota + 1
	Backward
	Left
	Right
)

var directionTokens = map[Direction]string{
	Forward:  "F",
	Backward: "B",
	Left:     "L",
	Right:    "R",
}

// ParseDirection converts "F", "B", "L" or "R" into a Direction.
func ParseDirection(token string) (Direction, error) {
	for direction, t := range directionTokens {
		if t == token {
			return direction, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, token)
}

func (that Direction) Valid() bool {
	_, ok := directionTokens[that]
	return ok
}

func (that Direction) String() string {
	return directionTokens[that]
}

func (that Direction) MarshalText() ([]byte, error) {
	if !that.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, that)
	}
	return []byte(that.String()), nil
}

func (that *Direction) UnmarshalText(text []byte) error {
	direction, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*that = direction
	return nil
}

// step returns the row and column deltas of a single push step.
func (that Direction) step() (int, int) {
	switch that {
	case Forward:
		return -1, 0
	case Backward:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

// Coord - (row, column) of a square, row 0 on top.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) index() int {
	return that.Row*Size + that.Col
}

func (that Coord) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// behind returns the square a marble must have free behind it to be pushed in the given direction.
func (that Coord) behind(direction Direction) Coord {
	dr, dc := direction.step()
	return Coord{Row: that.Row - dr, Col: that.Col - dc}
}

// Outcome is the result of a simulated push.
type Outcome struct {
	Captured Cell
	// Ko is set when the push would restore the board to its previous state.
	Ko bool
}

type MarbleCount struct {
	White int `json:"white"`
	Black int `json:"black"`
	Red   int `json:"red"`
}

func (that MarbleCount) Total() int {
	return that.White + that.Black + that.Red
}

func (that MarbleCount) Of(color Cell) int {
	switch color {
	case White:
		return that.White
	case Black:
		return that.Black
	case Red:
		return that.Red
	default:
		return 0
	}
}

type grid [squares]Cell

// Board is a value type; assigning it copies both grids.
type Board struct {
	grid        grid
	previous    grid
	hasPrevious bool
}

var initialLayout = grid{
	White, White, Empty, Empty, Empty, Black, Black,
	White, White, Empty, Red, Empty, Black, Black,
	Empty, Empty, Red, Red, Red, Empty, Empty,
	Empty, Red, Red, Red, Red, Red, Empty,
	Empty, Empty, Red, Red, Red, Empty, Empty,
	Black, Black, Empty, Red, Empty, White, White,
	Black, Black, Empty, Empty, Empty, White, White,
}

// NewBoard returns the board in its starting layout, with no previous state.
func NewBoard() Board {
	return Board{grid: initialLayout}
}

func (that *Board) IsValidSquare(c Coord) bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// IsEmpty reports whether the square holds no marble. Off-board squares are not empty.
func (that *Board) IsEmpty(c Coord) bool {
	return that.IsValidSquare(c) && that.grid[c.index()] == Empty
}

// At returns the content of an on-board square, Empty otherwise.
func (that *Board) At(c Coord) Cell {
	if !that.IsValidSquare(c) {
		return Empty
	}
	return that.grid[c.index()]
}

// HasPrevious reports whether a move has been made on this board.
func (that *Board) HasPrevious() bool {
	return that.hasPrevious
}

// Previous returns the content of a square before the last move.
func (that *Board) Previous(c Coord) Cell {
	if !that.hasPrevious || !that.IsValidSquare(c) {
		return Empty
	}
	return that.previous[c.index()]
}

// Squares returns every coordinate in row-major order.
func (that *Board) Squares() []Coord {
	coords := make([]Coord, 0, squares)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			coords = append(coords, Coord{Row: row, Col: col})
		}
	}
	return coords
}

func (that *Board) MarbleCount() MarbleCount {
	var count MarbleCount
	for _, cell := range that.grid {
		switch cell {
		case White:
			count.White++
		case Black:
			count.Black++
		case Red:
			count.Red++
		}
	}
	return count
}

// MoveMarble pushes the marble at c and returns what fell off the board, or Empty.
func (that *Board) MoveMarble(c Coord, direction Direction) (Cell, error) {
	if err := that.validate(c, direction); err != nil {
		return Empty, err
	}

	that.previous = that.grid
	that.hasPrevious = true

	return push(&that.grid, c, direction), nil
}

// SimulateMove reports the outcome of a push without changing the board.
func (that *Board) SimulateMove(c Coord, direction Direction) (Outcome, error) {
	if err := that.validate(c, direction); err != nil {
		return Outcome{}, err
	}

	simulated := that.grid
	captured := push(&simulated, c, direction)

	if that.hasPrevious && simulated == that.previous {
		return Outcome{Ko: true}, nil
	}

	return Outcome{Captured: captured}, nil
}

func (that *Board) validate(c Coord, direction Direction) error {
	if !direction.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, direction)
	}

	if !that.IsValidSquare(c) {
		return fmt.Errorf("%w: %s", ErrOffBoard, c)
	}

	if that.grid[c.index()] == Empty {
		return fmt.Errorf("%w: %s", ErrEmptyOrigin, c)
	}

	return nil
}

// push shifts the run of marbles starting at c one square along the axis and returns the cell pushed off the edge.
func push(g *grid, c Coord, direction Direction) Cell {
	dr, dc := direction.step()

	carried := Empty
	for pos := c; pos.Row >= 0 && pos.Row < Size && pos.Col >= 0 && pos.Col < Size; pos.Row, pos.Col = pos.Row+dr, pos.Col+dc {
		i := pos.index()
		carried, g[i] = g[i], carried
		if carried == Empty {
			return Empty
		}
	}

	return carried
}

func (that *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sb.WriteByte(token(that.grid[row*Size+col]))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
