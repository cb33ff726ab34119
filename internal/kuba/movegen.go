package kuba

// Move is a push of the marble at Coord in Direction.
type Move struct {
	Coord     Coord     `json:"coord"`
	Direction Direction `json:"direction"`
}

func (that Move) String() string {
	return that.Coord.String() + that.Direction.String()
}

// neighbour order: above, below, left, right. A free square above allows a Backward push and so on.
var generatorDirections = [4]Direction{Backward, Forward, Right, Left}

// LegalMoves lists every move available to the given color, in row-major square order
// and above/below/left/right neighbour order per square. Search relies on this order for tie-breaking.
func LegalMoves(board *Board, color Cell) []Move {
	var moves []Move

	for _, c := range board.Squares() {
		if board.At(c) != color {
			continue
		}

		for _, direction := range generatorDirections {
			if canPush(board, c, direction, color) {
				moves = append(moves, Move{Coord: c, Direction: direction})
			}
		}
	}

	return moves
}

// canPush checks the physical and rule conditions of a push, except ownership and turn.
func canPush(board *Board, c Coord, direction Direction, color Cell) bool {
	behind := c.behind(direction)
	if board.IsValidSquare(behind) && !board.IsEmpty(behind) {
		return false
	}

	outcome, err := board.SimulateMove(c, direction)
	if err != nil {
		return false
	}

	return !outcome.Ko && outcome.Captured != color
}
