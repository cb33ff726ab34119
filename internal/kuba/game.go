package kuba

import (
	"errors"
	"fmt"
)

// RedsToWin is the number of red marbles a player must capture to win.
const RedsToWin = 7

var (
	ErrDuplicatePlayer = errors.New("player ids must be unique")
	ErrInvalidColors   = errors.New("players must play White and Black")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrMarbleCount     = errors.New("board and captured marble counts do not add up")
)

// Player is one side of a game and its capture tally.
type Player struct {
	ID               string `json:"id"`
	Color            Cell   `json:"color"`
	RedCaptured      int    `json:"red_captured"`
	OpponentCaptured int    `json:"opponent_captured"`
}

// Score is the total of marbles this player pushed off.
func (that Player) Score() int {
	return that.RedCaptured + that.OpponentCaptured
}

// Game is the turn/score/win state machine around a Board.
// An empty currentTurn means either player may move; a non-empty winner makes the game terminal.
// Game is not safe for concurrent use.
type Game struct {
	players     [2]Player
	board       Board
	currentTurn string
	winner      string
}

// NewGame creates a game in its initial state.
func NewGame(playerA string, colorA Cell, playerB string, colorB Cell) (*Game, error) {
	players := [2]Player{
		{ID: playerA, Color: colorA},
		{ID: playerB, Color: colorB},
	}

	if err := validatePlayers(players); err != nil {
		return nil, err
	}

	return &Game{
		players: players,
		board:   NewBoard(),
	}, nil
}

// RestoreGame rebuilds a game from persisted parts and checks that they are consistent.
func RestoreGame(players [2]Player, board Board, currentTurn, winner string) (*Game, error) {
	if err := validatePlayers(players); err != nil {
		return nil, err
	}

	game := &Game{
		players:     players,
		board:       board,
		currentTurn: currentTurn,
		winner:      winner,
	}

	if currentTurn != "" && game.indexOf(currentTurn) < 0 {
		return nil, fmt.Errorf("%w: current turn %q", ErrUnknownPlayer, currentTurn)
	}

	if winner != "" && game.indexOf(winner) < 0 {
		return nil, fmt.Errorf("%w: winner %q", ErrUnknownPlayer, winner)
	}

	captured := 0
	for _, player := range players {
		if player.RedCaptured < 0 || player.OpponentCaptured < 0 {
			return nil, fmt.Errorf("%w: negative tally for %q", ErrMarbleCount, player.ID)
		}
		captured += player.Score()
	}

	count := board.MarbleCount()
	if count.Total()+captured != TotalMarbles {
		return nil, fmt.Errorf("%w: %d on board, %d captured", ErrMarbleCount, count.Total(), captured)
	}

	return game, nil
}

func validatePlayers(players [2]Player) error {
	if players[0].ID == players[1].ID {
		return fmt.Errorf("%w: %q", ErrDuplicatePlayer, players[0].ID)
	}

	a, b := players[0].Color, players[1].Color
	if !(a == White && b == Black) && !(a == Black && b == White) {
		return fmt.Errorf("%w: got %s and %s", ErrInvalidColors, a, b)
	}

	return nil
}

// Clone returns an independent copy of the game.
func (that *Game) Clone() *Game {
	clone := *that
	return &clone
}

func (that *Game) CurrentTurn() string {
	return that.currentTurn
}

func (that *Game) Winner() string {
	return that.winner
}

func (that *Game) IsTerminal() bool {
	return that.winner != ""
}

// Players returns copies of both player records in creation order.
func (that *Game) Players() [2]Player {
	return that.players
}

func (that *Game) Player(id string) (Player, bool) {
	i := that.indexOf(id)
	if i < 0 {
		return Player{}, false
	}
	return that.players[i], true
}

// Opponent returns the other player of id.
func (that *Game) Opponent(id string) (Player, bool) {
	i := that.indexOf(id)
	if i < 0 {
		return Player{}, false
	}
	return that.players[1-i], true
}

// Board returns a copy of the board.
func (that *Game) Board() Board {
	return that.board
}

func (that *Game) MarbleCount() MarbleCount {
	return that.board.MarbleCount()
}

func (that *Game) indexOf(id string) int {
	for i := range that.players {
		if that.players[i].ID == id {
			return i
		}
	}
	return -1
}

// LegalMoves lists the moves the player could make if it were their turn.
func (that *Game) LegalMoves(id string) []Move {
	player, ok := that.Player(id)
	if !ok {
		return nil
	}
	return LegalMoves(&that.board, player.Color)
}

func (that *Game) IsOutOfMoves(id string) bool {
	return len(that.LegalMoves(id)) == 0
}

// IsMoveValid reports whether the player may push the marble at c in the given direction now.
func (that *Game) IsMoveValid(id string, c Coord, direction Direction) bool {
	if that.IsTerminal() {
		return false
	}

	player, ok := that.Player(id)
	if !ok {
		return false
	}

	if !direction.Valid() || !that.board.IsValidSquare(c) {
		return false
	}

	if that.currentTurn != "" && that.currentTurn != id {
		return false
	}

	if that.board.At(c) != player.Color {
		return false
	}

	return canPush(&that.board, c, direction, player.Color)
}

// MakeMove applies a valid move and advances the turn. It returns false and changes nothing if the move is not valid.
func (that *Game) MakeMove(id string, c Coord, direction Direction) bool {
	if !that.IsMoveValid(id, c, direction) {
		return false
	}

	captured, err := that.board.MoveMarble(c, direction)
	if err != nil {
		// unreachable: IsMoveValid checked every precondition
		return false
	}

	i := that.indexOf(id)
	mover := &that.players[i]
	opponent := that.players[1-i]

	switch captured {
	case Red:
		mover.RedCaptured++
	case opponent.Color:
		mover.OpponentCaptured++
	}

	if mover.RedCaptured >= RedsToWin {
		that.winner = id
	} else if count := that.board.MarbleCount(); count.White == 0 || count.Black == 0 {
		// nobody can push off their own marble, so the opponent ran out
		that.winner = id
	}

	that.currentTurn = opponent.ID

	if that.winner == "" && that.IsOutOfMoves(opponent.ID) {
		that.winner = id
	}

	return true
}

func (that *Game) String() string {
	return that.board.String()
}
