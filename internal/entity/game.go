package entity

import (
	"fmt"

	"github.com/rocketscienceinc/kuba-backend/internal/apperror"
	"github.com/rocketscienceinc/kuba-backend/internal/kuba"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

const (
	PvPType     = "pvp"
	WithBotType = "bot"
)

// Game is the stored form of a kuba.Game. Grid and PreviousGrid hold the 49-character board encoding.
type Game struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	Grid         string    `json:"grid"`
	PreviousGrid string    `json:"previous_grid"`
	Players      []*Player `json:"players"`
	CurrentTurn  string    `json:"current_turn,omitempty"`
	Winner       string    `json:"winner,omitempty"`
}

// NewGame wraps a fresh state. Players must be given in the same order as in state.
func NewGame(id, gameType string, state *kuba.Game, players []*Player) *Game {
	game := &Game{
		ID:      id,
		Type:    gameType,
		Players: players,
	}

	for _, player := range players {
		player.GameID = id
	}

	game.Sync(state)

	return game
}

// Sync copies board, tallies, turn and winner from state.
func (that *Game) Sync(state *kuba.Game) {
	that.Grid, that.PreviousGrid = kuba.Encode(state.Board())
	that.CurrentTurn = state.CurrentTurn()
	that.Winner = state.Winner()

	for _, player := range that.Players {
		record, ok := state.Player(player.ID)
		if !ok {
			continue
		}
		player.Color = ColorOf(record.Color)
		player.RedCaptured = record.RedCaptured
		player.OpponentCaptured = record.OpponentCaptured
	}

	if state.IsTerminal() {
		that.Status = StatusFinished
	} else {
		that.Status = StatusOngoing
	}
}

// State rebuilds the playable game from the stored document.
func (that *Game) State() (*kuba.Game, error) {
	if len(that.Players) != 2 {
		return nil, fmt.Errorf("%w: game %s has %d players", apperror.ErrInvalidState, that.ID, len(that.Players))
	}

	var players [2]kuba.Player
	for i, player := range that.Players {
		color, err := ParseColor(player.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidState, err)
		}

		players[i] = kuba.Player{
			ID:               player.ID,
			Color:            color,
			RedCaptured:      player.RedCaptured,
			OpponentCaptured: player.OpponentCaptured,
		}
	}

	board, err := kuba.Decode(that.Grid, that.PreviousGrid)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidState, err)
	}

	state, err := kuba.RestoreGame(players, board, that.CurrentTurn, that.Winner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidState, err)
	}

	return state, nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// Bot returns the bot seat, or nil for games between two people.
func (that *Game) Bot() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}
	return nil
}

func (that *Game) PlayerByID(id string) (*Player, bool) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, true
		}
	}
	return nil, false
}
