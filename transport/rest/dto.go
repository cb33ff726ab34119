package rest

import (
	"github.com/rocketscienceinc/kuba-backend/internal/entity"
	"github.com/rocketscienceinc/kuba-backend/internal/kuba"
)

type createPlayerRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// createGameRequest - with Bot set the opponent is the machine and OpponentID is ignored.
type createGameRequest struct {
	PlayerID   string `json:"player_id"`
	Color      string `json:"color"`
	OpponentID string `json:"opponent_id"`
	Bot        bool   `json:"bot"`
	BotFirst   bool   `json:"bot_first"`
}

type moveRequest struct {
	PlayerID  string `json:"player_id"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Direction string `json:"direction"`
}

type gameResponse struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	Status       string           `json:"status"`
	Grid         string           `json:"grid"`
	PreviousGrid string           `json:"previous_grid"`
	Rows         []string         `json:"rows"`
	Players      []*entity.Player `json:"players"`
	CurrentTurn  string           `json:"current_turn"`
	Winner       string           `json:"winner"`
}

type movesResponse struct {
	Moves []kuba.Move `json:"moves"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newGameResponse(game *entity.Game) gameResponse {
	rows := make([]string, 0, kuba.Size)
	for start := 0; start+kuba.Size <= len(game.Grid); start += kuba.Size {
		rows = append(rows, game.Grid[start:start+kuba.Size])
	}

	return gameResponse{
		ID:           game.ID,
		Type:         game.Type,
		Status:       game.Status,
		Grid:         game.Grid,
		PreviousGrid: game.PreviousGrid,
		Rows:         rows,
		Players:      game.Players,
		CurrentTurn:  game.CurrentTurn,
		Winner:       game.Winner,
	}
}
