package entity

import (
	"fmt"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/kuba-backend/internal/apperror"
	"github.com/rocketscienceinc/kuba-backend/internal/kuba"
)

const (
	ColorWhite = "W"
	ColorBlack = "B"

	botIDPrefix = "bot-"
)

type Player struct {
	ID               string `json:"id"`
	Name             string `json:"name,omitempty"`
	Color            string `json:"color,omitempty"`
	GameID           string `json:"game_id,omitempty"`
	RedCaptured      int    `json:"red_captured"`
	OpponentCaptured int    `json:"opponent_captured"`
	Bot              bool   `json:"bot,omitempty"`
}

// NewBotPlayer returns a bot seated in the given game with a generated name.
func NewBotPlayer(gameID, color string) *Player {
	return &Player{
		ID:     botIDPrefix + uuid.NewString(),
		Name:   petname.Generate(2, "-"),
		Color:  color,
		GameID: gameID,
		Bot:    true,
	}
}

func (that *Player) IsBot() bool {
	return that.Bot
}

func (that *Player) InGame() bool {
	return that.GameID != ""
}

// Release detaches the player from their game and resets the seat.
func (that *Player) Release() {
	that.GameID = ""
	that.Color = ""
	that.RedCaptured = 0
	that.OpponentCaptured = 0
}

func ParseColor(color string) (kuba.Cell, error) {
	switch color {
	case ColorWhite:
		return kuba.White, nil
	case ColorBlack:
		return kuba.Black, nil
	default:
		return kuba.Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidColor, color)
	}
}

func ColorOf(cell kuba.Cell) string {
	switch cell {
	case kuba.White:
		return ColorWhite
	case kuba.Black:
		return ColorBlack
	default:
		return ""
	}
}

// OtherColor returns the color the opponent of color plays.
func OtherColor(color string) string {
	if color == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}
