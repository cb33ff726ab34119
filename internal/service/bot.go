package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/kuba-backend/internal/kuba"
)

var ErrBotCannotMove = errors.New("bot cannot move")

type BotService interface {
	MakeTurn(state *kuba.Game, botID string) error
}

type botService struct {
	logger *slog.Logger
	depth  int
}

// NewBotService returns a bot that searches depth plies ahead.
func NewBotService(logger *slog.Logger, depth int) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		depth:  depth,
	}
}

func (that *botService) MakeTurn(state *kuba.Game, botID string) error {
	log := that.logger.With("method", "MakeTurn", "bot_id", botID)

	moved, err := kuba.RunAIMove(state, botID, that.depth)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	if !moved {
		return fmt.Errorf("%w: turn %q, winner %q", ErrBotCannotMove, state.CurrentTurn(), state.Winner())
	}

	log.Debug("bot moved", "depth", that.depth, "next_turn", state.CurrentTurn(), "winner", state.Winner())

	return nil
}
