package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerInGame   = errors.New("player is already in a game")
	ErrNotInGame      = errors.New("player is not in this game")
	ErrIllegalMove    = errors.New("illegal move")
	ErrInvalidColor   = errors.New("invalid marble color")
	ErrInvalidState   = errors.New("stored game state is invalid")
)
