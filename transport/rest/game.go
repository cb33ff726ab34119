package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/kuba-backend/internal/apperror"
	"github.com/rocketscienceinc/kuba-backend/internal/entity"
	"github.com/rocketscienceinc/kuba-backend/internal/kuba"
)

var errInvalidPayload = errors.New("invalid payload")

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id, name string) (*entity.Player, error)
	CreateGame(ctx context.Context, playerID, color, opponentID string) (*entity.Game, error)
	CreateBotGame(ctx context.Context, playerID, color string, botFirst bool) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID, playerID string, move kuba.Move) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	LegalMoves(ctx context.Context, gameID, playerID string) ([]kuba.Move, error)
}

type gameHandler struct {
	logger *slog.Logger
	games  gameUseCase
}

func newGameHandler(logger *slog.Logger, games gameUseCase) *gameHandler {
	return &gameHandler{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *gameHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var payload createPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeError(w, "CreatePlayer", errInvalidPayload)
		return
	}

	player, err := that.games.GetOrCreatePlayer(r.Context(), payload.ID, payload.Name)
	if err != nil {
		that.writeError(w, "CreatePlayer", err)
		return
	}

	writeJSON(w, http.StatusOK, player)
}

func (that *gameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var payload createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeError(w, "CreateGame", errInvalidPayload)
		return
	}

	var (
		game *entity.Game
		err  error
	)
	if payload.Bot {
		game, err = that.games.CreateBotGame(r.Context(), payload.PlayerID, payload.Color, payload.BotFirst)
	} else {
		game, err = that.games.CreateGame(r.Context(), payload.PlayerID, payload.Color, payload.OpponentID)
	}

	if err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	writeJSON(w, http.StatusCreated, newGameResponse(game))
}

func (that *gameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *gameHandler) LegalMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := that.games.LegalMoves(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("player_id"))
	if err != nil {
		that.writeError(w, "LegalMoves", err)
		return
	}

	writeJSON(w, http.StatusOK, movesResponse{Moves: moves})
}

func (that *gameHandler) MakeMove(w http.ResponseWriter, r *http.Request) {
	var payload moveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeError(w, "MakeMove", errInvalidPayload)
		return
	}

	direction, err := kuba.ParseDirection(payload.Direction)
	if err != nil {
		that.writeError(w, "MakeMove", err)
		return
	}

	move := kuba.Move{Coord: kuba.Coord{Row: payload.Row, Col: payload.Col}, Direction: direction}

	game, err := that.games.MakeMove(r.Context(), chi.URLParam(r, "id"), payload.PlayerID, move)
	if err != nil {
		that.writeError(w, "MakeMove", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *gameHandler) writeError(w http.ResponseWriter, method string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound), errors.Is(err, apperror.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotInGame):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrPlayerInGame), errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrIllegalMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errInvalidPayload), errors.Is(err, apperror.ErrInvalidColor),
		errors.Is(err, kuba.ErrInvalidDirection), errors.Is(err, kuba.ErrDuplicatePlayer):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
