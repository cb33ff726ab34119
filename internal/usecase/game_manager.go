package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/kuba-backend/internal/apperror"
	"github.com/rocketscienceinc/kuba-backend/internal/entity"
	"github.com/rocketscienceinc/kuba-backend/internal/kuba"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type botService interface {
	MakeTurn(state *kuba.Game, botID string) error
}

// GameManager runs games on top of the stored documents. Moves on the same game are applied one at a time.
type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo
	bot        botService

	gameLocks   *keyedMutex
	playerLocks *keyedMutex
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		bot:        bot,

		gameLocks:   newKeyedMutex(),
		playerLocks: newKeyedMutex(),
	}
}

// GetOrCreatePlayer returns the player with the given id, or registers a new one when id is empty.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id, name string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.getPlayerByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// CreateGame seats two registered players against each other. playerID takes color, opponentID the other one.
func (that *GameManager) CreateGame(ctx context.Context, playerID, color, opponentID string) (*entity.Game, error) {
	log := that.logger.With("method", "CreateGame")

	defer that.lockPlayers(playerID, opponentID)()

	player, err := that.getFreePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	opponent, err := that.getFreePlayer(ctx, opponentID)
	if err != nil {
		return nil, err
	}

	cell, err := entity.ParseColor(color)
	if err != nil {
		return nil, fmt.Errorf("failed to parse color: %w", err)
	}

	opponentCell, _ := entity.ParseColor(entity.OtherColor(color))

	state, err := kuba.NewGame(player.ID, cell, opponent.ID, opponentCell)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	game := entity.NewGame(uuid.NewString(), entity.PvPType, state, []*entity.Player{player, opponent})
	if err = that.saveNewGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("game created", "game_id", game.ID, "players", []string{player.ID, opponent.ID})

	return game, nil
}

// CreateBotGame seats a player against the bot. With botFirst the bot plays the opening move right away.
func (that *GameManager) CreateBotGame(ctx context.Context, playerID, color string, botFirst bool) (*entity.Game, error) {
	log := that.logger.With("method", "CreateBotGame")

	defer that.lockPlayers(playerID)()

	player, err := that.getFreePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	cell, err := entity.ParseColor(color)
	if err != nil {
		return nil, fmt.Errorf("failed to parse color: %w", err)
	}

	gameID := uuid.NewString()
	bot := entity.NewBotPlayer(gameID, entity.OtherColor(color))
	botCell, _ := entity.ParseColor(bot.Color)

	state, err := kuba.NewGame(player.ID, cell, bot.ID, botCell)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	if botFirst {
		if err = that.bot.MakeTurn(state, bot.ID); err != nil {
			return nil, fmt.Errorf("failed to make opening bot turn: %w", err)
		}
	}

	game := entity.NewGame(gameID, entity.WithBotType, state, []*entity.Player{player, bot})
	if err = that.saveNewGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("bot game created", "game_id", game.ID, "player_id", player.ID, "bot", bot.Name)

	return game, nil
}

// MakeMove applies a move by playerID, lets the bot answer in bot games and stores the result.
// Finished games release their players.
func (that *GameManager) MakeMove(ctx context.Context, gameID, playerID string, move kuba.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "game_id", gameID)

	defer that.gameLocks.Lock(gameID)()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		return game, apperror.ErrGameFinished
	}

	player, ok := game.PlayerByID(playerID)
	if !ok || player.IsBot() {
		return nil, fmt.Errorf("%w: player %s, game %s", apperror.ErrNotInGame, playerID, gameID)
	}

	state, err := game.State()
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	if !state.MakeMove(playerID, move.Coord, move.Direction) {
		return nil, fmt.Errorf("%w: %s by %s", apperror.ErrIllegalMove, move, playerID)
	}

	if bot := game.Bot(); bot != nil && !state.IsTerminal() && state.CurrentTurn() == bot.ID {
		if err = that.bot.MakeTurn(state, bot.ID); err != nil {
			return nil, fmt.Errorf("failed to make bot turn: %w", err)
		}
	}

	game.Sync(state)
	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		that.releasePlayers(ctx, game)
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	return that.getGameByID(ctx, id)
}

// LegalMoves lists the moves playerID could make in the game now, whether or not it is their turn.
func (that *GameManager) LegalMoves(ctx context.Context, gameID, playerID string) ([]kuba.Move, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if _, ok := game.PlayerByID(playerID); !ok {
		return nil, fmt.Errorf("%w: player %s, game %s", apperror.ErrNotInGame, playerID, gameID)
	}

	if game.IsFinished() {
		return []kuba.Move{}, nil
	}

	state, err := game.State()
	if err != nil {
		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return state.LegalMoves(playerID), nil
}

// lockPlayers locks every id in a fixed order so concurrent creations cannot deadlock.
func (that *GameManager) lockPlayers(ids ...string) func() {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	unlocks := make([]func(), 0, len(ids))
	for _, id := range ids {
		unlocks = append(unlocks, that.playerLocks.Lock(id))
	}

	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

func (that *GameManager) getFreePlayer(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.getPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if player.InGame() {
		return nil, fmt.Errorf("%w: player %s, game %s", apperror.ErrPlayerInGame, player.ID, player.GameID)
	}

	return player, nil
}

func (that *GameManager) saveNewGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		if err := that.updatePlayer(ctx, player); err != nil {
			return err
		}
	}

	return nil
}

// releasePlayers frees the human seats of a finished game. The game document keeps its copy of the players.
func (that *GameManager) releasePlayers(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "releasePlayers", "game_id", game.ID)

	for _, seat := range game.Players {
		if seat.IsBot() {
			continue
		}

		player := *seat
		player.Release()

		if err := that.playerRepo.CreateOrUpdate(ctx, &player); err != nil {
			log.Error("failed to release player", "player_id", player.ID, "error", err)
		}
	}
}

func (that *GameManager) createPlayer(ctx context.Context, name string) (*entity.Player, error) {
	player := &entity.Player{
		ID:   uuid.NewString(),
		Name: name,
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
