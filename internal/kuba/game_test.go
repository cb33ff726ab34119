package kuba

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playMove makes the pick-th (modulo) legal move for whoever is to move.
func playMove(t *testing.T, game *Game, pick int) {
	t.Helper()

	mover := game.CurrentTurn()
	if mover == "" {
		mover = game.Players()[0].ID
	}

	moves := game.LegalMoves(mover)
	require.NotEmpty(t, moves)

	move := moves[pick%len(moves)]
	require.True(t, game.MakeMove(mover, move.Coord, move.Direction), "move %s by %s", move, mover)
}

func playFirstMove(t *testing.T, game *Game) {
	t.Helper()
	playMove(t, game, 0)
}

func capturedTotal(game *Game) int {
	total := 0
	for _, player := range game.Players() {
		total += player.Score()
	}
	return total
}

// restore builds a white-vs-black game from a grid and capture tallies.
func restore(t *testing.T, grid string, white, black Player, currentTurn string) *Game {
	t.Helper()

	white.ID, white.Color = "white", White
	black.ID, black.Color = "black", Black

	game, err := RestoreGame([2]Player{white, black}, mustDecode(t, grid), currentTurn, "")
	require.NoError(t, err)

	return game
}

func TestNewGame(t *testing.T) {
	t.Run("Creates the initial state", func(t *testing.T) {
		// When: a new game is created
		game, err := NewGame("alice", White, "bob", Black)
		require.NoError(t, err)

		// Then: nobody has moved, nobody has won and the board is the starting layout
		assert.Empty(t, game.CurrentTurn())
		assert.Empty(t, game.Winner())
		assert.False(t, game.IsTerminal())
		assert.Equal(t, NewBoard(), game.Board())

		alice, ok := game.Player("alice")
		require.True(t, ok)
		assert.Equal(t, Player{ID: "alice", Color: White}, alice)

		opponent, ok := game.Opponent("alice")
		require.True(t, ok)
		assert.Equal(t, "bob", opponent.ID)
	})

	t.Run("Rejects duplicate ids", func(t *testing.T) {
		_, err := NewGame("alice", White, "alice", Black)
		require.ErrorIs(t, err, ErrDuplicatePlayer)
	})

	t.Run("Rejects invalid colors", func(t *testing.T) {
		_, err := NewGame("alice", White, "bob", White)
		require.ErrorIs(t, err, ErrInvalidColors)

		_, err = NewGame("alice", Red, "bob", Black)
		require.ErrorIs(t, err, ErrInvalidColors)
	})
}

func TestRestoreGame(t *testing.T) {
	t.Run("Rejects inconsistent marble counts", func(t *testing.T) {
		players := [2]Player{{ID: "a", Color: White, RedCaptured: 1}, {ID: "b", Color: Black}}

		_, err := RestoreGame(players, NewBoard(), "", "")
		require.ErrorIs(t, err, ErrMarbleCount)
	})

	t.Run("Rejects unknown turn or winner", func(t *testing.T) {
		players := [2]Player{{ID: "a", Color: White}, {ID: "b", Color: Black}}

		_, err := RestoreGame(players, NewBoard(), "c", "")
		require.ErrorIs(t, err, ErrUnknownPlayer)

		_, err = RestoreGame(players, NewBoard(), "", "c")
		require.ErrorIs(t, err, ErrUnknownPlayer)
	})

	t.Run("Restores a consistent game", func(t *testing.T) {
		players := [2]Player{{ID: "a", Color: White}, {ID: "b", Color: Black}}

		game, err := RestoreGame(players, NewBoard(), "b", "")
		require.NoError(t, err)
		assert.Equal(t, "b", game.CurrentTurn())
	})
}

func TestGame_MakeMove(t *testing.T) {
	t.Run("Either player may open and turns alternate", func(t *testing.T) {
		// Given: a new game
		game, err := NewGame("white", White, "black", Black)
		require.NoError(t, err)

		// When: black opens
		ok := game.MakeMove("black", Coord{Row: 0, Col: 6}, Backward)

		// Then: the move is accepted and it is white's turn
		require.True(t, ok)
		assert.Equal(t, "white", game.CurrentTurn())

		// When: black tries to move again
		ok = game.MakeMove("black", Coord{Row: 1, Col: 6}, Backward)

		// Then: the move is refused
		assert.False(t, ok)
		assert.Equal(t, "white", game.CurrentTurn())
	})

	t.Run("Rule violations are refused without side effects", func(t *testing.T) {
		// Given: a new game
		game, err := NewGame("white", White, "black", Black)
		require.NoError(t, err)
		before := game.Clone()

		cases := []struct {
			name      string
			player    string
			coord     Coord
			direction Direction
		}{
			{"unknown player", "carol", Coord{Row: 0, Col: 0}, Backward},
			{"undefined direction", "white", Coord{Row: 0, Col: 0}, Direction(0)},
			{"off the board", "white", Coord{Row: 7, Col: 0}, Backward},
			{"opponent marble", "white", Coord{Row: 0, Col: 6}, Backward},
			{"empty square", "white", Coord{Row: 0, Col: 3}, Left},
			{"blocked from behind", "white", Coord{Row: 0, Col: 1}, Right},
			{"own marble pushed off", "white", Coord{Row: 0, Col: 1}, Left},
		}

		for _, tc := range cases {
			// When: the invalid move is attempted
			ok := game.MakeMove(tc.player, tc.coord, tc.direction)

			// Then: it fails and nothing changes
			assert.False(t, ok, tc.name)
			assert.Equal(t, before, game, tc.name)
		}
	})

	t.Run("Ko violations are refused", func(t *testing.T) {
		// Given: a sparse board where white can push black one square along row 3
		game := restore(t,
			rows("R     B", blankRow, blankRow, "WB     ", blankRow, blankRow, "      W"),
			Player{RedCaptured: 6, OpponentCaptured: 6},
			Player{RedCaptured: 6, OpponentCaptured: 6},
			"white",
		)
		require.True(t, game.MakeMove("white", Coord{Row: 3, Col: 0}, Right))

		// When: black tries to push the pair straight back
		before := game.Clone()
		ok := game.MakeMove("black", Coord{Row: 3, Col: 2}, Left)

		// Then: it would recreate the previous board, so it is refused
		assert.False(t, ok)
		assert.Equal(t, before, game)

		// Then: the reverse push is valid once the position changed
		assert.True(t, game.MakeMove("black", Coord{Row: 3, Col: 2}, Forward))
	})

	t.Run("Captures are credited to the mover", func(t *testing.T) {
		// Given: white next to a red on the right edge and a black on the same row elsewhere
		game := restore(t,
			rows(blankRow, blankRow, blankRow, "    WRB", blankRow, blankRow, "B     W"),
			Player{RedCaptured: 6, OpponentCaptured: 6},
			Player{RedCaptured: 6, OpponentCaptured: 6},
			"",
		)

		// When: white pushes the row right
		require.True(t, game.MakeMove("white", Coord{Row: 3, Col: 4}, Right))

		// Then: the black at the edge is credited as an opponent capture
		white, _ := game.Player("white")
		assert.Equal(t, 6, white.RedCaptured)
		assert.Equal(t, 7, white.OpponentCaptured)
		assert.Empty(t, game.Winner())
	})

	t.Run("Seventh red wins", func(t *testing.T) {
		// Given: white has six reds and can push a seventh off
		game := restore(t,
			rows(blankRow, blankRow, blankRow, "     WR", blankRow, blankRow, "B      "),
			Player{RedCaptured: 6, OpponentCaptured: 7},
			Player{RedCaptured: 6, OpponentCaptured: 7},
			"white",
		)

		// When: white pushes the red off
		require.True(t, game.MakeMove("white", Coord{Row: 3, Col: 5}, Right))

		// Then: white wins and the turn still passes
		assert.Equal(t, "white", game.Winner())
		assert.Equal(t, "black", game.CurrentTurn())
		assert.True(t, game.IsTerminal())
	})

	t.Run("Capturing the last opponent marble wins", func(t *testing.T) {
		// Given: black has a single marble left next to white on the right edge
		game := restore(t,
			rows("R      ", blankRow, blankRow, "     WB", blankRow, blankRow, blankRow),
			Player{RedCaptured: 6, OpponentCaptured: 7},
			Player{RedCaptured: 6, OpponentCaptured: 7},
			"white",
		)

		// When: white pushes it off
		require.True(t, game.MakeMove("white", Coord{Row: 3, Col: 5}, Right))

		// Then: white wins in the same call
		assert.Equal(t, "white", game.Winner())
		assert.Equal(t, 0, game.MarbleCount().Black)

		// When: either player tries to move afterwards
		before := game.Clone()
		assert.False(t, game.MakeMove("black", Coord{Row: 0, Col: 0}, Right))
		assert.False(t, game.MakeMove("white", Coord{Row: 3, Col: 6}, Forward))

		// Then: nothing changes
		assert.Equal(t, before, game)
	})

	t.Run("Leaving the opponent without moves wins", func(t *testing.T) {
		// Given: black's only marble is boxed in by reds
		game := restore(t,
			rows(blankRow, blankRow, "   R   ", "  RBR  ", "   R   ", blankRow, "      W"),
			Player{RedCaptured: 5, OpponentCaptured: 7},
			Player{RedCaptured: 4, OpponentCaptured: 7},
			"white",
		)

		// When: white makes an unrelated move
		require.True(t, game.MakeMove("white", Coord{Row: 6, Col: 6}, Forward))

		// Then: black has no move, so white wins
		assert.True(t, game.IsOutOfMoves("black"))
		assert.Equal(t, "white", game.Winner())
		assert.Equal(t, "black", game.CurrentTurn())
	})

	t.Run("A player without marbles is out of moves", func(t *testing.T) {
		// Given: a board without black marbles
		game := restore(t,
			rows("R      ", blankRow, blankRow, "     W ", blankRow, blankRow, blankRow),
			Player{RedCaptured: 6, OpponentCaptured: 8},
			Player{RedCaptured: 6, OpponentCaptured: 7},
			"black",
		)

		// Then: black has no moves
		assert.True(t, game.IsOutOfMoves("black"))
		assert.Empty(t, game.LegalMoves("black"))
	})
}

func TestGame_MarbleInvariant(t *testing.T) {
	// Given: a new game
	game, err := NewGame("white", White, "black", Black)
	require.NoError(t, err)

	for i := 0; i < 80 && !game.IsTerminal(); i++ {
		// When: a move is played
		playMove(t, game, i*3+1)

		// Then: marbles on the board plus captures always add up to 29
		require.Equal(t, TotalMarbles, game.MarbleCount().Total()+capturedTotal(game))
	}
}

func TestGame_Clone(t *testing.T) {
	// Given: a game and its clone
	game, err := NewGame("white", White, "black", Black)
	require.NoError(t, err)
	clone := game.Clone()

	// When: the clone is played
	playFirstMove(t, clone)

	// Then: the original is untouched
	assert.Empty(t, game.CurrentTurn())
	assert.Equal(t, NewBoard(), game.Board())
	assert.NotEqual(t, game.Board(), clone.Board())
}
