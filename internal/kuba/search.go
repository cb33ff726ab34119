package kuba

import (
	"errors"
	"fmt"
	"math"
)

// WinBonus is added to (or subtracted from) the heuristic value of a won (or lost) position.
const WinBonus = 100

var (
	ErrNoLegalMoves = errors.New("player has no legal moves")
	ErrInvalidDepth = errors.New("search depth must be at least 1")
)

// gameNode is a position in the search tree. The root has no parent and no move.
type gameNode struct {
	state  *Game
	value  int
	move   Move
	parent *gameNode
}

type searcher struct {
	maximizer string
	minimizer string
}

// heuristic scores a position from the maximizer's point of view.
func (that *searcher) heuristic(game *Game) int {
	maximizer, _ := game.Player(that.maximizer)
	minimizer, _ := game.Player(that.minimizer)

	value := maximizer.Score() - minimizer.Score()

	switch game.Winner() {
	case that.maximizer:
		value += WinBonus
	case that.minimizer:
		value -= WinBonus
	}

	return value
}

func (that *searcher) alphaBeta(node *gameNode, depth, alpha, beta int, maximizing bool) *gameNode {
	if depth == 0 || node.state.IsTerminal() {
		return node
	}

	mover := that.minimizer
	if maximizing {
		mover = that.maximizer
	}

	var best *gameNode
	for _, move := range node.state.LegalMoves(mover) {
		state := node.state.Clone()
		state.MakeMove(mover, move.Coord, move.Direction)

		child := &gameNode{
			state:  state,
			value:  that.heuristic(state),
			move:   move,
			parent: node,
		}

		result := that.alphaBeta(child, depth-1, alpha, beta, !maximizing)

		if maximizing {
			if best == nil || result.value > best.value {
				best = result
			}
			alpha = max(alpha, best.value)
		} else {
			if best == nil || result.value < best.value {
				best = result
			}
			beta = min(beta, best.value)
		}

		if alpha >= beta {
			break
		}
	}

	if best == nil {
		return node
	}

	return best
}

// BestMove searches maxDepth plies ahead and returns the move the AI player should make now.
// The caller must make sure the AI is allowed to move.
func BestMove(game *Game, aiID string, maxDepth int) (Move, error) {
	if maxDepth < 1 {
		return Move{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}

	opponent, ok := game.Opponent(aiID)
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, aiID)
	}

	if game.IsOutOfMoves(aiID) {
		return Move{}, fmt.Errorf("%w: %q", ErrNoLegalMoves, aiID)
	}

	s := &searcher{maximizer: aiID, minimizer: opponent.ID}
	root := &gameNode{state: game.Clone()}
	root.value = s.heuristic(root.state)

	node := s.alphaBeta(root, maxDepth, math.MinInt, math.MaxInt, true)
	if node == root {
		return Move{}, fmt.Errorf("%w: %q", ErrNoLegalMoves, aiID)
	}

	for node.parent != root {
		node = node.parent
	}

	return node.move, nil
}

// RunAIMove picks a move for aiID and applies it to game. It returns false when the AI may not move at all
// (unknown player, finished game, or not its turn).
func RunAIMove(game *Game, aiID string, maxDepth int) (bool, error) {
	if _, ok := game.Player(aiID); !ok || game.IsTerminal() {
		return false, nil
	}

	if turn := game.CurrentTurn(); turn != "" && turn != aiID {
		return false, nil
	}

	move, err := BestMove(game, aiID, maxDepth)
	if err != nil {
		return false, fmt.Errorf("failed to search for a move: %w", err)
	}

	return game.MakeMove(aiID, move.Coord, move.Direction), nil
}
