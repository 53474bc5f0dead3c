package service

import (
	"errors"
	"time"

	"github.com/zbonzo/warlock/internal/game"
)

// GameRepo is the slice of the storage layer the round coordinator
// needs. The full repository lives in internal/storage; keeping a
// narrow interface here lets tests supply small mocks.
type GameRepo interface {
	GetGameByID(id uint) (*game.Game, error)
	UpdateGame(g *game.Game) error
	UpdateStatsOnGameEnd(g *game.Game) error
}

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrGameFull           = errors.New("game is full")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrNotHost            = errors.New("only the host may do that")
	ErrWrongPhase         = errors.New("operation not allowed in the current phase")
	ErrNameTaken          = errors.New("player name already taken")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrCharactersPending  = errors.New("not every player picked a character")
	ErrUnknownRace        = errors.New("unknown race")
	ErrUnknownClass       = errors.New("unknown class")
	ErrPlayerNotInGame    = errors.New("player not in game")
	ErrGameEnded          = errors.New("game has ended")
)

const (
	// MinPlayers keeps the hidden-role math meaningful: with fewer
	// than four players a single warlock is an immediate majority
	// threat.
	MinPlayers = 4
	MaxPlayers = 10
)

// touchDeadline rekeys the room's timer; every accepted submission and
// phase change pushes the deadline out.
func touchDeadline(g *game.Game, timeout time.Duration) {
	g.ActionDeadline = time.Now().Add(timeout)
}
