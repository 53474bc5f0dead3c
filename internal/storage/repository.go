package storage

import (
	"time"

	"github.com/zbonzo/warlock/internal/game"
)

// Repository is the persistence surface for game rooms and player
// profiles. Rooms are stored as one aggregate (players relational,
// monster/threat/effects serialized) so a round can be loaded, mutated
// under the room lock, and written back in one piece.
type Repository interface {
	CreateGame(g *game.Game) error
	GetGameByID(id uint) (*game.Game, error)
	FindGameByJoinCode(code string) (*game.Game, error)
	UpdateGame(g *game.Game) error
	// RemovePlayer deletes a seat freed in the lobby.
	RemovePlayer(gameID uint, playerUUID string) error

	// FindTimedOutGameIDs returns rooms whose deadline is at or before
	// now and that still need the timeout scanner's attention.
	FindTimedOutGameIDs(now time.Time) ([]uint, error)

	UpsertProfile(playerUUID, playerName string) error
	GetProfileByUUID(playerUUID string) (*game.Profile, error)
	// UpdateStatsOnGameEnd counts one finished game for every player,
	// a win for the winning faction's members, and a corruption for
	// every player converted mid-game.
	UpdateStatsOnGameEnd(g *game.Game) error
	GetTopPlayers(limit int) ([]game.Profile, error)
}
