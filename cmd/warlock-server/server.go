package main

import (
	"time"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/logging"
	"github.com/zbonzo/warlock/internal/service"
	"github.com/zbonzo/warlock/internal/storage"
)

// startTimeoutScanner periodically finds rooms whose deadline passed and
// delegates handling to service.HandleTimedOutGame: stalled action
// phases resolve with defaults, stalled results phases advance, and
// rooms that never left the lobby are disbanded.
func startTimeoutScanner(repo storage.Repository, cat *catalog.Catalog, rng engine.RNG, actionTimeout time.Duration) {
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			ids, err := repo.FindTimedOutGameIDs(time.Now())
			if err != nil {
				logging.Error("timeout scanner failed to list ids", err, nil)
				continue
			}
			// process each id sequentially (keeps SQLite happy)
			for _, id := range ids {
				if err := service.HandleTimedOutGame(repo, cat, id, rng, actionTimeout); err != nil {
					logging.Error("failed to handle timed out game", err, logging.Fields{"game_id": id})
					continue
				}
				if g, err := repo.GetGameByID(id); err == nil && g.Phase == game.PhaseEnded {
					service.ReleaseGameLock(id)
				}
			}
		}
	}()
}
