package service

import (
	"time"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/logging"
)

// HandleTimedOutGame forces progress on a room whose deadline passed.
// During the action phase every missing submission becomes a no-op
// default and the round resolves with whatever was validly queued;
// during the results phase the next round simply begins. Unstarted
// rooms idle past the lobby cutoff are disbanded.
func HandleTimedOutGame(repo GameRepo, cat *catalog.Catalog, gameID uint, rng engine.RNG, actionTimeout time.Duration) error {
	return WithGameLock(gameID, func() error {
		g, err := repo.GetGameByID(gameID)
		if err != nil || g == nil {
			return ErrGameNotFound
		}
		if g.ActionDeadline.IsZero() || time.Now().Before(g.ActionDeadline) {
			return nil
		}

		switch g.Phase {
		case game.PhaseAction:
			defaulted := 0
			for i := range g.Players {
				p := &g.Players[i]
				if !p.IsAlive || p.HasSubmitted {
					continue
				}
				// A missing submission resolves as a no-op; the
				// reserved cooldown of any earlier overwritten
				// submission was never consumed.
				p.PendingAction = nil
				p.HasSubmitted = true
				defaulted++
			}
			if defaulted > 0 {
				logging.Info("round timeout: substituting defaults", logging.Fields{
					"game_id":   g.ID,
					"defaulted": defaulted,
				})
			}
			resolveCurrentRound(repo, g, cat, rng, actionTimeout)
		case game.PhaseResults:
			StartNextRound(g, actionTimeout)
		case game.PhaseLobby, game.PhaseCharacterSelect:
			logging.Warn("disbanding stale unstarted game", logging.Fields{"game_id": g.ID})
			g.Phase = game.PhaseEnded
			g.Message = "The party never set out. Game disbanded."
			g.ActionDeadline = time.Time{}
			g.StatsCounted = true
		default:
			return nil
		}
		return repo.UpdateGame(g)
	})
}
