package service

import (
	"time"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/game"
)

// SubmitAction validates and queues one player's action for the current
// round, and resolves the round once every living, connected player has
// submitted. It returns the updated game and whether resolution ran.
// A *engine.Rejection error carries the machine-readable refusal code
// for the transport layer.
func SubmitAction(repo GameRepo, cat *catalog.Catalog, gameID uint, playerUUID, abilityID, targetID, metadata string, rng engine.RNG, actionTimeout time.Duration) (*game.Game, bool, error) {
	var (
		g        *game.Game
		resolved bool
	)
	err := WithGameLock(gameID, func() error {
		var err error
		g, err = repo.GetGameByID(gameID)
		if err != nil || g == nil {
			return ErrGameNotFound
		}

		if rej := engine.ValidateAction(g, cat, playerUUID, abilityID, targetID); rej != nil {
			return rej
		}
		engine.QueueAction(g, playerUUID, game.Action{
			ActorID:     playerUUID,
			AbilityID:   abilityID,
			TargetID:    targetID,
			SubmittedAt: time.Now(),
			Metadata:    metadata,
		})
		touchDeadline(g, actionTimeout)

		if g.AllLivingSubmitted() {
			resolveCurrentRound(repo, g, cat, rng, actionTimeout)
			resolved = true
		}
		return repo.UpdateGame(g)
	})
	if err != nil {
		return nil, false, err
	}
	return g, resolved, nil
}

// resolveCurrentRound runs the engine and settles post-resolution
// bookkeeping: the results deadline, or stat counting when the game
// ended. Callers hold the game lock.
func resolveCurrentRound(repo GameRepo, g *game.Game, cat *catalog.Catalog, rng engine.RNG, actionTimeout time.Duration) {
	engine.ResolveRound(g, cat, rng)
	switch g.Phase {
	case game.PhaseEnded:
		g.ActionDeadline = time.Time{}
		if !g.StatsCounted {
			_ = repo.UpdateStatsOnGameEnd(g)
			g.StatsCounted = true
		}
	default:
		// Results phase: the readiness check (or its deadline) starts
		// the next round.
		touchDeadline(g, actionTimeout)
	}
}

// SignalReady records a player's readiness during the results phase and
// begins the next round once a majority of the living agrees.
func SignalReady(repo GameRepo, gameID uint, playerUUID string, actionTimeout time.Duration) (*game.Game, error) {
	var g *game.Game
	err := WithGameLock(gameID, func() error {
		var err error
		g, err = repo.GetGameByID(gameID)
		if err != nil || g == nil {
			return ErrGameNotFound
		}
		if g.Phase != game.PhaseResults {
			return ErrWrongPhase
		}
		p := g.PlayerByUUID(playerUUID)
		if p == nil {
			return ErrPlayerNotInGame
		}
		p.ReadyForNext = true

		living := g.LivingPlayers()
		ready := 0
		for _, lp := range living {
			if lp.ReadyForNext || !lp.IsConnected {
				ready++
			}
		}
		if ready*2 > len(living) {
			StartNextRound(g, actionTimeout)
		}
		return repo.UpdateGame(g)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// StartNextRound performs the one backwards phase transition: results
// back to action for a fresh round.
func StartNextRound(g *game.Game, actionTimeout time.Duration) {
	g.Round++
	g.Phase = game.PhaseAction
	for i := range g.Players {
		g.Players[i].HasSubmitted = false
		g.Players[i].PendingAction = nil
		g.Players[i].ReadyForNext = false
	}
	g.Message = "Submit your actions."
	touchDeadline(g, actionTimeout)
}
