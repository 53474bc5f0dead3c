package engine

import (
	"github.com/zbonzo/warlock/internal/game"
)

// WarlockCount returns how many players start secretly corrupted. The
// count scales with the table size rather than being fixed: one warlock
// per five players, with at least one in any playable game.
func WarlockCount(players int) int {
	if players <= 0 {
		return 0
	}
	n := players / 5
	if n < 1 {
		n = 1
	}
	return n
}

// AssignWarlocks secretly marks the scaling number of players as
// warlocks and queues a private role notification for each of them. The
// public log never mentions who was chosen.
func AssignWarlocks(g *game.Game, rng RNG, log *EventLog) int {
	candidates := g.LivingPlayers()
	count := WarlockCount(len(candidates))
	for i := 0; i < count && len(candidates) > 0; i++ {
		idx := rng.Intn(len(candidates))
		chosen := candidates[idx]
		candidates = append(candidates[:idx], candidates[idx+1:]...)
		chosen.IsWarlock = true
		log.Private(chosen.PlayerUUID, game.Event{
			Type:     game.EventRoleAssigned,
			TargetID: chosen.PlayerUUID,
			Message:  "You are a Warlock. Corrupt the others before you are found.",
		})
	}
	return count
}

// TryCorrupt rolls the corruption spread when a warlock damages a good
// player. On success the target silently joins the warlock faction and
// only the convert is told.
func TryCorrupt(attacker, target *game.Player, chancePercent int, rng RNG, log *EventLog) bool {
	if !attacker.IsWarlock || target.IsWarlock || !target.IsAlive {
		return false
	}
	if chancePercent <= 0 || rng.Intn(100) >= chancePercent {
		return false
	}
	target.IsWarlock = true
	target.ConvertedMidGame = true
	log.Private(target.PlayerUUID, game.Event{
		Type:     game.EventCorruption,
		ActorID:  attacker.PlayerUUID,
		TargetID: target.PlayerUUID,
		Message:  "Dark magic seeps into your wounds. You are now a Warlock.",
	})
	return true
}

// EvaluateWinner runs the end-of-round win check. The good faction wins
// when no living warlock remains; the warlocks win when they reach a
// majority of the living population or no good player remains. The
// second return is false while the game should continue.
func EvaluateWinner(g *game.Game) (game.Faction, bool) {
	living, warlocks := 0, 0
	for i := range g.Players {
		if !g.Players[i].IsAlive {
			continue
		}
		living++
		if g.Players[i].IsWarlock {
			warlocks++
		}
	}
	if living == 0 {
		return "", false
	}
	if warlocks == 0 {
		return game.FactionGood, true
	}
	if warlocks*2 >= living {
		return game.FactionWarlocks, true
	}
	return "", false
}
