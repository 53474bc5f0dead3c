package engine

import (
	"fmt"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/game"
)

// ResolveRound is the entry point for resolving one round. It runs the
// queued actions in categorical order, the monster's turn, the
// round-boundary bookkeeping (effect ticking, cooldowns, threat decay)
// and the win check, then packages everything into the round result.
// The caller owns the room exclusively for the duration of the call.
func ResolveRound(g *game.Game, cat *catalog.Catalog, rng RNG) *game.RoundResult {
	g.Phase = game.PhaseResolving
	rc := newRoundContext(g, cat, rng)

	plans := rc.buildPlans()
	rc.countCoordination(plans)
	rc.computeComeback()

	for i := range plans {
		rc.runPlan(&plans[i])
	}

	// The resolver reported contributions; fold them into the threat
	// table now that the pass is complete.
	for uuid, c := range rc.contrib {
		if p := g.PlayerByUUID(uuid); p != nil && p.IsAlive {
			RecordThreat(&g.Monster, p, *c, cat.Balance.Threat)
		}
	}

	rc.monsterTurn()
	if rc.monsterWasDefeated {
		rc.respawnMonster()
	}

	rc.tickAllEffects()
	rc.decrementCooldowns()
	DecayThreat(&g.Monster, cat.Balance.Threat)
	PurgeThreat(&g.Monster, g)

	rc.finalizeRound()
	result := rc.buildResult()
	g.LastResult = result
	return result
}

// computeComeback marks the players' side as disadvantaged when their
// pooled hit point fraction trails the monster's.
func (rc *roundContext) computeComeback() {
	if !rc.cat.Balance.ComebackEnabled {
		return
	}
	hp, maxHP := 0, 0
	for _, p := range rc.g.LivingPlayers() {
		hp += p.HitPoints
		maxHP += p.MaxHitPoints
	}
	m := rc.g.Monster
	if maxHP == 0 || m.MaxHitPoints == 0 {
		return
	}
	rc.comebackActive = float64(hp)/float64(maxHP) < float64(m.HitPoints)/float64(m.MaxHitPoints)
}

// tickAllEffects advances timed effects on every living player and
// applies over-time damage and healing. It runs after the resolver so
// effects applied this round keep their full duration.
func (rc *roundContext) tickAllEffects() {
	for i := range rc.g.Players {
		p := &rc.g.Players[i]
		if !p.IsAlive {
			continue
		}
		for _, tick := range TickEffects(p, rc.g.Round) {
			if tick.Damage > 0 {
				actual := rc.damagePlayer(p, tick.Damage)
				rc.log.Public(game.Event{
					Type:     game.EventEffectTick,
					TargetID: p.PlayerUUID,
					Damage:   actual,
					Message:  fmt.Sprintf("%s suffers %d from %s.", p.PlayerName, actual, tick.Type),
				})
			}
			if tick.Healing > 0 {
				actual := healPlayer(p, tick.Healing)
				rc.log.Public(game.Event{
					Type:     game.EventEffectTick,
					TargetID: p.PlayerUUID,
					Healing:  actual,
					Message:  fmt.Sprintf("%s recovers %d from %s.", p.PlayerName, actual, tick.Type),
				})
			}
			if tick.Expired && p.IsAlive {
				rc.log.Public(game.Event{
					Type:     game.EventEffectExpired,
					TargetID: p.PlayerUUID,
					Message:  fmt.Sprintf("%s is no longer affected by %s.", p.PlayerName, tick.Type),
				})
			}
			if !p.IsAlive {
				break
			}
		}
	}
}

func (rc *roundContext) decrementCooldowns() {
	for i := range rc.g.Players {
		for id, cd := range rc.g.Players[i].Cooldowns {
			if cd <= 1 {
				delete(rc.g.Players[i].Cooldowns, id)
			} else {
				rc.g.Players[i].Cooldowns[id] = cd - 1
			}
		}
	}
}

// finalizeRound consumes the action queue, evaluates win conditions and
// settles the next phase.
func (rc *roundContext) finalizeRound() {
	g := rc.g
	for i := range g.Players {
		g.Players[i].PendingAction = nil
		g.Players[i].HasSubmitted = false
		g.Players[i].ReadyForNext = false
	}

	if winner, done := EvaluateWinner(g); done {
		g.Winner = winner
		g.Phase = game.PhaseEnded
		switch winner {
		case game.FactionGood:
			g.Message = "The corruption is purged. The good faction wins."
		case game.FactionWarlocks:
			g.Message = "The warlocks seize the majority. The coven wins."
		}
		rc.log.Public(game.Event{Type: game.EventGameOver, Message: g.Message})
		return
	}

	if len(g.LivingPlayers()) == 0 {
		g.Phase = game.PhaseEnded
		g.Message = "The monster stands over the fallen. Nobody wins."
		rc.log.Public(game.Event{Type: game.EventGameOver, Message: g.Message})
		return
	}

	g.Phase = game.PhaseResults
	g.Message = fmt.Sprintf("Round %d resolved.", g.Round)
}

func (rc *roundContext) buildResult() *game.RoundResult {
	g := rc.g
	statuses := make([]game.PlayerStatus, 0, len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		statuses = append(statuses, game.PlayerStatus{
			ID:               p.PlayerUUID,
			Name:             p.PlayerName,
			HP:               p.HitPoints,
			MaxHP:            p.MaxHitPoints,
			IsAlive:          p.IsAlive,
			SubmittedAbility: p.LastAbilityID,
			Cooldowns:        p.Cooldowns,
			Effects:          p.Effects,
		})
	}
	return &game.RoundResult{
		Round: g.Round,
		Phase: g.Phase,
		Monster: game.MonsterStatus{
			HP:               g.Monster.HitPoints,
			MaxHP:            g.Monster.MaxHitPoints,
			Level:            g.Monster.Level,
			NextAttackDamage: MonsterAttackDamage(&g.Monster, rc.cat.Balance.Monster),
		},
		Players:       statuses,
		PublicEvents:  rc.log.PublicEvents(),
		PrivateEvents: rc.log.PrivateEvents(),
		LevelUp:       rc.levelUp,
		Winner:        g.Winner,
	}
}
