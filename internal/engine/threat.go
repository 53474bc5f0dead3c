package engine

import (
	"sort"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/game"
)

// ThreatContribution is what one player did during a single resolution
// pass, as reported by the resolver. The threat tracker is never
// invoked mid-resolution; it consumes these totals afterwards.
type ThreatContribution struct {
	DamageToMonster int
	TotalDamage     int
	Healing         int
}

// RecordThreat folds a player's round contribution into the monster's
// threat table using the configured weights. Armored players that hurt
// the monster generate disproportionate threat, which is what makes
// tanking work.
func RecordThreat(m *game.Monster, p *game.Player, c ThreatContribution, tb catalog.ThreatBalance) {
	score := float64(p.Armor)*float64(c.DamageToMonster)*tb.ArmorWeight +
		float64(c.TotalDamage)*tb.DamageWeight +
		float64(c.Healing)*tb.HealWeight
	if score <= 0 {
		return
	}
	if m.Threat == nil {
		m.Threat = make(map[string]float64)
	}
	m.Threat[p.PlayerUUID] += score
}

// DecayThreat applies the per-round multiplicative decay and prunes
// entries below the floor. Scores never go negative because decay is
// multiplicative on non-negative values.
func DecayThreat(m *game.Monster, tb catalog.ThreatBalance) {
	for id, score := range m.Threat {
		score *= tb.DecayFactor
		if score < tb.Floor {
			delete(m.Threat, id)
			continue
		}
		m.Threat[id] = score
	}
}

// PurgeThreat removes entries whose player is no longer alive.
func PurgeThreat(m *game.Monster, g *game.Game) {
	for id := range m.Threat {
		p := g.PlayerByUUID(id)
		if p == nil || !p.IsAlive {
			delete(m.Threat, id)
		}
	}
}

// ReduceThreatOnRespawn applies the one-time cut after the monster dies
// so post-respawn targeting is not dominated by pre-death aggro.
func ReduceThreatOnRespawn(m *game.Monster, tb catalog.ThreatBalance) {
	for id := range m.Threat {
		m.Threat[id] *= tb.RespawnReduction
		if m.Threat[id] < tb.Floor {
			delete(m.Threat, id)
		}
	}
}

// noteRecentTarget records an attacked player, keeping the window at
// the configured size.
func noteRecentTarget(m *game.Monster, id string, window int) {
	m.RecentTargets = append(m.RecentTargets, id)
	if window > 0 && len(m.RecentTargets) > window {
		m.RecentTargets = m.RecentTargets[len(m.RecentTargets)-window:]
	}
}

func recentlyTargeted(m *game.Monster, id string) bool {
	for _, t := range m.RecentTargets {
		if t == id {
			return true
		}
	}
	return false
}

// PickMonsterTarget selects the monster's victim for this round:
// eligible players are alive, visible (unless the monster is configured
// to see through invisibility) and not warlocks (unless configured
// otherwise). Players attacked within the recent window are skipped as
// long as someone outside the window remains. Highest accumulated
// threat wins, ties broken by the injected RNG; with no threat on the
// board the pick falls back to lowest hit points or a uniform draw per
// configuration. Returns nil when nobody is targetable.
func PickMonsterTarget(m *game.Monster, g *game.Game, tb catalog.ThreatBalance, rng RNG) *game.Player {
	var pool []*game.Player
	for _, p := range g.LivingPlayers() {
		if !tb.TargetInvisible && HasEffect(p, game.EffectInvisible) {
			continue
		}
		if !tb.TargetWarlocks && p.IsWarlock {
			continue
		}
		pool = append(pool, p)
	}
	if len(pool) == 0 {
		return nil
	}

	// Prefer players outside the recent-target window when any exist.
	var fresh []*game.Player
	for _, p := range pool {
		if !recentlyTargeted(m, p.PlayerUUID) {
			fresh = append(fresh, p)
		}
	}
	if len(fresh) > 0 {
		pool = fresh
	}

	var best []*game.Player
	bestScore := 0.0
	for _, p := range pool {
		score := m.Threat[p.PlayerUUID]
		if score <= 0 {
			continue
		}
		switch {
		case score > bestScore:
			bestScore = score
			best = []*game.Player{p}
		case score == bestScore:
			best = append(best, p)
		}
	}

	if len(best) == 0 {
		if tb.FallbackLowestHP {
			sort.SliceStable(pool, func(i, j int) bool { return pool[i].HitPoints < pool[j].HitPoints })
			lowest := []*game.Player{pool[0]}
			for _, p := range pool[1:] {
				if p.HitPoints == pool[0].HitPoints {
					lowest = append(lowest, p)
				}
			}
			best = lowest
		} else {
			best = pool
		}
	}

	target := best[0]
	if len(best) > 1 {
		target = best[rng.Intn(len(best))]
	}
	noteRecentTarget(m, target.PlayerUUID, tb.RecentWindow)
	return target
}
