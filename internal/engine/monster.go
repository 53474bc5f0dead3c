package engine

import (
	"fmt"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/game"
)

// NewMonster builds the level-1 monster from balance constants.
func NewMonster(mb catalog.MonsterBalance) game.Monster {
	return game.Monster{
		HitPoints:    mb.BaseHitPoints,
		MaxHitPoints: mb.BaseHitPoints,
		BaseDamage:   mb.BaseDamage,
		Level:        1,
		Threat:       make(map[string]float64),
	}
}

// MonsterAttackDamage is the damage the monster deals at its current
// age: the base grows by the configured percentage for every round the
// monster has survived.
func MonsterAttackDamage(m *game.Monster, mb catalog.MonsterBalance) int {
	return m.BaseDamage + m.BaseDamage*mb.AgeDamagePercent*m.Age/100
}

// monsterTurn runs the autonomous attack: the threat tracker picks a
// victim, the damage calculator applies armor and shields, and the hit
// lands. A defeated monster skips its turn; respawn happens during
// round finalization.
func (rc *roundContext) monsterTurn() {
	m := &rc.g.Monster
	if m.HitPoints <= 0 {
		return
	}

	target := PickMonsterTarget(m, rc.g, rc.cat.Balance.Threat, rc.rng)
	if target == nil {
		rc.log.Public(game.Event{
			Type:    game.EventInfo,
			Message: "The monster finds no one to strike.",
		})
		m.Age++
		return
	}

	def := Defense{
		Armor:             target.Armor,
		VulnerablePercent: EffectMagnitude(target, game.EffectVulnerable),
		Shield:            EffectMagnitude(target, game.EffectShield),
	}
	base := MonsterAttackDamage(m, rc.cat.Balance.Monster)
	// The monster ignores coordination and comeback; those mechanics
	// only shape player-side damage.
	bd := ComputeDamage(base, Offense{Modifier: 1}, def, DamageContext{ArmorSoftCap: rc.cat.Balance.ArmorSoftCap})
	if bd.Absorbed > 0 {
		ConsumeShield(target, bd.ShieldRemaining)
	}
	actual := rc.damagePlayer(target, bd.Final)

	msg := fmt.Sprintf("The monster savages %s for %d.", target.PlayerName, actual)
	if bd.Absorbed > 0 {
		msg = fmt.Sprintf("The monster savages %s for %d (%d absorbed by a shield).", target.PlayerName, actual, bd.Absorbed)
	}
	rc.log.Public(game.Event{
		Type:     game.EventMonsterAttacks,
		TargetID: target.PlayerUUID,
		Damage:   actual,
		Message:  msg,
	})
	m.Age++
}

// respawnMonster brings a defeated monster back at the next level:
// scaled hit points, reset age, and a one-time threat cut so the new
// monster does not immediately resume old grudges.
func (rc *roundContext) respawnMonster() {
	m := &rc.g.Monster
	mb := rc.cat.Balance.Monster
	oldLevel := m.Level

	rc.log.Public(game.Event{
		Type:    game.EventMonsterDefeated,
		Message: "The monster collapses!",
	})

	m.Level++
	m.MaxHitPoints = mb.BaseHitPoints + mb.BaseHitPoints*mb.LevelHPPercent*(m.Level-1)/100
	m.HitPoints = m.MaxHitPoints
	m.Age = 0
	m.RecentTargets = nil
	ReduceThreatOnRespawn(m, rc.cat.Balance.Threat)

	rc.levelUp = &game.LevelUp{OldLevel: oldLevel, NewLevel: m.Level}
	rc.log.Public(game.Event{
		Type:    game.EventLevelUp,
		Message: fmt.Sprintf("A stronger monster rises at level %d.", m.Level),
	})
}
