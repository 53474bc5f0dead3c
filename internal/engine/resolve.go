package engine

import (
	"fmt"
	"sort"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/game"
)

// bloodRuneBonusPercent is the one-shot damage bonus granted when a
// player burns a blood rune with their action (carried in the action
// metadata).
const bloodRuneBonusPercent = 25

const bloodRuneMetadata = "blood_rune"

// roundContext carries everything one resolution pass needs: the room,
// static data, the injected RNG, the event log and the per-player
// threat contributions reported to the tracker afterwards.
type roundContext struct {
	g   *game.Game
	cat *catalog.Catalog
	rng RNG
	log *EventLog

	contrib map[string]*ThreatContribution
	// attackersOn counts distinct attackers per defender this round
	// and powers the coordination bonus. The monster is keyed by its
	// sentinel id.
	attackersOn map[string]int
	// comebackActive marks the players' side as disadvantaged for this
	// round.
	comebackActive bool

	monsterWasDefeated bool
	levelUp            *game.LevelUp
}

func newRoundContext(g *game.Game, cat *catalog.Catalog, rng RNG) *roundContext {
	return &roundContext{
		g:           g,
		cat:         cat,
		rng:         rng,
		log:         NewEventLog(),
		contrib:     make(map[string]*ThreatContribution),
		attackersOn: make(map[string]int),
	}
}

func (rc *roundContext) contribution(uuid string) *ThreatContribution {
	c, ok := rc.contrib[uuid]
	if !ok {
		c = &ThreatContribution{}
		rc.contrib[uuid] = c
	}
	return c
}

// plan is one queued action bound to its actor and catalog entry.
type plan struct {
	actor   *game.Player
	ability *catalog.Ability
	action  game.Action
}

// buildPlans converts the pending queue into an ordered execution list.
// Ordering is categorical, not submission order: defense first so
// shields exist before damage, then attacks, heals and specials.
// Within a category earlier submissions go first; exact timestamp ties
// fall back to a random draw.
func (rc *roundContext) buildPlans() []plan {
	plans := make([]plan, 0, len(rc.g.Players))
	for _, p := range rc.g.LivingPlayers() {
		if p.PendingAction == nil {
			continue
		}
		action := *p.PendingAction
		ability := rc.cat.AbilityByID(action.AbilityID)
		if ability == nil {
			// A queued action referencing a missing catalog entry is
			// an integrity violation: drop it, keep the round going.
			rc.log.Public(game.Event{
				Type:    game.EventSystem,
				ActorID: p.PlayerUUID,
				Message: fmt.Sprintf("%s's action could not be resolved and was skipped.", p.PlayerName),
			})
			continue
		}
		plans = append(plans, plan{actor: p, ability: ability, action: action})
	}

	sort.SliceStable(plans, func(i, j int) bool {
		ri, rj := plans[i].ability.Category.ResolutionRank(), plans[j].ability.Category.ResolutionRank()
		if ri != rj {
			return ri < rj
		}
		if !plans[i].action.SubmittedAt.Equal(plans[j].action.SubmittedAt) {
			return plans[i].action.SubmittedAt.Before(plans[j].action.SubmittedAt)
		}
		return rc.rng.Intn(2) == 0
	})
	return plans
}

// countCoordination pre-computes how many distinct attackers aim at
// each defender this round so the coordination bonus is stable no
// matter where an attack lands in the resolution order.
func (rc *roundContext) countCoordination(plans []plan) {
	for i := range plans {
		if plans[i].ability.Category != game.CategoryAttack {
			continue
		}
		targets, monster := rc.expandTargets(&plans[i])
		if monster {
			rc.attackersOn[game.MonsterTargetID]++
		}
		for _, t := range targets {
			rc.attackersOn[t.PlayerUUID]++
		}
	}
}

// expandTargets resolves a plan's target shape into concrete living
// players and/or the monster. Players that died earlier in the same
// round never appear.
func (rc *roundContext) expandTargets(p *plan) (players []*game.Player, monster bool) {
	switch p.ability.Target {
	case game.TargetSelf:
		if p.actor.IsAlive {
			players = []*game.Player{p.actor}
		}
	case game.TargetSingle:
		if p.action.TargetID == game.MonsterTargetID {
			monster = rc.g.Monster.HitPoints > 0
			return players, monster
		}
		if t := rc.g.PlayerByUUID(p.action.TargetID); t != nil && t.IsAlive {
			players = []*game.Player{t}
		}
	case game.TargetMulti:
		for _, t := range rc.g.LivingPlayers() {
			if p.ability.Category == game.CategoryAttack && t.PlayerUUID == p.actor.PlayerUUID {
				continue
			}
			players = append(players, t)
			if p.ability.MaxTargets > 0 && len(players) >= p.ability.MaxTargets {
				break
			}
		}
	case game.TargetAllAllies:
		players = rc.g.LivingPlayers()
	case game.TargetAllEnemies:
		monster = rc.g.Monster.HitPoints > 0
	}
	return players, monster
}

// runPlan executes one action with failure isolation: a panic inside
// the effect logic drops that action with a system event instead of
// aborting the rest of the round.
func (rc *roundContext) runPlan(p *plan) {
	defer func() {
		if r := recover(); r != nil {
			rc.log.Public(game.Event{
				Type:    game.EventSystem,
				ActorID: p.actor.PlayerUUID,
				Message: fmt.Sprintf("%s's %s fizzled.", p.actor.PlayerName, p.ability.Name),
			})
		}
	}()

	if !p.actor.IsAlive {
		return
	}
	if HasEffect(p.actor, game.EffectStun) {
		rc.log.Public(game.Event{
			Type:    game.EventInfo,
			ActorID: p.actor.PlayerUUID,
			Message: fmt.Sprintf("%s is stunned and cannot act.", p.actor.PlayerName),
		})
		return
	}

	if targets, monster := rc.expandTargets(p); len(targets) == 0 && !monster {
		// Every intended target died (or the monster fell) earlier in
		// the round. The action fizzles and the ability is not spent.
		rc.log.Public(game.Event{
			Type:    game.EventInfo,
			ActorID: p.actor.PlayerUUID,
			Ability: p.ability.ID,
			Message: fmt.Sprintf("%s's %s finds no target.", p.actor.PlayerName, p.ability.Name),
		})
		return
	}

	switch p.ability.Category {
	case game.CategoryDefense:
		rc.execDefense(p)
	case game.CategoryAttack:
		rc.execAttack(p)
	case game.CategoryHeal:
		rc.execHeal(p)
	case game.CategorySpecial:
		rc.execSpecial(p)
	}

	// Cooldown is committed only now that the action actually
	// resolved: remaining = base + 1, so the ability is unusable next
	// round and usable again the round after.
	if p.actor.Cooldowns == nil {
		p.actor.Cooldowns = make(map[string]int)
	}
	p.actor.Cooldowns[p.ability.ID] = p.ability.Cooldown + 1
}

func (rc *roundContext) execDefense(p *plan) {
	targets, _ := rc.expandTargets(p)
	for _, t := range targets {
		if p.ability.Effect == nil {
			continue
		}
		rc.applyAbilityEffect(p, t)
	}
}

func (rc *roundContext) applyAbilityEffect(p *plan, t *game.Player) {
	spec := p.ability.Effect
	ApplyEffect(t, spec.Type, spec.Duration, spec.Magnitude, rc.g.Round)
	evType := game.EventEffectApplied
	msg := fmt.Sprintf("%s's %s affects %s.", p.actor.PlayerName, p.ability.Name, t.PlayerName)
	if spec.Type == game.EffectShield {
		evType = game.EventShield
		msg = fmt.Sprintf("%s's %s shields %s for %d.", p.actor.PlayerName, p.ability.Name, t.PlayerName, spec.Magnitude)
	}
	rc.log.Public(game.Event{
		Type:     evType,
		ActorID:  p.actor.PlayerUUID,
		TargetID: t.PlayerUUID,
		Ability:  p.ability.ID,
		Message:  msg,
	})
}

// offenseFor builds the attacker-side snapshot for a player's action.
func (rc *roundContext) offenseFor(p *plan) Offense {
	off := Offense{
		Modifier:          rc.cat.DamageModifier(p.actor.RaceID, p.actor.ClassID),
		StrengthenPercent: EffectMagnitude(p.actor, game.EffectStrengthen),
		Comeback:          rc.comebackActive,
	}
	if p.action.Metadata == bloodRuneMetadata {
		off.StrengthenPercent += bloodRuneBonusPercent
	}
	return off
}

func (rc *roundContext) damageContext(defenderID string) DamageContext {
	bal := rc.cat.Balance
	return DamageContext{
		Attackers:                rc.attackersOn[defenderID],
		CoordinationBonusPercent: bal.CoordinationBonusPercent,
		CoordinationBonusCap:     bal.CoordinationBonusCap,
		ComebackEnabled:          bal.ComebackEnabled,
		ComebackBonusPercent:     bal.ComebackBonusPercent,
		ArmorSoftCap:             bal.ArmorSoftCap,
	}
}

func (rc *roundContext) execAttack(p *plan) {
	targets, monster := rc.expandTargets(p)
	off := rc.offenseFor(p)

	if monster {
		rc.attackMonster(p, off)
	}
	for _, t := range targets {
		if !t.IsAlive {
			continue
		}
		rc.attackPlayer(p, t, off)
	}
}

func (rc *roundContext) attackMonster(p *plan, off Offense) {
	bd := ComputeDamage(p.ability.Power, off, Defense{}, rc.damageContext(game.MonsterTargetID))
	actual := damageMonster(&rc.g.Monster, bd.Final)
	c := rc.contribution(p.actor.PlayerUUID)
	c.DamageToMonster += actual
	c.TotalDamage += actual
	rc.log.Public(game.Event{
		Type:     game.EventPlayerAttacksMonster,
		ActorID:  p.actor.PlayerUUID,
		TargetID: game.MonsterTargetID,
		Ability:  p.ability.ID,
		Damage:   actual,
		Message:  fmt.Sprintf("%s hits the monster with %s for %d.", p.actor.PlayerName, p.ability.Name, actual),
	})
	if rc.g.Monster.HitPoints <= 0 {
		rc.monsterWasDefeated = true
	}
}

func (rc *roundContext) attackPlayer(p *plan, t *game.Player, off Offense) {
	def := Defense{
		Armor:             t.Armor,
		VulnerablePercent: EffectMagnitude(t, game.EffectVulnerable),
		Shield:            EffectMagnitude(t, game.EffectShield),
	}
	bd := ComputeDamage(p.ability.Power, off, def, rc.damageContext(t.PlayerUUID))
	if bd.Absorbed > 0 {
		ConsumeShield(t, bd.ShieldRemaining)
	}
	actual := rc.damagePlayer(t, bd.Final)
	rc.contribution(p.actor.PlayerUUID).TotalDamage += actual

	msg := fmt.Sprintf("%s strikes %s with %s for %d.", p.actor.PlayerName, t.PlayerName, p.ability.Name, actual)
	if bd.Absorbed > 0 {
		msg = fmt.Sprintf("%s (%d absorbed by a shield)", msg[:len(msg)-1], bd.Absorbed)
	}
	rc.log.Public(game.Event{
		Type:     game.EventPlayerAttacksPlayer,
		ActorID:  p.actor.PlayerUUID,
		TargetID: t.PlayerUUID,
		Ability:  p.ability.ID,
		Damage:   actual,
		Message:  msg,
	})

	if t.IsAlive && p.ability.Effect != nil {
		rc.applyAbilityEffect(p, t)
	}

	if actual > 0 && t.IsAlive {
		if TryCorrupt(p.actor, t, rc.cat.Balance.CorruptionChancePercent, rc.rng, rc.log) {
			rc.log.Attacker(p.actor.PlayerUUID, game.Event{
				Type:     game.EventCorruption,
				ActorID:  p.actor.PlayerUUID,
				TargetID: t.PlayerUUID,
				Message:  fmt.Sprintf("Your strike corrupted %s.", t.PlayerName),
			})
		}
	}
}

func (rc *roundContext) execHeal(p *plan) {
	targets, _ := rc.expandTargets(p)
	off := rc.offenseFor(p)
	heal := ComputeHeal(p.ability.Power, off)
	for _, t := range targets {
		if !t.IsAlive {
			continue
		}
		actual := healPlayer(t, heal)
		rc.contribution(p.actor.PlayerUUID).Healing += actual
		rc.log.Public(game.Event{
			Type:     game.EventHeal,
			ActorID:  p.actor.PlayerUUID,
			TargetID: t.PlayerUUID,
			Ability:  p.ability.ID,
			Healing:  actual,
			Message:  fmt.Sprintf("%s heals %s for %d.", p.actor.PlayerName, t.PlayerName, actual),
		})
		if p.ability.Effect != nil {
			rc.applyAbilityEffect(p, t)
		}
	}
}

func (rc *roundContext) execSpecial(p *plan) {
	targets, _ := rc.expandTargets(p)

	switch p.ability.Special {
	case "reveal":
		for _, t := range targets {
			faction := game.FactionGood
			if t.IsWarlock {
				faction = game.FactionWarlocks
			}
			rc.log.Attacker(p.actor.PlayerUUID, game.Event{
				Type:     game.EventRoleRevealed,
				ActorID:  p.actor.PlayerUUID,
				TargetID: t.PlayerUUID,
				Message:  fmt.Sprintf("%s serves the %s.", t.PlayerName, faction),
			})
		}
		rc.log.Public(game.Event{
			Type:    game.EventInfo,
			ActorID: p.actor.PlayerUUID,
			Ability: p.ability.ID,
			Message: fmt.Sprintf("%s peers into hidden allegiances.", p.actor.PlayerName),
		})
	case "cleanse":
		for _, t := range targets {
			removed := CleanseHarmful(t)
			if len(removed) == 0 {
				continue
			}
			rc.log.Public(game.Event{
				Type:     game.EventEffectExpired,
				ActorID:  p.actor.PlayerUUID,
				TargetID: t.PlayerUUID,
				Ability:  p.ability.ID,
				Message:  fmt.Sprintf("%s cleanses %s of %d affliction(s).", p.actor.PlayerName, t.PlayerName, len(removed)),
			})
		}
	default:
		for _, t := range targets {
			if p.ability.Effect != nil {
				rc.applyAbilityEffect(p, t)
			}
		}
	}
}

// damagePlayer applies a final damage amount, returning the hit points
// actually lost. Death is immediate: the player leaves every later
// target pool in the same round.
func (rc *roundContext) damagePlayer(t *game.Player, amount int) int {
	if amount <= 0 || !t.IsAlive {
		return 0
	}
	actual := amount
	if actual > t.HitPoints {
		actual = t.HitPoints
	}
	t.HitPoints -= actual
	if t.HitPoints <= 0 {
		rc.markDead(t)
	}
	return actual
}

func (rc *roundContext) markDead(t *game.Player) {
	t.HitPoints = 0
	t.IsAlive = false
	ClearEffects(t)
	rc.log.Public(game.Event{
		Type:     game.EventDeath,
		TargetID: t.PlayerUUID,
		Message:  fmt.Sprintf("%s has fallen.", t.PlayerName),
	})
}

// healPlayer applies healing clamped to max hit points and returns the
// amount actually restored.
func healPlayer(t *game.Player, amount int) int {
	if amount <= 0 || !t.IsAlive {
		return 0
	}
	missing := t.MaxHitPoints - t.HitPoints
	if amount > missing {
		amount = missing
	}
	t.HitPoints += amount
	return amount
}

// damageMonster applies a final damage amount to the monster, floored
// at zero, and returns the hit points actually lost.
func damageMonster(m *game.Monster, amount int) int {
	if amount <= 0 || m.HitPoints <= 0 {
		return 0
	}
	if amount > m.HitPoints {
		amount = m.HitPoints
	}
	m.HitPoints -= amount
	return amount
}
