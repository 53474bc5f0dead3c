package engine

import (
	"fmt"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/game"
)

// Rejection explains why a submission was refused. It implements error
// so the service layer can surface it directly; Code is the
// machine-readable reason handed back to the transport layer.
type Rejection struct {
	Code game.RejectCode
	// Remaining carries the rounds left for cooldown rejections.
	Remaining int
	Detail    string
}

func (r *Rejection) Error() string {
	if r.Detail != "" {
		return fmt.Sprintf("%s: %s", r.Code, r.Detail)
	}
	return string(r.Code)
}

func reject(code game.RejectCode, detail string) *Rejection {
	return &Rejection{Code: code, Detail: detail}
}

// ValidateAction checks one submission against the room state. Checks
// run in a fixed order: actor existence and liveness, phase, duplicate
// submission, ability unlock, cooldown, then target legality. A nil
// return means the action may be queued. Validation never mutates the
// game.
func ValidateAction(g *game.Game, cat *catalog.Catalog, actorUUID, abilityID, targetID string) *Rejection {
	actor := g.PlayerByUUID(actorUUID)
	if actor == nil {
		return reject(game.RejectUnknownParticipant, "no such player in this game")
	}
	if !actor.IsAlive {
		return reject(game.RejectParticipantDead, "dead players cannot act")
	}
	if g.Phase != game.PhaseAction {
		return reject(game.RejectWrongPhase, fmt.Sprintf("phase is %s", g.Phase))
	}
	if actor.HasSubmitted {
		return reject(game.RejectAlreadySubmitted, "an action is already queued for this round")
	}

	ability := cat.AbilityByID(abilityID)
	if ability == nil || !actor.HasAbility(abilityID) {
		return reject(game.RejectAbilityLocked, fmt.Sprintf("ability %q is not available", abilityID))
	}
	if cd := actor.CooldownRemaining(abilityID); cd > 0 {
		return &Rejection{
			Code:      game.RejectAbilityOnCooldown,
			Remaining: cd,
			Detail:    fmt.Sprintf("usable again in %d round(s)", cd),
		}
	}

	return validateTarget(g, actor, ability, targetID)
}

func validateTarget(g *game.Game, actor *game.Player, ability *catalog.Ability, targetID string) *Rejection {
	switch ability.Target {
	case game.TargetSelf:
		if targetID != "" && targetID != actor.PlayerUUID {
			return reject(game.RejectInvalidTarget, "ability only targets self")
		}
	case game.TargetSingle:
		if targetID == game.MonsterTargetID {
			if !ability.CanTargetMonster {
				return reject(game.RejectInvalidTarget, "ability cannot target the monster")
			}
			if g.Monster.HitPoints <= 0 {
				return reject(game.RejectInvalidTarget, "the monster is already down")
			}
			return nil
		}
		target := g.PlayerByUUID(targetID)
		if target == nil {
			return reject(game.RejectInvalidTarget, "no such target")
		}
		if !target.IsAlive {
			return reject(game.RejectInvalidTarget, "target is dead")
		}
	case game.TargetMulti, game.TargetAllAllies, game.TargetAllEnemies:
		// Target sets are expanded at resolution time; any explicit
		// target id is ignored for these shapes.
	}
	return nil
}

// QueueAction stores a validated action, exactly one per actor per
// round. The ability's cooldown is reserved, not consumed: an action
// discarded before resolution costs nothing.
func QueueAction(g *game.Game, actorUUID string, action game.Action) {
	actor := g.PlayerByUUID(actorUUID)
	if actor == nil {
		return
	}
	actor.PendingAction = &action
	actor.HasSubmitted = true
	actor.LastAbilityID = action.AbilityID
}
