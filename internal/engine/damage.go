package engine

import "math"

// Offense is the attacker-side snapshot fed to the damage pipeline.
type Offense struct {
	// Modifier is the combined race/class damage multiplier.
	Modifier float64
	// StrengthenPercent is the active strengthen buff, if any.
	StrengthenPercent int
	// Comeback marks the attacker as belonging to the currently
	// disadvantaged side.
	Comeback bool
}

// Defense is the defender-side snapshot fed to the damage pipeline.
type Defense struct {
	Armor int
	// VulnerablePercent raises incoming damage by this percentage.
	VulnerablePercent int
	// Shield is the remaining absorption pool, consumed before hit
	// points.
	Shield int
}

// DamageContext carries the situational constants for one computation.
type DamageContext struct {
	// Attackers is how many distinct attackers target the same
	// defender this round; the second and later ones grant the
	// coordination bonus.
	Attackers                int
	CoordinationBonusPercent int
	CoordinationBonusCap     int
	ComebackEnabled          bool
	ComebackBonusPercent     int
	ArmorSoftCap             int
}

// Breakdown is the result of one damage computation. Final is what the
// defender's hit points lose; Absorbed is what the shield ate;
// ShieldRemaining is the shield pool left afterwards.
type Breakdown struct {
	Final           int
	Absorbed        int
	ShieldRemaining int
}

// ComputeDamage runs the full damage pipeline over read-only snapshots:
// attacker modifier, coordination bonus, comeback bonus, armor
// reduction, vulnerability, then shield absorption. The result is
// floored at zero. It has no side effects; callers apply the breakdown
// themselves.
func ComputeDamage(base int, atk Offense, def Defense, ctx DamageContext) Breakdown {
	if base <= 0 {
		return Breakdown{ShieldRemaining: def.Shield}
	}

	dmg := float64(base)
	if atk.Modifier > 0 {
		dmg *= atk.Modifier
	}
	if atk.StrengthenPercent > 0 {
		dmg *= 1 + float64(atk.StrengthenPercent)/100
	}

	if ctx.Attackers > 1 && ctx.CoordinationBonusPercent > 0 {
		bonus := (ctx.Attackers - 1) * ctx.CoordinationBonusPercent
		if ctx.CoordinationBonusCap > 0 && bonus > ctx.CoordinationBonusCap {
			bonus = ctx.CoordinationBonusCap
		}
		dmg *= 1 + float64(bonus)/100
	}

	if ctx.ComebackEnabled && atk.Comeback {
		dmg *= 1 + float64(ctx.ComebackBonusPercent)/100
	}

	if def.Armor > 0 {
		softCap := ctx.ArmorSoftCap
		if softCap <= 0 {
			softCap = 100
		}
		reduction := float64(def.Armor) / float64(def.Armor+softCap)
		dmg *= 1 - reduction
	}

	if def.VulnerablePercent > 0 {
		dmg *= 1 + float64(def.VulnerablePercent)/100
	}

	total := int(math.Floor(dmg))
	if total < 0 {
		total = 0
	}

	absorbed := 0
	shield := def.Shield
	if shield > 0 && total > 0 {
		absorbed = total
		if absorbed > shield {
			absorbed = shield
		}
		shield -= absorbed
		total -= absorbed
	}

	return Breakdown{Final: total, Absorbed: absorbed, ShieldRemaining: shield}
}

// ComputeHeal runs the healing side of the pipeline. Healing only uses
// the attacker-modifier stage; armor and shields never apply. The
// caller clamps the result so hit points never exceed the maximum.
func ComputeHeal(base int, atk Offense) int {
	if base <= 0 {
		return 0
	}
	heal := float64(base)
	if atk.Modifier > 0 {
		heal *= atk.Modifier
	}
	out := int(math.Floor(heal))
	if out < 0 {
		out = 0
	}
	return out
}
