package game

// EffectType is the closed set of timed status effects. Lookups are
// switch-based so a new effect type has to be handled everywhere or the
// compiler's exhaustiveness tooling will flag it.
type EffectType string

const (
	// EffectShield absorbs damage before hit points are reduced.
	// Magnitude is the remaining absorption pool.
	EffectShield EffectType = "shield"
	// EffectStrengthen raises outgoing damage by magnitude percent.
	EffectStrengthen EffectType = "strengthen"
	// EffectVulnerable raises incoming damage by magnitude percent.
	EffectVulnerable EffectType = "vulnerable"
	// EffectPoison deals magnitude damage at each round boundary.
	EffectPoison EffectType = "poison"
	// EffectBurning is like poison but every application stacks and
	// expires on its own timer.
	EffectBurning EffectType = "burning"
	// EffectRegen heals magnitude at each round boundary.
	EffectRegen EffectType = "regen"
	// EffectStun makes the player skip their action.
	EffectStun EffectType = "stun"
	// EffectInvisible hides the player from the monster's targeting.
	EffectInvisible EffectType = "invisible"
)

// StackPolicy describes what happens when an effect is applied to a
// player that already carries an effect of the same type.
type StackPolicy int

const (
	// StackReplace keeps a single instance, taking the stronger
	// magnitude and the fresh duration.
	StackReplace StackPolicy = iota
	// StackRefresh resets the duration but never touches magnitude.
	StackRefresh
	// StackIndependent tracks every application separately, each
	// expiring on its own timer.
	StackIndependent
)

// Stacking returns the per-type stacking policy.
func (t EffectType) Stacking() StackPolicy {
	switch t {
	case EffectPoison, EffectRegen:
		return StackRefresh
	case EffectBurning:
		return StackIndependent
	default:
		return StackReplace
	}
}

// Harmful reports whether the effect counts as a debuff (and is
// therefore removable by cleansing abilities).
func (t EffectType) Harmful() bool {
	switch t {
	case EffectPoison, EffectBurning, EffectVulnerable, EffectStun:
		return true
	}
	return false
}

// StatusEffect is one timed modifier instance attached to a player.
type StatusEffect struct {
	Type      EffectType `json:"type"`
	Remaining int        `json:"remaining"`
	Magnitude int        `json:"magnitude"`
	// AppliedRound records when the effect landed. The round-boundary
	// tick skips effects applied in the closing round, so a
	// duration-N effect survives N full subsequent rounds.
	AppliedRound int `json:"applied_round"`
}
