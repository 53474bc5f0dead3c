package engine

import "github.com/zbonzo/warlock/internal/game"

// ApplyEffect attaches an effect to a player, honoring the effect
// type's stacking policy. It returns true when an existing instance was
// replaced or refreshed rather than a new one added.
func ApplyEffect(p *game.Player, t game.EffectType, duration, magnitude, round int) bool {
	switch t.Stacking() {
	case game.StackReplace:
		for i := range p.Effects {
			if p.Effects[i].Type != t {
				continue
			}
			// Keep the stronger magnitude, always take the fresh
			// duration. Replacing in place avoids a second instance
			// of the same buff ever co-existing.
			if magnitude > p.Effects[i].Magnitude {
				p.Effects[i].Magnitude = magnitude
			}
			p.Effects[i].Remaining = duration
			p.Effects[i].AppliedRound = round
			return true
		}
	case game.StackRefresh:
		for i := range p.Effects {
			if p.Effects[i].Type != t {
				continue
			}
			p.Effects[i].Remaining = duration
			p.Effects[i].AppliedRound = round
			return true
		}
	case game.StackIndependent:
		// fall through: every application is its own instance
	}
	p.Effects = append(p.Effects, game.StatusEffect{
		Type:         t,
		Remaining:    duration,
		Magnitude:    magnitude,
		AppliedRound: round,
	})
	return false
}

// HasEffect reports whether the player carries at least one instance of
// the effect type.
func HasEffect(p *game.Player, t game.EffectType) bool {
	for i := range p.Effects {
		if p.Effects[i].Type == t {
			return true
		}
	}
	return false
}

// EffectMagnitude sums the magnitude of every instance of the effect
// type. For replace/refresh effects that is the single instance; for
// independent stacks it is the stack total.
func EffectMagnitude(p *game.Player, t game.EffectType) int {
	total := 0
	for i := range p.Effects {
		if p.Effects[i].Type == t {
			total += p.Effects[i].Magnitude
		}
	}
	return total
}

// RemoveEffect strips every instance of the effect type.
func RemoveEffect(p *game.Player, t game.EffectType) {
	out := p.Effects[:0]
	for _, e := range p.Effects {
		if e.Type != t {
			out = append(out, e)
		}
	}
	p.Effects = out
}

// CleanseHarmful removes every debuff instance and returns the types
// that were stripped.
func CleanseHarmful(p *game.Player) []game.EffectType {
	var removed []game.EffectType
	out := p.Effects[:0]
	for _, e := range p.Effects {
		if e.Type.Harmful() {
			removed = append(removed, e.Type)
			continue
		}
		out = append(out, e)
	}
	p.Effects = out
	return removed
}

// ConsumeShield lowers the player's shield pool after absorption and
// drops the shield effect once empty.
func ConsumeShield(p *game.Player, remaining int) {
	for i := range p.Effects {
		if p.Effects[i].Type != game.EffectShield {
			continue
		}
		if remaining <= 0 {
			p.Effects = append(p.Effects[:i], p.Effects[i+1:]...)
		} else {
			p.Effects[i].Magnitude = remaining
		}
		return
	}
}

// EffectTick is one outcome of the round-boundary tick: damage dealt or
// healing granted by an over-time effect, and whether the instance
// expired.
type EffectTick struct {
	Type    game.EffectType
	Damage  int
	Healing int
	Expired bool
}

// TickEffects advances every effect on the player by one round
// boundary: over-time effects produce their amounts, durations
// decrement, and zero-duration instances are removed. Effects applied
// in the closing round are skipped entirely, so a freshly applied
// duration-N effect persists for N full subsequent rounds.
func TickEffects(p *game.Player, round int) []EffectTick {
	var ticks []EffectTick
	out := p.Effects[:0]
	for _, e := range p.Effects {
		if e.AppliedRound >= round {
			out = append(out, e)
			continue
		}
		tick := EffectTick{Type: e.Type}
		switch e.Type {
		case game.EffectPoison, game.EffectBurning:
			tick.Damage = e.Magnitude
		case game.EffectRegen:
			tick.Healing = e.Magnitude
		}
		e.Remaining--
		if e.Remaining <= 0 {
			tick.Expired = true
		} else {
			out = append(out, e)
		}
		ticks = append(ticks, tick)
	}
	p.Effects = out
	return ticks
}

// ClearEffects drops every effect, used when the holder dies.
func ClearEffects(p *game.Player) {
	p.Effects = nil
}
