package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/zbonzo/warlock/internal/game"
)

// EffectSpec describes the status effect an ability applies on hit.
type EffectSpec struct {
	Type      game.EffectType `json:"type"`
	Duration  int             `json:"duration"`
	Magnitude int             `json:"magnitude"`
}

// Ability is one immutable catalog entry, referenced by id from player
// unlock lists and submitted actions.
type Ability struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Category    game.AbilityCategory `json:"category"`
	Target      game.TargetShape     `json:"target"`
	Cooldown    int                  `json:"cooldown"`
	// Power is the base damage (attack) or healing (heal) amount. Zero
	// for pure effect abilities.
	Power int `json:"power"`
	// MaxTargets caps target expansion for multi-target shapes.
	MaxTargets int `json:"max_targets"`
	// Effect, when present, is applied to every resolved target.
	Effect *EffectSpec `json:"effect,omitempty"`
	// Special routes special-category abilities to engine behavior.
	// Known keys: "reveal", "cleanse".
	Special string `json:"special,omitempty"`
	// CanTargetMonster permits the monster sentinel as a target.
	CanTargetMonster bool `json:"can_target_monster"`
}

// Race is a playable race with stat multipliers applied at character
// creation and during damage calculation.
type Race struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	DamageMod float64 `json:"damage_mod"`
	HPMod     float64 `json:"hp_mod"`
	ArmorMod  float64 `json:"armor_mod"`
}

// Class is a playable class: multipliers plus the ability kit it
// unlocks.
type Class struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	DamageMod float64  `json:"damage_mod"`
	HPMod     float64  `json:"hp_mod"`
	ArmorMod  float64  `json:"armor_mod"`
	Abilities []string `json:"abilities"`
}

// ThreatBalance tunes how the monster accumulates and spends threat.
type ThreatBalance struct {
	ArmorWeight  float64 `json:"armor_weight"`
	DamageWeight float64 `json:"damage_weight"`
	HealWeight   float64 `json:"heal_weight"`
	DecayFactor  float64 `json:"decay_factor"`
	// Floor prunes entries that decayed below this score.
	Floor float64 `json:"floor"`
	// RecentWindow excludes the last N attacked players from targeting
	// while anyone outside the window remains eligible.
	RecentWindow int `json:"recent_window"`
	// RespawnReduction is the one-time multiplicative cut applied to
	// every entry when the monster respawns.
	RespawnReduction float64 `json:"respawn_reduction"`
	// TargetInvisible lets the monster ignore invisibility effects.
	TargetInvisible bool `json:"target_invisible"`
	// TargetWarlocks includes hidden-role players in the eligible pool.
	TargetWarlocks bool `json:"target_warlocks"`
	// FallbackLowestHP targets the weakest player when nobody holds
	// threat; otherwise a uniform random pick is used.
	FallbackLowestHP bool `json:"fallback_lowest_hp"`
}

// MonsterBalance tunes the autonomous monster.
type MonsterBalance struct {
	BaseHitPoints int `json:"base_hit_points"`
	BaseDamage    int `json:"base_damage"`
	// AgeDamagePercent is the per-round damage growth while the
	// monster survives.
	AgeDamagePercent int `json:"age_damage_percent"`
	// LevelHPPercent is the per-level hit point growth on respawn.
	LevelHPPercent int `json:"level_hp_percent"`
}

// Balance bundles every tunable constant consumed during resolution.
type Balance struct {
	PlayerBaseHitPoints int `json:"player_base_hit_points"`
	PlayerBaseArmor     int `json:"player_base_armor"`

	// CoordinationBonusPercent is added per extra attacker hitting the
	// same defender in one round, up to CoordinationBonusCap.
	CoordinationBonusPercent int `json:"coordination_bonus_percent"`
	CoordinationBonusCap     int `json:"coordination_bonus_cap"`

	// ComebackBonusPercent favors the disadvantaged side when enabled.
	ComebackEnabled      bool `json:"comeback_enabled"`
	ComebackBonusPercent int  `json:"comeback_bonus_percent"`

	// ArmorSoftCap shapes the armor reduction curve:
	// reduction = armor / (armor + soft cap).
	ArmorSoftCap int `json:"armor_soft_cap"`

	// CorruptionChancePercent is the chance a warlock's attack on a
	// good player converts the target.
	CorruptionChancePercent int `json:"corruption_chance_percent"`

	Threat  ThreatBalance  `json:"threat"`
	Monster MonsterBalance `json:"monster"`
}

// Catalog is the full static data set loaded at startup: abilities,
// races, classes and balance constants. It is read-only after load.
type Catalog struct {
	Abilities map[string]Ability
	Races     map[string]Race
	Classes   map[string]Class
	Balance   Balance
}

// AbilityByID returns the ability or nil when unknown.
func (c *Catalog) AbilityByID(id string) *Ability {
	if a, ok := c.Abilities[id]; ok {
		return &a
	}
	return nil
}

// DamageModifier combines race and class damage multipliers for a
// player. Unknown ids fall back to a neutral 1.0 so a stale player
// record cannot break resolution.
func (c *Catalog) DamageModifier(raceID, classID string) float64 {
	mod := 1.0
	if r, ok := c.Races[raceID]; ok && r.DamageMod > 0 {
		mod *= r.DamageMod
	}
	if cl, ok := c.Classes[classID]; ok && cl.DamageMod > 0 {
		mod *= cl.DamageMod
	}
	return mod
}

// StartingStats computes a fresh player's hit points and armor from the
// base values and race/class multipliers.
func (c *Catalog) StartingStats(raceID, classID string) (hp, armor int) {
	hpMod, armorMod := 1.0, 1.0
	if r, ok := c.Races[raceID]; ok {
		if r.HPMod > 0 {
			hpMod *= r.HPMod
		}
		if r.ArmorMod > 0 {
			armorMod *= r.ArmorMod
		}
	}
	if cl, ok := c.Classes[classID]; ok {
		if cl.HPMod > 0 {
			hpMod *= cl.HPMod
		}
		if cl.ArmorMod > 0 {
			armorMod *= cl.ArmorMod
		}
	}
	hp = int(float64(c.Balance.PlayerBaseHitPoints) * hpMod)
	armor = int(float64(c.Balance.PlayerBaseArmor) * armorMod)
	return hp, armor
}

type rawCatalog struct {
	Abilities []Ability `json:"ability_list"`
	Races     []Race    `json:"race_list"`
	Classes   []Class   `json:"class_list"`
	Balance   Balance   `json:"balance"`
}

// Load reads and validates the catalog file at path. The file is the
// single source of truth for game data; the server refuses to start on
// a missing or inconsistent catalog.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	var rc rawCatalog
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(rc.Abilities) == 0 {
		return nil, fmt.Errorf("catalog file %s: ability_list is empty", path)
	}
	if len(rc.Races) == 0 || len(rc.Classes) == 0 {
		return nil, fmt.Errorf("catalog file %s: race_list and class_list are required", path)
	}

	cat := &Catalog{
		Abilities: make(map[string]Ability, len(rc.Abilities)),
		Races:     make(map[string]Race, len(rc.Races)),
		Classes:   make(map[string]Class, len(rc.Classes)),
		Balance:   rc.Balance,
	}

	for _, a := range rc.Abilities {
		id := strings.TrimSpace(a.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog file %s: ability entry missing 'id'", path)
		}
		if _, dup := cat.Abilities[id]; dup {
			return nil, fmt.Errorf("catalog file %s: duplicate ability id '%s'", path, id)
		}
		switch a.Category {
		case game.CategoryAttack, game.CategoryDefense, game.CategoryHeal, game.CategorySpecial:
		default:
			return nil, fmt.Errorf("catalog file %s: ability '%s' has unknown category '%s'", path, id, a.Category)
		}
		switch a.Target {
		case game.TargetSelf, game.TargetSingle, game.TargetMulti, game.TargetAllAllies, game.TargetAllEnemies:
		default:
			return nil, fmt.Errorf("catalog file %s: ability '%s' has unknown target shape '%s'", path, id, a.Target)
		}
		if a.Cooldown < 0 {
			return nil, fmt.Errorf("catalog file %s: ability '%s' has negative cooldown", path, id)
		}
		if a.Target == game.TargetMulti && a.MaxTargets < 1 {
			return nil, fmt.Errorf("catalog file %s: ability '%s' is multi-target but max_targets is unset", path, id)
		}
		cat.Abilities[id] = a
	}

	for _, r := range rc.Races {
		if r.ID == "" {
			return nil, fmt.Errorf("catalog file %s: race entry missing 'id'", path)
		}
		if _, dup := cat.Races[r.ID]; dup {
			return nil, fmt.Errorf("catalog file %s: duplicate race id '%s'", path, r.ID)
		}
		cat.Races[r.ID] = r
	}

	for _, cl := range rc.Classes {
		if cl.ID == "" {
			return nil, fmt.Errorf("catalog file %s: class entry missing 'id'", path)
		}
		if _, dup := cat.Classes[cl.ID]; dup {
			return nil, fmt.Errorf("catalog file %s: duplicate class id '%s'", path, cl.ID)
		}
		for _, aid := range cl.Abilities {
			if _, ok := cat.Abilities[aid]; !ok {
				return nil, fmt.Errorf("catalog file %s: class '%s' references unknown ability '%s'", path, cl.ID, aid)
			}
		}
		cat.Classes[cl.ID] = cl
	}

	if cat.Balance.PlayerBaseHitPoints <= 0 {
		return nil, fmt.Errorf("catalog file %s: balance.player_base_hit_points must be positive", path)
	}
	if cat.Balance.Monster.BaseHitPoints <= 0 || cat.Balance.Monster.BaseDamage <= 0 {
		return nil, fmt.Errorf("catalog file %s: balance.monster base stats must be positive", path)
	}
	if cat.Balance.Threat.DecayFactor <= 0 || cat.Balance.Threat.DecayFactor >= 1 {
		return nil, fmt.Errorf("catalog file %s: balance.threat.decay_factor must be in (0,1)", path)
	}

	return cat, nil
}
