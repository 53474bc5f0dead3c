package engine

import (
	"time"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/game"
)

// stubRNG replays a fixed sequence of draws so targeting and corruption
// rolls are deterministic in tests. An exhausted sequence yields zero.
type stubRNG struct {
	vals []int
	i    int
}

func (r *stubRNG) Intn(n int) int {
	if r.i >= len(r.vals) {
		return 0
	}
	v := r.vals[r.i] % n
	r.i++
	return v
}

func testBalance() catalog.Balance {
	return catalog.Balance{
		PlayerBaseHitPoints:      100,
		PlayerBaseArmor:          0,
		CoordinationBonusPercent: 0,
		CoordinationBonusCap:     0,
		ComebackEnabled:          false,
		ArmorSoftCap:             100,
		CorruptionChancePercent:  0,
		Threat: catalog.ThreatBalance{
			ArmorWeight:      0.5,
			DamageWeight:     1.0,
			HealWeight:       0.8,
			DecayFactor:      0.5,
			Floor:            1.0,
			RecentWindow:     1,
			RespawnReduction: 0.5,
			TargetWarlocks:   true,
			FallbackLowestHP: true,
		},
		Monster: catalog.MonsterBalance{
			BaseHitPoints:    100,
			BaseDamage:       10,
			AgeDamagePercent: 0,
			LevelHPPercent:   50,
		},
	}
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Abilities: map[string]catalog.Ability{
			"strike": {ID: "strike", Name: "Strike", Category: game.CategoryAttack, Target: game.TargetSingle, Power: 20, CanTargetMonster: true},
			"stab":   {ID: "stab", Name: "Stab", Category: game.CategoryAttack, Target: game.TargetSingle, Cooldown: 2, Power: 15, CanTargetMonster: true},
			"jab":    {ID: "jab", Name: "Jab", Category: game.CategoryAttack, Target: game.TargetSingle, Power: 5, CanTargetMonster: true},
			"ward":   {ID: "ward", Name: "Ward", Category: game.CategoryDefense, Target: game.TargetSelf, Cooldown: 1, Effect: &catalog.EffectSpec{Type: game.EffectShield, Duration: 1, Magnitude: 10}},
			"mend":   {ID: "mend", Name: "Mend", Category: game.CategoryHeal, Target: game.TargetSingle, Power: 12},
			"scry":   {ID: "scry", Name: "Scry", Category: game.CategorySpecial, Target: game.TargetSingle, Cooldown: 5, Special: "reveal"},
		},
		Races:   map[string]catalog.Race{},
		Classes: map[string]catalog.Class{},
		Balance: testBalance(),
	}
}

func testPlayer(uuid, name string) game.Player {
	return game.Player{
		PlayerUUID:   uuid,
		PlayerName:   name,
		MaxHitPoints: 100,
		HitPoints:    100,
		IsAlive:      true,
		IsConnected:  true,
		Abilities:    []string{"strike", "stab", "jab", "ward", "mend", "scry"},
		Cooldowns:    map[string]int{},
	}
}

// testGame builds a four player room in round one with a fresh monster.
// The last player is the hidden warlock so the win check stays open.
func testGame(cat *catalog.Catalog) *game.Game {
	g := &game.Game{
		Phase: game.PhaseAction,
		Round: 1,
		Players: []game.Player{
			testPlayer("p1", "Alice"),
			testPlayer("p2", "Bryn"),
			testPlayer("p3", "Cato"),
			testPlayer("p4", "Dara"),
		},
		Monster: NewMonster(cat.Balance.Monster),
	}
	g.Players[3].IsWarlock = true
	return g
}

func queueTestAction(g *game.Game, actorUUID, abilityID, targetID string, at time.Time) {
	QueueAction(g, actorUUID, game.Action{
		ActorID:     actorUUID,
		AbilityID:   abilityID,
		TargetID:    targetID,
		SubmittedAt: at,
	})
}
