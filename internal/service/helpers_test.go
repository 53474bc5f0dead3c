package service

import (
	"time"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/game"
)

// mockGameRepo serves a single in-memory game, the way the coordinator
// sees the storage layer.
type mockGameRepo struct {
	g            *game.Game
	updates      int
	statsCounted int
}

func (m *mockGameRepo) GetGameByID(id uint) (*game.Game, error) {
	if m.g == nil || m.g.ID != id {
		return nil, ErrGameNotFound
	}
	return m.g, nil
}

func (m *mockGameRepo) UpdateGame(g *game.Game) error {
	m.g = g
	m.updates++
	return nil
}

func (m *mockGameRepo) UpdateStatsOnGameEnd(g *game.Game) error {
	m.statsCounted++
	return nil
}

type fixedRNG struct{}

func (fixedRNG) Intn(n int) int { return 0 }

func serviceTestCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Abilities: map[string]catalog.Ability{
			"strike": {ID: "strike", Name: "Strike", Category: game.CategoryAttack, Target: game.TargetSingle, Power: 20, CanTargetMonster: true},
			"mend":   {ID: "mend", Name: "Mend", Category: game.CategoryHeal, Target: game.TargetSingle, Power: 12},
		},
		Races:   map[string]catalog.Race{"human": {ID: "human", Name: "Human", DamageMod: 1, HPMod: 1, ArmorMod: 1}},
		Classes: map[string]catalog.Class{"warrior": {ID: "warrior", Name: "Warrior", DamageMod: 1, HPMod: 1, ArmorMod: 1, Abilities: []string{"strike", "mend"}}},
		Balance: catalog.Balance{
			PlayerBaseHitPoints: 100,
			ArmorSoftCap:        100,
			Threat: catalog.ThreatBalance{
				ArmorWeight:      0.5,
				DamageWeight:     1,
				HealWeight:       0.8,
				DecayFactor:      0.5,
				Floor:            1,
				RecentWindow:     1,
				RespawnReduction: 0.5,
				TargetWarlocks:   true,
				FallbackLowestHP: true,
			},
			Monster: catalog.MonsterBalance{BaseHitPoints: 100, BaseDamage: 10, LevelHPPercent: 50},
		},
	}
}

func inProgressGame(id uint) *game.Game {
	mk := func(uuid, name string) game.Player {
		return game.Player{
			PlayerUUID:   uuid,
			PlayerName:   name,
			MaxHitPoints: 100,
			HitPoints:    100,
			IsAlive:      true,
			IsConnected:  true,
			HasSelected:  true,
			Abilities:    []string{"strike", "mend"},
			Cooldowns:    map[string]int{},
		}
	}
	g := &game.Game{
		JoinCode: "ABC234",
		HostUUID: "p1",
		Phase:    game.PhaseAction,
		Round:    1,
		Players:  []game.Player{mk("p1", "Alice"), mk("p2", "Bryn"), mk("p3", "Cato"), mk("p4", "Dara")},
		Monster: game.Monster{
			HitPoints:    100,
			MaxHitPoints: 100,
			BaseDamage:   10,
			Level:        1,
			Threat:       map[string]float64{},
		},
		ActionDeadline: time.Now().Add(time.Minute),
	}
	g.ID = id
	g.Players[3].IsWarlock = true
	return g
}
