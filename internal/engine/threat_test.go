package engine

import (
	"testing"

	"github.com/zbonzo/warlock/internal/game"
)

func TestRecordThreatWeights(t *testing.T) {
	tb := testBalance().Threat
	m := game.Monster{}
	p := testPlayer("p1", "Alice")
	p.Armor = 10

	RecordThreat(&m, &p, ThreatContribution{DamageToMonster: 20, TotalDamage: 20, Healing: 5}, tb)

	// 10*20*0.5 + 20*1.0 + 5*0.8 = 124
	if got := m.Threat["p1"]; got != 124 {
		t.Fatalf("expected threat 124, got %v", got)
	}
}

func TestRecordThreatZeroContributionIgnored(t *testing.T) {
	tb := testBalance().Threat
	m := game.Monster{}
	p := testPlayer("p1", "Alice")

	RecordThreat(&m, &p, ThreatContribution{}, tb)
	if len(m.Threat) != 0 {
		t.Fatalf("zero contribution must not create an entry, got %v", m.Threat)
	}
}

func TestDecayThreatStrictlyDecreasesAndPrunes(t *testing.T) {
	tb := testBalance().Threat
	m := game.Monster{Threat: map[string]float64{"p1": 100, "p2": 1.5}}

	DecayThreat(&m, tb)

	if got := m.Threat["p1"]; got != 50 {
		t.Fatalf("expected 50 after decay, got %v", got)
	}
	if _, ok := m.Threat["p2"]; ok {
		t.Fatalf("entry below the floor must be pruned")
	}
	for id, s := range m.Threat {
		if s < 0 {
			t.Fatalf("threat for %s went negative: %v", id, s)
		}
	}
}

func TestPurgeThreatDropsDead(t *testing.T) {
	cat := testCatalog()
	g := testGame(cat)
	g.Players[1].IsAlive = false
	g.Monster.Threat = map[string]float64{"p1": 10, "p2": 10, "ghost": 10}

	PurgeThreat(&g.Monster, g)

	if _, ok := g.Monster.Threat["p2"]; ok {
		t.Fatalf("dead player must leave the table")
	}
	if _, ok := g.Monster.Threat["ghost"]; ok {
		t.Fatalf("unknown player must leave the table")
	}
	if _, ok := g.Monster.Threat["p1"]; !ok {
		t.Fatalf("living player must keep its entry")
	}
}

func TestReduceThreatOnRespawn(t *testing.T) {
	tb := testBalance().Threat
	m := game.Monster{Threat: map[string]float64{"p1": 100, "p2": 1.2}}

	ReduceThreatOnRespawn(&m, tb)

	if got := m.Threat["p1"]; got != 50 {
		t.Fatalf("expected 50 after respawn cut, got %v", got)
	}
	if _, ok := m.Threat["p2"]; ok {
		t.Fatalf("entry cut below the floor must be pruned")
	}
}

func TestPickMonsterTargetHighestThreat(t *testing.T) {
	cat := testCatalog()
	g := testGame(cat)
	g.Monster.Threat = map[string]float64{"p1": 10, "p2": 40, "p3": 5}

	target := PickMonsterTarget(&g.Monster, g, cat.Balance.Threat, &stubRNG{})
	if target == nil || target.PlayerUUID != "p2" {
		t.Fatalf("expected p2, got %+v", target)
	}
}

func TestPickMonsterTargetRecentWindowExclusion(t *testing.T) {
	cat := testCatalog()
	g := testGame(cat)
	g.Monster.Threat = map[string]float64{"p1": 40, "p2": 10}
	g.Monster.RecentTargets = []string{"p1"}

	target := PickMonsterTarget(&g.Monster, g, cat.Balance.Threat, &stubRNG{})
	if target == nil || target.PlayerUUID != "p2" {
		t.Fatalf("recently hit top threat must be skipped, got %+v", target)
	}
	if len(g.Monster.RecentTargets) != 1 || g.Monster.RecentTargets[0] != "p2" {
		t.Fatalf("window of 1 should now hold p2, got %v", g.Monster.RecentTargets)
	}
}

func TestPickMonsterTargetRecentWindowRelaxesWhenEmpty(t *testing.T) {
	cat := testCatalog()
	g := testGame(cat)
	g.Players = g.Players[:1]
	g.Monster.Threat = map[string]float64{"p1": 40}
	g.Monster.RecentTargets = []string{"p1"}

	target := PickMonsterTarget(&g.Monster, g, cat.Balance.Threat, &stubRNG{})
	if target == nil || target.PlayerUUID != "p1" {
		t.Fatalf("with nobody outside the window the exclusion relaxes, got %+v", target)
	}
}

func TestPickMonsterTargetSkipsInvisible(t *testing.T) {
	cat := testCatalog()
	g := testGame(cat)
	g.Monster.Threat = map[string]float64{"p1": 40, "p2": 10}
	ApplyEffect(&g.Players[0], game.EffectInvisible, 1, 0, 1)

	target := PickMonsterTarget(&g.Monster, g, cat.Balance.Threat, &stubRNG{})
	if target == nil || target.PlayerUUID != "p2" {
		t.Fatalf("invisible top threat must be skipped, got %+v", target)
	}
}

func TestPickMonsterTargetTieBreakUsesRNG(t *testing.T) {
	cat := testCatalog()
	g := testGame(cat)
	g.Monster.Threat = map[string]float64{"p1": 40, "p2": 40}

	target := PickMonsterTarget(&g.Monster, g, cat.Balance.Threat, &stubRNG{vals: []int{1}})
	if target == nil {
		t.Fatalf("expected a target")
	}
	if target.PlayerUUID != "p1" && target.PlayerUUID != "p2" {
		t.Fatalf("tie break must pick among the tied, got %s", target.PlayerUUID)
	}
}

func TestPickMonsterTargetFallbackLowestHP(t *testing.T) {
	cat := testCatalog()
	g := testGame(cat)
	g.Players[2].HitPoints = 30

	target := PickMonsterTarget(&g.Monster, g, cat.Balance.Threat, &stubRNG{})
	if target == nil || target.PlayerUUID != "p3" {
		t.Fatalf("empty threat table falls back to lowest hit points, got %+v", target)
	}
}

func TestPickMonsterTargetNobodyEligible(t *testing.T) {
	cat := testCatalog()
	g := testGame(cat)
	for i := range g.Players {
		g.Players[i].IsAlive = false
	}

	if target := PickMonsterTarget(&g.Monster, g, cat.Balance.Threat, &stubRNG{}); target != nil {
		t.Fatalf("expected nil with nobody alive, got %+v", target)
	}
}
