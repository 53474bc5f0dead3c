package game

import "testing"

func TestResolutionRankOrdering(t *testing.T) {
	order := []AbilityCategory{CategoryDefense, CategoryAttack, CategoryHeal, CategorySpecial}
	for i := 1; i < len(order); i++ {
		if order[i-1].ResolutionRank() >= order[i].ResolutionRank() {
			t.Fatalf("%s must resolve before %s", order[i-1], order[i])
		}
	}
}

func TestAllLivingSubmitted(t *testing.T) {
	g := &Game{Players: []Player{
		{PlayerUUID: "p1", IsAlive: true, IsConnected: true, HasSubmitted: true},
		{PlayerUUID: "p2", IsAlive: true, IsConnected: true},
		{PlayerUUID: "p3", IsAlive: false, IsConnected: true},
	}}
	if g.AllLivingSubmitted() {
		t.Fatalf("p2 has not submitted")
	}
	g.Players[1].HasSubmitted = true
	if !g.AllLivingSubmitted() {
		t.Fatalf("every living, connected player submitted")
	}
	// the dead never hold up a round
	g.Players[2].HasSubmitted = false
	if !g.AllLivingSubmitted() {
		t.Fatalf("dead players must be ignored")
	}
	// disconnected players default at the deadline instead
	g.Players[1].HasSubmitted = false
	g.Players[1].IsConnected = false
	if !g.AllLivingSubmitted() {
		t.Fatalf("disconnected players must not block")
	}
}

func TestAllLivingSubmittedEmptyRoom(t *testing.T) {
	g := &Game{}
	if g.AllLivingSubmitted() {
		t.Fatalf("a room with nobody alive never resolves")
	}
}

func TestPlayerHelpers(t *testing.T) {
	p := Player{Abilities: []string{"strike"}, Cooldowns: map[string]int{"strike": 2}}
	if !p.HasAbility("strike") || p.HasAbility("mend") {
		t.Fatalf("ability lookup broken")
	}
	if p.CooldownRemaining("strike") != 2 || p.CooldownRemaining("mend") != 0 {
		t.Fatalf("cooldown lookup broken")
	}
	var bare Player
	if bare.CooldownRemaining("strike") != 0 {
		t.Fatalf("nil cooldown map must read as ready")
	}
}
