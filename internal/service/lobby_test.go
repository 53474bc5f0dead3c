package service

import (
	"testing"
	"time"

	"github.com/zbonzo/warlock/internal/game"
)

func TestNewJoinCodeShape(t *testing.T) {
	code := NewJoinCode()
	if len(code) != 6 {
		t.Fatalf("expected 6 characters, got %q", code)
	}
	for _, r := range code {
		switch r {
		case '0', '1', 'I', 'L', 'O':
			t.Fatalf("confusing glyph %c in join code %q", r, code)
		}
	}
}

func TestCreateGameSeatsHost(t *testing.T) {
	g := CreateGame("Friday Night", "Alice")
	if g.Phase != game.PhaseLobby {
		t.Fatalf("new rooms open in the lobby, got %s", g.Phase)
	}
	if len(g.Players) != 1 || g.Players[0].PlayerUUID != g.HostUUID {
		t.Fatalf("the creator must hold the host seat, got %+v", g.Players)
	}
	if g.ActionDeadline.IsZero() {
		t.Fatalf("unstarted rooms need a disband deadline")
	}
}

func TestJoinGameRules(t *testing.T) {
	g := CreateGame("Friday Night", "Alice")

	if _, err := JoinGame(g, "Bryn"); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if _, err := JoinGame(g, "bryn"); err != ErrNameTaken {
		t.Fatalf("names are unique case-insensitively, got %v", err)
	}

	for i := len(g.Players); i < MaxPlayers; i++ {
		if _, err := JoinGame(g, string(rune('a'+i))); err != nil {
			t.Fatalf("fill join %d failed: %v", i, err)
		}
	}
	if _, err := JoinGame(g, "Overflow"); err != ErrGameFull {
		t.Fatalf("expected ErrGameFull, got %v", err)
	}

	g.Phase = game.PhaseAction
	if _, err := JoinGame(g, "Latecomer"); err != ErrGameAlreadyStarted {
		t.Fatalf("expected ErrGameAlreadyStarted, got %v", err)
	}
}

func TestOpenCharacterSelect(t *testing.T) {
	g := CreateGame("Friday Night", "Alice")
	if err := OpenCharacterSelect(g, "nobody"); err != ErrNotHost {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
	if err := OpenCharacterSelect(g, g.HostUUID); err != ErrNotEnoughPlayers {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
	for _, n := range []string{"Bryn", "Cato", "Dara"} {
		if _, err := JoinGame(g, n); err != nil {
			t.Fatalf("join %s: %v", n, err)
		}
	}
	if err := OpenCharacterSelect(g, g.HostUUID); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if g.Phase != game.PhaseCharacterSelect {
		t.Fatalf("expected character select, got %s", g.Phase)
	}
}

func TestSelectCharacterDerivesStats(t *testing.T) {
	cat := serviceTestCatalog()
	g := CreateGame("Friday Night", "Alice")
	g.Phase = game.PhaseCharacterSelect
	uuid := g.Players[0].PlayerUUID

	if err := SelectCharacter(g, cat, uuid, "elf", "warrior"); err != ErrUnknownRace {
		t.Fatalf("expected ErrUnknownRace, got %v", err)
	}
	if err := SelectCharacter(g, cat, uuid, "human", "bard"); err != ErrUnknownClass {
		t.Fatalf("expected ErrUnknownClass, got %v", err)
	}
	if err := SelectCharacter(g, cat, uuid, "human", "warrior"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	p := g.PlayerByUUID(uuid)
	if !p.HasSelected || p.HitPoints != 100 || p.MaxHitPoints != 100 {
		t.Fatalf("stats not derived, got %+v", p)
	}
	if !p.HasAbility("strike") || !p.HasAbility("mend") {
		t.Fatalf("class kit not copied, got %v", p.Abilities)
	}
}

func TestLeaveFreesLobbySeatAndHandsOffHost(t *testing.T) {
	g := CreateGame("Friday Night", "Alice")
	host := g.HostUUID
	p2, err := JoinGame(g, "Bryn")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	nextHost := p2.PlayerUUID

	if err := Leave(g, host); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if len(g.Players) != 1 || g.HostUUID != nextHost {
		t.Fatalf("seat must be freed and host handed off, got %+v host %s", g.Players, g.HostUUID)
	}
}

func TestLeaveMidGameMarksDisconnected(t *testing.T) {
	g := inProgressGame(1)
	p2 := g.PlayerByUUID("p2")
	p2.PendingAction = &game.Action{ActorID: "p2", AbilityID: "strike", SubmittedAt: time.Now()}
	p2.HasSubmitted = true

	if err := Leave(g, "p2"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if len(g.Players) != 4 {
		t.Fatalf("mid-game seats are never freed, got %d", len(g.Players))
	}
	if p2.IsConnected || p2.PendingAction != nil || p2.HasSubmitted {
		t.Fatalf("leaver must be disconnected with the queue cleared, got %+v", p2)
	}
}

func TestLeaveEndedGame(t *testing.T) {
	g := inProgressGame(1)
	g.Phase = game.PhaseEnded
	if err := Leave(g, "p2"); err != ErrGameEnded {
		t.Fatalf("expected ErrGameEnded, got %v", err)
	}
}
