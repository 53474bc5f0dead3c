package service

import (
	"testing"
	"time"

	"github.com/zbonzo/warlock/internal/game"
)

func TestHandleTimedOutGameSubstitutesDefaults(t *testing.T) {
	g := inProgressGame(1)
	g.ActionDeadline = time.Now().Add(-time.Second)
	cat := serviceTestCatalog()
	// three players submitted, one went silent
	for _, uuid := range []string{"p1", "p2", "p3"} {
		p := g.PlayerByUUID(uuid)
		p.PendingAction = &game.Action{ActorID: uuid, AbilityID: "strike", TargetID: game.MonsterTargetID, SubmittedAt: time.Now()}
		p.HasSubmitted = true
	}
	repo := &mockGameRepo{g: g}

	if err := HandleTimedOutGame(repo, cat, 1, fixedRNG{}, time.Minute); err != nil {
		t.Fatalf("timeout handling failed: %v", err)
	}
	if repo.g.Phase != game.PhaseResults {
		t.Fatalf("the round must resolve with defaults, got %s", repo.g.Phase)
	}
	if repo.g.Monster.HitPoints != 40 {
		t.Fatalf("three strikes should land, the silent player does nothing; monster at %d", repo.g.Monster.HitPoints)
	}
	if repo.g.LastResult == nil {
		t.Fatalf("resolution must produce a result")
	}
	if repo.updates != 1 {
		t.Fatalf("the room must be persisted, got %d updates", repo.updates)
	}
}

func TestHandleTimedOutGameBeforeDeadlineIsNoOp(t *testing.T) {
	g := inProgressGame(1)
	g.ActionDeadline = time.Now().Add(time.Minute)
	repo := &mockGameRepo{g: g}

	if err := HandleTimedOutGame(repo, serviceTestCatalog(), 1, fixedRNG{}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.g.Phase != game.PhaseAction || repo.updates != 0 {
		t.Fatalf("an unexpired room must be untouched, got %s with %d updates", repo.g.Phase, repo.updates)
	}
}

func TestHandleTimedOutGameAdvancesResults(t *testing.T) {
	g := inProgressGame(1)
	g.Phase = game.PhaseResults
	g.ActionDeadline = time.Now().Add(-time.Second)
	repo := &mockGameRepo{g: g}

	if err := HandleTimedOutGame(repo, serviceTestCatalog(), 1, fixedRNG{}, time.Minute); err != nil {
		t.Fatalf("timeout handling failed: %v", err)
	}
	if repo.g.Phase != game.PhaseAction || repo.g.Round != 2 {
		t.Fatalf("a stalled results phase starts the next round, got %s round %d", repo.g.Phase, repo.g.Round)
	}
}

func TestHandleTimedOutGameDisbandsStaleLobby(t *testing.T) {
	g := inProgressGame(1)
	g.Phase = game.PhaseLobby
	g.Round = 0
	g.ActionDeadline = time.Now().Add(-time.Second)
	repo := &mockGameRepo{g: g}

	if err := HandleTimedOutGame(repo, serviceTestCatalog(), 1, fixedRNG{}, time.Minute); err != nil {
		t.Fatalf("timeout handling failed: %v", err)
	}
	if repo.g.Phase != game.PhaseEnded {
		t.Fatalf("a stale lobby must be disbanded, got %s", repo.g.Phase)
	}
	if !repo.g.StatsCounted {
		t.Fatalf("disbanded rooms must never count toward stats")
	}
	if !repo.g.ActionDeadline.IsZero() {
		t.Fatalf("a disbanded room must not keep a deadline")
	}
}
