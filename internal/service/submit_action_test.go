package service

import (
	"testing"
	"time"

	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/game"
)

func TestSubmitActionQueuesAndWaits(t *testing.T) {
	repo := &mockGameRepo{g: inProgressGame(1)}
	cat := serviceTestCatalog()

	g, resolved, err := SubmitAction(repo, cat, 1, "p1", "strike", game.MonsterTargetID, "", fixedRNG{}, time.Minute)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if resolved {
		t.Fatalf("one of four submissions must not resolve the round")
	}
	p1 := g.PlayerByUUID("p1")
	if !p1.HasSubmitted || p1.PendingAction == nil {
		t.Fatalf("action should be queued, got %+v", p1)
	}
	if g.Phase != game.PhaseAction {
		t.Fatalf("phase should stay action, got %s", g.Phase)
	}
	if repo.updates != 1 {
		t.Fatalf("the room must be persisted once, got %d", repo.updates)
	}
}

func TestSubmitActionRejectsDuplicate(t *testing.T) {
	repo := &mockGameRepo{g: inProgressGame(1)}
	cat := serviceTestCatalog()

	if _, _, err := SubmitAction(repo, cat, 1, "p1", "strike", game.MonsterTargetID, "", fixedRNG{}, time.Minute); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	_, _, err := SubmitAction(repo, cat, 1, "p1", "mend", "p2", "", fixedRNG{}, time.Minute)
	rej, ok := err.(*engine.Rejection)
	if !ok || rej.Code != game.RejectAlreadySubmitted {
		t.Fatalf("expected already_submitted rejection, got %v", err)
	}
}

func TestSubmitActionLastSubmitterResolvesRound(t *testing.T) {
	repo := &mockGameRepo{g: inProgressGame(1)}
	cat := serviceTestCatalog()

	for _, uuid := range []string{"p1", "p2", "p3"} {
		if _, resolved, err := SubmitAction(repo, cat, 1, uuid, "strike", game.MonsterTargetID, "", fixedRNG{}, time.Minute); err != nil || resolved {
			t.Fatalf("early submit for %s: resolved=%v err=%v", uuid, resolved, err)
		}
	}
	g, resolved, err := SubmitAction(repo, cat, 1, "p4", "strike", game.MonsterTargetID, "", fixedRNG{}, time.Minute)
	if err != nil {
		t.Fatalf("final submit failed: %v", err)
	}
	if !resolved {
		t.Fatalf("the last submission must trigger resolution")
	}
	if g.Phase != game.PhaseResults {
		t.Fatalf("expected results phase, got %s", g.Phase)
	}
	if g.Monster.HitPoints != 20 {
		t.Fatalf("four 20 strikes should leave the monster at 20, got %d", g.Monster.HitPoints)
	}
	if g.LastResult == nil || g.LastResult.Round != 1 {
		t.Fatalf("resolution must store the round result, got %+v", g.LastResult)
	}
}

func TestSubmitActionDisconnectedPlayersDoNotBlock(t *testing.T) {
	g := inProgressGame(1)
	g.Players[3].IsConnected = false
	repo := &mockGameRepo{g: g}
	cat := serviceTestCatalog()

	var resolved bool
	var err error
	for _, uuid := range []string{"p1", "p2", "p3"} {
		_, resolved, err = SubmitAction(repo, cat, 1, uuid, "strike", game.MonsterTargetID, "", fixedRNG{}, time.Minute)
		if err != nil {
			t.Fatalf("submit for %s: %v", uuid, err)
		}
	}
	if !resolved {
		t.Fatalf("a disconnected player must not hold up the round")
	}
}

func TestSubmitActionUnknownGame(t *testing.T) {
	repo := &mockGameRepo{}
	if _, _, err := SubmitAction(repo, serviceTestCatalog(), 7, "p1", "strike", game.MonsterTargetID, "", fixedRNG{}, time.Minute); err != ErrGameNotFound {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestSubmitActionStatsCountedOnceOnGameEnd(t *testing.T) {
	g := inProgressGame(1)
	// the lone warlock is one strike from death; killing them ends it
	g.PlayerByUUID("p4").HitPoints = 5
	repo := &mockGameRepo{g: g}
	cat := serviceTestCatalog()

	for _, s := range []struct{ uuid, target string }{
		{"p1", "p4"}, {"p2", game.MonsterTargetID}, {"p3", game.MonsterTargetID},
	} {
		if _, _, err := SubmitAction(repo, cat, 1, s.uuid, "strike", s.target, "", fixedRNG{}, time.Minute); err != nil {
			t.Fatalf("submit for %s: %v", s.uuid, err)
		}
	}
	_, resolved, err := SubmitAction(repo, cat, 1, "p4", "strike", game.MonsterTargetID, "", fixedRNG{}, time.Minute)
	if err != nil || !resolved {
		t.Fatalf("final submit: resolved=%v err=%v", resolved, err)
	}
	if repo.g.Phase != game.PhaseEnded || repo.g.Winner != game.FactionGood {
		t.Fatalf("expected good victory, got %s / %s", repo.g.Phase, repo.g.Winner)
	}
	if !repo.g.ActionDeadline.IsZero() {
		t.Fatalf("an ended game must not keep a deadline")
	}
	if repo.statsCounted != 1 || !repo.g.StatsCounted {
		t.Fatalf("stats must be counted exactly once, got %d", repo.statsCounted)
	}
}

func TestSignalReadyMajorityStartsNextRound(t *testing.T) {
	g := inProgressGame(1)
	g.Phase = game.PhaseResults
	repo := &mockGameRepo{g: g}

	if _, err := SignalReady(repo, 1, "p1", time.Minute); err != nil {
		t.Fatalf("ready p1: %v", err)
	}
	if repo.g.Phase != game.PhaseResults {
		t.Fatalf("one of four is no majority, got %s", repo.g.Phase)
	}
	if _, err := SignalReady(repo, 1, "p2", time.Minute); err != nil {
		t.Fatalf("ready p2: %v", err)
	}
	if repo.g.Phase != game.PhaseResults {
		t.Fatalf("two of four is not a strict majority, got %s", repo.g.Phase)
	}
	if _, err := SignalReady(repo, 1, "p3", time.Minute); err != nil {
		t.Fatalf("ready p3: %v", err)
	}
	if repo.g.Phase != game.PhaseAction || repo.g.Round != 2 {
		t.Fatalf("three of four starts round 2, got %s round %d", repo.g.Phase, repo.g.Round)
	}
	for i := range repo.g.Players {
		if repo.g.Players[i].ReadyForNext || repo.g.Players[i].HasSubmitted {
			t.Fatalf("round flags must be reset, got %+v", repo.g.Players[i])
		}
	}
}

func TestSignalReadyWrongPhase(t *testing.T) {
	repo := &mockGameRepo{g: inProgressGame(1)}
	if _, err := SignalReady(repo, 1, "p1", time.Minute); err != ErrWrongPhase {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
}
