package service

import (
	"time"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/game"
)

// StartGame begins the battle: the warlocks are secretly assigned, the
// monster spawns, and the room enters its first action phase. The
// returned result is a round-zero payload whose private events carry
// the role notifications; it must be routed per audience like any other
// round result.
func StartGame(g *game.Game, cat *catalog.Catalog, callerUUID string, rng engine.RNG, actionTimeout time.Duration) (*game.RoundResult, error) {
	if callerUUID != g.HostUUID {
		return nil, ErrNotHost
	}
	if g.Phase != game.PhaseCharacterSelect {
		return nil, ErrWrongPhase
	}
	if len(g.Players) < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}
	for i := range g.Players {
		if !g.Players[i].HasSelected {
			return nil, ErrCharactersPending
		}
	}

	log := engine.NewEventLog()
	engine.AssignWarlocks(g, rng, log)
	log.Public(game.Event{
		Type:    game.EventInfo,
		Message: "A monster bursts from the dark. Some among you are not what they seem.",
	})

	g.Monster = engine.NewMonster(cat.Balance.Monster)
	g.Round = 1
	g.Phase = game.PhaseAction
	g.Message = "Round 1. Submit your actions."
	touchDeadline(g, actionTimeout)

	statuses := make([]game.PlayerStatus, 0, len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		statuses = append(statuses, game.PlayerStatus{
			ID:      p.PlayerUUID,
			Name:    p.PlayerName,
			HP:      p.HitPoints,
			MaxHP:   p.MaxHitPoints,
			IsAlive: p.IsAlive,
		})
	}
	result := &game.RoundResult{
		Round: 0,
		Phase: g.Phase,
		Monster: game.MonsterStatus{
			HP:               g.Monster.HitPoints,
			MaxHP:            g.Monster.MaxHitPoints,
			Level:            g.Monster.Level,
			NextAttackDamage: engine.MonsterAttackDamage(&g.Monster, cat.Balance.Monster),
		},
		Players:       statuses,
		PublicEvents:  log.PublicEvents(),
		PrivateEvents: log.PrivateEvents(),
	}
	g.LastResult = result
	return result, nil
}
