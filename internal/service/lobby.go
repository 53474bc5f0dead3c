package service

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/game"
)

const joinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NewJoinCode returns a six character code from an alphabet without
// easily confused glyphs.
func NewJoinCode() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = joinCodeAlphabet[rand.Intn(len(joinCodeAlphabet))]
	}
	return string(b)
}

// CreateGame opens a new room in the lobby phase with the creator as
// host and first player.
func CreateGame(name, hostName string) *game.Game {
	hostUUID := uuid.NewString()
	return &game.Game{
		Name:     strings.TrimSpace(name),
		JoinCode: NewJoinCode(),
		HostUUID: hostUUID,
		Phase:    game.PhaseLobby,
		// Unstarted rooms expire after the lobby cutoff.
		ActionDeadline: time.Now().Add(StaleLobbyCutoff),
		Players: []game.Player{{
			PlayerUUID:  hostUUID,
			PlayerName:  strings.TrimSpace(hostName),
			IsAlive:     true,
			IsConnected: true,
		}},
	}
}

// JoinGame adds a player to a lobby. Names must be unique inside the
// room so event messages stay unambiguous.
func JoinGame(g *game.Game, playerName string) (*game.Player, error) {
	if g.Phase != game.PhaseLobby {
		return nil, ErrGameAlreadyStarted
	}
	if len(g.Players) >= MaxPlayers {
		return nil, ErrGameFull
	}
	playerName = strings.TrimSpace(playerName)
	for i := range g.Players {
		if strings.EqualFold(g.Players[i].PlayerName, playerName) {
			return nil, ErrNameTaken
		}
	}
	g.Players = append(g.Players, game.Player{
		PlayerUUID:  uuid.NewString(),
		PlayerName:  playerName,
		IsAlive:     true,
		IsConnected: true,
	})
	return &g.Players[len(g.Players)-1], nil
}

// OpenCharacterSelect locks the roster and moves the room to character
// selection. Host only.
func OpenCharacterSelect(g *game.Game, callerUUID string) error {
	if callerUUID != g.HostUUID {
		return ErrNotHost
	}
	if g.Phase != game.PhaseLobby {
		return ErrWrongPhase
	}
	if len(g.Players) < MinPlayers {
		return ErrNotEnoughPlayers
	}
	g.Phase = game.PhaseCharacterSelect
	g.Message = "Choose your race and class."
	return nil
}

// SelectCharacter applies a player's race/class pick and derives their
// starting stats and ability kit from the catalog.
func SelectCharacter(g *game.Game, cat *catalog.Catalog, playerUUID, raceID, classID string) error {
	if g.Phase != game.PhaseCharacterSelect {
		return ErrWrongPhase
	}
	p := g.PlayerByUUID(playerUUID)
	if p == nil {
		return ErrPlayerNotInGame
	}
	if _, ok := cat.Races[raceID]; !ok {
		return ErrUnknownRace
	}
	class, ok := cat.Classes[classID]
	if !ok {
		return ErrUnknownClass
	}

	hp, armor := cat.StartingStats(raceID, classID)
	p.RaceID = raceID
	p.ClassID = classID
	p.MaxHitPoints = hp
	p.HitPoints = hp
	p.Armor = armor
	p.Abilities = append([]string(nil), class.Abilities...)
	p.Cooldowns = make(map[string]int)
	p.HasSelected = true
	return nil
}

// Leave handles a departing player. In the lobby the seat is freed; in
// a running game the player is marked disconnected, their pending
// action is discarded, and defaults are used at the next resolution.
// A leaving host hands the room to the next player.
func Leave(g *game.Game, playerUUID string) error {
	p := g.PlayerByUUID(playerUUID)
	if p == nil {
		return ErrPlayerNotInGame
	}
	switch g.Phase {
	case game.PhaseLobby, game.PhaseCharacterSelect:
		for i := range g.Players {
			if g.Players[i].PlayerUUID == playerUUID {
				g.Players = append(g.Players[:i], g.Players[i+1:]...)
				break
			}
		}
		if g.HostUUID == playerUUID && len(g.Players) > 0 {
			g.HostUUID = g.Players[0].PlayerUUID
		}
	case game.PhaseEnded:
		return ErrGameEnded
	default:
		p.IsConnected = false
		p.PendingAction = nil
		p.HasSubmitted = false
	}
	return nil
}

// StaleLobbyCutoff is how long an unstarted room may idle before the
// timeout scanner disbands it.
const StaleLobbyCutoff = 30 * time.Minute
