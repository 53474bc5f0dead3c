package game

import (
	"time"

	"gorm.io/gorm"
)

// Phase is the lifecycle stage of a game room. The phase only moves
// forward, except for the explicit results -> action transition that
// begins a new round.
type Phase string

const (
	PhaseLobby           Phase = "lobby"
	PhaseCharacterSelect Phase = "character_select"
	PhaseAction          Phase = "action"
	PhaseResolving       Phase = "resolving"
	PhaseResults         Phase = "results"
	PhaseEnded           Phase = "ended"
)

// Faction identifies one of the two sides evaluated by the win check.
type Faction string

const (
	FactionGood     Faction = "good"
	FactionWarlocks Faction = "warlocks"
)

// AbilityCategory drives resolution ordering: defense abilities resolve
// before attacks, attacks before heals, heals before specials.
type AbilityCategory string

const (
	CategoryAttack  AbilityCategory = "attack"
	CategoryDefense AbilityCategory = "defense"
	CategoryHeal    AbilityCategory = "heal"
	CategorySpecial AbilityCategory = "special"
)

// ResolutionRank returns the categorical position used to order a
// round's actions. Lower ranks resolve first.
func (c AbilityCategory) ResolutionRank() int {
	switch c {
	case CategoryDefense:
		return 0
	case CategoryAttack:
		return 1
	case CategoryHeal:
		return 2
	case CategorySpecial:
		return 3
	}
	return 4
}

// TargetShape describes which targets an ability may be aimed at.
type TargetShape string

const (
	TargetSelf       TargetShape = "self"
	TargetSingle     TargetShape = "single"
	TargetMulti      TargetShape = "multi"
	TargetAllAllies  TargetShape = "all_allies"
	TargetAllEnemies TargetShape = "all_enemies"
)

// MonsterTargetID is the sentinel target id players use to aim an
// ability at the monster instead of another player.
const MonsterTargetID = "__monster__"

// RejectCode is the machine-readable reason a submission was refused.
type RejectCode string

const (
	RejectUnknownParticipant RejectCode = "unknown_participant"
	RejectParticipantDead    RejectCode = "participant_dead"
	RejectWrongPhase         RejectCode = "wrong_phase"
	RejectAlreadySubmitted   RejectCode = "already_submitted"
	RejectAbilityLocked      RejectCode = "ability_locked"
	RejectAbilityOnCooldown  RejectCode = "ability_on_cooldown"
	RejectInvalidTarget      RejectCode = "invalid_target"
)

// Action is one player's submitted intent for the current round. It is
// consumed and discarded during resolution.
type Action struct {
	ActorID     string    `json:"actor_id"`
	AbilityID   string    `json:"ability_id"`
	TargetID    string    `json:"target_id"`
	SubmittedAt time.Time `json:"submitted_at"`
	// Metadata optionally names a consumed one-shot enhancement
	// (e.g. a blood-rune token). Free-form, validated by the resolver.
	Metadata string `json:"metadata,omitempty"`
}

// Player is a participant in a single game room. Complex sub-state
// (cooldowns, active effects, the pending action) is stored as JSON via
// the GORM serializer so the room can be reloaded as one aggregate.
type Player struct {
	gorm.Model
	GameID     uint   `json:"-"`
	PlayerUUID string `json:"id" gorm:"index"`
	PlayerName string `json:"name"`
	RaceID     string `json:"race_id"`
	ClassID    string `json:"class_id"`

	MaxHitPoints int  `json:"max_hp"`
	HitPoints    int  `json:"hp"`
	Armor        int  `json:"armor"`
	IsAlive      bool `json:"is_alive"`
	IsConnected  bool `json:"is_connected"`

	Abilities []string       `json:"abilities" gorm:"serializer:json"`
	Cooldowns map[string]int `json:"cooldowns" gorm:"serializer:json"`
	Effects   []StatusEffect `json:"effects" gorm:"serializer:json"`

	// IsWarlock is the hidden allegiance flag. It is never serialized
	// into API responses; warlocks learn their role through private
	// events only.
	IsWarlock bool `json:"-"`
	// ConvertedMidGame distinguishes corrupted converts from players
	// assigned the role at game start (tracked for profile stats).
	ConvertedMidGame bool `json:"-"`

	HasSubmitted  bool    `json:"has_submitted"`
	PendingAction *Action `json:"-" gorm:"serializer:json"`
	ReadyForNext  bool    `json:"-"`
	LastAbilityID string  `json:"last_ability_id"`
	HasSelected   bool    `json:"has_selected"`
}

func (Player) TableName() string { return "game_players" }

// CooldownRemaining returns the rounds left before the ability can be
// used again. Zero means usable now.
func (p *Player) CooldownRemaining(abilityID string) int {
	if p.Cooldowns == nil {
		return 0
	}
	return p.Cooldowns[abilityID]
}

// HasAbility reports whether the ability is unlocked for this player.
func (p *Player) HasAbility(abilityID string) bool {
	for _, id := range p.Abilities {
		if id == abilityID {
			return true
		}
	}
	return false
}

// Monster is the autonomous opponent shared by all players in a room.
// Threat bookkeeping lives here so it persists with the room aggregate;
// the engine package owns the logic that mutates it.
type Monster struct {
	HitPoints    int `json:"hp"`
	MaxHitPoints int `json:"max_hp"`
	BaseDamage   int `json:"base_damage"`
	// Age counts rounds survived since the last respawn and drives
	// damage scaling.
	Age   int `json:"age"`
	Level int `json:"level"`

	Threat map[string]float64 `json:"threat"`
	// RecentTargets holds the player UUIDs attacked in the last few
	// rounds, most recent last.
	RecentTargets []string `json:"recent_targets"`
}

// Game is the room aggregate: all state the round engine mutates lives
// under this one record.
type Game struct {
	gorm.Model
	Name     string `json:"name" gorm:"size:32"`
	JoinCode string `json:"join_code" gorm:"unique"`
	HostUUID string `json:"host_uuid"`

	Phase  Phase   `json:"phase"`
	Round  int     `json:"round"`
	Winner Faction `json:"winner,omitempty"`

	Players []Player `json:"players"`
	Monster Monster  `json:"monster" gorm:"serializer:json"`

	Message    string       `json:"message"`
	LastResult *RoundResult `json:"-" gorm:"serializer:json"`

	// ActionDeadline is the instant the current action phase times out.
	// It is rekeyed on every accepted submission and cleared when the
	// game ends.
	ActionDeadline time.Time `json:"action_deadline"`
	StatsCounted   bool      `json:"-"`
}

// PlayerByUUID returns the player with the given UUID, or nil.
func (g *Game) PlayerByUUID(uuid string) *Player {
	for i := range g.Players {
		if g.Players[i].PlayerUUID == uuid {
			return &g.Players[i]
		}
	}
	return nil
}

// LivingPlayers returns pointers to every player still alive.
func (g *Game) LivingPlayers() []*Player {
	out := make([]*Player, 0, len(g.Players))
	for i := range g.Players {
		if g.Players[i].IsAlive {
			out = append(out, &g.Players[i])
		}
	}
	return out
}

// AllLivingSubmitted reports whether every living, connected player has
// an action queued for the current round. Disconnected players do not
// hold up resolution; their defaults are substituted at the deadline.
func (g *Game) AllLivingSubmitted() bool {
	any := false
	for i := range g.Players {
		p := &g.Players[i]
		if !p.IsAlive {
			continue
		}
		any = true
		if p.IsConnected && !p.HasSubmitted {
			return false
		}
	}
	return any
}

// Profile stores a player's identity and aggregate stats across games.
type Profile struct {
	gorm.Model
	PlayerUUID  string `gorm:"uniqueIndex"`
	PlayerName  string
	GamesPlayed int
	Wins        int
	// TimesCorrupted counts games in which the player was converted to
	// the warlock faction mid-game.
	TimesCorrupted int
}

func (Profile) TableName() string { return "player_profiles" }
