package game

// EventType tags one entry in a round's chronological event log.
type EventType string

const (
	EventPlayerAttacksMonster EventType = "playerAttacksMonster"
	EventPlayerAttacksPlayer  EventType = "playerAttacksPlayer"
	EventMonsterAttacks       EventType = "monsterAttacks"
	EventHeal                 EventType = "heal"
	EventShield               EventType = "shield"
	EventEffectApplied        EventType = "effectApplied"
	EventEffectTick           EventType = "effectTick"
	EventEffectExpired        EventType = "effectExpired"
	EventDeath                EventType = "death"
	EventMonsterDefeated      EventType = "monsterDefeated"
	EventLevelUp              EventType = "levelUp"
	EventRoleAssigned         EventType = "roleAssigned"
	EventRoleRevealed         EventType = "roleRevealed"
	EventCorruption           EventType = "corruption"
	EventGameOver             EventType = "gameOver"
	EventSystem               EventType = "system"
	EventInfo                 EventType = "info"
)

// Event is one structured entry of a round's log. Amounts are split
// into damage and healing so log consumers can reconcile hit-point
// deltas without parsing messages.
type Event struct {
	Type     EventType `json:"type"`
	Message  string    `json:"message"`
	ActorID  string    `json:"actorId,omitempty"`
	TargetID string    `json:"targetId,omitempty"`
	Ability  string    `json:"ability,omitempty"`
	Damage   int       `json:"damage,omitempty"`
	Healing  int       `json:"healing,omitempty"`
}

// MonsterStatus is the monster snapshot included in a round result.
type MonsterStatus struct {
	HP               int `json:"hp"`
	MaxHP            int `json:"maxHp"`
	Level            int `json:"level"`
	NextAttackDamage int `json:"nextAttackDamage"`
}

// PlayerStatus is the per-player snapshot included in a round result.
type PlayerStatus struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	HP               int            `json:"hp"`
	MaxHP            int            `json:"maxHp"`
	IsAlive          bool           `json:"isAlive"`
	SubmittedAbility string         `json:"submittedAbility,omitempty"`
	Cooldowns        map[string]int `json:"cooldowns,omitempty"`
	Effects          []StatusEffect `json:"effects,omitempty"`
}

// LevelUp reports a monster respawn at a higher level.
type LevelUp struct {
	OldLevel int `json:"oldLevel"`
	NewLevel int `json:"newLevel"`
}

// RoundResult is the single per-round payload handed to the transport
// layer. Private events are keyed by player UUID and must only ever be
// delivered to that player.
type RoundResult struct {
	Round         int                `json:"round"`
	Phase         Phase              `json:"phase"`
	Monster       MonsterStatus      `json:"monster"`
	Players       []PlayerStatus     `json:"participants"`
	PublicEvents  []Event            `json:"publicEvents"`
	PrivateEvents map[string][]Event `json:"privateEvents,omitempty"`
	LevelUp       *LevelUp           `json:"levelUp,omitempty"`
	Winner        Faction            `json:"winner,omitempty"`
}
