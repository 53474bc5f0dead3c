package engine

import "github.com/zbonzo/warlock/internal/game"

// EventLog accumulates a round's structured entries. Public entries go
// to everyone; private entries carry hidden-role information and are
// keyed by the single player allowed to see them. The transport layer
// routes the two streams per audience.
type EventLog struct {
	public  []game.Event
	private map[string][]game.Event
}

func NewEventLog() *EventLog {
	return &EventLog{private: make(map[string][]game.Event)}
}

// Public appends an entry visible to every player.
func (l *EventLog) Public(ev game.Event) {
	l.public = append(l.public, ev)
}

// Private appends an entry visible to one player only.
func (l *EventLog) Private(playerUUID string, ev game.Event) {
	l.private[playerUUID] = append(l.private[playerUUID], ev)
}

// Attacker appends a variant of an entry that only the acting player
// should see (e.g. the exact corruption outcome of their own attack).
func (l *EventLog) Attacker(actorUUID string, ev game.Event) {
	l.Private(actorUUID, ev)
}

// PublicEvents returns the public stream in chronological order.
func (l *EventLog) PublicEvents() []game.Event { return l.public }

// PrivateEvents returns the per-player private streams. The map is
// empty, never nil, when no private entry was produced.
func (l *EventLog) PrivateEvents() map[string][]game.Event { return l.private }
