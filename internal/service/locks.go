package service

import "sync"

// Rooms are effectively single-threaded: every mutation of a game's
// state happens under that game's lock. Submissions from different
// players in the same room serialize here; different rooms never
// contend.
var gameLocks sync.Map

// WithGameLock runs fn while holding the per-game mutex.
func WithGameLock(gameID uint, fn func() error) error {
	v, _ := gameLocks.LoadOrStore(gameID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// ReleaseGameLock drops the mutex entry for a finished game so the map
// does not grow without bound.
func ReleaseGameLock(gameID uint) {
	gameLocks.Delete(gameID)
}
