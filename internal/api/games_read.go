package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/game"
)

// GetGame returns the caller's view of the room. Hidden-role state
// never appears here: the Player model keeps the allegiance flag out of
// its JSON form, and round results are served separately so their
// private events can be filtered per caller.
func (h *GameHandler) GetGame(c *gin.Context) {
	g := h.loadGameByCode(c)
	if g == nil {
		return
	}
	c.JSON(http.StatusOK, g)
}

// GetLastRound returns the most recent round result with private
// events reduced to the caller's own stream.
func (h *GameHandler) GetLastRound(c *gin.Context) {
	g := h.loadGameByCode(c)
	if g == nil {
		return
	}
	if g.PlayerByUUID(callerUUID(c)) == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInGame})
		return
	}
	result := h.roundResultFor(g, callerUUID(c))
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: "no round resolved yet"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// roundResultFor clones the stored result, keeping only the private
// events addressed to the given player. The stored aggregate keeps the
// full map; what leaves the server is per-audience.
func (h *GameHandler) roundResultFor(g *game.Game, playerUUID string) *game.RoundResult {
	if g.LastResult == nil {
		return nil
	}
	out := *g.LastResult
	if events, ok := g.LastResult.PrivateEvents[playerUUID]; ok {
		out.PrivateEvents = map[string][]game.Event{playerUUID: events}
	} else {
		out.PrivateEvents = nil
	}
	return &out
}
