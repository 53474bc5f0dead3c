package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/dedupe"
	"github.com/zbonzo/warlock/internal/game"
)

const defaultLeaderboardLimit = 20

// ListLeaderboard returns the top players by wins. Concurrent requests
// for the same limit share one query.
func (h *GameHandler) ListLeaderboard(c *gin.Context) {
	limit := defaultLeaderboardLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	key := fmt.Sprintf("top:%d", limit)
	v, err, _ := dedupe.LeaderboardGroup.Do(key, func() (interface{}, error) {
		return h.repo.GetTopPlayers(limit)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: "failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, v.([]game.Profile))
}

// GetProfile returns the caller's aggregate stats.
func (h *GameHandler) GetProfile(c *gin.Context) {
	p, err := h.repo.GetProfileByUUID(callerUUID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: "profile not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}
