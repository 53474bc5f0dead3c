package api

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/service"
)

var joinCodeRegex = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func normalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// loadGameByCode resolves the :gameCode path parameter, writing the
// error response itself on failure.
func (h *GameHandler) loadGameByCode(c *gin.Context) *game.Game {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return nil
	}
	g, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return nil
	}
	return g
}

// updateRoom runs fn on the game re-read under its lock and writes the
// aggregate back. Handlers resolve the join code to an ID outside the
// lock, but must not mutate that snapshot: another writer may have
// committed in between, and saving the stale copy would revert it.
// Returns nil after writing the error response on failure.
func (h *GameHandler) updateRoom(c *gin.Context, gameID uint, fn func(g *game.Game) error) *game.Game {
	var g *game.Game
	err := service.WithGameLock(gameID, func() error {
		var err error
		g, err = h.repo.GetGameByID(gameID)
		if err != nil || g == nil {
			return service.ErrGameNotFound
		}
		if err := fn(g); err != nil {
			return err
		}
		return h.repo.UpdateGame(g)
	})
	if err != nil {
		writeServiceError(c, err)
		return nil
	}
	return g
}

// writeServiceError maps service-layer errors onto HTTP statuses.
// Submission rejections keep their machine-readable code so clients can
// react without parsing prose.
func writeServiceError(c *gin.Context, err error) {
	if rej, ok := err.(*engine.Rejection); ok {
		body := gin.H{
			constants.JSONKeyAccepted: false,
			constants.JSONKeyCode:     rej.Code,
			constants.JSONKeyReason:   rej.Error(),
		}
		if rej.Remaining > 0 {
			body["remaining"] = rej.Remaining
		}
		c.JSON(http.StatusConflict, body)
		return
	}
	switch err {
	case service.ErrGameNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
	case service.ErrNotHost, service.ErrPlayerNotInGame:
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: err.Error()})
	case service.ErrGameFull, service.ErrNameTaken, service.ErrUnknownRace, service.ErrUnknownClass:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
	case service.ErrWrongPhase, service.ErrGameAlreadyStarted, service.ErrGameEnded,
		service.ErrNotEnoughPlayers, service.ErrCharactersPending:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
	}
}
