package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/game"
	"github.com/zbonzo/warlock/internal/logging"
	"github.com/zbonzo/warlock/internal/service"
)

type createGameRequest struct {
	Name string `json:"name"`
}

// CreateGame opens a new room with the caller as host.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	_ = c.ShouldBindJSON(&req)

	g := service.CreateGame(req.Name, callerName(c))
	// The creator's seat carries their session identity, not a fresh
	// UUID, so the same token works across lobby and battle.
	g.HostUUID = callerUUID(c)
	g.Players[0].PlayerUUID = callerUUID(c)

	if err := h.repo.CreateGame(g); err != nil {
		logging.Error("failed to create game", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: "failed to create game"})
		return
	}
	logging.Info("game created", logging.Fields{constants.LogFieldGameID: g.ID, "join_code": g.JoinCode})
	c.JSON(http.StatusCreated, g)
}

type joinGameRequest struct {
	JoinCode string `json:"join_code" binding:"required"`
}

// JoinGame seats the caller in an open lobby.
func (h *GameHandler) JoinGame(c *gin.Context) {
	var req joinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	code := normalizeJoinCode(req.JoinCode)
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	g, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}

	g = h.updateRoom(c, g.ID, func(g *game.Game) error {
		p, err := service.JoinGame(g, callerName(c))
		if err != nil {
			return err
		}
		p.PlayerUUID = callerUUID(c)
		return nil
	})
	if g == nil {
		return
	}
	c.JSON(http.StatusOK, g)
}

// OpenCharacterSelect locks the roster and begins character selection.
func (h *GameHandler) OpenCharacterSelect(c *gin.Context) {
	g := h.loadGameByCode(c)
	if g == nil {
		return
	}
	g = h.updateRoom(c, g.ID, func(g *game.Game) error {
		return service.OpenCharacterSelect(g, callerUUID(c))
	})
	if g == nil {
		return
	}
	c.JSON(http.StatusOK, g)
}

type selectCharacterRequest struct {
	RaceID  string `json:"race_id" binding:"required"`
	ClassID string `json:"class_id" binding:"required"`
}

// SelectCharacter stores the caller's race/class pick.
func (h *GameHandler) SelectCharacter(c *gin.Context) {
	g := h.loadGameByCode(c)
	if g == nil {
		return
	}
	var req selectCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	g = h.updateRoom(c, g.ID, func(g *game.Game) error {
		return service.SelectCharacter(g, h.catalog, callerUUID(c), req.RaceID, req.ClassID)
	})
	if g == nil {
		return
	}
	c.JSON(http.StatusOK, g)
}

// StartGame begins the battle. The response carries the round-zero
// result with the caller's private role notification, if any.
func (h *GameHandler) StartGame(c *gin.Context) {
	g := h.loadGameByCode(c)
	if g == nil {
		return
	}
	g = h.updateRoom(c, g.ID, func(g *game.Game) error {
		// The round-zero payload lands on g.LastResult; the response is
		// built from there so the caller only sees their own private
		// events.
		_, err := service.StartGame(g, h.catalog, callerUUID(c), h.rng, h.actionTimeout)
		return err
	})
	if g == nil {
		return
	}
	logging.Info("game started", logging.Fields{
		constants.LogFieldGameID: g.ID,
		"players":                len(g.Players),
	})
	c.JSON(http.StatusOK, h.roundResultFor(g, callerUUID(c)))
}

// LeaveGame frees a lobby seat or marks an in-battle player
// disconnected; their defaults are used at the next resolution.
func (h *GameHandler) LeaveGame(c *gin.Context) {
	g := h.loadGameByCode(c)
	if g == nil {
		return
	}
	uuid := callerUUID(c)
	g = h.updateRoom(c, g.ID, func(g *game.Game) error {
		if err := service.Leave(g, uuid); err != nil {
			return err
		}
		if g.PlayerByUUID(uuid) == nil {
			return h.repo.RemovePlayer(g.ID, uuid)
		}
		return nil
	})
	if g == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "left game"})
}
