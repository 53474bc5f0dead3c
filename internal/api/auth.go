package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zbonzo/warlock/internal/constants"
)

const (
	ctxPlayerUUID = "playerUUID"
	ctxPlayerName = "playerName"
)

type guestRequest struct {
	Name string `json:"name" binding:"required"`
}

// GuestLogin issues a session token for a display name. There is no
// external identity provider: a guest identity is just a fresh UUID
// bound to the chosen name.
func (h *GameHandler) GuestLogin(c *gin.Context) {
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	name := strings.TrimSpace(req.Name)
	playerUUID := uuid.NewString()
	token, err := issueSessionToken(playerUUID, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: "failed to issue session"})
		return
	}
	if err := h.repo.UpsertProfile(playerUUID, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: "failed to create profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "player_uuid": playerUUID, "name": name})
}

// AuthRequired validates the bearer session token and stores the
// caller's identity on the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		playerUUID, name, err := parseSessionToken(strings.TrimPrefix(header, constants.BearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		c.Set(ctxPlayerUUID, playerUUID)
		c.Set(ctxPlayerName, name)
		c.Next()
	}
}

func callerUUID(c *gin.Context) string {
	v, _ := c.Get(ctxPlayerUUID)
	s, _ := v.(string)
	return s
}

func callerName(c *gin.Context) string {
	v, _ := c.Get(ctxPlayerName)
	s, _ := v.(string)
	return s
}
