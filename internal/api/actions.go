package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/service"
)

type actionRequest struct {
	AbilityID string `json:"ability_id" binding:"required"`
	TargetID  string `json:"target_id"`
	Metadata  string `json:"metadata"`
}

// SubmitAction queues the caller's action for the current round. When
// the last living player submits, the round resolves before the
// response is written and the payload carries the caller's view of the
// round result.
func (h *GameHandler) SubmitAction(c *gin.Context) {
	g := h.loadGameByCode(c)
	if g == nil {
		return
	}
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	g2, resolved, err := service.SubmitAction(
		h.repo, h.catalog, g.ID, callerUUID(c),
		req.AbilityID, req.TargetID, req.Metadata,
		h.rng, h.actionTimeout,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if resolved {
		c.JSON(http.StatusOK, gin.H{
			constants.JSONKeyAccepted: true,
			"resolved":                true,
			"result":                  h.roundResultFor(g2, callerUUID(c)),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyAccepted: true,
		"resolved":                false,
		constants.JSONKeyMessage:  "Action stored. Waiting for the others.",
	})
}

// SignalReady records readiness during the results phase; a majority
// of the living starts the next round.
func (h *GameHandler) SignalReady(c *gin.Context) {
	g := h.loadGameByCode(c)
	if g == nil {
		return
	}
	g2, err := service.SignalReady(h.repo, g.ID, callerUUID(c), h.actionTimeout)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"phase": g2.Phase, "round": g2.Round})
}
