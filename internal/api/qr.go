package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/dedupe"
)

// JoinQR renders a QR code for the room's join link so a table of
// players can scan in. Rendering is deduplicated per join code.
func (h *GameHandler) JoinQR(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameCode})
		return
	}
	if _, err := h.repo.FindGameByJoinCode(code); err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}

	v, err, _ := dedupe.QRGroup.Do(code, func() (interface{}, error) {
		link := fmt.Sprintf("%s/join/%s", h.publicBaseURL, code)
		return qrcode.Encode(link, qrcode.Medium, 256)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: "failed to render QR code"})
		return
	}
	c.Data(http.StatusOK, constants.ContentTypePNG, v.([]byte))
}
