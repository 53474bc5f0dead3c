package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/zbonzo/warlock/internal/catalog"
)

// GetCatalog serves the static game data clients need to render the
// character picker and ability bar. Output is sorted so the payload is
// stable across requests.
func (h *GameHandler) GetCatalog(c *gin.Context) {
	abilities := make([]catalog.Ability, 0, len(h.catalog.Abilities))
	for _, a := range h.catalog.Abilities {
		abilities = append(abilities, a)
	}
	sort.Slice(abilities, func(i, j int) bool { return abilities[i].ID < abilities[j].ID })

	races := make([]catalog.Race, 0, len(h.catalog.Races))
	for _, r := range h.catalog.Races {
		races = append(races, r)
	}
	sort.Slice(races, func(i, j int) bool { return races[i].ID < races[j].ID })

	classes := make([]catalog.Class, 0, len(h.catalog.Classes))
	for _, cl := range h.catalog.Classes {
		classes = append(classes, cl)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })

	c.JSON(http.StatusOK, gin.H{
		"ability_list": abilities,
		"race_list":    races,
		"class_list":   classes,
	})
}
