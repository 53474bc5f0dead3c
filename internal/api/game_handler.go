package api

import (
	"time"

	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/storage"
)

// GameHandler bundles the dependencies the HTTP endpoints need.
type GameHandler struct {
	repo          storage.Repository
	catalog       *catalog.Catalog
	rng           engine.RNG
	actionTimeout time.Duration
	publicBaseURL string
}

func NewGameHandler(repo storage.Repository, cat *catalog.Catalog, rng engine.RNG, actionTimeout time.Duration, publicBaseURL string) *GameHandler {
	return &GameHandler{
		repo:          repo,
		catalog:       cat,
		rng:           rng,
		actionTimeout: actionTimeout,
		publicBaseURL: publicBaseURL,
	}
}
