package main

import (
	"github.com/gin-gonic/gin"

	"github.com/zbonzo/warlock/internal/api"
	"github.com/zbonzo/warlock/internal/catalog"
	"github.com/zbonzo/warlock/internal/config"
	"github.com/zbonzo/warlock/internal/constants"
	"github.com/zbonzo/warlock/internal/engine"
	"github.com/zbonzo/warlock/internal/logging"
	"github.com/zbonzo/warlock/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Invalid configuration", err, nil)
	}
	if cfg.SessionSecret == "" {
		logging.Warn("SESSION_SECRET not set; sessions will not survive a restart", nil)
	}

	// The catalog file is the single source of game data (abilities,
	// races, classes, balance). Refuse to start without it.
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logging.Fatal("Missing or invalid game catalog", err, logging.Fields{"catalog_path": cfg.CatalogPath, "hint": "create a warlock_catalog.json with 'ability_list', 'race_list', 'class_list' and 'balance' sections"})
	}

	db, err := storage.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	rng := engine.NewRNG(cfg.RNGSeed)
	handler := api.NewGameHandler(repo, cat, rng, cfg.ActionTimeout, cfg.PublicBaseURL)

	startTimeoutScanner(repo, cat, rng, cfg.ActionTimeout)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.POST(constants.RouteAuthGuest, handler.GuestLogin)
		apiRoutes.GET(constants.RouteCatalog, handler.GetCatalog)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteGameQR, handler.JoinQR)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RouteProfile, handler.GetProfile)
		protected.POST(constants.RouteGames, handler.CreateGame)
		protected.POST(constants.RouteGamesJoin, handler.JoinGame)
		protected.GET(constants.RouteGameByCode, handler.GetGame)
		protected.POST(constants.RouteGameSelect, handler.OpenCharacterSelect)
		protected.POST(constants.RouteGameCharacter, handler.SelectCharacter)
		protected.POST(constants.RouteGameStart, handler.StartGame)
		protected.POST(constants.RouteGameAction, handler.SubmitAction)
		protected.POST(constants.RouteGameReady, handler.SignalReady)
		protected.POST(constants.RouteGameLeave, handler.LeaveGame)
		protected.GET(constants.RouteGameLastRound, handler.GetLastRound)
	}

	addr := cfg.Address
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
