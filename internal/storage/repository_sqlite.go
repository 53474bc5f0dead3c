package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/zbonzo/warlock/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateGame(g *game.Game) error {
	return r.db.Create(g).Error
}

func (r *sqliteRepository) GetGameByID(id uint) (*game.Game, error) {
	var g game.Game
	if err := r.db.Preload("Players").First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) FindGameByJoinCode(code string) (*game.Game, error) {
	var g game.Game
	if err := r.db.Preload("Players").Where("join_code = ?", code).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *sqliteRepository) UpdateGame(g *game.Game) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(g).Error
}

func (r *sqliteRepository) RemovePlayer(gameID uint, playerUUID string) error {
	return r.db.Where("game_id = ? AND player_uuid = ?", gameID, playerUUID).
		Delete(&game.Player{}).Error
}

func (r *sqliteRepository) FindTimedOutGameIDs(now time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&game.Game{}).
		Where("phase != ? AND action_deadline > ? AND action_deadline <= ?", game.PhaseEnded, time.Time{}, now).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *sqliteRepository) UpsertProfile(playerUUID, playerName string) error {
	var p game.Profile
	err := r.db.Where("player_uuid = ?", playerUUID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&game.Profile{PlayerUUID: playerUUID, PlayerName: playerName}).Error
	}
	if err != nil {
		return err
	}
	if playerName != "" && playerName != p.PlayerName {
		p.PlayerName = playerName
		return r.db.Save(&p).Error
	}
	return nil
}

func (r *sqliteRepository) GetProfileByUUID(playerUUID string) (*game.Profile, error) {
	var p game.Profile
	if err := r.db.Where("player_uuid = ?", playerUUID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) UpdateStatsOnGameEnd(g *game.Game) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range g.Players {
			p := &g.Players[i]
			var profile game.Profile
			err := tx.Where("player_uuid = ?", p.PlayerUUID).First(&profile).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				profile = game.Profile{PlayerUUID: p.PlayerUUID, PlayerName: p.PlayerName}
			} else if err != nil {
				return err
			}
			profile.GamesPlayed++
			won := (g.Winner == game.FactionWarlocks) == p.IsWarlock && g.Winner != ""
			if won {
				profile.Wins++
			}
			if p.ConvertedMidGame {
				profile.TimesCorrupted++
			}
			if err := tx.Save(&profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.Profile, error) {
	var profiles []game.Profile
	err := r.db.Order("wins DESC, games_played ASC").Limit(limit).Find(&profiles).Error
	return profiles, err
}
