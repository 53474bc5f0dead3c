package storage

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zbonzo/warlock/internal/game"
)

// OpenAndMigrate opens (creating directories as needed) the SQLite
// database and keeps the schema current via AutoMigrate. Static game
// data never lives in the database; the catalog file is the single
// source of truth for abilities and balance.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	if dir := filepath.Dir(dataSourceName); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Game{}, &game.Player{}, &game.Profile{}); err != nil {
		return nil, err
	}
	return db, nil
}
