package database

import (
	"gorm.io/gorm"

	"github.com/cardapio-inteligente/backend/internal/model"
)

// RunMigrations creates or updates the schema for all persisted entities.
// On Postgres this also creates the favoritos → cardapios foreign key.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.GenerationRecord{},
		&model.UsageRecord{},
		&model.FavoriteRecord{},
	)
}
