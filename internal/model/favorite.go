package model

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteRecord marks a dish from a generated menu as a user favorite.
// Referential integrity with cardapios is enforced by the database constraint,
// not checked application-side before insert.
type FavoriteRecord struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string            `gorm:"column:usuario_id;size:64;not null;index" json:"usuario_id"`
	GenerationID uuid.UUID         `gorm:"column:cardapio_id;type:uuid;not null;index" json:"cardapio_id"`
	Generation   *GenerationRecord `gorm:"foreignKey:GenerationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	DishName     string            `gorm:"column:nome_prato;size:255;not null" json:"nome_prato"`
	Description  *string           `gorm:"column:descricao;type:text" json:"descricao,omitempty"`
	CreatedAt    time.Time         `gorm:"column:criado_em;autoCreateTime" json:"criado_em"`
}

func (FavoriteRecord) TableName() string {
	return "favoritos"
}
