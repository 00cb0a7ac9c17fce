package model

import (
	"time"

	"github.com/google/uuid"
)

// GenerationRecord is one persisted menu generation attempt. Rows are
// append-only; the serialized menu is stored as JSON text so a fallback menu
// is recorded the same way as a successful one. A NULL usuario_id marks
// shared/demo data that every user sees in their history.
type GenerationRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *string   `gorm:"column:usuario_id;size:64;index" json:"usuario_id"`
	MealType   string    `gorm:"column:tipo_refeicao;size:50;not null" json:"tipo_refeicao"`
	Occasion   *string   `gorm:"column:ocasiao;size:100" json:"ocasiao"`
	PartySize  int       `gorm:"column:numero_pessoas;not null" json:"numero_pessoas"`
	Budget     *float64  `gorm:"column:orcamento" json:"orcamento"`
	MenuJSON   string    `gorm:"column:conteudo_json;type:text;not null" json:"-"`
	PromptUsed string    `gorm:"column:prompt_usado;type:text" json:"-"`
	CreatedAt  time.Time `gorm:"column:criado_em;autoCreateTime" json:"criado_em"`
}

func (GenerationRecord) TableName() string {
	return "cardapios"
}
