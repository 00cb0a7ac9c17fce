package model

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord logs one call to the completion API: the prompt, the raw reply
// and usage metadata. Written once per gateway call regardless of whether the
// reply parsed into a menu.
type UsageRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *string   `gorm:"column:usuario_id;size:64;index" json:"usuario_id"`
	Prompt     string    `gorm:"column:prompt;type:text;not null" json:"prompt"`
	Response   string    `gorm:"column:resposta;type:text" json:"resposta"`
	TokensUsed int       `gorm:"column:tokens_usados" json:"tokens_usados"`
	LatencyMs  int       `gorm:"column:tempo_resposta_ms" json:"tempo_resposta_ms"`
	CreatedAt  time.Time `gorm:"column:criado_em;autoCreateTime" json:"criado_em"`
}

func (UsageRecord) TableName() string {
	return "historico_geracoes"
}
