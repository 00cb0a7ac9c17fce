package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cardapio-inteligente/backend/internal/model"
	"github.com/cardapio-inteligente/backend/internal/types"
)

// historyLimit caps how many generation records a history query returns
const historyLimit = 20

// MenuService orchestrates the generation pipeline: prompt → completion API →
// extraction → best-effort persistence. History and favorites delegate
// directly to the database.
type MenuService struct {
	db  *gorm.DB
	llm CompletionClient
}

// NewMenuService creates a new MenuService instance
func NewMenuService(db *gorm.DB, llm CompletionClient) *MenuService {
	return &MenuService{
		db:  db,
		llm: llm,
	}
}

// Metadata describes one generation for the client
type Metadata struct {
	ResponseTime string `json:"tempoResposta"`
	TokensUsed   int    `json:"tokensUsados"`
	Model        string `json:"modelo"`
}

// GenerateResult is the outcome of a generate call. GenerationID is nil when
// the record could not be persisted; the menu is still returned.
type GenerateResult struct {
	GenerationID *uuid.UUID
	Menu         types.GeneratedMenu
	Metadata     Metadata
}

// Generate runs the end-to-end pipeline for one menu request. Gateway errors
// abort the operation before any persistence; extraction and persistence
// failures degrade gracefully.
func (s *MenuService) Generate(ctx context.Context, req types.MenuRequest) (*GenerateResult, error) {
	start := time.Now()

	if strings.TrimSpace(req.MealType) == "" {
		return nil, &ValidationError{Message: "tipoRefeicao é obrigatório"}
	}
	if req.PartySize <= 0 {
		return nil, &ValidationError{Message: "numeroPessoas deve ser maior que zero"}
	}

	prompt := BuildMenuPrompt(req)

	completion, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	gatewayLatency := time.Since(start)

	menu := ExtractMenu(completion.Text, req)

	// Two independent best-effort writes. Either may fail without affecting
	// the other or the response.
	generationID := s.persistGeneration(ctx, req, prompt, menu)
	s.persistUsage(ctx, req, prompt, completion, gatewayLatency)

	return &GenerateResult{
		GenerationID: generationID,
		Menu:         menu,
		Metadata: Metadata{
			ResponseTime: fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
			TokensUsed:   completion.TokensUsed,
			Model:        completion.Model,
		},
	}, nil
}

func (s *MenuService) persistGeneration(ctx context.Context, req types.MenuRequest, prompt string, menu types.GeneratedMenu) *uuid.UUID {
	serialized, err := json.Marshal(menu)
	if err != nil {
		log.Printf("Failed to serialize menu: %v", err)
		return nil
	}

	record := model.GenerationRecord{
		ID:         uuid.New(),
		UserID:     optionalString(req.UserID),
		MealType:   req.MealType,
		Occasion:   optionalString(req.Occasion),
		PartySize:  req.PartySize,
		Budget:     req.Budget,
		MenuJSON:   string(serialized),
		PromptUsed: prompt,
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		log.Printf("Failed to save cardapio: %v", err)
		return nil
	}
	return &record.ID
}

func (s *MenuService) persistUsage(ctx context.Context, req types.MenuRequest, prompt string, completion *Completion, latency time.Duration) {
	record := model.UsageRecord{
		ID:         uuid.New(),
		UserID:     optionalString(req.UserID),
		Prompt:     prompt,
		Response:   completion.Text,
		TokensUsed: completion.TokensUsed,
		LatencyMs:  int(latency.Milliseconds()),
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		log.Printf("Failed to save historico de geracao: %v", err)
	}
}

// HistoryEntry is one generation record with its menu parsed back out of the
// stored JSON.
type HistoryEntry struct {
	ID        uuid.UUID           `json:"id"`
	UserID    *string             `json:"usuario_id"`
	MealType  string              `json:"tipo_refeicao"`
	Occasion  *string             `json:"ocasiao"`
	PartySize int                 `json:"numero_pessoas"`
	Budget    *float64            `json:"orcamento"`
	Menu      types.GeneratedMenu `json:"conteudo_json"`
	CreatedAt time.Time           `json:"criado_em"`
}

// ListHistory returns the newest generation records for a user, newest first,
// capped at 20. Records with no user are shared/demo data and are included
// for everyone.
func (s *MenuService) ListHistory(ctx context.Context, userID string) ([]HistoryEntry, error) {
	var records []model.GenerationRecord
	err := s.db.WithContext(ctx).
		Where("usuario_id = ? OR usuario_id IS NULL", userID).
		Order("criado_em DESC").
		Limit(historyLimit).
		Find(&records).Error
	if err != nil {
		return nil, &StorageError{Op: "failed to list cardapios", Err: err}
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, record := range records {
		var menu types.GeneratedMenu
		if err := json.Unmarshal([]byte(record.MenuJSON), &menu); err != nil {
			log.Printf("Skipping cardapio %s with invalid stored menu: %v", record.ID, err)
			continue
		}
		entries = append(entries, HistoryEntry{
			ID:        record.ID,
			UserID:    record.UserID,
			MealType:  record.MealType,
			Occasion:  record.Occasion,
			PartySize: record.PartySize,
			Budget:    record.Budget,
			Menu:      menu,
			CreatedAt: record.CreatedAt,
		})
	}
	return entries, nil
}

// FavoriteInput is the payload for marking a dish as favorite
type FavoriteInput struct {
	UserID       string `json:"usuarioId"`
	GenerationID string `json:"cardapioId"`
	DishName     string `json:"nomePrato"`
	Description  string `json:"descricao"`
}

// AddFavorite stores a favorite dish. The referenced generation record is not
// checked for existence here; the database foreign key rejects orphans.
func (s *MenuService) AddFavorite(ctx context.Context, input FavoriteInput) (*model.FavoriteRecord, error) {
	if input.UserID == "" || input.GenerationID == "" || input.DishName == "" {
		return nil, &ValidationError{
			Message: "Dados incompletos: usuarioId, cardapioId e nomePrato são obrigatórios",
		}
	}

	generationID, err := uuid.Parse(input.GenerationID)
	if err != nil {
		return nil, &ValidationError{Message: "cardapioId inválido"}
	}

	record := model.FavoriteRecord{
		ID:           uuid.New(),
		UserID:       input.UserID,
		GenerationID: generationID,
		DishName:     input.DishName,
		Description:  optionalString(input.Description),
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, &StorageError{Op: "failed to save favorito", Err: err}
	}
	return &record, nil
}

// FavoriteEntry is a favorite joined with the menu it came from
type FavoriteEntry struct {
	ID           uuid.UUID           `json:"id"`
	UserID       string              `json:"usuario_id"`
	GenerationID uuid.UUID           `json:"cardapio_id"`
	DishName     string              `json:"nome_prato"`
	Description  *string             `json:"descricao,omitempty"`
	Menu         types.GeneratedMenu `json:"conteudo_json"`
	CreatedAt    time.Time           `json:"criado_em"`
}

// ListFavorites returns a user's favorites joined with their generation
// records, newest first. Favorites whose cardápio no longer exists are
// omitted, matching inner-join semantics.
func (s *MenuService) ListFavorites(ctx context.Context, userID string) ([]FavoriteEntry, error) {
	var favorites []model.FavoriteRecord
	err := s.db.WithContext(ctx).
		Preload("Generation").
		Where("usuario_id = ?", userID).
		Order("criado_em DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, &StorageError{Op: "failed to list favoritos", Err: err}
	}

	entries := make([]FavoriteEntry, 0, len(favorites))
	for _, favorite := range favorites {
		if favorite.Generation == nil {
			continue
		}
		var menu types.GeneratedMenu
		if err := json.Unmarshal([]byte(favorite.Generation.MenuJSON), &menu); err != nil {
			log.Printf("Skipping favorito %s with invalid stored menu: %v", favorite.ID, err)
			continue
		}
		entries = append(entries, FavoriteEntry{
			ID:           favorite.ID,
			UserID:       favorite.UserID,
			GenerationID: favorite.GenerationID,
			DishName:     favorite.DishName,
			Description:  favorite.Description,
			Menu:         menu,
			CreatedAt:    favorite.CreatedAt,
		})
	}
	return entries, nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
