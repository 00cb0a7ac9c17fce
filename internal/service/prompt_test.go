package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardapio-inteligente/backend/internal/types"
)

func TestBuildMenuPrompt(t *testing.T) {
	t.Run("should substitute defaults for missing optional fields", func(t *testing.T) {
		prompt := BuildMenuPrompt(types.MenuRequest{
			MealType:  "jantar",
			PartySize: 4,
		})

		assert.Contains(t, prompt, "Tipo de refeição: jantar")
		assert.Contains(t, prompt, "Ocasião: casual")
		assert.Contains(t, prompt, "Número de pessoas: 4")
		assert.Contains(t, prompt, "Orçamento: R$ moderado")
		assert.Contains(t, prompt, "Preferências: sem preferências específicas")
		assert.Contains(t, prompt, "Restrições alimentares: nenhuma")
	})

	t.Run("should include provided constraints verbatim", func(t *testing.T) {
		budget := 150.0
		prompt := BuildMenuPrompt(types.MenuRequest{
			MealType:     "almoço",
			Occasion:     "aniversário",
			PartySize:    8,
			Budget:       &budget,
			Preferences:  "comida italiana",
			Restrictions: "sem glúten",
		})

		assert.Contains(t, prompt, "Ocasião: aniversário")
		assert.Contains(t, prompt, "Número de pessoas: 8")
		assert.Contains(t, prompt, "Orçamento: R$ 150.00")
		assert.Contains(t, prompt, "Preferências: comida italiana")
		assert.Contains(t, prompt, "Restrições alimentares: sem glúten")
		assert.NotContains(t, prompt, "casual")
	})

	t.Run("should embed the output schema field names", func(t *testing.T) {
		prompt := BuildMenuPrompt(types.MenuRequest{MealType: "jantar", PartySize: 2})

		for _, field := range []string{
			"titulo", "descricao", "pratos", "nome", "categoria",
			"ingredientes", "tempoPreparo", "dificuldade", "custoEstimado",
			"dicasChef", "tempoTotalPreparo",
		} {
			assert.Contains(t, prompt, `"`+field+`"`)
		}
	})

	t.Run("should instruct the model to return only JSON", func(t *testing.T) {
		prompt := BuildMenuPrompt(types.MenuRequest{MealType: "café da manhã", PartySize: 1})
		assert.True(t, strings.HasSuffix(prompt, "Retorne APENAS o JSON, sem texto adicional."))
	})

	t.Run("should be deterministic", func(t *testing.T) {
		req := types.MenuRequest{MealType: "jantar", PartySize: 4}
		assert.Equal(t, BuildMenuPrompt(req), BuildMenuPrompt(req))
	})
}
